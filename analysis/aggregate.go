package analysis

import (
	"sort"

	"github.com/nzai/divdash/quotes"
	"github.com/shopspring/decimal"
)

// Row one aggregated value of a period
type Row[K any, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// DividendReport dividends aggregated by quarter and year, keys ascending
type DividendReport struct {
	PerQuarterAmount []Row[quotes.QuarterKey, decimal.Decimal] `json:"per_quarter_amount"`
	PaymentsPerYear  []Row[quotes.YearKey, int]                `json:"payments_per_year"`
	TotalPerYear     []Row[quotes.YearKey, decimal.Decimal]    `json:"total_per_year"`
}

// NoDividends the ticker never paid a dividend
func (r DividendReport) NoDividends() bool {
	return len(r.PaymentsPerYear) == 0
}

// AggregateDividends group dividends by quarter and year.
// An empty input returns an empty report and no error.
func AggregateDividends(dividends []quotes.Dividend) (*DividendReport, error) {
	quarterAmounts := make(map[quotes.QuarterKey]decimal.Decimal)
	yearCounts := make(map[quotes.YearKey]int)
	yearAmounts := make(map[quotes.YearKey]decimal.Decimal)

	for index, dividend := range dividends {
		err := dividend.Validate()
		if err != nil {
			err.(*quotes.MalformedRecordError).Index = index
			return nil, err
		}

		quarter, year := quotes.QuarterOf(dividend.Date), quotes.YearOf(dividend.Date)

		quarterAmounts[quarter] = quarterAmounts[quarter].Add(dividend.Amount)
		yearCounts[year]++
		yearAmounts[year] = yearAmounts[year].Add(dividend.Amount)
	}

	report := &DividendReport{
		PerQuarterAmount: make([]Row[quotes.QuarterKey, decimal.Decimal], 0, len(quarterAmounts)),
		PaymentsPerYear:  make([]Row[quotes.YearKey, int], 0, len(yearCounts)),
		TotalPerYear:     make([]Row[quotes.YearKey, decimal.Decimal], 0, len(yearAmounts)),
	}

	for key, value := range quarterAmounts {
		report.PerQuarterAmount = append(report.PerQuarterAmount, Row[quotes.QuarterKey, decimal.Decimal]{Key: key, Value: value})
	}
	sort.Slice(report.PerQuarterAmount, func(i, j int) bool {
		return report.PerQuarterAmount[i].Key.Less(report.PerQuarterAmount[j].Key)
	})

	for key, value := range yearCounts {
		report.PaymentsPerYear = append(report.PaymentsPerYear, Row[quotes.YearKey, int]{Key: key, Value: value})
	}
	sort.Slice(report.PaymentsPerYear, func(i, j int) bool {
		return report.PaymentsPerYear[i].Key < report.PaymentsPerYear[j].Key
	})

	for key, value := range yearAmounts {
		report.TotalPerYear = append(report.TotalPerYear, Row[quotes.YearKey, decimal.Decimal]{Key: key, Value: value})
	}
	sort.Slice(report.TotalPerYear, func(i, j int) bool {
		return report.TotalPerYear[i].Key < report.TotalPerYear[j].Key
	})

	return report, nil
}
