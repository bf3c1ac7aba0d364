package analysis

import (
	"errors"
	"sort"
	"time"

	"github.com/nzai/divdash/quotes"
	"github.com/shopspring/decimal"
)

// ErrNoData statistics requested over an empty price history
var ErrNoData = errors.New("no price data")

// divisionPrecision decimal places kept by mean and median
const divisionPrecision = 8

// PriceSummary statistics of close prices
type PriceSummary struct {
	Mean   decimal.Decimal `json:"mean"`
	Median decimal.Decimal `json:"median"`
	Min    decimal.Decimal `json:"min"`
	Max    decimal.Decimal `json:"max"`
	Last   decimal.Decimal `json:"last"`
	Count  int             `json:"count"`
	First  time.Time       `json:"first"`
	Latest time.Time       `json:"latest"`
}

// SummarizePrices compute mean and median of close prices over the whole history
func SummarizePrices(prices []quotes.PricePoint) (*PriceSummary, error) {
	if len(prices) == 0 {
		return nil, ErrNoData
	}

	closes := make([]decimal.Decimal, len(prices))
	sum := decimal.Zero
	for index, price := range prices {
		err := price.Validate()
		if err != nil {
			err.(*quotes.MalformedRecordError).Index = index
			return nil, err
		}

		closes[index] = price.Close
		sum = sum.Add(price.Close)
	}

	count := decimal.NewFromInt(int64(len(closes)))

	sort.Slice(closes, func(i, j int) bool { return closes[i].LessThan(closes[j]) })

	middle := len(closes) / 2
	median := closes[middle]
	if len(closes)%2 == 0 {
		median = closes[middle-1].Add(closes[middle]).DivRound(decimal.NewFromInt(2), divisionPrecision)
	}

	return &PriceSummary{
		Mean:   sum.DivRound(count, divisionPrecision),
		Median: median,
		Min:    closes[0],
		Max:    closes[len(closes)-1],
		Last:   prices[len(prices)-1].Close,
		Count:  len(prices),
		First:  prices[0].Date,
		Latest: prices[len(prices)-1].Date,
	}, nil
}
