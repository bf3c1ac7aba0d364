package renderers

import (
	"fmt"

	"github.com/nzai/divdash/analysis"
)

// chart one line series with its labels
type chart struct {
	Section string
	Sheet   string
	Title   string
	XLabel  string
	YLabel  string
	Legend  string
	Labels  []string
	Values  []float64
}

// dividendCharts the three dividend charts, empty when the ticker pays no dividend
func dividendCharts(d *analysis.Dashboard) []*chart {
	if d.Dividends == nil || d.Dividends.NoDividends() {
		return nil
	}

	perQuarter := &chart{
		Section: "1. Dividend Amount Per Quarter",
		Sheet:   "Per Quarter",
		Title:   fmt.Sprintf("Dividend Amount paid per quarter for %s", d.Ticker),
		XLabel:  "Quarter",
		YLabel:  "Dividend Paid",
		Legend:  d.Ticker,
	}
	for _, row := range d.Dividends.PerQuarterAmount {
		perQuarter.Labels = append(perQuarter.Labels, row.Key.String())
		perQuarter.Values = append(perQuarter.Values, row.Value.InexactFloat64())
	}

	payments := &chart{
		Section: "2. Number of Times Dividend Paid Per Year",
		Sheet:   "Payments Per Year",
		Title:   "Number of times Dividend paid per year",
		XLabel:  "Year",
		YLabel:  "Payments",
		Legend:  fmt.Sprintf("%s - Consistency", d.Ticker),
	}
	for _, row := range d.Dividends.PaymentsPerYear {
		payments.Labels = append(payments.Labels, row.Key.String())
		payments.Values = append(payments.Values, float64(row.Value))
	}

	totals := &chart{
		Section: "3. Total Dividend Paid Per Year",
		Sheet:   "Total Per Year",
		Title:   "Amount of Dividend paid per year",
		XLabel:  "Year",
		YLabel:  "Total Dividend Paid",
		Legend:  fmt.Sprintf("%s - Total Dividend", d.Ticker),
	}
	for _, row := range d.Dividends.TotalPerYear {
		totals.Labels = append(totals.Labels, row.Key.String())
		totals.Values = append(totals.Values, row.Value.InexactFloat64())
	}

	return []*chart{perQuarter, payments, totals}
}

// priceChart the closing price chart, labels are dates
func priceChart(d *analysis.Dashboard) *chart {
	c := &chart{
		Section: "4. Closing Price (Historical)",
		Sheet:   "Closing Price",
		Title:   fmt.Sprintf("Closing Price for %s Over Time", d.Ticker),
		XLabel:  "Date",
		YLabel:  "Closing Price",
		Legend:  fmt.Sprintf("%s Closing Price", d.Ticker),
		Labels:  make([]string, len(d.Prices)),
		Values:  make([]float64, len(d.Prices)),
	}

	if d.Currency != "" {
		c.YLabel = fmt.Sprintf("Closing Price (%s)", d.Currency)
	}

	for index, price := range d.Prices {
		c.Labels[index] = price.Date.Format("2006-01-02")
		c.Values[index] = price.Close.InexactFloat64()
	}

	return c
}

// statLines average and median lines, nil without a price summary
func statLines(d *analysis.Dashboard) []statLine {
	if d.Summary == nil {
		return nil
	}

	return []statLine{
		{Name: "Average", Value: d.Summary.Mean.InexactFloat64()},
		{Name: "Median", Value: d.Summary.Median.InexactFloat64()},
	}
}

type statLine struct {
	Name  string
	Value float64
}

func (l statLine) Label() string {
	return fmt.Sprintf("%s: %.2f", l.Name, l.Value)
}
