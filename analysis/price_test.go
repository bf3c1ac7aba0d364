package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/nzai/divdash/quotes"
	"github.com/shopspring/decimal"
)

func prices(closes ...string) []quotes.PricePoint {
	points := make([]quotes.PricePoint, 0, len(closes))
	date := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	for index, value := range closes {
		points = append(points, quotes.PricePoint{
			Date:  date.AddDate(0, 0, index),
			Close: decimal.RequireFromString(value),
		})
	}

	return points
}

func TestSummarizePrices(t *testing.T) {
	cases := []struct {
		name   string
		closes []string
		mean   string
		median string
	}{
		{name: "odd", closes: []string{"10.0", "20.0", "30.0"}, mean: "20", median: "20"},
		{name: "unsorted", closes: []string{"30", "10", "20"}, mean: "20", median: "20"},
		{name: "even", closes: []string{"1", "2", "3", "10"}, mean: "4", median: "2.5"},
		{name: "single", closes: []string{"5.25"}, mean: "5.25", median: "5.25"},
		{name: "repeating mean", closes: []string{"1", "1", "2"}, mean: "1.33333333", median: "1"},
	}

	for _, _case := range cases {
		summary, err := SummarizePrices(prices(_case.closes...))
		if err != nil {
			t.Errorf("%s: SummarizePrices() error = %v", _case.name, err)
			continue
		}

		if !summary.Mean.Equal(decimal.RequireFromString(_case.mean)) {
			t.Errorf("%s: mean = %s, want %s", _case.name, summary.Mean, _case.mean)
		}

		if !summary.Median.Equal(decimal.RequireFromString(_case.median)) {
			t.Errorf("%s: median = %s, want %s", _case.name, summary.Median, _case.median)
		}

		if summary.Count != len(_case.closes) {
			t.Errorf("%s: count = %d, want %d", _case.name, summary.Count, len(_case.closes))
		}
	}
}

func TestSummarizePrices_Range(t *testing.T) {
	points := prices("12", "8", "15", "11")

	summary, err := SummarizePrices(points)
	if err != nil {
		t.Fatalf("SummarizePrices() error = %v", err)
	}

	if !summary.Min.Equal(decimal.NewFromInt(8)) || !summary.Max.Equal(decimal.NewFromInt(15)) {
		t.Errorf("range = [%s, %s], want [8, 15]", summary.Min, summary.Max)
	}

	if !summary.Last.Equal(decimal.NewFromInt(11)) {
		t.Errorf("last = %s, want 11", summary.Last)
	}

	if !summary.First.Equal(points[0].Date) || !summary.Latest.Equal(points[3].Date) {
		t.Errorf("dates = %s..%s", summary.First, summary.Latest)
	}

	// input must stay in date order
	if !points[0].Close.Equal(decimal.NewFromInt(12)) {
		t.Errorf("input modified: %s", points[0].Close)
	}
}

func TestSummarizePrices_Empty(t *testing.T) {
	for _, input := range [][]quotes.PricePoint{nil, {}} {
		summary, err := SummarizePrices(input)
		if !errors.Is(err, ErrNoData) {
			t.Errorf("SummarizePrices() error = %v, want %v", err, ErrNoData)
		}

		if summary != nil {
			t.Errorf("SummarizePrices() = %v, want nil", summary)
		}
	}
}

func TestSummarizePrices_Malformed(t *testing.T) {
	zeroDate := prices("10", "11", "12")
	zeroDate[2].Date = time.Time{}

	cases := []struct {
		name   string
		prices []quotes.PricePoint
		index  int
	}{
		{"negative close", prices("10", "-1", "12"), 1},
		{"zero date", zeroDate, 2},
		{"first negative", prices("-0.01"), 0},
	}

	for _, _case := range cases {
		summary, err := SummarizePrices(_case.prices)

		var malformedErr *quotes.MalformedRecordError
		if !errors.As(err, &malformedErr) {
			t.Errorf("%s: SummarizePrices() error = %v, want MalformedRecordError", _case.name, err)
			continue
		}

		if malformedErr.Index != _case.index || malformedErr.Kind != quotes.KindPrice {
			t.Errorf("%s: error = %s #%d, want price #%d", _case.name, malformedErr.Kind, malformedErr.Index, _case.index)
		}

		if summary != nil {
			t.Errorf("%s: SummarizePrices() = %v, want nil", _case.name, summary)
		}
	}
}

func TestAnalyze(t *testing.T) {
	history := &quotes.History{
		Ticker:   "CJ.TO",
		Currency: "CAD",
		Dividends: []quotes.Dividend{
			dividend(2023, time.January, 15, "0.05"),
		},
		Prices: prices("10.0", "20.0", "30.0"),
	}

	dashboard, err := Analyze(history)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if dashboard.Summary == nil || !dashboard.Summary.Median.Equal(decimal.NewFromInt(20)) {
		t.Errorf("summary = %v", dashboard.Summary)
	}

	if dashboard.Dividends.NoDividends() {
		t.Error("NoDividends() = true, want false")
	}

	history.Prices = nil
	history.Dividends = nil

	dashboard, err = Analyze(history)
	if err != nil {
		t.Fatalf("Analyze() on empty history error = %v", err)
	}

	if dashboard.Summary != nil {
		t.Errorf("summary = %v, want nil", dashboard.Summary)
	}

	if !dashboard.Dividends.NoDividends() {
		t.Error("NoDividends() = false, want true")
	}
}
