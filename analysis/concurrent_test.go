package analysis

import (
	"math/rand"
	"reflect"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConcurrentUse(t *testing.T) {
	dividends := randomDividends(rand.New(rand.NewSource(7)), 200)
	closes := make([]string, 300)
	for index := range closes {
		closes[index] = decimalString(index)
	}
	points := prices(closes...)

	wantReport, err := AggregateDividends(dividends)
	if err != nil {
		t.Fatalf("AggregateDividends() error = %v", err)
	}

	wantSummary, err := SummarizePrices(points)
	if err != nil {
		t.Fatalf("SummarizePrices() error = %v", err)
	}

	wg := new(sync.WaitGroup)
	for index := 0; index < 16; index++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			report, err := AggregateDividends(dividends)
			if err != nil || !reflect.DeepEqual(report, wantReport) {
				t.Errorf("concurrent AggregateDividends() = %v, %v", report, err)
			}

			summary, err := SummarizePrices(points)
			if err != nil || !summary.Mean.Equal(wantSummary.Mean) || !summary.Median.Equal(wantSummary.Median) {
				t.Errorf("concurrent SummarizePrices() = %v, %v", summary, err)
			}
		}()
	}
	wg.Wait()

	// shared input must be left untouched, SummarizePrices sorts a copy
	for index, point := range points {
		if point.Close.String() != closes[index] {
			t.Fatalf("prices[%d] = %s, want %s", index, point.Close, closes[index])
		}
	}
}

// decimalString a deterministic unsorted close, eg: 17.3
func decimalString(index int) string {
	return decimal.New(int64((index*7919)%1000), -1).String()
}
