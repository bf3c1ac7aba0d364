package analysis

import (
	"errors"

	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// Dashboard everything a renderer needs to draw the four charts of a ticker
type Dashboard struct {
	Ticker    string              `json:"ticker"`
	Currency  string              `json:"currency"`
	Dividends *DividendReport     `json:"dividends"`
	Prices    []quotes.PricePoint `json:"prices"`
	// Summary is nil when the price history is empty, statistic lines must not be drawn
	Summary *PriceSummary `json:"summary,omitempty"`
}

// Analyze aggregate dividends and summarize prices of a history
func Analyze(history *quotes.History) (*Dashboard, error) {
	report, err := AggregateDividends(history.Dividends)
	if err != nil {
		zap.L().Warn("aggregate dividends failed", zap.Error(err), zap.String("ticker", history.Ticker))
		return nil, err
	}

	summary, err := SummarizePrices(history.Prices)
	if err != nil && !errors.Is(err, ErrNoData) {
		zap.L().Warn("summarize prices failed", zap.Error(err), zap.String("ticker", history.Ticker))
		return nil, err
	}

	if summary == nil {
		zap.L().Debug("no price data", zap.String("ticker", history.Ticker))
	}

	return &Dashboard{
		Ticker:    history.Ticker,
		Currency:  history.Currency,
		Dividends: report,
		Prices:    history.Prices,
		Summary:   summary,
	}, nil
}
