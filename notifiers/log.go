package notifiers

import "go.uber.org/zap"

// Log notify by writing the notice to the global logger
type Log struct{}

// Notify log the notice
func (l Log) Notify(notice *DividendNotice) {
	zap.L().Info("new dividends found",
		zap.String("ticker", notice.Ticker),
		zap.String("date", notice.Date),
		zap.Int("new_dividends", notice.NewDividends),
		zap.String("latest_amount", notice.LatestAmount.String()))
}

// Close nothing to release
func (l Log) Close() {}
