package notifiers

import (
	"github.com/shopspring/decimal"
)

// DividendNotice new dividends of a ticker appeared since the previous snapshot
type DividendNotice struct {
	Ticker       string          `json:"ticker"`
	Date         string          `json:"date"` // latest new dividend date, yyyy-mm-dd
	NewDividends int             `json:"new_dividends"`
	LatestAmount decimal.Decimal `json:"latest_amount"`
}
