package notifiers

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDividendNoticeJSON(t *testing.T) {
	notice := &DividendNotice{
		Ticker:       "CJ.TO",
		Date:         "2024-03-28",
		NewDividends: 1,
		LatestAmount: decimal.RequireFromString("0.06"),
	}

	buffer, err := json.Marshal(notice)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"ticker":"CJ.TO","date":"2024-03-28","new_dividends":1,"latest_amount":"0.06"}`
	if string(buffer) != want {
		t.Errorf("Marshal() = %s, want %s", buffer, want)
	}
}

func TestNewNsq(t *testing.T) {
	_, err := NewNsq("127.0.0.1:4150", "dividends", "missing.crt", "missing.key")
	if err == nil {
		t.Error("NewNsq() with missing certificate error = nil")
	}

	notifier, err := NewNsq("127.0.0.1:4150", "dividends", "", "")
	if err != nil {
		t.Fatalf("NewNsq() error = %v", err)
	}
	notifier.Close()
}

func TestLog(t *testing.T) {
	var notifier Notifier = Log{}
	notifier.Notify(&DividendNotice{Ticker: "CJ.TO", NewDividends: 2})
	notifier.Close()
}
