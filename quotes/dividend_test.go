package quotes

import (
	"bytes"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/nzai/bio"
	"github.com/shopspring/decimal"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNewDividend(t *testing.T) {
	cases := []struct {
		name    string
		date    time.Time
		amount  float64
		wantErr bool
	}{
		{name: "normal", date: date(2023, time.January, 15), amount: 0.5},
		{name: "zero amount", date: date(2023, time.January, 15), amount: 0},
		{name: "empty date", date: time.Time{}, amount: 0.5, wantErr: true},
		{name: "nan", date: date(2023, time.January, 15), amount: math.NaN(), wantErr: true},
		{name: "inf", date: date(2023, time.January, 15), amount: math.Inf(1), wantErr: true},
		{name: "negative", date: date(2023, time.January, 15), amount: -0.1, wantErr: true},
	}

	for _, _case := range cases {
		dividend, err := NewDividend(_case.date, _case.amount)
		if _case.wantErr {
			var malformedErr *MalformedRecordError
			if !errors.As(err, &malformedErr) {
				t.Errorf("%s: NewDividend() error = %v, want MalformedRecordError", _case.name, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("%s: NewDividend() error = %v", _case.name, err)
			continue
		}

		if !dividend.Amount.Equal(decimal.NewFromFloat(_case.amount)) {
			t.Errorf("%s: amount = %s, want %v", _case.name, dividend.Amount, _case.amount)
		}
	}
}

func TestValidateDividends(t *testing.T) {
	ok := []Dividend{
		{Date: date(2023, time.January, 15), Amount: decimal.RequireFromString("0.5")},
		{Date: date(2023, time.April, 15), Amount: decimal.RequireFromString("0.5")},
	}

	err := ValidateDividends(ok)
	if err != nil {
		t.Errorf("ValidateDividends() error = %v", err)
	}

	err = ValidateDividends(nil)
	if err != nil {
		t.Errorf("ValidateDividends(nil) error = %v", err)
	}

	duplicated := []Dividend{ok[0], ok[0]}
	err = ValidateDividends(duplicated)

	var malformedErr *MalformedRecordError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("ValidateDividends() error = %v, want MalformedRecordError", err)
	}

	if malformedErr.Index != 1 {
		t.Errorf("malformed index = %d, want 1", malformedErr.Index)
	}

	negative := []Dividend{ok[0], {Date: date(2023, time.July, 15), Amount: decimal.RequireFromString("-1")}}
	err = ValidateDividends(negative)
	if !errors.As(err, &malformedErr) || malformedErr.Index != 1 {
		t.Errorf("ValidateDividends() error = %v, want MalformedRecordError at 1", err)
	}
}

func TestHistory_EncodeDecode(t *testing.T) {
	history := History{
		Ticker:   "CJ.TO",
		Currency: "CAD",
		Exchange: "TOR",
		Timezone: "America/Toronto",
		Dividends: []Dividend{
			{Date: date(2023, time.January, 15), Amount: decimal.RequireFromString("0.05")},
			{Date: date(2023, time.February, 15), Amount: decimal.RequireFromString("0.0575")},
		},
		Prices: []PricePoint{
			{Date: date(2023, time.January, 3), Close: decimal.RequireFromString("5.12")},
			{Date: date(2023, time.January, 4), Close: decimal.RequireFromString("5.2")},
		},
	}

	buffer := new(bytes.Buffer)
	err := history.Encode(buffer)
	if err != nil {
		t.Fatalf("History.Encode() error = %v", err)
	}

	decoded := new(History)
	err = decoded.Decode(buffer)
	if err != nil {
		t.Fatalf("History.Decode() error = %v", err)
	}

	err = history.Equal(*decoded)
	if err != nil {
		t.Errorf("decoded history mismatch: %v", err)
	}

	if decoded.Timezone != history.Timezone || decoded.Exchange != history.Exchange {
		t.Errorf("decoded meta = %s/%s, want %s/%s", decoded.Exchange, decoded.Timezone, history.Exchange, history.Timezone)
	}
}

func TestHistory_DecodeCorruptCount(t *testing.T) {
	cases := []struct {
		dividends int
		prices    int
	}{
		{-1, 0},
		{maxRecords + 1, 0},
		{0, -5},
		{0, maxRecords + 1},
	}

	for _, _case := range cases {
		buffer := new(bytes.Buffer)
		bw := bio.NewBinaryWriter(buffer)
		bw.UInt8(HistoryVersion)
		for _, field := range []string{"CJ.TO", "CAD", "TOR", "America/Toronto"} {
			bw.String(field)
		}
		bw.Int(_case.dividends)
		if _case.dividends == 0 {
			bw.Int(_case.prices)
		}

		err := new(History).Decode(buffer)
		if err == nil {
			t.Errorf("History.Decode() with counts %d/%d error = nil, want out of range", _case.dividends, _case.prices)
		}
	}
}

func TestValidatePrices(t *testing.T) {
	ok := []PricePoint{
		{Date: date(2023, time.January, 3), Close: decimal.RequireFromString("5.12")},
		{Date: date(2023, time.January, 4), Close: decimal.RequireFromString("5.2")},
	}

	err := ValidatePrices(ok)
	if err != nil {
		t.Errorf("ValidatePrices() error = %v", err)
	}

	cases := []struct {
		prices []PricePoint
		index  int
	}{
		{[]PricePoint{ok[0], ok[0]}, 1},
		{[]PricePoint{ok[1], ok[0]}, 1},
		{[]PricePoint{ok[0], {Date: date(2023, time.January, 5), Close: decimal.RequireFromString("-1")}}, 1},
		{[]PricePoint{{Close: decimal.RequireFromString("1")}}, 0},
	}

	for _, _case := range cases {
		err := ValidatePrices(_case.prices)

		var malformedErr *MalformedRecordError
		if !errors.As(err, &malformedErr) {
			t.Errorf("ValidatePrices(%v) error = %v, want MalformedRecordError", _case.prices, err)
			continue
		}

		if malformedErr.Index != _case.index || malformedErr.Kind != KindPrice {
			t.Errorf("ValidatePrices(%v) = %s #%d, want price #%d", _case.prices, malformedErr.Kind, malformedErr.Index, _case.index)
		}
	}
}
