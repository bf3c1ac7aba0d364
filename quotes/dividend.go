package quotes

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/nzai/bio"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// KindDividend record kind of dividends
	KindDividend = "dividend"
	// KindPrice record kind of close prices
	KindPrice = "price"
)

// Dividend define one dividend payment
type Dividend struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// NewDividend create a dividend, the date is truncated to its calendar date
func NewDividend(date time.Time, amount float64) (Dividend, error) {
	value, err := checkValue(KindDividend, date, amount)
	if err != nil {
		return Dividend{}, err
	}

	return Dividend{Date: CivilDate(date), Amount: value}, nil
}

// Validate reject zero date and negative amount
func (d Dividend) Validate() error {
	if d.Date.IsZero() {
		return malformed(KindDividend, -1, d.Date, "date is empty")
	}

	if d.Amount.IsNegative() {
		return malformed(KindDividend, -1, d.Date, "amount %s is negative", d.Amount)
	}

	return nil
}

// Encode encode dividend to io.Writer
func (d Dividend) Encode(w io.Writer) error {
	bw := bio.NewBinaryWriter(w)

	_, err := bw.Time(d.Date)
	if err != nil {
		zap.L().Error("encode dividend date failed", zap.Error(err), zap.Time("date", d.Date))
		return err
	}

	_, err = bw.String(d.Amount.String())
	if err != nil {
		zap.L().Error("encode dividend amount failed", zap.Error(err), zap.Stringer("amount", d.Amount))
		return err
	}

	return nil
}

// Decode decode dividend from io.Reader
func (d *Dividend) Decode(r io.Reader) error {
	br := bio.NewBinaryReader(r)

	date, err := br.Time()
	if err != nil {
		zap.L().Error("decode dividend date failed", zap.Error(err))
		return err
	}

	text, err := br.String()
	if err != nil {
		zap.L().Error("decode dividend amount failed", zap.Error(err))
		return err
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		zap.L().Error("parse dividend amount failed", zap.Error(err), zap.String("amount", text))
		return err
	}

	d.Date = CivilDate(date.UTC())
	d.Amount = amount

	return nil
}

// Equal check dividend is equal
func (d Dividend) Equal(s Dividend) error {
	if !d.Date.Equal(s.Date) {
		return fmt.Errorf("dividend date %s is different from %s", d.Date, s.Date)
	}

	if !d.Amount.Equal(s.Amount) {
		return fmt.Errorf("dividend amount %s is different from %s", d.Amount, s.Amount)
	}

	return nil
}

// ValidateDividends check every record and that dates are ascending and unique
func ValidateDividends(dividends []Dividend) error {
	for index, dividend := range dividends {
		err := dividend.Validate()
		if err != nil {
			err.(*MalformedRecordError).Index = index
			return err
		}

		if index > 0 && !dividend.Date.After(dividends[index-1].Date) {
			return malformed(KindDividend, index, dividend.Date, "date is not after previous %s", dividends[index-1].Date.Format("2006-01-02"))
		}
	}

	return nil
}

func checkValue(kind string, date time.Time, value float64) (decimal.Decimal, error) {
	if date.IsZero() {
		return decimal.Zero, malformed(kind, -1, date, "date is empty")
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero, malformed(kind, -1, date, "value %v is not a number", value)
	}

	if value < 0 {
		return decimal.Zero, malformed(kind, -1, date, "value %v is negative", value)
	}

	return decimal.NewFromFloat(value), nil
}
