package quotes

import (
	"fmt"
	"io"
	"time"

	"github.com/nzai/bio"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PricePoint define close price of one trading day
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Close decimal.Decimal `json:"close"`
}

// NewPricePoint create a price point, the date is truncated to its calendar date
func NewPricePoint(date time.Time, price float64) (PricePoint, error) {
	value, err := checkValue(KindPrice, date, price)
	if err != nil {
		return PricePoint{}, err
	}

	return PricePoint{Date: CivilDate(date), Close: value}, nil
}

// Validate reject zero date and negative close
func (p PricePoint) Validate() error {
	if p.Date.IsZero() {
		return malformed(KindPrice, -1, p.Date, "date is empty")
	}

	if p.Close.IsNegative() {
		return malformed(KindPrice, -1, p.Date, "close %s is negative", p.Close)
	}

	return nil
}

// Encode encode price point to io.Writer
func (p PricePoint) Encode(w io.Writer) error {
	bw := bio.NewBinaryWriter(w)

	_, err := bw.Time(p.Date)
	if err != nil {
		zap.L().Error("encode price date failed", zap.Error(err), zap.Time("date", p.Date))
		return err
	}

	_, err = bw.String(p.Close.String())
	if err != nil {
		zap.L().Error("encode price close failed", zap.Error(err), zap.Stringer("close", p.Close))
		return err
	}

	return nil
}

// Decode decode price point from io.Reader
func (p *PricePoint) Decode(r io.Reader) error {
	br := bio.NewBinaryReader(r)

	date, err := br.Time()
	if err != nil {
		zap.L().Error("decode price date failed", zap.Error(err))
		return err
	}

	text, err := br.String()
	if err != nil {
		zap.L().Error("decode price close failed", zap.Error(err))
		return err
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		zap.L().Error("parse price close failed", zap.Error(err), zap.String("close", text))
		return err
	}

	p.Date = CivilDate(date.UTC())
	p.Close = value

	return nil
}

// Equal check price point is equal
func (p PricePoint) Equal(s PricePoint) error {
	if !p.Date.Equal(s.Date) {
		return fmt.Errorf("price date %s is different from %s", p.Date, s.Date)
	}

	if !p.Close.Equal(s.Close) {
		return fmt.Errorf("price close %s is different from %s", p.Close, s.Close)
	}

	return nil
}

// ValidatePrices check every record and that dates are ascending and unique
func ValidatePrices(prices []PricePoint) error {
	for index, price := range prices {
		err := price.Validate()
		if err != nil {
			err.(*MalformedRecordError).Index = index
			return err
		}

		if index > 0 && !price.Date.After(prices[index-1].Date) {
			return malformed(KindPrice, index, price.Date, "date is not after previous %s", prices[index-1].Date.Format("2006-01-02"))
		}
	}

	return nil
}
