package quotes

import (
	"fmt"
	"io"

	"github.com/nzai/bio"
	"go.uber.org/zap"
)

// HistoryVersion current binary layout of History
const HistoryVersion uint8 = 1

// maxRecords upper bound of decoded dividends or prices, a century of trading days fits well below it
const maxRecords = 1 << 20

// History define the dividend and close price history of a ticker
type History struct {
	Version   uint8        `json:"-"`
	Ticker    string       `json:"ticker"`
	Currency  string       `json:"currency"`
	Exchange  string       `json:"exchange"`
	Timezone  string       `json:"timezone"`
	Dividends []Dividend   `json:"dividends"`
	Prices    []PricePoint `json:"prices"`
}

// Validate check dividends and prices are well formed
func (h History) Validate() error {
	err := ValidateDividends(h.Dividends)
	if err != nil {
		return err
	}

	return ValidatePrices(h.Prices)
}

// Encode encode history to io.Writer
func (h History) Encode(w io.Writer) error {
	bw := bio.NewBinaryWriter(w)

	_, err := bw.UInt8(HistoryVersion)
	if err != nil {
		zap.L().Error("encode version failed", zap.Error(err), zap.Uint8("version", HistoryVersion))
		return err
	}

	for _, field := range []string{h.Ticker, h.Currency, h.Exchange, h.Timezone} {
		_, err = bw.String(field)
		if err != nil {
			zap.L().Error("encode history meta failed", zap.Error(err), zap.String("ticker", h.Ticker), zap.String("field", field))
			return err
		}
	}

	_, err = bw.Int(len(h.Dividends))
	if err != nil {
		zap.L().Error("encode dividends count failed", zap.Error(err), zap.Int("count", len(h.Dividends)))
		return err
	}

	for _, dividend := range h.Dividends {
		err = dividend.Encode(bw)
		if err != nil {
			return err
		}
	}

	_, err = bw.Int(len(h.Prices))
	if err != nil {
		zap.L().Error("encode prices count failed", zap.Error(err), zap.Int("count", len(h.Prices)))
		return err
	}

	for _, price := range h.Prices {
		err = price.Encode(bw)
		if err != nil {
			return err
		}
	}

	return nil
}

// Decode decode history from io.Reader
func (h *History) Decode(r io.Reader) error {
	br := bio.NewBinaryReader(r)

	version, err := br.UInt8()
	if err != nil {
		zap.L().Error("decode version failed", zap.Error(err))
		return err
	}

	if version != HistoryVersion {
		zap.L().Error("unsupported history version", zap.Uint8("version", version))
		return fmt.Errorf("unsupported history version %d", version)
	}

	meta := make([]string, 4)
	for index := range meta {
		meta[index], err = br.String()
		if err != nil {
			zap.L().Error("decode history meta failed", zap.Error(err), zap.Int("index", index))
			return err
		}
	}

	count, err := decodeCount(br, KindDividend)
	if err != nil {
		return err
	}

	dividends := make([]Dividend, count)
	for index := range dividends {
		err = dividends[index].Decode(br)
		if err != nil {
			return err
		}
	}

	count, err = decodeCount(br, KindPrice)
	if err != nil {
		return err
	}

	prices := make([]PricePoint, count)
	for index := range prices {
		err = prices[index].Decode(br)
		if err != nil {
			return err
		}
	}

	h.Version = version
	h.Ticker, h.Currency, h.Exchange, h.Timezone = meta[0], meta[1], meta[2], meta[3]
	h.Dividends = dividends
	h.Prices = prices

	return nil
}

// decodeCount read a record count and reject corrupt values before allocating
func decodeCount(br *bio.BinaryReader, kind string) (int, error) {
	count, err := br.Int()
	if err != nil {
		zap.L().Error("decode records count failed", zap.Error(err), zap.String("kind", kind))
		return 0, err
	}

	if count < 0 || count > maxRecords {
		zap.L().Error("records count out of range", zap.String("kind", kind), zap.Int("count", count))
		return 0, fmt.Errorf("%s records count %d out of range", kind, count)
	}

	return count, nil
}

// Equal check history is equal
func (h History) Equal(s History) error {
	if h.Ticker != s.Ticker {
		return fmt.Errorf("ticker %s is different from %s", h.Ticker, s.Ticker)
	}

	if h.Currency != s.Currency {
		return fmt.Errorf("currency %s is different from %s", h.Currency, s.Currency)
	}

	if len(h.Dividends) != len(s.Dividends) {
		return fmt.Errorf("dividends count %d is different from %d", len(h.Dividends), len(s.Dividends))
	}

	for index, dividend := range h.Dividends {
		err := dividend.Equal(s.Dividends[index])
		if err != nil {
			return err
		}
	}

	if len(h.Prices) != len(s.Prices) {
		return fmt.Errorf("prices count %d is different from %d", len(h.Prices), len(s.Prices))
	}

	for index, price := range h.Prices {
		err := price.Equal(s.Prices[index])
		if err != nil {
			return err
		}
	}

	return nil
}
