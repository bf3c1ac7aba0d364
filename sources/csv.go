package sources

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// LocalCSV offline source reading {dir}/{ticker}.dividends.csv and {dir}/{ticker}.prices.csv
type LocalCSV struct {
	dir string
}

// NewLocalCSV create csv file source
func NewLocalCSV(dir string) *LocalCSV {
	return &LocalCSV{dir: dir}
}

type csvDividend struct {
	Date     string `csv:"Date"`
	Dividend string `csv:"Dividend"`
}

type csvPrice struct {
	Date  string `csv:"Date"`
	Close string `csv:"Close"`
}

// History read ticker history, a missing dividends file means no dividends
func (s LocalCSV) History(ctx context.Context, ticker string) (*quotes.History, error) {
	var priceRows []*csvPrice
	found, err := s.read(ticker+".prices.csv", &priceRows)
	if err != nil {
		return nil, err
	}

	if !found {
		return nil, quotes.ErrSymbolNotFound
	}

	var dividendRows []*csvDividend
	_, err = s.read(ticker+".dividends.csv", &dividendRows)
	if err != nil {
		return nil, err
	}

	dividends := make([]quotes.Dividend, 0, len(dividendRows))
	for index, row := range dividendRows {
		date, amount, err := s.parseRow(row.Date, row.Dividend)
		if err == nil {
			var dividend quotes.Dividend
			dividend, err = quotes.NewDividend(date, amount)
			dividends = append(dividends, dividend)
		}

		if err != nil {
			return nil, s.rejected(quotes.KindDividend, index, row.Date, err)
		}
	}
	sort.Slice(dividends, func(i, j int) bool { return dividends[i].Date.Before(dividends[j].Date) })

	prices := make([]quotes.PricePoint, 0, len(priceRows))
	for index, row := range priceRows {
		date, value, err := s.parseRow(row.Date, row.Close)
		if err == nil {
			var price quotes.PricePoint
			price, err = quotes.NewPricePoint(date, value)
			prices = append(prices, price)
		}

		if err != nil {
			return nil, s.rejected(quotes.KindPrice, index, row.Date, err)
		}
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].Date.Before(prices[j].Date) })

	history := &quotes.History{
		Version:   quotes.HistoryVersion,
		Ticker:    ticker,
		Dividends: dividends,
		Prices:    prices,
	}

	err = history.Validate()
	if err != nil {
		zap.L().Warn("csv history validate failed", zap.Error(err), zap.String("ticker", ticker))
		return nil, err
	}

	return history, nil
}

func (s LocalCSV) read(name string, rows any) (bool, error) {
	path := filepath.Join(s.dir, name)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		zap.L().Error("open csv file failed", zap.Error(err), zap.String("path", path))
		return false, err
	}
	defer file.Close()

	err = gocsv.Unmarshal(file, rows)
	if err != nil {
		zap.L().Error("unmarshal csv file failed", zap.Error(err), zap.String("path", path))
		return false, err
	}

	return true, nil
}

// parseRow accept 2006-01-02 dates with an optional time suffix
func (s LocalCSV) parseRow(date, value string) (time.Time, float64, error) {
	date = strings.TrimSpace(date)
	if len(date) > len(constants.DateLayout) {
		date = date[:len(constants.DateLayout)]
	}

	parsed, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return time.Time{}, 0, err
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return time.Time{}, 0, err
	}

	return parsed, number, nil
}

func (s LocalCSV) rejected(kind string, index int, date string, err error) error {
	var malformed *quotes.MalformedRecordError
	if errors.As(err, &malformed) {
		malformed.Index = index
		return malformed
	}

	return &quotes.MalformedRecordError{Kind: kind, Index: index, Reason: date + ": " + err.Error()}
}
