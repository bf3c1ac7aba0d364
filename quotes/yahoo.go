package quotes

import (
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

var (
	// YahooNotFoundCode define errors raised by yahoo finace on code not found
	YahooNotFoundCode = "Not Found"
)

// YahooChartResponse define yahoo finance chart api response
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				Symbol               string `json:"symbol"`
				ExchangeName         string `json:"exchangeName"`
				InstrumentType       string `json:"instrumentType"`
				FirstTradeDate       int64  `json:"firstTradeDate"`
				GMTOffset            int64  `json:"gmtoffset"`
				Timezone             string `json:"timezone"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
				DataGranularity      string `json:"dataGranularity"`
			} `json:"meta"`
			Timestamp []int64 `json:"timestamp"`
			Events    struct {
				Dividends map[string]YahooDividend `json:"dividends"`
			} `json:"events"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Err *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooDividend define stock dividend event
type YahooDividend struct {
	Amount *float64 `json:"amount"`
	Date   int64    `json:"date"`
}

// Validate validate response is valid
func (r YahooChartResponse) Validate() error {
	if r.Chart.Err != nil {
		if r.Chart.Err.Code == YahooNotFoundCode {
			return ErrSymbolNotFound
		}
		return errors.New(r.Chart.Err.Description)
	}

	if len(r.Chart.Result) == 0 {
		return errors.New("chart.result is null")
	}

	result := r.Chart.Result[0]
	if len(result.Timestamp) == 0 {
		return nil
	}

	if len(result.Indicators.Quote) == 0 {
		return errors.New("chart.result[0].indicators.quote is null")
	}

	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return errors.New("close count mismatch timestamp count")
	}

	return nil
}

// location return the exchange timezone, dates are taken in exchange local time
func (r YahooChartResponse) location() *time.Location {
	meta := r.Chart.Result[0].Meta
	if meta.ExchangeTimezoneName != "" {
		loc, err := time.LoadLocation(meta.ExchangeTimezoneName)
		if err == nil {
			return loc
		}

		zap.L().Debug("load exchange timezone failed, use gmt offset",
			zap.Error(err),
			zap.String("timezone", meta.ExchangeTimezoneName),
			zap.Int64("gmtoffset", meta.GMTOffset))
	}

	return time.FixedZone(meta.Timezone, int(meta.GMTOffset))
}

// ToHistory convert yahoo finance response to ticker history
func (r YahooChartResponse) ToHistory(ticker string) (*History, error) {
	err := r.Validate()
	if err != nil {
		return nil, err
	}

	loc := r.location()
	result := r.Chart.Result[0]

	events := make([]YahooDividend, 0, len(result.Events.Dividends))
	for _, event := range result.Events.Dividends {
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date < events[j].Date })

	dividends := make([]Dividend, 0, len(events))
	for index, event := range events {
		if event.Amount == nil {
			return nil, malformed(KindDividend, index, time.Unix(event.Date, 0).In(loc), "amount is null")
		}

		dividend, err := NewDividend(time.Unix(event.Date, 0).In(loc), *event.Amount)
		if err != nil {
			err.(*MalformedRecordError).Index = index
			return nil, err
		}

		dividends = append(dividends, dividend)
	}

	prices := make([]PricePoint, 0, len(result.Timestamp))
	if len(result.Timestamp) > 0 {
		closes := result.Indicators.Quote[0].Close
		for index, ts := range result.Timestamp {
			// null close is a placeholder row without trades
			if closes[index] == nil {
				continue
			}

			price, err := NewPricePoint(time.Unix(ts, 0).In(loc), *closes[index])
			if err != nil {
				err.(*MalformedRecordError).Index = index
				return nil, err
			}

			// the live quote of an open session repeats the last trading day
			if len(prices) > 0 && prices[len(prices)-1].Date.Equal(price.Date) {
				prices[len(prices)-1] = price
				continue
			}

			prices = append(prices, price)
		}
	}

	history := &History{
		Version:   HistoryVersion,
		Ticker:    strings.ToUpper(ticker),
		Currency:  result.Meta.Currency,
		Exchange:  result.Meta.ExchangeName,
		Timezone:  loc.String(),
		Dividends: dividends,
		Prices:    prices,
	}

	err = history.Validate()
	if err != nil {
		zap.L().Warn("yahoo history validate failed", zap.Error(err), zap.String("ticker", ticker))
		return nil, err
	}

	return history, nil
}
