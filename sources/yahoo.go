package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"github.com/nzai/netop"
	"go.uber.org/zap"
)

// YahooFinanceURL yahoo finance chart api
const YahooFinanceURL = "https://query2.finance.yahoo.com"

// YahooFinance yahoo finance source
type YahooFinance struct {
	BaseURL       string
	RetryCount    int
	RetryInterval time.Duration
}

// NewYahooFinance create yahoo finance source
func NewYahooFinance() *YahooFinance {
	return &YahooFinance{
		BaseURL:       YahooFinanceURL,
		RetryCount:    constants.RetryCount,
		RetryInterval: constants.RetryInterval,
	}
}

// History download all daily closes and dividend events of ticker
func (yahoo YahooFinance) History(ctx context.Context, ticker string) (*quotes.History, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	address := fmt.Sprintf("%s/v8/finance/chart/%s?range=max&interval=1d&events=div&includeAdjustedClose=false",
		yahoo.BaseURL, url.PathEscape(ticker))

	response, err := yahoo.get(ctx, address)
	if err != nil {
		zap.L().Error("download yahoo finance chart failed", zap.Error(err), zap.String("url", address))
		return nil, err
	}
	defer response.Body.Close()

	// yahoo answers 404 with a json error body for unknown symbols
	if response.StatusCode != http.StatusOK && response.StatusCode != http.StatusNotFound {
		zap.L().Warn("unexpected status code", zap.Int("statusCode", response.StatusCode), zap.String("url", address))
		return nil, fmt.Errorf("response status code %d", response.StatusCode)
	}

	chart := new(quotes.YahooChartResponse)
	err = sonic.ConfigFastest.NewDecoder(response.Body).Decode(chart)
	if err != nil {
		zap.L().Error("unmarshal yahoo chart response failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Int("statusCode", response.StatusCode))
		return nil, err
	}

	history, err := chart.ToHistory(ticker)
	if err != nil {
		if err == quotes.ErrSymbolNotFound {
			zap.L().Info("symbol not found", zap.String("ticker", ticker))
		}
		return nil, err
	}

	zap.L().Debug("download yahoo history success",
		zap.String("ticker", ticker),
		zap.Int("dividends", len(history.Dividends)),
		zap.Int("prices", len(history.Prices)))

	return history, nil
}

// get download with retries, ctx is checked before every attempt and while waiting
func (yahoo YahooFinance) get(ctx context.Context, address string) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < max(yahoo.RetryCount, 1); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(yahoo.RetryInterval):
			}
		}

		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		response, err := netop.Get(address)
		if err == nil {
			return response, nil
		}

		zap.L().Warn("get yahoo finance chart failed, retry later",
			zap.Error(err),
			zap.String("url", address),
			zap.Int("attempt", attempt+1))
		lastErr = err
	}

	return nil, lastErr
}
