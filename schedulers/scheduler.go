package schedulers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/notifiers"
	"github.com/nzai/divdash/quotes"
	"github.com/nzai/divdash/utils"
	"go.uber.org/zap"
)

// Refresher snapshot source of the scheduler, implemented by sources.Cached
type Refresher interface {
	// Refresh fetch and overwrite today's snapshot
	Refresh(context.Context, string) (*quotes.History, error)
	// Snapshot load the snapshot of a day
	Snapshot(string, time.Time) (*quotes.History, error)
}

// Scheduler keep the snapshots of watched tickers warm
type Scheduler struct {
	refresher Refresher
	notifier  notifiers.Notifier
	tickers   []string
	parallel  int
	now       func() time.Time
}

// NewScheduler create cache warming scheduler
func NewScheduler(refresher Refresher, notifier notifiers.Notifier, tickers ...string) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		notifier:  notifier,
		tickers:   tickers,
		parallel:  constants.DefaultParallel,
		now:       time.Now,
	}
}

// Run refresh all tickers now and then at every local midnight until ctx is done
func (s Scheduler) Run(ctx context.Context) {
	s.RefreshAll(ctx)

	for {
		now := s.now()
		wait := utils.TomorrowZero(now).Sub(now)
		zap.L().Info("daily refresh scheduled", zap.Duration("in", wait), zap.Int("tickers", len(s.tickers)))

		select {
		case <-ctx.Done():
			zap.L().Info("scheduler stopped")
			return
		case <-time.After(wait):
		}

		start := time.Now()
		failed := s.RefreshAll(ctx)
		zap.L().Info("daily refresh finished",
			zap.Int("tickers", len(s.tickers)),
			zap.Int("failed", failed),
			zap.Duration("duration", time.Since(start)))
	}
}

// RefreshAll refresh every ticker with bounded parallelism, return failed count
func (s Scheduler) RefreshAll(ctx context.Context) int {
	limiter := NewLimiter(s.parallel)
	defer limiter.Close()

	wg := new(sync.WaitGroup)
	mutex := new(sync.Mutex)
	failed := 0

	for _, ticker := range s.tickers {
		limiter.Set()
		wg.Add(1)

		go func(_ticker string) {
			defer wg.Done()
			defer limiter.Release()

			err := s.refresh(ctx, _ticker)
			if err != nil {
				mutex.Lock()
				failed++
				mutex.Unlock()
			}
		}(ticker)
	}
	wg.Wait()

	return failed
}

// refresh fetch today's snapshot of a ticker and notify dividends missing from yesterday's
func (s Scheduler) refresh(ctx context.Context, ticker string) error {
	yesterday := quotes.CivilDate(s.now()).AddDate(0, 0, -1)

	previous, err := s.refresher.Snapshot(ticker, yesterday)
	if err != nil && !errors.Is(err, constants.ErrRecordNotFound) {
		zap.L().Warn("load previous snapshot failed", zap.Error(err), zap.String("ticker", ticker))
	}

	history, err := s.refresher.Refresh(ctx, ticker)
	if err != nil {
		zap.L().Error("refresh ticker failed", zap.Error(err), zap.String("ticker", ticker))
		return err
	}

	zap.L().Debug("refresh ticker success",
		zap.String("ticker", ticker),
		zap.Int("dividends", len(history.Dividends)),
		zap.Int("prices", len(history.Prices)))

	// first snapshot has nothing to compare with
	if previous == nil || s.notifier == nil {
		return nil
	}

	news := NewDividends(previous.Dividends, history.Dividends)
	if len(news) == 0 {
		return nil
	}

	latest := news[len(news)-1]
	s.notifier.Notify(&notifiers.DividendNotice{
		Ticker:       ticker,
		Date:         latest.Date.Format(constants.DateLayout),
		NewDividends: len(news),
		LatestAmount: latest.Amount,
	})

	return nil
}

// NewDividends dividends of current whose date is not in previous, in current order
func NewDividends(previous, current []quotes.Dividend) []quotes.Dividend {
	known := make(map[int64]bool, len(previous))
	for _, dividend := range previous {
		known[dividend.Date.Unix()] = true
	}

	var news []quotes.Dividend
	for _, dividend := range current {
		if !known[dividend.Date.Unix()] {
			news = append(news, dividend)
		}
	}

	return news
}
