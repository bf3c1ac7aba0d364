package sources

import (
	"context"
	"time"

	"github.com/nzai/divdash/quotes"
	"github.com/nzai/divdash/stores"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cached source keeping one snapshot per ticker and day in a store
type Cached struct {
	source Source
	store  stores.Store
	now    func() time.Time
	group  *singleflight.Group
}

// NewCached create cached source
func NewCached(source Source, store stores.Store) *Cached {
	return &Cached{
		source: source,
		store:  store,
		now:    time.Now,
		group:  new(singleflight.Group),
	}
}

// History return today's snapshot, fetch it from the source on miss
func (s Cached) History(ctx context.Context, ticker string) (*quotes.History, error) {
	today := quotes.CivilDate(s.now())

	exists, err := s.store.Exists(ticker, today)
	if err != nil {
		zap.L().Warn("check snapshot exists failed, fetch from source", zap.Error(err), zap.String("ticker", ticker))
	}

	if exists {
		history, err := s.Snapshot(ticker, today)
		if err == nil {
			zap.L().Debug("snapshot cache hit", zap.String("ticker", ticker), zap.Time("date", today))
			return history, nil
		}

		// a snapshot which cannot be decoded is dropped and fetched again
		zap.L().Warn("load snapshot failed, fetch from source", zap.Error(err), zap.String("ticker", ticker))
		err = s.store.Remove(ticker, today)
		if err != nil {
			zap.L().Warn("remove broken snapshot failed", zap.Error(err), zap.String("ticker", ticker))
		}
	}

	// concurrent misses of one ticker share a single fetch which outlives any one caller
	fetch := s.group.DoChan(ticker, func() (interface{}, error) {
		return s.Refresh(context.WithoutCancel(ctx), ticker)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-fetch:
		if result.Err != nil {
			return nil, result.Err
		}

		if result.Shared {
			zap.L().Debug("snapshot fetch shared", zap.String("ticker", ticker))
		}

		return result.Val.(*quotes.History), nil
	}
}

// Refresh fetch from the source and overwrite today's snapshot
func (s Cached) Refresh(ctx context.Context, ticker string) (*quotes.History, error) {
	today := quotes.CivilDate(s.now())

	history, err := s.source.History(ctx, ticker)
	if err != nil {
		return nil, err
	}

	// a broken cache must not hide fresh data
	err = s.store.Save(ticker, today, history)
	if err != nil {
		zap.L().Warn("save snapshot failed", zap.Error(err), zap.String("ticker", ticker), zap.Time("date", today))
	}

	return history, nil
}

// Snapshot load the snapshot of a day, constants.ErrRecordNotFound if missing
func (s Cached) Snapshot(ticker string, date time.Time) (*quotes.History, error) {
	history := new(quotes.History)
	err := s.store.Load(ticker, quotes.CivilDate(date), history)
	if err != nil {
		return nil, err
	}

	return history, nil
}
