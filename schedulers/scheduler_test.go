package schedulers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/notifiers"
	"github.com/nzai/divdash/quotes"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dividends(t *testing.T, dates ...time.Time) []quotes.Dividend {
	t.Helper()

	var result []quotes.Dividend
	for _, d := range dates {
		dividend, err := quotes.NewDividend(d, 0.06)
		if err != nil {
			t.Fatalf("NewDividend() error = %v", err)
		}
		result = append(result, dividend)
	}

	return result
}

type fakeRefresher struct {
	mutex     sync.Mutex
	previous  map[string]*quotes.History
	current   map[string]*quotes.History
	refreshed []string
}

func (r *fakeRefresher) Refresh(ctx context.Context, ticker string) (*quotes.History, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refreshed = append(r.refreshed, ticker)

	history, found := r.current[ticker]
	if !found {
		return nil, quotes.ErrSymbolNotFound
	}

	return history, nil
}

func (r *fakeRefresher) Snapshot(ticker string, date time.Time) (*quotes.History, error) {
	history, found := r.previous[ticker]
	if !found {
		return nil, constants.ErrRecordNotFound
	}

	return history, nil
}

type fakeNotifier struct {
	mutex   sync.Mutex
	notices []*notifiers.DividendNotice
}

func (n *fakeNotifier) Notify(notice *notifiers.DividendNotice) {
	n.mutex.Lock()
	defer n.mutex.Unlock()
	n.notices = append(n.notices, notice)
}

func (n *fakeNotifier) Close() {}

func TestNewDividends(t *testing.T) {
	previous := dividends(t, date(2024, time.January, 30), date(2024, time.February, 28))
	current := dividends(t, date(2024, time.January, 30), date(2024, time.February, 28), date(2024, time.March, 28))

	news := NewDividends(previous, current)
	if len(news) != 1 || !news[0].Date.Equal(date(2024, time.March, 28)) {
		t.Errorf("NewDividends() = %v, want 2024-03-28", news)
	}

	if news := NewDividends(current, current); len(news) != 0 {
		t.Errorf("NewDividends() same = %v, want none", news)
	}

	if news := NewDividends(nil, current); len(news) != 3 {
		t.Errorf("NewDividends() without previous = %d, want 3", len(news))
	}
}

func TestRefreshAll(t *testing.T) {
	refresher := &fakeRefresher{
		previous: map[string]*quotes.History{
			"CJ.TO": {Ticker: "CJ.TO", Dividends: dividends(t, date(2024, time.January, 30))},
			"RY.TO": {Ticker: "RY.TO", Dividends: dividends(t, date(2024, time.January, 24))},
		},
		current: map[string]*quotes.History{
			"CJ.TO": {Ticker: "CJ.TO", Dividends: dividends(t, date(2024, time.January, 30), date(2024, time.February, 28))},
			"RY.TO": {Ticker: "RY.TO", Dividends: dividends(t, date(2024, time.January, 24))},
			"NEW":   {Ticker: "NEW", Dividends: dividends(t, date(2024, time.January, 2))},
		},
	}
	notifier := new(fakeNotifier)

	scheduler := NewScheduler(refresher, notifier, "CJ.TO", "RY.TO", "NEW", "GONE")
	scheduler.parallel = 2

	failed := scheduler.RefreshAll(context.Background())
	if failed != 1 {
		t.Errorf("RefreshAll() failed = %d, want 1", failed)
	}

	if len(refresher.refreshed) != 4 {
		t.Errorf("RefreshAll() refreshed = %v, want 4 tickers", refresher.refreshed)
	}

	if len(notifier.notices) != 1 {
		t.Fatalf("RefreshAll() notices = %d, want 1", len(notifier.notices))
	}

	notice := notifier.notices[0]
	if notice.Ticker != "CJ.TO" || notice.Date != "2024-02-28" || notice.NewDividends != 1 || notice.LatestAmount.String() != "0.06" {
		t.Errorf("RefreshAll() notice = %+v", notice)
	}
}

func TestRunStops(t *testing.T) {
	refresher := &fakeRefresher{current: map[string]*quotes.History{}}
	scheduler := NewScheduler(refresher, nil, "CJ.TO")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second * 5):
		t.Fatal("Run() did not stop after cancel")
	}

	if len(refresher.refreshed) != 1 {
		t.Errorf("Run() refreshed = %v, want one refresh at start", refresher.refreshed)
	}
}

func TestLimiter(t *testing.T) {
	limiter := NewLimiter(1)
	limiter.Set()

	acquired := make(chan struct{})
	go func() {
		limiter.Set()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Set() acquired a full limiter")
	case <-time.After(time.Millisecond * 50):
	}

	limiter.Release()
	<-acquired
	limiter.Release()
	limiter.Close()
}
