package notifiers

// Notifier notify new dividend payments found by the cache warmer
type Notifier interface {
	Notify(*DividendNotice)
	Close()
}
