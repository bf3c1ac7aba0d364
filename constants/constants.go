package constants

import "time"

const (
	// RetryCount defind retry count
	RetryCount = 6
	// RetryInterval define retry intervals
	RetryInterval = time.Second * 10
	// DefaultParallel define default parallel fetches of the cache warmer
	DefaultParallel = 8
	// DatePattern define date compact pattern
	DatePattern = "20060102"
	// DateLayout define date layout used in csv files and api responses
	DateLayout = "2006-01-02"
	// DefaultTicker the ticker shown when nothing is entered
	DefaultTicker = "CJ.TO"
	// DefaultListen define default api listen address
	DefaultListen = ":21000"
	// DefaultRenderer define default renderer name
	DefaultRenderer = "echarts"
	// DefaultCacheTTL define how long a snapshot lives in expiring stores
	DefaultCacheTTL = time.Hour * 36
	// Version current version
	Version = "v1.0.0"
)
