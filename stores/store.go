package stores

import (
	"fmt"
	"strings"
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// Store define ticker history snapshot store, one snapshot per ticker and day
type Store interface {
	// Exists ticker snapshot exists
	Exists(string, time.Time) (bool, error)
	// Save save ticker snapshot
	Save(string, time.Time, quotes.Encoder) error
	// Load load ticker snapshot, constants.ErrRecordNotFound if missing
	Load(string, time.Time, quotes.Decoder) error
	// Remove remove ticker snapshot
	Remove(string, time.Time) error
	// Close release store resources
	Close() error
}

// Parse parse command argument, eg: fs:/data leveldb:/data redis:127.0.0.1:6379 s3:bucket@region none
func Parse(arg string) (Store, error) {
	if arg == "" || arg == "none" {
		return Nop{}, nil
	}

	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 || parts[1] == "" {
		zap.L().Error("store arg invalid", zap.String("arg", arg))
		return nil, fmt.Errorf("store arg invalid: %s", arg)
	}

	switch parts[0] {
	case "fs":
		return NewFileSystem(parts[1]), nil
	case "leveldb":
		store, err := NewLevelDB(parts[1])
		if err != nil {
			return nil, err
		}
		return store, nil
	case "redis":
		return NewRedis(parts[1], "", 0), nil
	case "s3":
		bucket, region, found := strings.Cut(parts[1], "@")
		if !found {
			return nil, fmt.Errorf("s3 store arg should be bucket@region: %s", parts[1])
		}
		store, err := NewS3(&S3Config{Bucket: bucket, Region: region})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		zap.L().Error("store type invalid", zap.String("type", parts[0]))
		return nil, fmt.Errorf("store type invalid: %s", parts[0])
	}
}

// snapshotKey return {ticker}:{yyyymmdd}
func snapshotKey(ticker string, date time.Time) string {
	return fmt.Sprintf("%s:%s", ticker, date.Format(constants.DatePattern))
}
