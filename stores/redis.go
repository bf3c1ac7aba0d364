package stores

import (
	"time"

	"github.com/go-redis/redis"
	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// ticker snapshot	key: dd:{ticker}:{yyyymmdd}	value: gzipped history	ttl: constants.DefaultCacheTTL

// Redis define redis store
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis create redis store, ttl <= 0 use constants.DefaultCacheTTL
func NewRedis(address, password string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr:         address,
		Password:     password,
		DB:           0, // use default DB
		MaxRetries:   2,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
	})
	return &Redis{client: client, ttl: ttl}
}

func (s Redis) key(ticker string, date time.Time) string {
	return "dd:" + snapshotKey(ticker, date)
}

// Close close redis store
func (s Redis) Close() error {
	if s.client == nil {
		return nil
	}

	return s.client.Close()
}

// Exists check snapshot exists
func (s Redis) Exists(ticker string, date time.Time) (bool, error) {
	exists, err := s.client.Exists(s.key(ticker, date)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}

	return exists == 1, nil
}

// Save save ticker snapshot with ttl
func (s Redis) Save(ticker string, date time.Time, encoder quotes.Encoder) error {
	zipped, err := zip(encoder)
	if err != nil {
		return err
	}

	err = s.client.Set(s.key(ticker, date), zipped, s.ttl).Err()
	if err != nil {
		zap.L().Error("set snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Load load ticker snapshot
func (s Redis) Load(ticker string, date time.Time, decoder quotes.Decoder) error {
	zipped, err := s.client.Get(s.key(ticker, date)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return constants.ErrRecordNotFound
		}

		zap.L().Error("get snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return unzip(zipped, decoder)
}

// Remove remove ticker snapshot
func (s Redis) Remove(ticker string, date time.Time) error {
	return s.client.Del(s.key(ticker, date)).Err()
}
