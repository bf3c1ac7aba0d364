package stores

import (
	"errors"
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
)

// ticker snapshot	key: {ticker}:{yyyymmdd}	value: gzipped history

// LevelDB level db store
type LevelDB struct {
	db *leveldb.DB
}

// NewLevelDB create level db store
func NewLevelDB(root string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(root, nil)
	if err != nil {
		zap.L().Error("open db failed", zap.Error(err), zap.String("root", root))
		return nil, err
	}

	return &LevelDB{db}, nil
}

// Close close level db store
func (s LevelDB) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

// Exists check snapshot exists
func (s LevelDB) Exists(ticker string, date time.Time) (bool, error) {
	return s.db.Has([]byte(snapshotKey(ticker, date)), nil)
}

// Save save ticker snapshot
func (s LevelDB) Save(ticker string, date time.Time, encoder quotes.Encoder) error {
	zipped, err := zip(encoder)
	if err != nil {
		return err
	}

	err = s.db.Put([]byte(snapshotKey(ticker, date)), zipped, nil)
	if err != nil {
		zap.L().Error("put snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Load load ticker snapshot
func (s LevelDB) Load(ticker string, date time.Time, decoder quotes.Decoder) error {
	zipped, err := s.db.Get([]byte(snapshotKey(ticker, date)), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
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
func (s LevelDB) Remove(ticker string, date time.Time) error {
	return s.db.Delete([]byte(snapshotKey(ticker, date)), nil)
}
