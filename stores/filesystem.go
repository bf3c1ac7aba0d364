package stores

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// FileSystem define file system store
type FileSystem struct {
	root string
}

// NewFileSystem create file system store
func NewFileSystem(root string) *FileSystem {
	return &FileSystem{root: root}
}

// storePath return {root}/{yyyy}/{mm}/{dd}/{ticker}
func (s FileSystem) storePath(ticker string, date time.Time) string {
	return filepath.Join(
		s.root,
		date.Format("2006"),
		date.Format("01"),
		date.Format("02"),
		ticker,
	)
}

// Exists check snapshot exists
func (s FileSystem) Exists(ticker string, date time.Time) (bool, error) {
	_, err := os.Stat(s.storePath(ticker, date))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// Save save snapshot to dest path
func (s FileSystem) Save(ticker string, date time.Time, encoder quotes.Encoder) error {
	filePath := s.storePath(ticker, date)
	err := os.MkdirAll(filepath.Dir(filePath), 0755)
	if err != nil {
		zap.L().Error("ensure save path failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date),
			zap.String("path", filePath))
		return err
	}

	zipped, err := zip(encoder)
	if err != nil {
		return err
	}

	err = os.WriteFile(filePath, zipped, 0660)
	if err != nil {
		zap.L().Error("save snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Load load snapshot from path
func (s FileSystem) Load(ticker string, date time.Time, decoder quotes.Decoder) error {
	filePath := s.storePath(ticker, date)
	zipped, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return constants.ErrRecordNotFound
		}

		zap.L().Error("load snapshot failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return unzip(zipped, decoder)
}

// Remove remove ticker snapshot
func (s FileSystem) Remove(ticker string, date time.Time) error {
	err := os.Remove(s.storePath(ticker, date))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		zap.L().Error("remove snapshot file failed",
			zap.Error(err),
			zap.String("ticker", ticker),
			zap.Time("date", date))
		return err
	}

	return nil
}

// Close nothing to release
func (s FileSystem) Close() error {
	return nil
}
