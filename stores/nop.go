package stores

import (
	"time"

	"github.com/nzai/divdash/constants"
	"github.com/nzai/divdash/quotes"
)

// Nop store which keeps nothing, every load misses
type Nop struct{}

// Exists always false
func (Nop) Exists(string, time.Time) (bool, error) { return false, nil }

// Save discard snapshot
func (Nop) Save(string, time.Time, quotes.Encoder) error { return nil }

// Load always not found
func (Nop) Load(string, time.Time, quotes.Decoder) error { return constants.ErrRecordNotFound }

// Remove nothing to remove
func (Nop) Remove(string, time.Time) error { return nil }

// Close nothing to close
func (Nop) Close() error { return nil }
