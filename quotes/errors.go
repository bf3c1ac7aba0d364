package quotes

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrSymbolNotFound define errors raised by data source on unknown ticker
	ErrSymbolNotFound = errors.New("symbol not found")
)

// MalformedRecordError a dividend or price record rejected at ingestion
type MalformedRecordError struct {
	Kind   string // dividend or price
	Index  int
	Date   time.Time
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("malformed %s record #%d: %s", e.Kind, e.Index, e.Reason)
	}

	return fmt.Sprintf("malformed %s record #%d (%s): %s", e.Kind, e.Index, e.Date.Format("2006-01-02"), e.Reason)
}

func malformed(kind string, index int, date time.Time, format string, args ...any) *MalformedRecordError {
	return &MalformedRecordError{
		Kind:   kind,
		Index:  index,
		Date:   date,
		Reason: fmt.Sprintf(format, args...),
	}
}
