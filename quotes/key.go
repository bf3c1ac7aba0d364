package quotes

import (
	"fmt"
	"strconv"
	"time"
)

// CivilDate truncate t to its calendar date at 00:00 UTC
func CivilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// QuarterKey calendar quarter of a year, Q1 is Jan-Mar
type QuarterKey struct {
	Year    int
	Quarter int
}

// QuarterOf return the quarter containing date
func QuarterOf(date time.Time) QuarterKey {
	return QuarterKey{
		Year:    date.Year(),
		Quarter: (int(date.Month())-1)/3 + 1,
	}
}

// ParseQuarterKey parse label like 2023Q1
func ParseQuarterKey(s string) (QuarterKey, error) {
	if len(s) < 3 || s[len(s)-2] != 'Q' {
		return QuarterKey{}, fmt.Errorf("invalid quarter: %s", s)
	}

	year, err := strconv.Atoi(s[:len(s)-2])
	if err != nil {
		return QuarterKey{}, fmt.Errorf("invalid quarter year: %s", s)
	}

	quarter := int(s[len(s)-1] - '0')
	if quarter < 1 || quarter > 4 {
		return QuarterKey{}, fmt.Errorf("invalid quarter number: %s", s)
	}

	return QuarterKey{Year: year, Quarter: quarter}, nil
}

// Less order by year then quarter
func (k QuarterKey) Less(o QuarterKey) bool {
	if k.Year != o.Year {
		return k.Year < o.Year
	}

	return k.Quarter < o.Quarter
}

func (k QuarterKey) String() string {
	return fmt.Sprintf("%dQ%d", k.Year, k.Quarter)
}

// MarshalText quarter is rendered as its label in json
func (k QuarterKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parse quarter label
func (k *QuarterKey) UnmarshalText(text []byte) error {
	parsed, err := ParseQuarterKey(string(text))
	if err != nil {
		return err
	}

	*k = parsed
	return nil
}

// YearKey calendar year
type YearKey int

// YearOf return the year containing date
func YearOf(date time.Time) YearKey {
	return YearKey(date.Year())
}

// Less order by year
func (k YearKey) Less(o YearKey) bool {
	return k < o
}

func (k YearKey) String() string {
	return strconv.Itoa(int(k))
}
