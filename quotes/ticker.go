package quotes

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrInvalidTicker ticker contains characters no exchange uses
	ErrInvalidTicker = errors.New("invalid ticker")

	tickerPattern = regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.\-=]{0,19}$`)
)

// NormalizeTicker upper case and validate a ticker entered by the user, eg: cj.to -> CJ.TO
func NormalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if !tickerPattern.MatchString(ticker) {
		return "", ErrInvalidTicker
	}

	return ticker, nil
}
