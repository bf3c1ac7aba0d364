package sources

import (
	"context"
	"fmt"
	"strings"

	"github.com/nzai/divdash/quotes"
	"go.uber.org/zap"
)

// Source define ticker dividend and close price history source
type Source interface {
	// History fetch the full history of a normalized ticker
	History(context.Context, string) (*quotes.History, error)
}

// Parse parse command argument, eg: yahoo csv:/data/csv
func Parse(arg string) (Source, error) {
	if arg == "" || arg == "yahoo" {
		return NewYahooFinance(), nil
	}

	kind, dir, found := strings.Cut(arg, ":")
	if !found || kind != "csv" || dir == "" {
		zap.L().Error("source arg invalid", zap.String("arg", arg))
		return nil, fmt.Errorf("source arg invalid: %s", arg)
	}

	return NewLocalCSV(dir), nil
}
