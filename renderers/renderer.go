package renderers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nzai/divdash/analysis"
)

// NoDividendWarning shown in place of the dividend charts
const NoDividendWarning = "No dividend data found for this ticker."

// Renderer draw the dashboard of a ticker
type Renderer interface {
	// Render write the dashboard to w
	Render(io.Writer, *analysis.Dashboard) error
	// ContentType mime type of the output
	ContentType() string
	// Extension file extension of the output, with the dot
	Extension() string
}

var registry = map[string]func() Renderer{
	"plot":     func() Renderer { return NewPlot() },
	"echarts":  func() Renderer { return new(ECharts) },
	"markdown": func() Renderer { return new(Markdown) },
	"terminal": func() Renderer { return NewTerminal("") },
	"xlsx":     func() Renderer { return new(Workbook) },
}

// Get return renderer by name
func Get(name string) (Renderer, error) {
	create, found := registry[strings.ToLower(name)]
	if !found {
		return nil, fmt.Errorf("unknown renderer %q, available: %s", name, strings.Join(Names(), ","))
	}

	return create(), nil
}

// Names available renderer names
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
