package renderers

import (
	"bytes"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/nzai/divdash/analysis"
	"go.uber.org/zap"
)

// Terminal render the markdown dashboard with ansi styles
type Terminal struct {
	// Style glamour standard style, empty means detect from the terminal
	Style    string
	WordWrap int
}

// NewTerminal create terminal renderer
func NewTerminal(style string) *Terminal {
	return &Terminal{Style: style, WordWrap: 100}
}

// ContentType mime type of terminal output
func (t Terminal) ContentType() string {
	return "text/plain; charset=utf-8"
}

// Extension text file extension
func (t Terminal) Extension() string {
	return ".txt"
}

// Render write the styled dashboard to w
func (t Terminal) Render(w io.Writer, d *analysis.Dashboard) error {
	buffer := new(bytes.Buffer)
	err := Markdown{}.Render(buffer, d)
	if err != nil {
		return err
	}

	styleOption := glamour.WithAutoStyle()
	if t.Style != "" {
		styleOption = glamour.WithStandardStyle(t.Style)
	}

	renderer, err := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(t.WordWrap))
	if err != nil {
		zap.L().Error("create term renderer failed", zap.Error(err), zap.String("style", t.Style))
		return err
	}

	output, err := renderer.RenderBytes(buffer.Bytes())
	if err != nil {
		zap.L().Error("render markdown failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	_, err = w.Write(output)
	if err != nil {
		zap.L().Error("write terminal output failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	return nil
}
