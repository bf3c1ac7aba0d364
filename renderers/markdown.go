package renderers

import (
	"embed"
	"fmt"
	"io"
	"text/template"

	"github.com/nzai/divdash/analysis"
	"go.uber.org/zap"
)

//go:embed templates/*.md
var templatesFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templatesFS, "templates/dashboard.md"))

type markdownTable struct {
	Section string
	Title   string
	XLabel  string
	YLabel  string
	Rows    [][2]string
}

type markdownView struct {
	Ticker   string
	Currency string
	Warning  string
	Tables   []markdownTable
	Price    markdownTable
}

// Markdown render the dashboard as markdown tables
type Markdown struct{}

// ContentType mime type of markdown
func (m Markdown) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// Extension markdown file extension
func (m Markdown) Extension() string {
	return ".md"
}

// Render write the markdown document to w
func (m Markdown) Render(w io.Writer, d *analysis.Dashboard) error {
	err := dashboardTemplate.ExecuteTemplate(w, "dashboard.md", newMarkdownView(d))
	if err != nil {
		zap.L().Error("execute markdown template failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	return nil
}

func newMarkdownView(d *analysis.Dashboard) *markdownView {
	view := &markdownView{
		Ticker:   d.Ticker,
		Currency: d.Currency,
	}

	charts := dividendCharts(d)
	if len(charts) == 0 {
		view.Warning = NoDividendWarning
	}

	for _, c := range charts {
		table := markdownTable{
			Section: c.Section,
			Title:   c.Title,
			XLabel:  c.XLabel,
			YLabel:  c.YLabel,
			Rows:    make([][2]string, len(c.Labels)),
		}

		for index, label := range c.Labels {
			table.Rows[index] = [2]string{label, fmt.Sprint(c.Values[index])}
		}

		view.Tables = append(view.Tables, table)
	}

	price := priceChart(d)
	view.Price = markdownTable{
		Section: price.Section,
		Title:   price.Title,
		XLabel:  "Statistic",
		YLabel:  "Value",
	}

	if d.Summary != nil {
		s := d.Summary
		view.Price.Rows = [][2]string{
			{"Average", s.Mean.StringFixed(2)},
			{"Median", s.Median.StringFixed(2)},
			{"Min", s.Min.String()},
			{"Max", s.Max.String()},
			{"Last", s.Last.String()},
			{"Trading days", fmt.Sprint(s.Count)},
			{"From", s.First.Format("2006-01-02")},
			{"To", s.Latest.Format("2006-01-02")},
		}
	}

	return view
}
