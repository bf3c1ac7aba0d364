package renderers

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/nzai/divdash/analysis"
	"go.uber.org/zap"
)

// ECharts render the dashboard as an interactive html page
type ECharts struct{}

// ContentType mime type of html
func (e ECharts) ContentType() string {
	return "text/html; charset=utf-8"
}

// Extension html file extension
func (e ECharts) Extension() string {
	return ".html"
}

// Render write the html page to w
func (e ECharts) Render(w io.Writer, d *analysis.Dashboard) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Dividend dashboard of %s", d.Ticker)

	dividends := dividendCharts(d)
	if len(dividends) == 0 {
		page.AddCharts(e.warning(d.Ticker))
	}

	for _, c := range dividends {
		page.AddCharts(e.line(c, nil))
	}

	page.AddCharts(e.line(priceChart(d), statLines(d)))

	err := page.Render(w)
	if err != nil {
		zap.L().Error("render echarts page failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	return nil
}

// line one chart of the page, marks become dashed horizontal lines
func (e ECharts) line(c *chart, marks []statLine) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: c.Section}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "5%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	)

	items := make([]opts.LineData, len(c.Values))
	for index, value := range c.Values {
		items[index] = opts.LineData{Value: value}
	}

	seriesOptions := []charts.SeriesOpts{
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(len(marks) == 0)}),
	}

	for _, mark := range marks {
		seriesOptions = append(seriesOptions, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{
			Name:  mark.Label(),
			YAxis: mark.Value,
		}))
	}

	if len(marks) > 0 {
		seriesOptions = append(seriesOptions, charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
			Label: &opts.Label{Show: opts.Bool(true), Formatter: "{b}"},
		}))
	}

	line.SetXAxis(c.Labels).AddSeries(c.Legend, items, seriesOptions...)

	return line
}

// warning a chart without series which only shows the message
func (e ECharts) warning(ticker string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: NoDividendWarning, Subtitle: ticker}),
	)

	return line
}
