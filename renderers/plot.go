package renderers

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/nzai/divdash/analysis"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Plot render the four charts stacked in one png image
type Plot struct {
	Width       vg.Length
	ChartHeight vg.Length
}

// NewPlot create plot renderer
func NewPlot() *Plot {
	return &Plot{Width: 12 * vg.Inch, ChartHeight: 4 * vg.Inch}
}

// ContentType mime type of png
func (p Plot) ContentType() string {
	return "image/png"
}

// Extension png file extension
func (p Plot) Extension() string {
	return ".png"
}

// Render draw the dashboard to w
func (p Plot) Render(w io.Writer, d *analysis.Dashboard) error {
	var plots []*plot.Plot

	charts := dividendCharts(d)
	if len(charts) == 0 {
		plots = append(plots, warningPlot(NoDividendWarning))
	}

	for index, c := range charts {
		pl, err := p.nominalPlot(c, plotutil.Color(index))
		if err != nil {
			zap.L().Error("draw dividend chart failed", zap.Error(err), zap.String("chart", c.Title))
			return err
		}
		plots = append(plots, pl)
	}

	pl, err := p.pricePlot(d)
	if err != nil {
		zap.L().Error("draw price chart failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}
	plots = append(plots, pl)

	img := vgimg.New(p.Width, p.ChartHeight*vg.Length(len(plots)))
	dc := draw.New(img)

	tiles := draw.Tiles{
		Rows: len(plots),
		Cols: 1,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 6,
	}

	grid := make([][]*plot.Plot, len(plots))
	for index, pl := range plots {
		grid[index] = []*plot.Plot{pl}
	}

	canvases := plot.Align(grid, tiles, dc)
	for index := range grid {
		grid[index][0].Draw(canvases[index][0])
	}

	_, err = vgimg.PngCanvas{Canvas: img}.WriteTo(w)
	if err != nil {
		zap.L().Error("write png failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	return nil
}

// nominalPlot line with circle markers over labelled categories
func (p Plot) nominalPlot(c *chart, lineColor color.Color) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(c.Values))
	for index, value := range c.Values {
		xys[index].X = float64(index)
		xys[index].Y = value
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}

	line.Color = lineColor
	points.Color = lineColor
	points.Shape = draw.CircleGlyph{}

	pl.Add(line, points)
	pl.Legend.Add(c.Legend, line, points)
	pl.Legend.Top = true

	pl.NominalX(c.Labels...)
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = draw.XRight
	pl.X.Tick.Label.YAlign = draw.YCenter

	return pl, nil
}

// pricePlot closing price over a time axis with average and median lines
func (p Plot) pricePlot(d *analysis.Dashboard) (*plot.Plot, error) {
	c := priceChart(d)

	pl := plot.New()
	pl.Title.Text = c.Title
	pl.X.Label.Text = c.XLabel
	pl.Y.Label.Text = c.YLabel
	pl.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	pl.Add(plotter.NewGrid())

	if len(d.Prices) == 0 {
		pl.Title.Text = fmt.Sprintf("%s (no price data)", c.Title)
		return pl, nil
	}

	xys := make(plotter.XYs, len(d.Prices))
	for index, price := range d.Prices {
		xys[index].X = float64(price.Date.Unix())
		xys[index].Y = c.Values[index]
	}

	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	line.Color = plotutil.Color(0)

	pl.Add(line)
	pl.Legend.Add(c.Legend, line)
	pl.Legend.Top = true

	for index, stat := range statLines(d) {
		value := stat.Value
		fn := plotter.NewFunction(func(float64) float64 { return value })
		fn.Color = plotutil.Color(index + 1)
		fn.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
		fn.Width = vg.Points(1)

		pl.Add(fn)
		pl.Legend.Add(stat.Label(), fn)
	}

	return pl, nil
}

// warningPlot an empty plot which only carries a message as its title
func warningPlot(message string) *plot.Plot {
	pl := plot.New()
	pl.Title.Text = message
	pl.HideAxes()

	return pl
}
