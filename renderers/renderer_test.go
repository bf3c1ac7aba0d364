package renderers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nzai/divdash/analysis"
	"github.com/nzai/divdash/quotes"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func dashboard(t *testing.T, withDividends bool) *analysis.Dashboard {
	t.Helper()

	history := &quotes.History{
		Version:  quotes.HistoryVersion,
		Ticker:   "CJ.TO",
		Currency: "CAD",
	}

	if withDividends {
		for _, item := range []struct {
			date   time.Time
			amount float64
		}{
			{date(2023, time.January, 15), 0.5},
			{date(2023, time.February, 15), 0.5},
			{date(2023, time.April, 15), 0.6},
			{date(2024, time.January, 10), 0.7},
		} {
			dividend, err := quotes.NewDividend(item.date, item.amount)
			if err != nil {
				t.Fatalf("NewDividend() error = %v", err)
			}
			history.Dividends = append(history.Dividends, dividend)
		}
	}

	for index, value := range []float64{10, 20, 30, 40} {
		price, err := quotes.NewPricePoint(date(2023, time.January, 2+index), value)
		if err != nil {
			t.Fatalf("NewPricePoint() error = %v", err)
		}
		history.Prices = append(history.Prices, price)
	}

	d, err := analysis.Analyze(history)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	return d
}

func TestGet(t *testing.T) {
	for _, name := range Names() {
		r, err := Get(name)
		if err != nil {
			t.Errorf("Get(%s) error = %v", name, err)
			continue
		}

		if r.ContentType() == "" || !strings.HasPrefix(r.Extension(), ".") {
			t.Errorf("Get(%s) = %T with content type %q extension %q", name, r, r.ContentType(), r.Extension())
		}
	}

	_, err := Get("gif")
	if err == nil {
		t.Error("Get(gif) error = nil, want unknown renderer")
	}

	r, err := Get("ECharts")
	if err != nil {
		t.Fatalf("Get(ECharts) error = %v", err)
	}
	if _, ok := r.(*ECharts); !ok {
		t.Errorf("Get(ECharts) = %T, want *ECharts", r)
	}
}

func TestDividendCharts(t *testing.T) {
	charts := dividendCharts(dashboard(t, true))
	if len(charts) != 3 {
		t.Fatalf("dividendCharts() = %d charts, want 3", len(charts))
	}

	cases := []struct {
		labels []string
		values []float64
	}{
		{[]string{"2023Q1", "2023Q2", "2024Q1"}, []float64{1, 0.6, 0.7}},
		{[]string{"2023", "2024"}, []float64{3, 1}},
		{[]string{"2023", "2024"}, []float64{1.6, 0.7}},
	}

	for index, _case := range cases {
		c := charts[index]
		if strings.Join(c.Labels, ",") != strings.Join(_case.labels, ",") {
			t.Errorf("chart %d labels = %v, want %v", index, c.Labels, _case.labels)
		}

		if len(c.Values) != len(_case.values) {
			t.Errorf("chart %d values = %v, want %v", index, c.Values, _case.values)
			continue
		}

		for i, value := range _case.values {
			if c.Values[i] != value {
				t.Errorf("chart %d values = %v, want %v", index, c.Values, _case.values)
				break
			}
		}
	}

	if got := dividendCharts(dashboard(t, false)); len(got) != 0 {
		t.Errorf("dividendCharts() without dividends = %d charts, want 0", len(got))
	}
}

func TestStatLines(t *testing.T) {
	d := dashboard(t, true)

	lines := statLines(d)
	if len(lines) != 2 {
		t.Fatalf("statLines() = %v, want average and median", lines)
	}

	if lines[0].Value != 25 || lines[1].Value != 25 {
		t.Errorf("statLines() = %v, want 25 and 25", lines)
	}

	if lines[0].Label() != "Average: 25.00" {
		t.Errorf("Label() = %s, want Average: 25.00", lines[0].Label())
	}

	d.Summary = nil
	if got := statLines(d); got != nil {
		t.Errorf("statLines() without summary = %v, want nil", got)
	}
}

func TestMarkdown(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := Markdown{}.Render(buffer, dashboard(t, true))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	output := buffer.String()
	for _, want := range []string{
		"# Dividend dashboard of CJ.TO",
		"Dividend Amount paid per quarter for CJ.TO",
		"| 2023Q1 | 1 |",
		"| 2024 | 0.7 |",
		"Closing Price for CJ.TO Over Time",
		"| Average | 25.00 |",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Render() missing %q in\n%s", want, output)
		}
	}

	if strings.Contains(output, NoDividendWarning) {
		t.Errorf("Render() shows warning with dividends")
	}
}

func TestMarkdownNoDividends(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := Markdown{}.Render(buffer, dashboard(t, false))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, NoDividendWarning) {
		t.Errorf("Render() missing warning in\n%s", output)
	}

	if !strings.Contains(output, "Closing Price for CJ.TO Over Time") {
		t.Errorf("Render() missing price section in\n%s", output)
	}
}

func TestRenderers(t *testing.T) {
	cases := []struct {
		renderer Renderer
		prefix   []byte
	}{
		{NewPlot(), []byte("\x89PNG")},
		{new(ECharts), nil},
		{NewTerminal("notty"), nil},
		{new(Workbook), []byte("PK")},
	}

	for _, _case := range cases {
		for _, withDividends := range []bool{true, false} {
			buffer := new(bytes.Buffer)
			err := _case.renderer.Render(buffer, dashboard(t, withDividends))
			if err != nil {
				t.Errorf("%T.Render() error = %v", _case.renderer, err)
				continue
			}

			if buffer.Len() == 0 {
				t.Errorf("%T.Render() wrote nothing", _case.renderer)
				continue
			}

			if _case.prefix != nil && !bytes.HasPrefix(buffer.Bytes(), _case.prefix) {
				t.Errorf("%T.Render() = %q..., want prefix %q", _case.renderer, buffer.Bytes()[:4], _case.prefix)
			}
		}
	}
}

func TestEChartsWarning(t *testing.T) {
	buffer := new(bytes.Buffer)
	err := new(ECharts).Render(buffer, dashboard(t, false))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(buffer.String(), NoDividendWarning) {
		t.Error("Render() missing no dividend warning")
	}
}

func TestPlotWithoutPrices(t *testing.T) {
	d := dashboard(t, false)
	d.Prices = nil
	d.Summary = nil

	buffer := new(bytes.Buffer)
	err := NewPlot().Render(buffer, d)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !bytes.HasPrefix(buffer.Bytes(), []byte("\x89PNG")) {
		t.Error("Render() did not write png")
	}
}
