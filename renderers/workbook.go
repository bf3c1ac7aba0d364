package renderers

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/nzai/divdash/analysis"
	"go.uber.org/zap"
)

const summarySheet = "Summary"

// Workbook export the aggregates and the close series as xlsx
type Workbook struct{}

// ContentType mime type of xlsx
func (wb Workbook) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension xlsx file extension
func (wb Workbook) Extension() string {
	return ".xlsx"
}

// Render write the workbook to w
func (wb Workbook) Render(w io.Writer, d *analysis.Dashboard) error {
	file := excelize.NewFile()
	file.SetSheetName("Sheet1", summarySheet)
	wb.summary(file, d)

	for _, c := range dividendCharts(d) {
		wb.sheet(file, c)
	}
	wb.sheet(file, priceChart(d))

	file.SetActiveSheet(1)

	err := file.Write(w)
	if err != nil {
		zap.L().Error("write workbook failed", zap.Error(err), zap.String("ticker", d.Ticker))
		return err
	}

	return nil
}

// summary first sheet with the ticker and the price statistics
func (wb Workbook) summary(file *excelize.File, d *analysis.Dashboard) {
	rows := [][2]interface{}{
		{"Ticker", d.Ticker},
		{"Currency", d.Currency},
	}

	if d.Dividends == nil || d.Dividends.NoDividends() {
		rows = append(rows, [2]interface{}{"Dividends", NoDividendWarning})
	}

	if d.Summary != nil {
		rows = append(rows,
			[2]interface{}{"Average", d.Summary.Mean.InexactFloat64()},
			[2]interface{}{"Median", d.Summary.Median.InexactFloat64()},
			[2]interface{}{"Min", d.Summary.Min.InexactFloat64()},
			[2]interface{}{"Max", d.Summary.Max.InexactFloat64()},
			[2]interface{}{"Last", d.Summary.Last.InexactFloat64()},
			[2]interface{}{"Count", d.Summary.Count},
			[2]interface{}{"From", d.Summary.First.Format("2006-01-02")},
			[2]interface{}{"To", d.Summary.Latest.Format("2006-01-02")},
		)
	}

	for index, row := range rows {
		file.SetCellValue(summarySheet, fmt.Sprintf("A%d", index+1), row[0])
		file.SetCellValue(summarySheet, fmt.Sprintf("B%d", index+1), row[1])
	}
	file.SetColWidth(summarySheet, "A", "B", 24)
}

// sheet one chart as a two column table
func (wb Workbook) sheet(file *excelize.File, c *chart) {
	name := c.Sheet
	file.NewSheet(name)

	file.SetCellValue(name, "A1", c.XLabel)
	file.SetCellValue(name, "B1", c.YLabel)
	for index, label := range c.Labels {
		file.SetCellValue(name, fmt.Sprintf("A%d", index+2), label)
		file.SetCellValue(name, fmt.Sprintf("B%d", index+2), c.Values[index])
	}
	file.SetColWidth(name, "A", "B", 20)
}
