package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sintascope/internal/service/analytics"
)

// 差值单元格底色
const (
	FillHigher = "#C6EFCE"
	FillLower  = "#FFC7CE"
)

const (
	ComparisonSheet = "Comparison"
	SummarySheet    = "Summary"
)

// Exporter Excel导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportComparison 导出机构对比表，差值列按正负着色
func (e *Exporter) ExportComparison(view analytics.ComparisonView) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", ComparisonSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	headers := []interface{}{
		"Code", "Name", "Category",
		fmt.Sprintf("%s (%s)", view.AffiliationA, view.Field),
		fmt.Sprintf("%s (%s)", view.AffiliationB, view.Field),
		"Diff", "Diff %",
	}
	if err := f.SetSheetRow(ComparisonSheet, "A1", &headers); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	f.SetRowStyle(ComparisonSheet, 1, 1, styles.header)

	for i, r := range view.Rows {
		row := i + 2
		values := []interface{}{r.Code, r.Name, r.Category, r.ScoreSelected, r.ScoreCompare, r.DiffAbs, nil}
		if r.DiffPct != nil {
			values[6] = *r.DiffPct / 100
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ComparisonSheet, cell, &values); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}

		f.SetCellStyle(ComparisonSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("E%d", row), styles.number)
		f.SetCellStyle(ComparisonSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), styles.percent)

		diffStyle := styles.number
		switch {
		case r.DiffAbs > 0:
			diffStyle = styles.higher
		case r.DiffAbs < 0:
			diffStyle = styles.lower
		}
		f.SetCellStyle(ComparisonSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("F%d", row), diffStyle)
	}

	f.SetColWidth(ComparisonSheet, "A", "A", 12)
	f.SetColWidth(ComparisonSheet, "B", "B", 45)
	f.SetColWidth(ComparisonSheet, "C", "C", 20)
	f.SetColWidth(ComparisonSheet, "D", "G", 22)
	f.SetPanes(ComparisonSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	// 汇总表
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Item", "Value"},
		{"Affiliation A", view.AffiliationA},
		{"Affiliation B", view.AffiliationB},
		{"Score field", string(view.Field)},
		{"Indicators", view.TotalRows},
		{"A higher", view.Summary.Higher},
		{"A lower", view.Summary.Lower},
		{"Equal", view.Summary.Equal},
	}
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := row
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write summary: %w", err)
		}
	}
	f.SetRowStyle(SummarySheet, 1, 1, styles.header)
	f.SetColWidth(SummarySheet, "A", "A", 18)
	f.SetColWidth(SummarySheet, "B", "B", 40)

	return f, nil
}

type exportStyles struct {
	header  int
	number  int
	percent int
	higher  int
	lower   int
}

func newStyles(f *excelize.File) (exportStyles, error) {
	var s exportStyles
	var err error

	numFmt := "#,##0.00"
	pctFmt := "0.00%"

	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, fmt.Errorf("failed to create header style: %w", err)
	}
	if s.number, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return s, fmt.Errorf("failed to create number style: %w", err)
	}
	if s.percent, err = f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt}); err != nil {
		return s, fmt.Errorf("failed to create percent style: %w", err)
	}
	if s.higher, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Fill:         excelize.Fill{Type: "pattern", Color: []string{FillHigher}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("failed to create diff style: %w", err)
	}
	if s.lower, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Fill:         excelize.Fill{Type: "pattern", Color: []string{FillLower}, Pattern: 1},
	}); err != nil {
		return s, fmt.Errorf("failed to create diff style: %w", err)
	}
	return s, nil
}
