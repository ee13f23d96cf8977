package excel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

func fillColor(t *testing.T, f *excelize.File, sheet, cell string) string {
	t.Helper()
	id, err := f.GetCellStyle(sheet, cell)
	require.NoError(t, err)
	style, err := f.GetStyle(id)
	require.NoError(t, err)
	if len(style.Fill.Color) == 0 {
		return ""
	}
	return strings.ToUpper(style.Fill.Color[0])
}

func TestExporter_ExportComparison(t *testing.T) {
	t.Parallel()

	rows := []model.MetricsDetail{
		{Affiliation: "A", Code: "C1", Name: "Artikel", Area: "Publication", OverallTotal: 5},
		{Affiliation: "A", Code: "C2", Area: "Research", OverallTotal: 1},
		{Affiliation: "B", Code: "C2", Area: "Research", OverallTotal: 4},
		{Affiliation: "B", Code: "C3", Area: "HKI", OverallTotal: 2},
		{Affiliation: "A", Code: "C3", Area: "HKI", OverallTotal: 2},
	}
	view := analytics.CompareView(rows, analytics.CompareRequest{
		AffiliationA: "A",
		AffiliationB: "B",
		Field:        model.ScoreOverallTotal,
	})

	f, err := NewExporter().ExportComparison(view)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ComparisonSheet, SummarySheet}, f.GetSheetList())

	all, err := f.GetRows(ComparisonSheet)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Code", all[0][0])
	assert.Equal(t, "A (overall_total)", all[0][3])

	// 行按 |diff| 降序：C1(+5)、C2(-3)、C3(0)
	assert.Equal(t, "C1", all[1][0])
	assert.Equal(t, "C2", all[2][0])
	assert.Equal(t, "C3", all[3][0])

	assert.Contains(t, fillColor(t, f, ComparisonSheet, "F2"), strings.TrimPrefix(FillHigher, "#"))
	assert.Contains(t, fillColor(t, f, ComparisonSheet, "F3"), strings.TrimPrefix(FillLower, "#"))
	assert.NotContains(t, fillColor(t, f, ComparisonSheet, "F4"), strings.TrimPrefix(FillLower, "#"))

	// C1 在 B 中不存在，Diff % 为空
	pct, err := f.GetCellValue(ComparisonSheet, "G2")
	require.NoError(t, err)
	assert.Empty(t, pct)

	higher, err := f.GetCellValue(SummarySheet, "B6")
	require.NoError(t, err)
	assert.Equal(t, "1", higher)
}
