package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetFixture struct {
	name string
	rows [][]interface{}
}

// buildWorkbook 按顺序创建 sheet 并写入行（首行为表头）
func buildWorkbook(t *testing.T, sheets ...sheetFixture) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}
	return f
}

func affiliationSheet(rows ...[]interface{}) sheetFixture {
	all := [][]interface{}{{"nama_afiliasi", "sinta_score_overall", "sinta_score_3yr"}}
	return sheetFixture{name: "afiliasi", rows: append(all, rows...)}
}

func detailSheet(rows ...[]interface{}) sheetFixture {
	all := [][]interface{}{{"nama_afiliasi", "kode", "nama", "kategori_score", "weight", "value", "total"}}
	return sheetFixture{name: "detail_kode", rows: append(all, rows...)}
}
