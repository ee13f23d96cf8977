package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetRows struct {
	name string
	rows [][]interface{}
}

func workbookBytes(t *testing.T, sheets ...sheetRows) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

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

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func clusterSource(t *testing.T, name string, scoreA float64) Source {
	t.Helper()
	return Source{Name: name, Content: workbookBytes(t,
		sheetRows{name: "afiliasi", rows: [][]interface{}{
			{"nama_afiliasi", "sinta_score_overall", "sinta_score_3yr"},
			{"Universitas A", scoreA, 10},
			{"Universitas B", 200, 20},
		}},
		sheetRows{name: "detail_kode", rows: [][]interface{}{
			{"nama_afiliasi", "kode", "kategori_score", "weight", "value", "total"},
			{"Universitas A", "P1", "Score in Publication", 2, 0.5, 1},
			{"Universitas B", "H1", "Score in HKI", 1, 0.25, 0.25},
			{"Universitas B", "X1", "Score in Other", 1, 1, 1},
		}},
	)}
}

func metricsSource(t *testing.T) Source {
	t.Helper()
	return Source{Name: "metrics.xlsx", Content: workbookBytes(t,
		sheetRows{name: "Sheet Utama", rows: [][]interface{}{
			{"affiliation_name", "code", "name", "area", "weight",
				"sinta_v3_overall_value", "sinta_v3_overall_total", "sinta_v3_3yr_value", "sinta_v3_3yr_total"},
			{"Universitas A", "AR1", "Artikel", "Publication", 1, 0.5, 5, 0.2, 2},
		}},
	)}
}
