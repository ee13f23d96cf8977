package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sintascope/internal/config"
	"sintascope/internal/logging"
	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
	"sintascope/internal/service/dataset"
	"sintascope/internal/service/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router  *gin.Engine
	store   *store.MemoryStore
	handler *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := store.NewMemoryStore()
	h := NewHandler(st, dataset.NewLoader(logging.NewNop(), nil), config.DefaultConfig().Analysis, logging.NewNop())

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return &testEnv{router: r, store: st, handler: h}
}

func detail(aff, code string, cat model.Category, weight, value float64) model.IndicatorDetail {
	return model.IndicatorDetail{
		Affiliation: aff,
		Code:        code,
		RawCategory: "Score in " + string(cat),
		Category:    cat,
		Weight:      weight,
		Value:       value,
		Total:       weight * value,
	}
}

func clusterFixture() *model.ClusterDataset {
	details := []model.IndicatorDetail{
		detail("Universitas Bina Nusantara", "P1", model.CategoryPublication, 2, 0.5),
		detail("Universitas Bina Nusantara", "H1", model.CategoryHKI, 4, 0.25),
		detail("Universitas Alpha", "P1", model.CategoryPublication, 2, 1),
		detail("Universitas Zeta", "P1", model.CategoryPublication, 2, 0.1),
	}
	ranked, threshold := analytics.RankAffiliations([]model.Affiliation{
		{Name: "Universitas Bina Nusantara", ScoreOverall: 200, Score3yr: 50},
		{Name: "Universitas Alpha", ScoreOverall: 300, Score3yr: 70},
		{Name: "Universitas Zeta", ScoreOverall: 100, Score3yr: 20},
	})
	ds := &model.ClusterDataset{
		ID:             "cluster-1",
		SourceName:     "cluster.xlsx",
		Affiliations:   ranked,
		Details:        details,
		Top10Threshold: threshold,
		Matrix:         analytics.AggregateCategories(details),
		Report:         model.NewLoadReport(),
	}
	ds.IndexAffiliations()
	return ds
}

func metricsFixture() *model.MetricsDataset {
	row := func(aff, code, area string, overall, threeYear float64) model.MetricsDetail {
		return model.MetricsDetail{
			Affiliation:    model.NormalizeAffiliationKey(aff),
			Code:           code,
			Name:           "Indikator " + code,
			Area:           area,
			OverallTotal:   overall,
			ThreeYearTotal: threeYear,
		}
	}
	return &model.MetricsDataset{
		ID:         "metrics-1",
		SourceName: "metrics.xlsx",
		Rows: []model.MetricsDetail{
			row("Universitas Bina Nusantara", "P1", "Publikasi", 10, 4),
			row("Universitas Bina Nusantara", "R1", "Penelitian", 2, 2),
			row("Universitas Alpha", "P1", "Publikasi", 6, 1),
			row("Universitas Alpha", "K1", "Pengabdian", 3, 0),
		},
		Areas:  []string{"Penelitian", "Pengabdian", "Publikasi"},
		Report: model.NewLoadReport(),
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(t *testing.T, path, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out), rec.Body.String())
}

func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
