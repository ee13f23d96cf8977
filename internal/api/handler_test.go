package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"sintascope/internal/model"
	"sintascope/internal/service/analytics"
)

func TestStatus_Empty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp StatusResponse
	decode(t, rec, &resp)
	assert.False(t, resp.Cluster.Loaded)
	assert.False(t, resp.Metrics.Loaded)
}

func TestEndpoints_DatasetNotLoaded(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, tc := range []struct {
		method, path string
		body         interface{}
	}{
		{http.MethodGet, "/api/affiliations", nil},
		{http.MethodGet, "/api/overview", nil},
		{http.MethodGet, "/api/ranking", nil},
		{http.MethodGet, "/api/affiliations/X/leverage", nil},
		{http.MethodPost, "/api/simulate", map[string]interface{}{"affiliation": "X", "categories": []string{"HKI"}}},
		{http.MethodPost, "/api/compare", map[string]interface{}{"affiliationA": "X", "affiliationB": "Y"}},
		{http.MethodGet, "/api/affiliations/X/metrics", nil},
	} {
		rec := env.do(t, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusConflict, rec.Code, tc.path)
	}
}

func TestAffiliationsAndOverview(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetCluster(clusterFixture())

	rec := env.do(t, http.MethodGet, "/api/affiliations", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list AffiliationsResponse
	decode(t, rec, &list)
	assert.Equal(t, []string{"Universitas Alpha", "Universitas Bina Nusantara", "Universitas Zeta"}, list.Names)
	assert.Equal(t, "Universitas Bina Nusantara", list.Default)
	assert.Equal(t, "Universitas Alpha", list.CompareTarget)

	rec = env.do(t, http.MethodGet, "/api/overview?top=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ov analytics.OverviewResult
	decode(t, rec, &ov)
	assert.Equal(t, "Universitas Bina Nusantara", ov.Affiliation.Name)
	assert.Equal(t, 2, ov.Affiliation.RankOverall)
	require.Len(t, ov.Top, 1)
	assert.Equal(t, "Universitas Alpha", ov.Top[0].Name)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/overview?affiliation=Nope", nil).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodGet, "/api/overview?top=abc", nil).Code)
}

func TestRankingAndCategories(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetCluster(clusterFixture())

	rec := env.do(t, http.MethodGet, "/api/ranking?top=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ranking struct {
		Total int `json:"total"`
		Items []struct {
			Name        string `json:"name"`
			RankOverall int    `json:"rankOverall"`
		} `json:"items"`
	}
	decode(t, rec, &ranking)
	assert.Equal(t, 3, ranking.Total)
	require.Len(t, ranking.Items, 2)
	assert.Equal(t, 1, ranking.Items[0].RankOverall)

	rec = env.do(t, http.MethodGet, "/api/affiliations/Universitas%20Bina%20Nusantara/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown struct {
		Total      float64                   `json:"total"`
		Categories []analytics.CategoryShare `json:"categories"`
	}
	decode(t, rec, &breakdown)
	assert.Equal(t, 2.0, breakdown.Total)
	require.Len(t, breakdown.Categories, 6)
	require.NotNil(t, breakdown.Categories[0].SharePercent)
	assert.InDelta(t, 50.0, *breakdown.Categories[0].SharePercent, 1e-9)

	rec = env.do(t, http.MethodGet, "/api/categories/publication/ranking", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var catRank struct {
		Items []analytics.CategoryRank `json:"items"`
	}
	decode(t, rec, &catRank)
	require.Len(t, catRank.Items, 3)
	assert.Equal(t, "Universitas Alpha", catRank.Items[0].Affiliation)

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/categories/Unknown/ranking", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/affiliations/Nope/categories", nil).Code)
}

func TestCategoryBreakdown_AffiliationWithoutDetails(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ds := clusterFixture()
	ds.Affiliations = append(ds.Affiliations, model.Affiliation{Name: "Universitas Baru", ScoreOverall: 1})
	ds.IndexAffiliations()
	env.store.SetCluster(ds)

	rec := env.do(t, http.MethodGet, "/api/affiliations/Universitas%20Baru/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var breakdown struct {
		HasDetails bool                      `json:"hasDetails"`
		Total      float64                   `json:"total"`
		Categories []analytics.CategoryShare `json:"categories"`
	}
	decode(t, rec, &breakdown)
	assert.False(t, breakdown.HasDetails)
	assert.Zero(t, breakdown.Total)
	require.Len(t, breakdown.Categories, 6)
	for _, share := range breakdown.Categories {
		assert.Zero(t, share.Total)
		assert.Nil(t, share.SharePercent)
	}

	rec = env.do(t, http.MethodGet, "/api/affiliations/Universitas%20Alpha/categories", nil)
	decode(t, rec, &breakdown)
	assert.True(t, breakdown.HasDetails)
}

func TestLeverage(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetCluster(clusterFixture())

	rec := env.do(t, http.MethodGet, "/api/affiliations/Universitas%20Bina%20Nusantara/leverage?top=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []analytics.LeverageItem `json:"items"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "H1", resp.Items[0].Code)
	assert.InDelta(t, 3.0, resp.Items[0].PotentialGain, 1e-12)
}

func TestSimulate(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetCluster(clusterFixture())

	rec := env.do(t, http.MethodPost, "/api/simulate", map[string]interface{}{
		"affiliation": "Universitas Bina Nusantara",
		"categories":  []string{"HKI"},
		"delta":       0.25,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Result      analytics.SimulationResult `json:"result"`
		TotalChange float64                    `json:"totalChange"`
	}
	decode(t, rec, &resp)
	require.Len(t, resp.Result.Categories, 6)
	assert.InDelta(t, 1.0, resp.TotalChange, 1e-12)

	for name, body := range map[string]map[string]interface{}{
		"no categories":    {"affiliation": "Universitas Bina Nusantara", "categories": []string{}},
		"unknown category": {"affiliation": "Universitas Bina Nusantara", "categories": []string{"Sports"}},
		"negative delta":   {"affiliation": "Universitas Bina Nusantara", "categories": []string{"HKI"}, "delta": -1},
		"missing name":     {"categories": []string{"HKI"}},
	} {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/simulate", body).Code, name)
	}

	rec = env.do(t, http.MethodPost, "/api/simulate", map[string]interface{}{
		"affiliation": "Nope", "categories": []string{"HKI"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompare(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetMetrics(metricsFixture())

	rec := env.do(t, http.MethodPost, "/api/compare", map[string]interface{}{
		"affiliationA": "Universitas Bina Nusantara",
		"affiliationB": "Universitas Alpha",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view analytics.ComparisonView
	decode(t, rec, &view)
	assert.Equal(t, 3, view.TotalRows)
	assert.Equal(t, analytics.ComparisonSummary{Higher: 2, Lower: 1}, view.Summary)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "P1", view.Rows[0].Code)

	rec = env.do(t, http.MethodPost, "/api/compare", map[string]interface{}{
		"affiliationA": "Universitas Bina Nusantara",
		"affiliationB": "Universitas Alpha",
		"field":        "sinta_v3_3yr_total",
		"categories":   []string{"Publikasi"},
		"top":          1,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &view)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, 3.0, view.Rows[0].DiffAbs)

	rec = env.do(t, http.MethodPost, "/api/compare", map[string]interface{}{
		"affiliationA": "A", "affiliationB": "B", "field": "bogus",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCompareExport(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetMetrics(metricsFixture())

	rec := env.do(t, http.MethodPost, "/api/compare/export", map[string]interface{}{
		"affiliationA": "Universitas Bina Nusantara",
		"affiliationB": "Universitas Alpha",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment;")

	f, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Comparison")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestMetricsProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.store.SetMetrics(metricsFixture())
	env.store.SetCluster(clusterFixture())

	rec := env.do(t, http.MethodGet, "/api/affiliations/universitas%20bina%20nusantara/metrics?q=p1", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var p analytics.Profile
	decode(t, rec, &p)
	assert.True(t, p.Found)
	assert.Equal(t, 12.0, p.TotalOverall)
	require.Len(t, p.Filtered, 1)
	assert.Equal(t, "Publication", string(p.Filtered[0].ClusterCategory))

	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/api/affiliations/Nope/metrics", nil).Code)
}

func TestBuildExportContentDisposition(t *testing.T) {
	t.Parallel()

	got := buildExportContentDisposition("Univ A", "Univ B")
	want := "attachment; filename=\"compare-Univ_A-vs-Univ_B.xlsx\"; filename*=UTF-8''compare-Univ%20A-vs-Univ%20B.xlsx"
	assert.Equal(t, want, got)
}
