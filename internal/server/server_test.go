package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"sintascope/internal/config"
	"sintascope/internal/logging"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	s := NewServer(config.DefaultConfig(), Deps{Logger: logging.NewFromCore(core)})
	return s, logs
}

func serve(s *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestServer_RequestIDAndLogging(t *testing.T) {
	t.Parallel()

	s, logs := newTestServer(t)

	rec := serve(s, http.MethodGet, "/api/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)

	rec = serve(s, http.MethodGet, "/api/status", http.Header{RequestIDHeader: []string{"abc"}})
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(200), entries[1].ContextMap()["status"])
}

func TestServer_NotLoadedIsConflict(t *testing.T) {
	t.Parallel()

	s, logs := newTestServer(t)
	rec := serve(s, http.MethodGet, "/api/ranking", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestServer_MetricsAndNoRoute(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)

	rec := serve(s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"route not found"}`, rec.Body.String())

	serve(s, http.MethodGet, "/api/status", nil)

	rec = serve(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sintascope_http_requests_total{method="GET",route="/api/status",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `route="unmatched",status="404"`)
}

func TestServer_CORSPreflight(t *testing.T) {
	t.Parallel()

	s, _ := newTestServer(t)
	rec := serve(s, http.MethodOptions, "/api/compare", http.Header{
		"Origin":                        []string{"http://localhost:5173"},
		"Access-Control-Request-Method": []string{"POST"},
	})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
