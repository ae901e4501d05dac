package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/ctf-archive-etl/internal/adapter/http"
	"github.com/couchcryptid/ctf-archive-etl/internal/domain"
	"github.com/couchcryptid/ctf-archive-etl/internal/enrich"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

func newTestServer(readyErr error, engine *enrich.Engine) *httpadapter.Server {
	if engine == nil {
		engine = enrich.New()
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, engine, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"), nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestStatzReportsEngineSummary(t *testing.T) {
	engine := enrich.New()
	engine.EnrichNext(domain.Event{
		EventID: 1,
		Name:    "DEF CON CTF Qualifier",
		Year:    2015,
		DateRaw: "16 May, 00:00 UTC — 18 May 2015, 00:00 UTC",
		Format:  "Jeopardy",
	})
	engine.EnrichNext(domain.Event{
		EventID: 2,
		Name:    "Some Announced CTF",
		Year:    2015,
		DateRaw: "TBA",
		Format:  "REVIEW",
	})

	srv := newTestServer(nil, engine)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/statz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body enrich.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 1, body.Parsed)
	assert.Equal(t, 1, body.FailureCount)
	assert.Equal(t, 2015, body.YearMin)
	assert.Equal(t, 2015, body.YearMax)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
