package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestMiddlewareRecordsRequest(t *testing.T) {
	m := NewMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/products/{id}")
	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusTeapot, rr.Code)

	body := scrape(t, m)
	assert.Contains(t, body, `catalog_http_requests_total{code="418",route="/products/{id}"} 1`)
	assert.Contains(t, body, `catalog_http_request_duration_seconds_bucket{route="/products/{id}"`)
}

func TestObserveRemote(t *testing.T) {
	m := NewMetrics()
	m.ObserveRemote("list", 10*time.Millisecond, nil)
	m.ObserveRemote("list", 10*time.Millisecond, errors.New("timeout"))
	m.ObserveSyncDropped("create")

	body := scrape(t, m)
	assert.Contains(t, body, `catalog_remote_calls_total{op="list",outcome="ok"} 1`)
	assert.Contains(t, body, `catalog_remote_calls_total{op="list",outcome="error"} 1`)
	assert.Contains(t, body, `catalog_remote_sync_dropped_total{op="create"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveRemote("get", time.Millisecond, nil)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
