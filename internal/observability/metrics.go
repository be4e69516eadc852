// Package observability exposes Prometheus metrics for the HTTP API and the remote catalog.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry and the collectors registered on it.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	remoteCalls     *prometheus.CounterVec
	remoteDuration  *prometheus.HistogramVec
	syncDropped     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_http_request_duration_seconds",
		Help:    "HTTP request duration by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	remoteCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_remote_calls_total",
		Help: "Calls to the remote catalog by operation and outcome.",
	}, []string{"op", "outcome"})
	remoteDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_remote_call_duration_seconds",
		Help:    "Remote catalog call duration by operation.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	syncDropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_remote_sync_dropped_total",
		Help: "Remote sync jobs dropped because the queue was full or closed.",
	}, []string{"op"})
	registry.MustRegister(requests, duration, remoteCalls, remoteDuration, syncDropped)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		remoteCalls:     remoteCalls,
		remoteDuration:  remoteDuration,
		syncDropped:     syncDropped,
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ObserveRemote counts one remote catalog call.
func (m *Metrics) ObserveRemote(op string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.remoteCalls.WithLabelValues(op, outcome).Inc()
	m.remoteDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) ObserveSyncDropped(op string) {
	if m == nil {
		return
	}
	m.syncDropped.WithLabelValues(op).Inc()
}

func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
