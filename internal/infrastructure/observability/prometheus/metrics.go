package prometheus

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dreschagin/spacex-launch-dashboard/internal/application/port"
)

// Metrics bundles prometheus collectors used by the dashboard.
// Implements port.CallbackMetricsPublisher.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal      *prometheus.CounterVec
	RequestDurationSec *prometheus.HistogramVec
	CallbacksTotal     *prometheus.CounterVec
	CallbackDuration   *prometheus.HistogramVec
	CallbackPoints     *prometheus.HistogramVec
	ActiveSessions     prometheus.GaugeFunc
	RateLimitDropped   prometheus.Counter
}

// New registers dashboard collectors in registry. sessions reports open WebSocket sessions.
func New(registry *prometheus.Registry, sessions func() int) *Metrics {
	if sessions == nil {
		sessions = func() int { return 0 }
	}

	m := &Metrics{
		registry: registry,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of dashboard HTTP requests.",
		}, []string{"route", "method", "status"}),
		RequestDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "Dashboard HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		CallbacksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_callbacks_total",
			Help: "Total number of rule executions by outcome.",
		}, []string{"rule", "trigger", "outcome"}),
		CallbackDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_callback_duration_seconds",
			Help:    "Rule execution duration in seconds.",
			Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}, []string{"rule"}),
		CallbackPoints: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dashboard_callback_points",
			Help:    "Number of points or rows drawn per rule execution.",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"rule"}),
		ActiveSessions: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "dashboard_active_sessions",
			Help: "Number of open interactive sessions.",
		}, func() float64 { return float64(sessions()) }),
		RateLimitDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dashboard_ratelimit_dropped_total",
			Help: "Total number of requests dropped by rate limiter.",
		}),
	}

	registry.MustRegister(
		m.RequestsTotal,
		m.RequestDurationSec,
		m.CallbacksTotal,
		m.CallbackDuration,
		m.CallbackPoints,
		m.ActiveSessions,
		m.RateLimitDropped,
	)

	return m
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordCallback implements port.CallbackMetricsPublisher.
func (m *Metrics) RecordCallback(_ context.Context, metric port.CallbackMetric) error {
	outcome := "ok"
	switch {
	case metric.Failed:
		outcome = "error"
	case metric.Empty:
		outcome = "empty"
	}

	m.CallbacksTotal.WithLabelValues(metric.Rule, metric.Trigger, outcome).Inc()
	m.CallbackDuration.WithLabelValues(metric.Rule).Observe(metric.Duration.Seconds())
	m.CallbackPoints.WithLabelValues(metric.Rule).Observe(float64(metric.Points))
	return nil
}

// Flush is a no-op: prometheus is pull based.
func (m *Metrics) Flush(context.Context) error {
	return nil
}

// Middleware records request count and latency per normalized route.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startedAt := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		status := strconv.Itoa(wrapped.statusCode)
		route := normalizeRoute(r.URL.Path)
		m.RequestsTotal.WithLabelValues(route, r.Method, status).Inc()
		m.RequestDurationSec.WithLabelValues(route, r.Method, status).Observe(time.Since(startedAt).Seconds())
	})
}

func normalizeRoute(path string) string {
	switch {
	case path == "/":
		return "/"
	case path == "/ws", path == "/healthz", path == "/readyz", path == "/metrics":
		return path
	case strings.HasPrefix(path, "/api/v1/charts/"):
		return "/api/v1/charts/*"
	case strings.HasPrefix(path, "/charts/"):
		return "/charts/*"
	case path == "/api/v1" || strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	default:
		return "other"
	}
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

// Hijack passes websocket upgrades through wrapped ResponseWriter.
func (rw *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return hijacker.Hijack()
}

// Flush keeps streaming behavior for handlers that require it.
func (rw *statusRecorder) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
