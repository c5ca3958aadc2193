package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plagrelay/internal/domain"
)

// Metrics owns the Prometheus collectors for the relay. All methods are
// safe on a nil receiver so components can run without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	retryAttempts    *prometheus.CounterVec
	statusResults    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plagrelay_upstream_requests_total",
				Help: "Total number of HTTP requests sent to the detection provider",
			},
			[]string{"backend", "code", "method"},
		),
		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plagrelay_upstream_request_duration_seconds",
				Help:    "Duration of HTTP requests sent to the detection provider",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"backend", "code", "method"},
		),
		retryAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plagrelay_retry_attempts_total",
				Help: "Upstream calls repeated by the retry controller",
			},
			[]string{"operation", "backend"},
		),
		statusResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plagrelay_status_results_total",
				Help: "Normalized lifecycle states returned by status queries",
			},
			[]string{"check_kind", "backend", "state"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "plagrelay_http_requests_total",
				Help: "Total number of HTTP requests served",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "plagrelay_http_request_duration_seconds",
				Help:    "Duration of HTTP requests served",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamDuration,
		m.retryAttempts,
		m.statusResults,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// InstrumentClient returns a copy of base whose transport records upstream
// request counts and latencies for backend.
func (m *Metrics) InstrumentClient(backend domain.Backend, base *http.Client) *http.Client {
	if base == nil {
		base = &http.Client{}
	}
	if m == nil {
		return base
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	labels := prometheus.Labels{"backend": string(backend)}
	instrumented := *base
	instrumented.Transport = promhttp.InstrumentRoundTripperCounter(
		m.upstreamRequests.MustCurryWith(labels),
		promhttp.InstrumentRoundTripperDuration(m.upstreamDuration.MustCurryWith(labels), next),
	)
	return &instrumented
}

// ObserveRetry counts one repeated upstream call.
func (m *Metrics) ObserveRetry(operation string, backend domain.Backend) {
	if m == nil {
		return
	}
	m.retryAttempts.WithLabelValues(operation, string(backend)).Inc()
}

// ObserveStatus counts one normalized status result.
func (m *Metrics) ObserveStatus(kind domain.CheckKind, backend domain.Backend, state domain.LifecycleState) {
	if m == nil {
		return
	}
	m.statusResults.WithLabelValues(string(kind), string(backend), string(state)).Inc()
}

// ObserveHTTPRequest records a served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
