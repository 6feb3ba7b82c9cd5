package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors. Collectors live in a private
// registry so repeated construction (tests, embedded use) never
// double-registers.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Native bridge metrics
	NativeCalls        *prometheus.CounterVec
	NativeCallDuration *prometheus.HistogramVec
	LibraryLoaded      prometheus.Gauge

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry:  registry,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		NativeCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bridge_native_calls_total",
				Help: "Total number of native bridge operations by outcome",
			},
			[]string{"op", "status"},
		),
		NativeCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bridge_native_call_duration_seconds",
				Help:    "Native bridge operation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"op"},
		),
		LibraryLoaded: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_library_loaded",
				Help: "Whether the native library is currently loaded (1) or not (0)",
			},
		),

		Uptime: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bridge_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}
}

// Registry returns the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// RecordHTTPRequest records one served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.Uptime.Set(time.Since(m.startTime).Seconds())
}

// RecordNativeCall records one bridge operation with its outcome.
func (m *Metrics) RecordNativeCall(op, status string, duration time.Duration) {
	m.NativeCalls.WithLabelValues(op, status).Inc()
	m.NativeCallDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetLibraryLoaded updates the load-state gauge.
func (m *Metrics) SetLibraryLoaded(loaded bool) {
	if loaded {
		m.LibraryLoaded.Set(1)
	} else {
		m.LibraryLoaded.Set(0)
	}
}
