package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Workflow metrics
	ActionsTotal   *prometheus.CounterVec
	ActionDuration *prometheus.HistogramVec
	MutationsTotal *prometheus.CounterVec
	IconsCurrent   prometheus.Gauge
	AssetsTotal    prometheus.Counter

	// Backend metrics
	BackendCalls    *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot
	mu       sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests  int64   `json:"total_requests"`
	TotalErrors    int64   `json:"total_errors"`
	ActionsRun     int64   `json:"actions_run"`
	ActionsFailed  int64   `json:"actions_failed"`
	Mutations      int64   `json:"mutations"`
	BackendCalls   int64   `json:"backend_calls"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
	ActiveWSConns  int64   `json:"active_ws_connections"`
	CurrentIcons   int64   `json:"current_icons"`
	GeneratedFiles int64   `json:"generated_files"`
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several collectors can coexist in one process (tests, embedded use).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifestgen_http_requests_total",
				Help: "Total number of state API requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "manifestgen_http_request_duration_seconds",
				Help:    "State API request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),

		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifestgen_actions_total",
				Help: "Total number of workflow actions by outcome",
			},
			[]string{"action", "status"},
		),
		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "manifestgen_action_duration_seconds",
				Help:    "Workflow action duration in seconds",
				Buckets: []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"action"},
		),
		MutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifestgen_mutations_total",
				Help: "Total number of committed state mutations",
			},
			[]string{"kind"},
		),
		IconsCurrent: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "manifestgen_icons",
				Help: "Number of icons in the current manifest",
			},
		),
		AssetsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "manifestgen_assets_generated_total",
				Help: "Total number of assets returned by missing-image generation",
			},
		),

		BackendCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifestgen_backend_calls_total",
				Help: "Total number of manifest backend calls",
			},
			[]string{"endpoint", "status"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "manifestgen_backend_duration_seconds",
				Help:    "Manifest backend call duration in seconds",
				Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"endpoint"},
		),

		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "manifestgen_ws_connections",
				Help: "Number of active state stream connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "manifestgen_ws_messages_total",
				Help: "Total number of state stream messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "manifestgen_uptime_seconds",
			Help: "Process uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Handler exposes the collector's registry in Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records a state API request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordAction records one finished workflow action
func (m *Metrics) RecordAction(action, status string, duration time.Duration) {
	m.ActionsTotal.WithLabelValues(action, status).Inc()
	m.ActionDuration.WithLabelValues(action).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.ActionsRun++
	if status != StatusSuccess {
		m.snapshot.ActionsFailed++
	}
	m.mu.Unlock()
}

// RecordMutation records a committed mutation and the icon count after it
func (m *Metrics) RecordMutation(kind string, icons int) {
	m.MutationsTotal.WithLabelValues(kind).Inc()
	m.IconsCurrent.Set(float64(icons))

	m.mu.Lock()
	m.snapshot.Mutations++
	m.snapshot.CurrentIcons = int64(icons)
	m.mu.Unlock()
}

// AddAssets counts generated assets
func (m *Metrics) AddAssets(n int) {
	m.AssetsTotal.Add(float64(n))

	m.mu.Lock()
	m.snapshot.GeneratedFiles += int64(n)
	m.mu.Unlock()
}

// RecordBackendCall records a manifest backend call
func (m *Metrics) RecordBackendCall(endpoint, status string, duration time.Duration) {
	m.BackendCalls.WithLabelValues(endpoint, status).Inc()
	m.BackendDuration.WithLabelValues(endpoint).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.BackendCalls++
	m.mu.Unlock()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveWSConns++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveWSConns--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON health endpoint
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
