// Package metrics provides Prometheus metrics for the Riddle Rush game service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the game service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Gameplay metrics
	answerChecks        *prometheus.CounterVec
	verificationLatency prometheus.Histogram
	sessionsStarted     prometheus.Counter
	sessionsCompleted   prometheus.Counter
	sessionsAbandoned   prometheus.Counter
	roundsAdvanced      prometheus.Counter
	activeSessions      prometheus.Gauge
	rosterSize          prometheus.Gauge

	// External source health
	sourceFailures *prometheus.CounterVec

	// Persistence health
	persistenceErrors prometheus.Counter
	persistenceDepth  prometheus.Gauge

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "riddlerush",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.answerChecks = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "answer_checks_total",
			Help:      "Total number of answer verifications by outcome",
		},
		[]string{"result"},
	)

	m.verificationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "verification_latency_milliseconds",
		Help:      "Histogram of answer verification latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total number of game sessions started",
	})

	m.sessionsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_completed_total",
		Help:      "Total number of game sessions completed",
	})

	m.sessionsAbandoned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_abandoned_total",
		Help:      "Total number of game sessions abandoned",
	})

	m.roundsAdvanced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_advanced_total",
		Help:      "Total number of rounds played across all sessions",
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Number of live game sessions (0 or 1 per process)",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Number of players in the live session",
	})

	m.sourceFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "source_failures_total",
			Help:      "Total number of candidate-source failures by provider",
		},
		[]string{"provider"},
	)

	m.persistenceErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_errors_total",
		Help:      "Total number of best-effort persistence write failures",
	})

	m.persistenceDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "persistence_queue_depth",
		Help:      "Pending writes in the write-behind persistence queue",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordAnswerCheck increments the verification counter for an outcome
// ("found", "not_found", or "error").
func RecordAnswerCheck(result string) {
	globalManager.answerChecks.WithLabelValues(result).Inc()
}

// RecordVerificationLatency records verification latency in milliseconds.
func RecordVerificationLatency(latencyMs float64) {
	globalManager.verificationLatency.Observe(latencyMs)
}

// RecordSessionStarted increments the sessions started counter.
func RecordSessionStarted() {
	globalManager.sessionsStarted.Inc()
}

// RecordSessionCompleted increments the sessions completed counter.
func RecordSessionCompleted() {
	globalManager.sessionsCompleted.Inc()
}

// RecordSessionAbandoned increments the sessions abandoned counter.
func RecordSessionAbandoned() {
	globalManager.sessionsAbandoned.Inc()
}

// RecordRoundAdvanced increments the rounds counter.
func RecordRoundAdvanced() {
	globalManager.roundsAdvanced.Inc()
}

// UpdateActiveSessions sets the live session gauge.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// UpdateRosterSize sets the roster size gauge.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// RecordSourceFailure increments the source failure counter for a provider.
func RecordSourceFailure(provider string) {
	globalManager.sourceFailures.WithLabelValues(provider).Inc()
}

// RecordPersistenceError increments the persistence failure counter.
func RecordPersistenceError() {
	globalManager.persistenceErrors.Inc()
}

// UpdatePersistenceDepth sets the write-behind queue depth gauge.
func UpdatePersistenceDepth(depth int) {
	globalManager.persistenceDepth.Set(float64(depth))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
