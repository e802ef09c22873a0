// Package metrics provides Prometheus metrics for the role matching service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the matching service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Assessment Metrics - the business core
	sessionsStarted      prometheus.Counter
	answersSaved         prometheus.Counter
	assessmentsCompleted prometheus.Counter
	scoringDuration      prometheus.Histogram
	eliminatedRoles      prometheus.Histogram
	replayErrors         prometheus.Counter

	// Catalog Metrics - admin-maintained sheet health
	catalogReloads     prometheus.Counter
	catalogRoles       prometheus.Gauge
	catalogRowsSkipped prometheus.Counter
	roleLinks          prometheus.Gauge

	// Store Metrics
	storeErrors prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
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
		namespace:        "rolematch",
		subsystem:        "assessment",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
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

	m.sessionsStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Total number of assessment sessions started",
	})

	m.answersSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "answers_saved_total",
		Help:      "Total number of questionnaire answers saved",
	})

	m.assessmentsCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assessments_completed_total",
		Help:      "Total number of assessments submitted and ranked",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Histogram of answer replay and ranking duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.eliminatedRoles = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "eliminated_roles_per_assessment",
		Help:      "Histogram of roles eliminated per completed assessment",
		Buckets:   prometheus.LinearBuckets(0, 5, 10),
	})

	m.replayErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replay_errors_total",
		Help:      "Total number of stored answers skipped during replay",
	})

	m.catalogReloads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_reloads_total",
		Help:      "Total number of role catalog reloads",
	})

	m.catalogRoles = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_roles",
		Help:      "Number of roles in the active catalog",
	})

	m.catalogRowsSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "catalog_rows_skipped_total",
		Help:      "Total number of malformed catalog rows skipped on load",
	})

	m.roleLinks = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "role_links",
		Help:      "Number of roles with published links",
	})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of session store errors",
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

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current system memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// RecordSessionStarted increments the sessions started counter.
func RecordSessionStarted() {
	globalManager.sessionsStarted.Inc()
}

// RecordAnswerSaved increments the answers saved counter.
func RecordAnswerSaved() {
	globalManager.answersSaved.Inc()
}

// RecordAssessmentCompleted increments the completed assessments counter.
func RecordAssessmentCompleted() {
	globalManager.assessmentsCompleted.Inc()
}

// RecordScoringDuration records replay and ranking duration in milliseconds.
func RecordScoringDuration(ms float64) {
	globalManager.scoringDuration.Observe(ms)
}

// RecordEliminatedRoles records how many roles an assessment eliminated.
func RecordEliminatedRoles(count int) {
	globalManager.eliminatedRoles.Observe(float64(count))
}

// RecordReplayError increments the replay error counter.
func RecordReplayError() {
	globalManager.replayErrors.Inc()
}

// RecordCatalogReload increments the catalog reload counter.
func RecordCatalogReload() {
	globalManager.catalogReloads.Inc()
}

// UpdateCatalogRoles sets the active catalog size.
func UpdateCatalogRoles(count int) {
	globalManager.catalogRoles.Set(float64(count))
}

// RecordCatalogRowsSkipped adds to the skipped row counter.
func RecordCatalogRowsSkipped(count int) {
	globalManager.catalogRowsSkipped.Add(float64(count))
}

// UpdateRoleLinks sets the number of roles with published links.
func UpdateRoleLinks(count int) {
	globalManager.roleLinks.Set(float64(count))
}

// RecordStoreError increments the store error counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
