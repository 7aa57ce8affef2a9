// Package metrics provides Prometheus metrics for the Mergington activities service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the activities service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          atomic.Bool
	registry         prometheus.Registerer

	// Roster metrics
	signups             prometheus.Counter
	removals            prometheus.Counter
	rejections          *prometheus.CounterVec
	activities          prometheus.Gauge
	participants        prometheus.Gauge
	participantsByGroup *prometheus.GaugeVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager. Metrics register on the default
// Prometheus registerer unless WithPrometheusRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "mergington",
		subsystem:        "activities",
		histogramBuckets: []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}
	m.enabled.Store(true)

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.signups = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "signups_total",
		Help:      "Total number of accepted activity signups",
	})

	m.removals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "removals_total",
		Help:      "Total number of participants removed from activities",
	})

	m.rejections = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "rejections_total",
			Help:      "Total number of rejected roster changes by operation and reason",
		},
		[]string{"operation", "reason"},
	)

	m.activities = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "activities",
		Help:      "Number of activities in the registry",
	})

	m.participants = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participants",
		Help:      "Total number of roster entries across all activities",
	})

	m.participantsByGroup = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "activity_participants",
			Help:      "Number of participants signed up for an activity",
		},
		[]string{"activity"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
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

	m.errorsByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// SetEnabled turns recording on or off. Disabled managers drop every observation.
func (m *Manager) SetEnabled(enabled bool) { m.enabled.Store(enabled) }

// Enabled reports whether the manager records observations.
func (m *Manager) Enabled() bool { return m.enabled.Load() }

// RecordSignup increments the accepted signups counter.
func (m *Manager) RecordSignup() {
	if m.Enabled() {
		m.signups.Inc()
	}
}

// RecordRemoval increments the removals counter.
func (m *Manager) RecordRemoval() {
	if m.Enabled() {
		m.removals.Inc()
	}
}

// RecordRejection counts a rejected signup or removal.
func (m *Manager) RecordRejection(operation, reason string) {
	if m.Enabled() {
		m.rejections.WithLabelValues(operation, reason).Inc()
	}
}

// UpdateActivities sets the number of activities.
func (m *Manager) UpdateActivities(count int) {
	if m.Enabled() {
		m.activities.Set(float64(count))
	}
}

// UpdateParticipants sets the total number of roster entries.
func (m *Manager) UpdateParticipants(count int) {
	if m.Enabled() {
		m.participants.Set(float64(count))
	}
}

// UpdateActivityParticipants sets the roster size of a single activity.
func (m *Manager) UpdateActivityParticipants(activity string, count int) {
	if m.Enabled() {
		m.participantsByGroup.WithLabelValues(activity).Set(float64(count))
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if m.Enabled() {
		m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if m.Enabled() {
		m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.Enabled() {
		m.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if m.Enabled() {
		m.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if m.Enabled() {
		m.systemGoroutineCount.Set(float64(count))
	}
}

// Package-level helpers delegate to the global manager.

// SetEnabled turns global metric recording on or off.
func SetEnabled(enabled bool) { globalManager.SetEnabled(enabled) }

// RecordSignup increments the accepted signups counter.
func RecordSignup() { globalManager.RecordSignup() }

// RecordRemoval increments the removals counter.
func RecordRemoval() { globalManager.RecordRemoval() }

// RecordRejection counts a rejected signup or removal.
func RecordRejection(operation, reason string) { globalManager.RecordRejection(operation, reason) }

// UpdateActivities sets the number of activities.
func UpdateActivities(count int) { globalManager.UpdateActivities(count) }

// UpdateParticipants sets the total number of roster entries.
func UpdateParticipants(count int) { globalManager.UpdateParticipants(count) }

// UpdateActivityParticipants sets the roster size of a single activity.
func UpdateActivityParticipants(activity string, count int) {
	globalManager.UpdateActivityParticipants(activity, count)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
