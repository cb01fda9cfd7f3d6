// Package metrics provides Prometheus metrics for the riskfuse scoring
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	predictionsTotal *prometheus.CounterVec
	scoringErrors    *prometheus.CounterVec
	scoringLatency   prometheus.Histogram

	// Store health metrics
	predictionStoreSize prometheus.Gauge
	errorStoreSize      prometheus.Gauge
	collaboratorUp      *prometheus.GaugeVec

	// HTTP performance metrics
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
		namespace:        "riskfuse",
		subsystem:        "scoring",
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

	m.predictionsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "predictions_total",
			Help:      "Total number of completed predictions by recommendation",
		},
		[]string{"recommendation"},
	)

	m.scoringErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total number of scoring path failures by category",
		},
		[]string{"category"},
	)

	m.scoringLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "latency_milliseconds",
		Help:      "Histogram of full scoring path latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.predictionStoreSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "prediction_events",
		Help:      "Number of prediction events currently retained in the store",
	})

	m.errorStoreSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "error_events",
		Help:      "Number of error events currently retained in the store",
	})

	m.collaboratorUp = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "collaborator_up",
			Help:      "Last-known availability of an external classifier (1 up, 0 down)",
		},
		[]string{"collaborator"},
	)

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

// RecordPrediction increments the prediction counter for a recommendation.
func RecordPrediction(recommendation string) {
	globalManager.predictionsTotal.WithLabelValues(recommendation).Inc()
}

// RecordScoringError increments the error counter for a taxonomy category.
func RecordScoringError(category string) {
	globalManager.scoringErrors.WithLabelValues(category).Inc()
}

// RecordScoringLatency records full scoring path latency in milliseconds.
func RecordScoringLatency(latencyMs float64) {
	globalManager.scoringLatency.Observe(latencyMs)
}

// UpdatePredictionStoreSize sets the retained prediction event count.
func UpdatePredictionStoreSize(size int) {
	globalManager.predictionStoreSize.Set(float64(size))
}

// UpdateErrorStoreSize sets the retained error event count.
func UpdateErrorStoreSize(size int) {
	globalManager.errorStoreSize.Set(float64(size))
}

// UpdateCollaboratorUp sets the availability gauge for a collaborator.
func UpdateCollaboratorUp(collaborator string, up bool) {
	v := 0.0
	if up {
		v = 1.0
	}
	globalManager.collaboratorUp.WithLabelValues(collaborator).Set(v)
}

// RecordHTTPRequest records an HTTP request.
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
