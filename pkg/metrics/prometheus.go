// Package metrics provides Prometheus metrics for the swimsplit analysis service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Core analysis metrics
	racesAnalyzed       prometheus.Counter
	analysisFailures    prometheus.Counter
	boundaryFallbacks   prometheus.Counter
	analysisDurationSec prometheus.Histogram
	lapsPerRace         prometheus.Histogram

	// Persistence metrics
	racesStored       prometheus.Gauge
	persistenceErrors prometheus.Counter

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
		namespace:        "swimsplit",
		subsystem:        "analysis",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.racesAnalyzed = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "races_analyzed_total",
		Help:        "Total number of races successfully analyzed.",
		ConstLabels: prometheus.Labels(m.customLabels),
	})
	m.analysisFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "failures_total",
		Help:        "Total number of analyses aborted by fatal input errors.",
		ConstLabels: prometheus.Labels(m.customLabels),
	})
	m.boundaryFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "boundary_fallbacks_total",
		Help:        "Total number of analyses that degraded to a boundary fallback.",
		ConstLabels: prometheus.Labels(m.customLabels),
	})
	m.analysisDurationSec = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_seconds",
		Help:        "Wall time of one full race analysis.",
		Buckets:     m.histogramBuckets,
		ConstLabels: prometheus.Labels(m.customLabels),
	})
	m.lapsPerRace = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "laps_per_race",
		Help:        "Distribution of detected lap counts.",
		Buckets:     []float64{1, 2, 4, 8, 16, 32, 64},
		ConstLabels: prometheus.Labels(m.customLabels),
	})

	m.racesStored = factory.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        "races",
		Help:        "Number of races currently persisted.",
		ConstLabels: prometheus.Labels(m.customLabels),
	})
	m.persistenceErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "store",
		Name:        "errors_total",
		Help:        "Total number of persistence failures.",
		ConstLabels: prometheus.Labels(m.customLabels),
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "Total HTTP requests by endpoint, method and status.",
		ConstLabels: prometheus.Labels(m.customLabels),
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_ms",
		Help:        "HTTP request duration in milliseconds.",
		Buckets:     []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: prometheus.Labels(m.customLabels),
	}, []string{"endpoint", "method", "status"})
}

// RecordRaceAnalyzed increments the successful-analysis counter.
func RecordRaceAnalyzed() {
	if globalManager.enabled {
		globalManager.racesAnalyzed.Inc()
	}
}

// RecordAnalysisFailure increments the fatal-failure counter.
func RecordAnalysisFailure() {
	if globalManager.enabled {
		globalManager.analysisFailures.Inc()
	}
}

// RecordBoundaryFallback increments the degraded-detection counter.
func RecordBoundaryFallback() {
	if globalManager.enabled {
		globalManager.boundaryFallbacks.Inc()
	}
}

// RecordAnalysisDuration observes one analysis wall time in seconds.
func RecordAnalysisDuration(seconds float64) {
	if globalManager.enabled {
		globalManager.analysisDurationSec.Observe(seconds)
	}
}

// RecordLapCount observes the detected lap count of one race.
func RecordLapCount(laps int) {
	if globalManager.enabled {
		globalManager.lapsPerRace.Observe(float64(laps))
	}
}

// UpdateRacesStored sets the persisted-race gauge.
func UpdateRacesStored(count int) {
	if globalManager.enabled {
		globalManager.racesStored.Set(float64(count))
	}
}

// RecordPersistenceError increments the persistence-failure counter.
func RecordPersistenceError() {
	if globalManager.enabled {
		globalManager.persistenceErrors.Inc()
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
	}
}

// GetRegistry returns the registry backing the global manager, for
// promhttp exposure.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
