// Package metrics provides Prometheus metrics for the contest arena service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Business metrics
	submissionsTotal          prometheus.Counter
	duplicateSubmissionsTotal prometheus.Counter
	contestsCreatedTotal      prometheus.Counter
	contestsSeededTotal       prometheus.Counter
	ratingDelta               prometheus.Histogram
	compositeScore            prometheus.Histogram

	// Operational gauges
	totalContests    prometheus.Gauge
	totalSubmissions prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Store metrics
	storeWriteLatency prometheus.Histogram
	storeQueryLatency prometheus.Histogram

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager on a custom registry so default Go collectors stay out.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "arena",
		subsystem:        "contest",
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

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.submissionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "submissions_total",
		Help:      "Total number of graded contest submissions recorded",
	})

	m.duplicateSubmissionsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_submissions_total",
		Help:      "Total number of rejected duplicate submission attempts",
	})

	m.contestsCreatedTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contests_created_total",
		Help:      "Total number of contests created for upcoming slots",
	})

	m.contestsSeededTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contests_seeded_total",
		Help:      "Total number of historical contests created by seeding",
	})

	m.ratingDelta = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rating_delta",
		Help:      "Distribution of applied rating changes",
		Buckets:   []float64{-45, -30, -15, -5, 0, 5, 15, 30, 45},
	})

	m.compositeScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "composite_score",
		Help:      "Distribution of composite submission scores",
		Buckets:   []float64{0, 50, 100, 150, 200, 250, 300},
	})

	m.totalContests = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "contests",
		Help:      "Current number of contests in the catalog",
	})

	m.totalSubmissions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "recorded_submissions",
		Help:      "Current number of submissions in the ledger",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}, []string{"endpoint", "method", "status"})

	m.storeWriteLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_write_duration_ms",
		Help:      "Store write duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_query_duration_ms",
		Help:      "Store query duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "memory_bytes",
		Help:      "Current allocated memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "system",
		Name:      "goroutines",
		Help:      "Current number of goroutines",
	})
}

// GetRegistry returns the registry backing the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers delegating to the global manager.

// RecordSubmission counts a successfully recorded submission.
func RecordSubmission() {
	if globalManager.enabled {
		globalManager.submissionsTotal.Inc()
	}
}

// RecordDuplicateSubmission counts a rejected duplicate attempt.
func RecordDuplicateSubmission() {
	if globalManager.enabled {
		globalManager.duplicateSubmissionsTotal.Inc()
	}
}

// RecordContestCreated counts a lazily created next-slot contest.
func RecordContestCreated() {
	if globalManager.enabled {
		globalManager.contestsCreatedTotal.Inc()
	}
}

// RecordContestsSeeded counts contests created by the seed backfill.
func RecordContestsSeeded(n int) {
	if globalManager.enabled {
		globalManager.contestsSeededTotal.Add(float64(n))
	}
}

// RecordRatingDelta observes an applied rating change.
func RecordRatingDelta(delta int) {
	if globalManager.enabled {
		globalManager.ratingDelta.Observe(float64(delta))
	}
}

// RecordCompositeScore observes a composite submission score.
func RecordCompositeScore(score int) {
	if globalManager.enabled {
		globalManager.compositeScore.Observe(float64(score))
	}
}

// UpdateTotalContests sets the catalog size gauge.
func UpdateTotalContests(n int64) {
	if globalManager.enabled {
		globalManager.totalContests.Set(float64(n))
	}
}

// UpdateTotalSubmissions sets the ledger size gauge.
func UpdateTotalSubmissions(n int64) {
	if globalManager.enabled {
		globalManager.totalSubmissions.Set(float64(n))
	}
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes an HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// RecordStoreWrite observes a store write duration.
func RecordStoreWrite(durationMs float64) {
	if globalManager.enabled {
		globalManager.storeWriteLatency.Observe(durationMs)
	}
}

// RecordStoreQuery observes a store query duration.
func RecordStoreQuery(durationMs float64) {
	if globalManager.enabled {
		globalManager.storeQueryLatency.Observe(durationMs)
	}
}

// UpdateSystemMemoryUsage sets the allocated-memory gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}
