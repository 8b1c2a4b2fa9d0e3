// Package metrics provides Prometheus metrics for the GradMatch matching service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the GradMatch service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core Matching Metrics - One computation per (project, candidate) version pair
	matchesComputed   prometheus.Counter
	matchErrors       prometheus.Counter
	matchLatency      prometheus.Histogram
	unmatchedMentions prometheus.Counter
	evidenceDropped   prometheus.Counter

	// Ranking Metrics - Whole pipeline runs
	rankingRuns        prometheus.Counter
	rankingFailures    prometheus.Counter
	rankingLatency     prometheus.Histogram
	candidatesExcluded prometheus.Counter

	// Match Cache Metrics - Hit/miss counted at the compute site, the rest
	// synced from cache snapshots
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheSize      prometheus.Gauge
	cacheCapacity  prometheus.Gauge
	cacheEvictions prometheus.Gauge
	cacheCoalesced prometheus.Gauge

	// Store Metrics - Corpus scale
	candidatesTotal prometheus.Gauge
	projectsTotal   prometheus.Gauge
	documentsTotal  prometheus.Gauge
	taxonomySkills  prometheus.Gauge

	// Warm Queue Metrics - Background precompute backlog
	warmQueueSize        prometheus.Gauge
	warmQueueCapacity    prometheus.Gauge
	warmQueueUtilization prometheus.Gauge
	warmEnqueues         prometheus.Counter
	warmDequeues         prometheus.Counter
	warmEnqueueErrors    prometheus.Counter

	// Warm Worker Metrics - Background precompute throughput
	warmWorkerCount prometheus.Gauge
	warmLatency     prometheus.Histogram
	warmErrors      prometheus.Counter

	// HTTP Performance Metrics
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
		namespace:        "gradmatch",
		subsystem:        "matching",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// RefreshInterval returns the interval gauge metrics should be resynced at.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Core Matching Metrics
	m.matchesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "matches_computed_total",
		Help:      "Total number of match results computed (cache misses that ran the scorer)",
	})

	m.matchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_errors_total",
		Help:      "Total number of match computations that failed",
	})

	m.matchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_compute_latency_milliseconds",
		Help:      "Histogram of single match computation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.unmatchedMentions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unmatched_mentions_total",
		Help:      "Total skill mentions that resolved to no taxonomy entry (vocabulary gap indicator)",
	})

	m.evidenceDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evidence_dropped_total",
		Help:      "Total evidence entries dropped for failing span validation",
	})

	// Ranking Metrics
	m.rankingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_runs_total",
		Help:      "Total number of completed ranking pipeline runs",
	})

	m.rankingFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_failures_total",
		Help:      "Total number of ranking pipeline runs that aborted",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ranking_latency_milliseconds",
		Help:      "Histogram of whole ranking run latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.candidatesExcluded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_excluded_total",
		Help:      "Total candidates excluded from rankings for scoring below the threshold",
	})

	// Match Cache Metrics
	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_hits_total",
		Help:      "Total match lookups served from the cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_misses_total",
		Help:      "Total match lookups that required a fresh computation",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_size",
		Help:      "Current number of cached match results",
	})

	m.cacheCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_capacity",
		Help:      "Maximum number of cached match results",
	})

	m.cacheEvictions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_evictions",
		Help:      "Cumulative LRU evictions as of the last cache snapshot",
	})

	m.cacheCoalesced = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "match_cache_coalesced",
		Help:      "Cumulative concurrent lookups coalesced into a shared computation as of the last cache snapshot",
	})

	// Store Metrics
	m.candidatesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "candidates_total",
		Help:      "Total number of candidate profiles in the store",
	})

	m.projectsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "projects_total",
		Help:      "Total number of project requirements in the store",
	})

	m.documentsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "documents_total",
		Help:      "Total number of source documents in the store",
	})

	m.taxonomySkills = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "taxonomy_skills",
		Help:      "Number of canonical skills in the loaded taxonomy",
	})

	// Warm Queue Metrics
	m.warmQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_queue_size",
		Help:      "Current size of the warm queue (precompute backlog indicator)",
	})

	m.warmQueueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_queue_capacity",
		Help:      "Maximum warm queue capacity",
	})

	m.warmQueueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_queue_utilization_ratio",
		Help:      "Warm queue utilization ratio (current size / capacity)",
	})

	m.warmEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_enqueue_total",
		Help:      "Total number of warm jobs enqueued",
	})

	m.warmDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_dequeue_total",
		Help:      "Total number of warm jobs dequeued",
	})

	m.warmEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_enqueue_errors_total",
		Help:      "Total number of warm jobs rejected at enqueue (queue full or closed)",
	})

	// Warm Worker Metrics
	m.warmWorkerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_worker_count",
		Help:      "Current number of warm workers (precompute capacity)",
	})

	m.warmLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_latency_milliseconds",
		Help:      "Warm job processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.warmErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warm_errors_total",
		Help:      "Total number of warm jobs that failed",
	})

	// HTTP Performance Metrics
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

// RecordMatchComputed increments the matches computed counter.
func RecordMatchComputed() {
	globalManager.matchesComputed.Inc()
}

// RecordMatchError increments the match error counter.
func RecordMatchError() {
	globalManager.matchErrors.Inc()
}

// RecordMatchLatency records single match computation latency in milliseconds.
func RecordMatchLatency(latencyMs float64) {
	globalManager.matchLatency.Observe(latencyMs)
}

// RecordUnmatchedMentions adds to the unmatched skill mention counter.
func RecordUnmatchedMentions(count int) {
	globalManager.unmatchedMentions.Add(float64(count))
}

// RecordEvidenceDropped adds to the dropped evidence counter.
func RecordEvidenceDropped(count int) {
	globalManager.evidenceDropped.Add(float64(count))
}

// RecordRankingRun increments the completed ranking runs counter.
func RecordRankingRun() {
	globalManager.rankingRuns.Inc()
}

// RecordRankingFailure increments the aborted ranking runs counter.
func RecordRankingFailure() {
	globalManager.rankingFailures.Inc()
}

// RecordRankingLatency records whole ranking run latency in milliseconds.
func RecordRankingLatency(latencyMs float64) {
	globalManager.rankingLatency.Observe(latencyMs)
}

// RecordCandidatesExcluded adds to the below-threshold exclusion counter.
func RecordCandidatesExcluded(count int) {
	globalManager.candidatesExcluded.Add(float64(count))
}

// Match Cache Metrics Functions.

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// UpdateCacheSize sets the current cached result count.
func UpdateCacheSize(size int) {
	globalManager.cacheSize.Set(float64(size))
}

// UpdateCacheCapacity sets the cache capacity.
func UpdateCacheCapacity(capacity int) {
	globalManager.cacheCapacity.Set(float64(capacity))
}

// UpdateCacheEvictions sets the cumulative eviction count from a cache snapshot.
func UpdateCacheEvictions(count int64) {
	globalManager.cacheEvictions.Set(float64(count))
}

// UpdateCacheCoalesced sets the cumulative coalesced lookup count from a cache snapshot.
func UpdateCacheCoalesced(count int64) {
	globalManager.cacheCoalesced.Set(float64(count))
}

// Store Metrics Functions.

// UpdateCandidateCount sets the total candidate profiles gauge.
func UpdateCandidateCount(count int) {
	globalManager.candidatesTotal.Set(float64(count))
}

// UpdateProjectCount sets the total project requirements gauge.
func UpdateProjectCount(count int) {
	globalManager.projectsTotal.Set(float64(count))
}

// UpdateDocumentCount sets the total source documents gauge.
func UpdateDocumentCount(count int) {
	globalManager.documentsTotal.Set(float64(count))
}

// UpdateTaxonomySkills sets the canonical taxonomy skill gauge.
func UpdateTaxonomySkills(count int) {
	globalManager.taxonomySkills.Set(float64(count))
}

// Warm Queue Metrics Functions.

// UpdateWarmQueueSize sets the current warm queue size.
func UpdateWarmQueueSize(size int) {
	globalManager.warmQueueSize.Set(float64(size))
}

// UpdateWarmQueueCapacity sets the maximum warm queue capacity.
func UpdateWarmQueueCapacity(capacity int) {
	globalManager.warmQueueCapacity.Set(float64(capacity))
}

// UpdateWarmQueueUtilization sets the warm queue utilization ratio.
func UpdateWarmQueueUtilization(utilization float64) {
	globalManager.warmQueueUtilization.Set(utilization)
}

// RecordWarmEnqueue increments the warm enqueue counter.
func RecordWarmEnqueue() {
	globalManager.warmEnqueues.Inc()
}

// RecordWarmDequeue increments the warm dequeue counter.
func RecordWarmDequeue() {
	globalManager.warmDequeues.Inc()
}

// RecordWarmEnqueueError increments the warm enqueue error counter.
func RecordWarmEnqueueError() {
	globalManager.warmEnqueueErrors.Inc()
}

// Warm Worker Metrics Functions.

// UpdateWarmWorkerCount sets the current warm worker count.
func UpdateWarmWorkerCount(count int) {
	globalManager.warmWorkerCount.Set(float64(count))
}

// RecordWarmLatency records warm job processing latency in milliseconds.
func RecordWarmLatency(latencyMs float64) {
	globalManager.warmLatency.Observe(latencyMs)
}

// RecordWarmError increments the warm job error counter.
func RecordWarmError() {
	globalManager.warmErrors.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Refresh returns the refresh interval of the global manager.
func Refresh() time.Duration {
	return globalManager.RefreshInterval()
}
