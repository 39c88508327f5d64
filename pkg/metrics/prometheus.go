// Package metrics provides Prometheus metrics for the CourtPulse service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Refresh cycle metrics.
	refreshCycles   prometheus.Counter
	refreshFailures prometheus.Counter
	refreshDuration prometheus.Histogram

	// Engine metrics.
	engineDuration prometheus.Histogram
	alertsEmitted  *prometheus.CounterVec
	activeAlerts   prometheus.Gauge
	gamesTracked   prometheus.Gauge
	playersTracked prometheus.Gauge

	// Feed metrics.
	feedRequests    *prometheus.CounterVec
	feedFallbacks   prometheus.Counter
	cacheServes     prometheus.Counter
	snapshotAgeSecs prometheus.Gauge

	// Sink metrics.
	sinkWrites   prometheus.Counter
	sinkErrors   prometheus.Counter
	sinkDuration prometheus.Histogram

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry so the default Go collectors do not leak into our exposition.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtpulse",
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
	factory := promauto.With(m.registry)

	m.refreshCycles = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "refresh_cycles_total",
		Help:      "Number of completed data refresh cycles.",
	})
	m.refreshFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "refresh_failures_total",
		Help:      "Number of refresh cycles that produced no snapshot.",
	})
	m.refreshDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "refresh_duration_seconds",
		Help:      "Wall time of a full refresh cycle (fetch plus evaluation).",
		Buckets:   m.histogramBuckets,
	})

	m.engineDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "engine_duration_seconds",
		Help:      "Time spent in the alert engine per snapshot.",
		Buckets:   m.histogramBuckets,
	})
	m.alertsEmitted = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "alerts_emitted_total",
		Help:      "Ranked alerts emitted, by severity tier and stat category.",
	}, []string{"severity", "category"})
	m.activeAlerts = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "active_alerts",
		Help:      "Number of alerts in the latest ranked set.",
	})
	m.gamesTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "games_tracked",
		Help:      "Games present in the latest snapshot.",
	})
	m.playersTracked = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "players_tracked",
		Help:      "Player box scores present in the latest snapshot.",
	})

	m.feedRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_requests_total",
		Help:      "Upstream feed requests, by provider and outcome.",
	}, []string{"provider", "outcome"})
	m.feedFallbacks = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "feed_fallbacks_total",
		Help:      "Times the provider chain fell back past the primary feed.",
	})
	m.cacheServes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "snapshot_cache_serves_total",
		Help:      "Refreshes served from the cached last-good snapshot.",
	})
	m.snapshotAgeSecs = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "snapshot_age_seconds",
		Help:      "Age of the snapshot behind the current alert set.",
	})

	m.sinkWrites = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sink_writes_total",
		Help:      "Alert batches written to the sink.",
	})
	m.sinkErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "sink_errors_total",
		Help:      "Failed alert sink writes.",
	})
	m.sinkDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "sink_write_duration_seconds",
		Help:      "Time spent writing an alert batch to the sink.",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency, by endpoint and method.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_memory_bytes",
		Help:      "Currently allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "system_goroutines",
		Help:      "Current goroutine count.",
	})
}

// GetRegistry returns the registry backing the global manager, for the
// Prometheus exposition handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordRefreshCycle counts one completed refresh and its duration.
func RecordRefreshCycle(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshCycles.Inc()
	globalManager.refreshDuration.Observe(seconds)
}

// RecordRefreshFailure counts a refresh that yielded no snapshot at all.
func RecordRefreshFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.refreshFailures.Inc()
}

// RecordEngineDuration observes one engine invocation.
func RecordEngineDuration(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.engineDuration.Observe(seconds)
}

// RecordAlertEmitted counts a ranked alert by severity and category.
func RecordAlertEmitted(severity, category string) {
	if !globalManager.enabled {
		return
	}
	globalManager.alertsEmitted.WithLabelValues(severity, category).Inc()
}

// UpdateActiveAlerts sets the size of the latest ranked set.
func UpdateActiveAlerts(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.activeAlerts.Set(float64(n))
}

// UpdateSnapshotCounts sets the games/players gauges for the latest snapshot.
func UpdateSnapshotCounts(games, players int) {
	if !globalManager.enabled {
		return
	}
	globalManager.gamesTracked.Set(float64(games))
	globalManager.playersTracked.Set(float64(players))
}

// RecordFeedRequest counts an upstream request with outcome "ok" or "error".
func RecordFeedRequest(provider, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.feedRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordFeedFallback counts a fallback past the primary provider.
func RecordFeedFallback() {
	if !globalManager.enabled {
		return
	}
	globalManager.feedFallbacks.Inc()
}

// RecordCacheServe counts a refresh answered from the cached snapshot.
func RecordCacheServe() {
	if !globalManager.enabled {
		return
	}
	globalManager.cacheServes.Inc()
}

// UpdateSnapshotAge sets the age of the snapshot behind the alert set.
func UpdateSnapshotAge(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.snapshotAgeSecs.Set(seconds)
}

// RecordSinkWrite counts a successful batch write and its duration.
func RecordSinkWrite(seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.sinkWrites.Inc()
	globalManager.sinkDuration.Observe(seconds)
}

// RecordSinkError counts a failed sink write.
func RecordSinkError() {
	if !globalManager.enabled {
		return
	}
	globalManager.sinkErrors.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request's latency.
func RecordHTTPRequestDuration(endpoint, method string, seconds float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(seconds)
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.systemGoroutineCount.Set(float64(n))
}
