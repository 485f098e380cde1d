// Package metrics provides Prometheus metrics for the telemetry relay service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the relay service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ingest metrics
	batchesIngested  prometheus.Counter
	samplesAppended  prometheus.Counter
	samplesDropped   prometheus.Counter
	ingestRejected   *prometheus.CounterVec
	batchSizeSamples prometheus.Histogram
	prunedSamples    prometheus.Counter

	// Session/buffer metrics
	sessionsActive  prometheus.Gauge
	bufferedSamples prometheus.Gauge

	// Observer/broadcast metrics
	observersConnected  prometheus.Gauge
	observerConnects    prometheus.Counter
	observerDisconnects prometheus.Counter
	broadcasts          prometheus.Counter
	broadcastDrops      prometheus.Counter
	sendErrors          prometheus.Counter
	replays             prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "relay",
		subsystem:        "telemetry",
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

	m.batchesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_ingested_total",
		Help:      "Total number of batches accepted by the ingest endpoint",
	})

	m.samplesAppended = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_appended_total",
		Help:      "Total number of samples appended to window buffers",
	})

	m.samplesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "samples_dropped_total",
		Help:      "Total number of samples dropped for unparsable capture times",
	})

	m.ingestRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ingest_rejected_total",
		Help:      "Total number of rejected ingest requests by reason",
	}, []string{"reason"})

	m.batchSizeSamples = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_size_samples",
		Help:      "Distribution of valid samples per ingested batch",
		Buckets:   []float64{1, 2, 5, 10, 14, 20, 50, 100},
	})

	m.prunedSamples = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pruned_samples_total",
		Help:      "Total number of samples evicted by window pruning",
	})

	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_active",
		Help:      "Number of sessions with a live relay room",
	})

	m.bufferedSamples = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "buffered_samples",
		Help:      "Total samples currently held across all window buffers",
	})

	m.observersConnected = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observers_connected",
		Help:      "Number of currently connected observers",
	})

	m.observerConnects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observer_connects_total",
		Help:      "Total observer connections accepted",
	})

	m.observerDisconnects = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observer_disconnects_total",
		Help:      "Total observer disconnections",
	})

	m.broadcasts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "broadcasts_total",
		Help:      "Total live-update messages broadcast to the hub",
	})

	m.broadcastDrops = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "broadcast_drops_total",
		Help:      "Total per-observer messages dropped on a full send queue",
	})

	m.sendErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "send_errors_total",
		Help:      "Total failed writes to observer connections",
	})

	m.replays = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "replays_total",
		Help:      "Total replay messages sent to new observers",
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
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordBatchIngested increments the ingested batch counter and observes
// the number of valid samples the batch carried.
func RecordBatchIngested(validSamples int) {
	globalManager.batchesIngested.Inc()
	globalManager.batchSizeSamples.Observe(float64(validSamples))
}

// RecordSamplesAppended adds to the appended sample counter.
func RecordSamplesAppended(n int) {
	globalManager.samplesAppended.Add(float64(n))
}

// RecordSamplesDropped adds to the dropped (unparsable) sample counter.
func RecordSamplesDropped(n int) {
	globalManager.samplesDropped.Add(float64(n))
}

// RecordIngestRejected increments the rejected ingest counter for a reason.
func RecordIngestRejected(reason string) {
	globalManager.ingestRejected.WithLabelValues(reason).Inc()
}

// RecordPrunedSamples adds to the pruned sample counter.
func RecordPrunedSamples(n int) {
	globalManager.prunedSamples.Add(float64(n))
}

// UpdateSessionsActive sets the active session gauge.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// UpdateBufferedSamples sets the total buffered sample gauge.
func UpdateBufferedSamples(count int) {
	globalManager.bufferedSamples.Set(float64(count))
}

// UpdateObserversConnected sets the connected observer gauge.
func UpdateObserversConnected(count int) {
	globalManager.observersConnected.Set(float64(count))
}

// RecordObserverConnect increments the observer connect counter.
func RecordObserverConnect() {
	globalManager.observerConnects.Inc()
}

// RecordObserverDisconnect increments the observer disconnect counter.
func RecordObserverDisconnect() {
	globalManager.observerDisconnects.Inc()
}

// RecordBroadcast increments the broadcast counter.
func RecordBroadcast() {
	globalManager.broadcasts.Inc()
}

// RecordBroadcastDrop increments the dropped-broadcast counter.
func RecordBroadcastDrop() {
	globalManager.broadcastDrops.Inc()
}

// RecordSendError increments the failed-write counter.
func RecordSendError() {
	globalManager.sendErrors.Inc()
}

// RecordReplay increments the replay counter.
func RecordReplay() {
	globalManager.replays.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
