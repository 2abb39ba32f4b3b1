// Package metrics provides Prometheus metrics for the event catalog service.
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

	// Seed data metrics
	seedFetches     prometheus.Counter
	seedFetchErrors prometheus.Counter
	seedEvents      prometheus.Gauge

	// Override store metrics
	storeMutations *prometheus.CounterVec
	storeErrors    prometheus.Counter
	localEvents    prometheus.Gauge
	tombstones     prometheus.Gauge

	// Notification bus metrics
	busPublishes *prometheus.CounterVec

	// Reconciliation metrics
	reconciledEvents prometheus.Gauge

	// HTTP metrics
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
		namespace:        "eventapp",
		subsystem:        "catalog",
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

	m.seedFetches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seed_fetches_total",
		Help:      "Total number of seed document fetches attempted",
	})

	m.seedFetchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seed_fetch_errors_total",
		Help:      "Total number of failed seed document fetches",
	})

	m.seedEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seed_events",
		Help:      "Number of events in the current seed snapshot",
	})

	m.storeMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_mutations_total",
		Help:      "Total number of override store mutations by kind",
	}, []string{"kind"})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of override store write failures",
	})

	m.localEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "local_events",
		Help:      "Number of locally added events in the override store",
	})

	m.tombstones = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_tombstones",
		Help:      "Number of deleted-event tombstones in the override store",
	})

	m.busPublishes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "bus_publishes_total",
		Help:      "Total number of notification bus publishes by topic",
	}, []string{"topic"})

	m.reconciledEvents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "reconciled_events",
		Help:      "Number of events in the last reconciled view",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordSeedFetch increments the seed fetch counter.
func RecordSeedFetch() {
	globalManager.seedFetches.Inc()
}

// RecordSeedFetchError increments the seed fetch error counter.
func RecordSeedFetchError() {
	globalManager.seedFetchErrors.Inc()
}

// UpdateSeedEvents sets the current seed snapshot event count.
func UpdateSeedEvents(count int) {
	globalManager.seedEvents.Set(float64(count))
}

// RecordStoreMutation increments the mutation counter for a kind, e.g.
// "add_event" or "delete_category".
func RecordStoreMutation(kind string) {
	globalManager.storeMutations.WithLabelValues(kind).Inc()
}

// RecordStoreError increments the store write failure counter.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// UpdateLocalEvents sets the locally added event count.
func UpdateLocalEvents(count int) {
	globalManager.localEvents.Set(float64(count))
}

// UpdateTombstones sets the event tombstone count.
func UpdateTombstones(count int) {
	globalManager.tombstones.Set(float64(count))
}

// RecordBusPublish increments the bus publish counter for a topic.
func RecordBusPublish(topic string) {
	globalManager.busPublishes.WithLabelValues(topic).Inc()
}

// UpdateReconciledEvents sets the reconciled view event count.
func UpdateReconciledEvents(count int) {
	globalManager.reconciledEvents.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
