package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Store metrics
	storeOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_store_operations_total",
			Help: "Store operations by driver, operation and outcome",
		},
		[]string{"driver", "operation", "outcome"},
	)

	storeOpTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainactivity_store_operation_duration_seconds",
			Help:    "Duration of store operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"driver", "operation"},
	)

	// Scan metrics
	ChainHead = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainactivity_chain_head_block",
			Help: "Latest block number reported by the node when a range was resolved",
		},
	)

	BlocksScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainactivity_blocks_scanned_total",
			Help: "Total number of blocks whose logs were fetched",
		},
	)

	LogsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chainactivity_logs_fetched_total",
			Help: "Total number of logs returned by eth_getLogs",
		},
	)

	PerLogFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_log_failures_total",
			Help: "Total number of logs skipped, by the stage that failed",
		},
		[]string{"stage"},
	)

	EventsNormalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_events_normalized_total",
			Help: "Total number of normalized events by resolved name",
		},
		[]string{"event"},
	)

	Attributions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_attributions_total",
			Help: "Event to address attributions by backend and outcome (added, duplicate)",
		},
		[]string{"backend", "outcome"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chainactivity_scan_duration_seconds",
			Help:    "Duration of complete scans",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 12), //nolint:mnd
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainactivity_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainactivity_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainactivity_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainactivity_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

// StoreOpObserve records one store operation. A nil err counts as "ok".
func StoreOpObserve(driver, operation string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	storeOps.WithLabelValues(driver, operation, outcome).Inc()
	storeOpTime.WithLabelValues(driver, operation).Observe(duration.Seconds())
}

func ChainHeadSet(blockNum uint64) {
	ChainHead.Set(float64(blockNum))
}

func BlocksScannedInc(count uint64) {
	BlocksScanned.Add(float64(count))
}

func LogsFetchedInc(count int) {
	LogsFetched.Add(float64(count))
}

func PerLogFailureInc(stage string) {
	PerLogFailures.WithLabelValues(stage).Inc()
}

func EventNormalizedInc(name string) {
	EventsNormalized.WithLabelValues(name).Inc()
}

func AttributionsInc(backend string, added, duplicate int) {
	Attributions.WithLabelValues(backend, "added").Add(float64(added))
	Attributions.WithLabelValues(backend, "duplicate").Add(float64(duplicate))
}

func ScanDurationLog(duration time.Duration) {
	ScanDuration.Observe(duration.Seconds())
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics updates runtime system metrics.
// This should be called periodically (e.g., every 15 seconds).
func UpdateSystemMetrics() {
	// Update uptime
	Uptime.Set(time.Since(startTime).Seconds())

	// Update goroutine count
	Goroutines.Set(float64(runtime.NumGoroutine()))

	// Update memory statistics
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
