package rpc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "chainactivity"
	metricsSubsystem = "rpc"

	outcomeOK = "ok"
)

var (
	requests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "requests_total",
			Help:      "RPC requests by method and outcome (ok or the error class)",
		},
		[]string{"method", "outcome"},
	)

	latency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "RPC request latency by method",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), //nolint:mnd
		},
		[]string{"method"},
	)

	retries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "retries_total",
			Help:      "Retried attempts by operation",
		},
		[]string{"operation"},
	)
)

// observe runs a single RPC call and records its latency and outcome.
func observe(method string, call func() error) error {
	start := time.Now()
	err := call()
	latency.WithLabelValues(method).Observe(time.Since(start).Seconds())

	outcome := outcomeOK
	if err != nil {
		outcome = classify(err)
	}
	requests.WithLabelValues(method, outcome).Inc()

	return err
}

// recordFailure counts a failure detected after the call itself succeeded.
func recordFailure(method, outcome string) {
	requests.WithLabelValues(method, outcome).Inc()
}

func recordRetry(operation string) {
	retries.WithLabelValues(operation).Inc()
}
