package db

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenanceRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chainactivity_db_maintenance_runs_total",
			Help: "Post-scan maintenance runs by outcome",
		},
		[]string{"outcome"},
	)

	maintenanceStepTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chainactivity_db_maintenance_step_duration_seconds",
			Help:    "Duration of each maintenance step (wal_checkpoint, vacuum, total)",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8), //nolint:mnd
		},
		[]string{"step"},
	)

	maintenanceLastRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chainactivity_db_maintenance_last_run_timestamp",
			Help: "Unix timestamp of the last maintenance run",
		},
	)

	dbFileBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chainactivity_db_file_bytes",
			Help: "SQLite database size including WAL and SHM files, before and after maintenance",
		},
		[]string{"when"},
	)
)

func observeStep(step string, start time.Time) {
	maintenanceStepTime.WithLabelValues(step).Observe(time.Since(start).Seconds())
}

func recordRun(err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	maintenanceRuns.WithLabelValues(outcome).Inc()
	maintenanceLastRun.SetToCurrentTime()
}

func recordSize(when string, size int64) {
	dbFileBytes.WithLabelValues(when).Set(float64(size))
}
