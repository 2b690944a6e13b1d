package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request latency (seconds)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carena_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// Partition maintenance job runs
	PartitionJobRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carena_partition_job_runs_total",
			Help: "Total number of notification partition job invocations",
		},
		[]string{"result"}, // result: created, exists, failed
	)

	// Partition maintenance job failures, alerting target
	PartitionJobFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carena_partition_job_failures_total",
			Help: "Total number of failed notification partition job invocations",
		},
	)

	// AI completion latency (milliseconds)
	CompletionLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carena_completion_latency_ms",
			Help:    "AI completion call latency in milliseconds",
			Buckets: prometheus.ExponentialBuckets(100, 2, 10), // 100ms to ~100s
		},
		[]string{"status"},
	)

	// Notification write counter
	NotificationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carena_notifications_created_total",
			Help: "Total number of notifications persisted",
		},
		[]string{"type"},
	)
)

// RecordHTTPRequestDuration records HTTP request latency
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordCompletionLatency records AI completion call latency
func RecordCompletionLatency(status string, duration time.Duration) {
	CompletionLatency.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}
