// Package observability holds application-level Prometheus metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// ReactionsTotal counts reaction toggle outcomes by resulting state.
	ReactionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_reactions_total",
		Help: "Total reaction toggle operations by outcome",
	}, []string{"outcome"})

	// ImagesUploaded counts stored post image attachments.
	ImagesUploaded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_images_uploaded_total",
		Help: "Total number of post images stored",
	})
)

// ObserveQuery records the latency of a database query since start.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
