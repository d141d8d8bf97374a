package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOpDuration tracks entity store calls, simulated latency included
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crewplan_store_op_duration_seconds",
			Help:    "Entity store operation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"operation", "collection", "status"},
	)

	// HTTPRequestDuration tracks API request latency
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crewplan_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	// GestureOutcomes counts finished timeline gestures
	GestureOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crewplan_gesture_outcomes_total",
			Help: "Timeline drag/drop gestures by outcome",
		},
		[]string{"outcome"}, // committed, cancelled, failed
	)
)

// RecordStoreOp records one store call
func RecordStoreOp(operation, collection string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	StoreOpDuration.WithLabelValues(operation, collection, status).Observe(duration.Seconds())
}

// RecordHTTPRequestDuration records one API request
func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// IncrementGestureOutcome counts a finished gesture
func IncrementGestureOutcome(outcome string) {
	GestureOutcomes.WithLabelValues(outcome).Inc()
}
