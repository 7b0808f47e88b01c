package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	ExtractionLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "extraction_latency_seconds",
			Help:    "Latency of one task extraction (remote call included)",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
	)

	// outcome: remote | fallback | cache
	ExtractionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_count",
			Help: "Total number of task extractions by outcome",
		},
		[]string{"outcome"},
	)

	TaskCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_operations_count",
			Help: "Total number of task operations",
		},
		[]string{"operation"}, // create, status, delete
	)
)
