package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for fetch pipeline operations.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_requests_total",
		Help: "Total upstream requests by endpoint kind and outcome",
	}, []string{"endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hn_request_duration_seconds",
		Help:    "Upstream request duration in seconds by endpoint kind",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	}, []string{"endpoint"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_retries_total",
		Help: "Total retry attempts by error class",
	}, []string{"error_class"})

	retryExhaustedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_retry_exhausted_total",
		Help: "Total fetches that used up their retry budget",
	})

	staleServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_stale_served_total",
		Help: "Total fetches answered from an expired cache entry",
	})

	dedupJoinsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_dedup_joins_total",
		Help: "Total callers that joined an already in-flight request",
	})
)
