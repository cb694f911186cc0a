package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the admission gate.
var (
	permitsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hn_permits_in_flight",
		Help: "Number of rate limiter permits currently held",
	})

	acquireCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_permit_acquire_cancelled_total",
		Help: "Total permit acquisitions abandoned due to cancellation",
	})
)
