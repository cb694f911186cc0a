package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for cache operations.
var (
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_cache_hits_total",
		Help: "Total cache hits by freshness (fresh, stale)",
	}, []string{"freshness"})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_cache_misses_total",
		Help: "Total cache misses (absent or expired on a fresh-only read)",
	})

	redisHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_redis_cache_hits_total",
		Help: "Total second-level Redis cache hits",
	})

	redisMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hn_redis_cache_misses_total",
		Help: "Total second-level Redis cache misses",
	})

	redisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hn_redis_cache_errors_total",
		Help: "Total second-level Redis cache errors by operation",
	}, []string{"operation"})
)
