// Package metrics documents the Prometheus metrics exposed by this module.
// Metrics are defined with promauto in the packages that own them, so they
// register themselves against the default registry; this package only
// provides the reference.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the registerer used by every metric in this module.
var Registry = prometheus.DefaultRegisterer

// Request metrics (pkg/client):
//   - hn_requests_total{endpoint, status} (Counter): upstream requests by
//     endpoint kind (list, item) and outcome
//   - hn_request_duration_seconds{endpoint} (Histogram): request duration
//   - hn_retries_total{error_class} (Counter): retry attempts
//   - hn_retry_exhausted_total (Counter): fetches that used up all retries
//   - hn_stale_served_total (Counter): fetches answered from stale cache
//   - hn_dedup_joins_total (Counter): callers that joined an in-flight fetch
//
// Cache metrics (pkg/cache):
//   - hn_cache_hits_total{freshness} (Counter): hits by fresh/stale
//   - hn_cache_misses_total (Counter): misses on fresh-only reads
//   - hn_redis_cache_hits_total / hn_redis_cache_misses_total (Counter)
//   - hn_redis_cache_errors_total{operation} (Counter)
//
// Rate limit metrics (pkg/ratelimit):
//   - hn_permits_in_flight (Gauge): permits currently held
//   - hn_permit_acquire_cancelled_total (Counter): abandoned acquisitions
//
// Example queries:
//
//   # Cache hit rate
//   sum(rate(hn_cache_hits_total[5m])) /
//   (sum(rate(hn_cache_hits_total[5m])) + sum(rate(hn_cache_misses_total[5m])))
//
//   # Degraded-mode indicator
//   rate(hn_stale_served_total[5m]) > 0
//
//   # P95 request latency
//   histogram_quantile(0.95, rate(hn_request_duration_seconds_bucket[5m]))
