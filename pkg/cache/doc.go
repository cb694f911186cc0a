// Package cache provides a generic, sharded in-memory TTL cache with a
// serve-stale read mode, plus an optional Redis-backed second-level store
// for raw response bodies.
//
// Entries are never evicted on expiry; an expired entry stays readable
// through GetAny until it is overwritten. This is what enables the client's
// stale-fallback behavior when the network is failing.
package cache
