package cache

import "time"

// entry is a single cached value with its insertion time and TTL.
// insertedAt comes from time.Now() and therefore carries Go's monotonic
// clock reading; freshness is immune to wall-clock adjustments.
type entry[V any] struct {
	value      V
	insertedAt time.Time
	ttl        time.Duration
}

// fresh reports whether the entry is still within its TTL.
func (e entry[V]) fresh() bool {
	return time.Since(e.insertedAt) < e.ttl
}

// age returns how long ago the entry was inserted.
func (e entry[V]) age() time.Duration {
	return time.Since(e.insertedAt)
}
