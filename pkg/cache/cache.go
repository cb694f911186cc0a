package cache

import (
	"hash/fnv"
	"sync"
	"time"
)

const defaultShards = 16

// Cache is a sharded string-keyed TTL cache. All methods are safe for
// concurrent use; reads never block other reads, and a write to one key
// only contends with operations on keys in the same shard.
type Cache[V any] struct {
	shards []*shard[V]
}

type shard[V any] struct {
	mu    sync.RWMutex
	store map[string]entry[V]
}

// New creates an empty cache.
func New[V any]() *Cache[V] {
	shards := make([]*shard[V], defaultShards)
	for i := range shards {
		shards[i] = &shard[V]{store: make(map[string]entry[V])}
	}
	return &Cache[V]{shards: shards}
}

func (c *Cache[V]) shard(key string) *shard[V] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.shards[h.Sum32()%uint32(len(c.shards))]
}

// GetFresh returns the value for key only if it has not expired.
func (c *Cache[V]) GetFresh(key string) (V, bool) {
	s := c.shard(key)
	s.mu.RLock()
	e, ok := s.store[key]
	s.mu.RUnlock()

	if !ok {
		cacheMisses.Inc()
		var zero V
		return zero, false
	}
	if !e.fresh() {
		// Expired entries are kept for GetAny; they count as misses here.
		cacheMisses.Inc()
		var zero V
		return zero, false
	}
	cacheHits.WithLabelValues("fresh").Inc()
	return e.value, true
}

// GetAny returns the value for key regardless of freshness, along with a
// flag telling whether it is still fresh. Used for stale fallback.
func (c *Cache[V]) GetAny(key string) (value V, fresh bool, ok bool) {
	s := c.shard(key)
	s.mu.RLock()
	e, ok := s.store[key]
	s.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false, false
	}
	if e.fresh() {
		cacheHits.WithLabelValues("fresh").Inc()
		return e.value, true, true
	}
	cacheHits.WithLabelValues("stale").Inc()
	return e.value, false, true
}

// Put inserts or overwrites the value for key with the given TTL.
// Last writer wins; there are no merge semantics.
func (c *Cache[V]) Put(key string, value V, ttl time.Duration) {
	s := c.shard(key)
	s.mu.Lock()
	s.store[key] = entry[V]{value: value, insertedAt: time.Now(), ttl: ttl}
	s.mu.Unlock()
}

// Len returns the number of resident entries, expired ones included.
func (c *Cache[V]) Len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.store)
		s.mu.RUnlock()
	}
	return n
}

// Clear drops every entry.
func (c *Cache[V]) Clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.store = make(map[string]entry[V])
		s.mu.Unlock()
	}
}
