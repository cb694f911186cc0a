// Package ratelimit implements the client-side admission gate for upstream
// requests. The Hacker News API publishes no hard limits, so the budget is
// advisory: the configured requests-per-second figure is modeled as a bound
// on requests in flight rather than a paced token bucket.
package ratelimit

import (
	"context"
	"math"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Limiter bounds the number of concurrently outstanding upstream requests.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int
}

// New creates a limiter with capacity max(1, round(ratePerSecond)).
func New(ratePerSecond float64) *Limiter {
	capacity := int(math.Round(ratePerSecond))
	if capacity < 1 {
		capacity = 1
	}
	return &Limiter{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Capacity returns the configured number of permits.
func (l *Limiter) Capacity() int {
	return l.capacity
}

// Acquire blocks until a permit is available or ctx is done. When ctx wins
// the race no permit is consumed, so cancellation can never leak one.
func (l *Limiter) Acquire(ctx context.Context) (*Permit, error) {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		acquireCancelled.Inc()
		return nil, err
	}
	permitsInFlight.Inc()
	return &Permit{limiter: l}, nil
}

// TryAcquire grabs a permit without blocking. Used by tests to observe the
// available-permit count.
func (l *Limiter) TryAcquire() (*Permit, bool) {
	if !l.sem.TryAcquire(1) {
		return nil, false
	}
	permitsInFlight.Inc()
	return &Permit{limiter: l}, true
}

// Permit is a scoped unit of admission. Release is idempotent, so it is
// safe to defer it on every exit path.
type Permit struct {
	limiter *Limiter
	once    sync.Once
}

// Release returns the permit to the limiter.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.limiter.sem.Release(1)
		permitsInFlight.Dec()
	})
}
