// Package singleflight collapses concurrent identical requests into one
// shared computation. The first caller for a key becomes the leader and
// runs the function; everyone else joins and waits for the same result.
package singleflight

import (
	"context"
	"sync"
)

// flight is one in-progress or settled computation.
type flight[V any] struct {
	settled chan struct{} // closed once value/err are published
	value   V
	err     error
}

// Group tracks in-flight computations by key. The zero value is not
// usable; create one with New. All methods are safe for concurrent use.
type Group[V any] struct {
	mu       sync.Mutex
	inflight map[string]*flight[V]
}

// New creates an empty Group.
func New[V any]() *Group[V] {
	return &Group[V]{inflight: make(map[string]*flight[V])}
}

// Do returns the result of fn for the given key, running it at most once
// across all concurrent callers. The check-and-insert is atomic under the
// group lock, so two simultaneous misses can never both become leaders.
//
// The entry is removed the moment the computation settles; a later call
// for the same key starts fresh work. joined reports whether this caller
// attached to an existing flight instead of running fn itself.
//
// Cancelling ctx in a joiner unblocks only that joiner. The leader's fn
// keeps running and still determines the result every other joiner sees;
// if the work itself must stop on cancellation, fn has to observe its own
// context.
func (g *Group[V]) Do(ctx context.Context, key string, fn func() (V, error)) (value V, joined bool, err error) {
	g.mu.Lock()
	if f, ok := g.inflight[key]; ok {
		g.mu.Unlock()
		select {
		case <-f.settled:
			return f.value, true, f.err
		case <-ctx.Done():
			var zero V
			return zero, true, ctx.Err()
		}
	}

	f := &flight[V]{settled: make(chan struct{})}
	g.inflight[key] = f
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, then remove the
	// entry so the map never accumulates settled flights.
	f.value, f.err = fn()
	close(f.settled)

	g.mu.Lock()
	delete(g.inflight, key)
	g.mu.Unlock()

	return f.value, false, f.err
}

// Len returns the number of computations currently in flight.
func (g *Group[V]) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inflight)
}
