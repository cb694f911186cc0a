// Package batch provides a bounded-parallel, order-preserving map over a
// slice of keys. It drives one fetch pipeline per key while limiting local
// fan-out; the global request budget is enforced separately by the rate
// limiter inside each pipeline.
package batch

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for a single input key. One key's failure never
// aborts its siblings; callers decide whether a partial batch is usable.
type Result[V any] struct {
	Value V
	Err   error
}

// Map applies fn to every key with at most limit invocations running at
// once. Results are returned in input order regardless of completion
// order.
//
// Cancellation is broadcast and cooperative: keys whose invocation has not
// started when ctx fires short-circuit to ctx.Err() without calling fn at
// all, while running invocations observe ctx at their own next suspension
// point.
func Map[K any, V any](ctx context.Context, keys []K, limit int, fn func(context.Context, K) (V, error)) []Result[V] {
	if limit <= 0 {
		limit = 1
	}

	start := time.Now()
	results := make([]Result[V], len(keys))

	var g errgroup.Group
	g.SetLimit(limit)

	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fn(ctx, key)
			return nil
		})
	}

	// Goroutines report through the results slice, never through the
	// group error, so Wait only synchronizes.
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Debug().
		Int("keys", len(keys)).
		Int("failed", failed).
		Int("limit", limit).
		Dur("duration", time.Since(start)).
		Msg("Batch fetch complete")

	return results
}
