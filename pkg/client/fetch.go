package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chunghha/hn-client/pkg/cache"
	"github.com/chunghha/hn-client/pkg/retry"
)

// fetchCached is the per-key pipeline behind every public fetch method:
// fresh cache hit, or dedup → rate limit → transport → retry → cache
// write, degrading to a stale entry when the retry budget runs out on
// transient failures. Methods cannot be generic, hence the free function.
func fetchCached[V any](ctx context.Context, c *Client, store *cache.Cache[V], key, url, endpoint string, ttl time.Duration) (V, bool, error) {
	var zero V

	if v, ok := store.GetFresh(key); ok {
		c.logger.Debug().Str("key", key).Msg("Cache hit")
		return v, false, nil
	}

	// Short-circuit before consuming a dedup slot or a permit.
	if err := ctx.Err(); err != nil {
		return zero, false, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	// Dedup at the raw-body layer, keyed by URL: a story fetch and a
	// comment fetch of the same item share the single network call.
	body, joined, err := c.inflight.Do(ctx, url, func() ([]byte, error) {
		return c.fetchRaw(ctx, url, endpoint)
	})
	if joined {
		dedupJoinsTotal.Inc()
		c.logger.Debug().Str("url", url).Msg("Joined in-flight request")
	}

	if err != nil {
		var perm *PermanentError
		var exh *ExhaustedError
		switch {
		case errors.As(err, &perm):
			// Old data must not mask a malformed response or a 4xx.
			return zero, false, err
		case errors.As(err, &exh):
			if v, _, ok := store.GetAny(key); ok {
				staleServedTotal.Inc()
				c.logger.Warn().Str("key", key).Err(err).Msg("Serving stale cache entry")
				return v, true, nil
			}
			return zero, false, err
		case isCancellation(err):
			return zero, false, fmt.Errorf("%w: %v", ErrCancelled, err)
		default:
			if v, _, ok := store.GetAny(key); ok {
				staleServedTotal.Inc()
				c.logger.Warn().Str("key", key).Err(err).Msg("Serving stale cache entry")
				return v, true, nil
			}
			return zero, false, err
		}
	}

	var v V
	if derr := json.Unmarshal(body, &v); derr != nil {
		return zero, false, &PermanentError{URL: url, Cause: fmt.Errorf("decode response: %w", derr)}
	}

	// Write before returning so a subsequent call observes a fresh hit.
	store.Put(key, v, ttl)
	return v, false, nil
}

// fetchRaw is the dedup leader's body: permit → transport → classify →
// retry with backoff. It holds a permit only for the duration of one
// network attempt and releases it on every exit path.
func (c *Client) fetchRaw(ctx context.Context, url, endpoint string) ([]byte, error) {
	start := time.Now()
	defer func() {
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	if c.redisBodies != nil {
		if body, err := c.redisBodies.Get(ctx, url); err == nil {
			return body, nil
		} else if !errors.Is(err, cache.ErrRedisMiss) {
			c.logger.Warn().Str("url", url).Err(err).Msg("Redis cache read failed")
		}
	}

	attempt := 0
	for {
		permit, err := c.limiter.Acquire(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
		}
		body, terr := c.transport.Get(ctx, url)
		permit.Release()

		if terr == nil {
			requestsTotal.WithLabelValues(endpoint, "ok").Inc()
			c.writeThrough(ctx, url, body)
			return body, nil
		}

		// Cancellation always takes priority over retrying.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}

		requestsTotal.WithLabelValues(endpoint, "error").Inc()
		class := classify(terr)
		if class == retry.Permanent {
			return nil, &PermanentError{URL: url, Cause: terr}
		}

		// A timeout with retries disabled is still a transient final
		// error: it counts as exhaustion so stale fallback applies.
		if !c.cfg.Network.RetryOnTimeout && isTimeout(terr) {
			retryExhaustedTotal.Inc()
			return nil, &ExhaustedError{URL: url, Attempts: attempt + 1, Last: terr}
		}

		backoff, ok := c.policy.Next(attempt, class)
		if !ok {
			retryExhaustedTotal.Inc()
			c.logger.Error().Str("url", url).Int("attempts", attempt+1).Err(terr).Msg("Retry budget exhausted")
			return nil, &ExhaustedError{URL: url, Attempts: attempt + 1, Last: terr}
		}

		retriesTotal.WithLabelValues(class.String()).Inc()
		c.logger.Warn().
			Str("url", url).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(terr).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		case <-time.After(backoff):
		}
		attempt++
	}
}

// writeThrough stores a fetched body in the optional Redis second level.
// Failures are logged, never surfaced: the memory cache is authoritative.
func (c *Client) writeThrough(ctx context.Context, url string, body []byte) {
	if c.redisBodies == nil {
		return
	}
	ttl := c.cfg.ItemTTL
	if ttl > c.cfg.ListTTL {
		ttl = c.cfg.ListTTL
	}
	if err := c.redisBodies.Set(ctx, url, body, ttl); err != nil {
		c.logger.Warn().Str("url", url).Err(err).Msg("Redis cache write failed")
	}
}

// isTimeout reports whether the transport failure was a timeout.
func isTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout()
}
