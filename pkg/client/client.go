// Package client provides the resilient Hacker News fetch pipeline:
// TTL caching with stale fallback, in-flight request deduplication, a
// global admission gate, and bounded retry with exponential backoff,
// composed per request key.
package client

import (
	"context"
	"fmt"

	"github.com/chunghha/hn-client/internal/singleflight"
	"github.com/chunghha/hn-client/pkg/cache"
	"github.com/chunghha/hn-client/pkg/hn"
	"github.com/chunghha/hn-client/pkg/logging"
	"github.com/chunghha/hn-client/pkg/ratelimit"
	"github.com/chunghha/hn-client/pkg/retry"
	"github.com/rs/zerolog"
)

// Client is the concurrency-safe access layer to the Hacker News API.
// A single Client is meant to be shared by every caller in the process:
// the caches, the in-flight map, and the rate limiter only deduplicate
// and bound work when they are shared.
type Client struct {
	cfg       Config
	transport Transport
	limiter   *ratelimit.Limiter
	policy    retry.Policy

	// inflight collapses concurrent fetches of the same URL into one
	// network call; the raw body is shared and decoded per caller.
	inflight *singleflight.Group[[]byte]

	lists    *cache.Cache[[]int]
	stories  *cache.Cache[hn.Story]
	comments *cache.Cache[hn.Comment]

	// redisBodies is the optional cross-process second-level body cache.
	redisBodies *cache.RedisStore

	logger zerolog.Logger
}

// New creates a client from cfg. The configuration is copied; later
// mutation of cfg has no effect.
func New(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Client{
		cfg:       cfg,
		transport: cfg.Transport,
		limiter:   ratelimit.New(cfg.Network.RateLimitPerSecond),
		policy: retry.Policy{
			MaxRetries:   cfg.Network.MaxRetries,
			InitialDelay: cfg.Network.InitialRetryDelay,
			MaxDelay:     cfg.Network.MaxRetryDelay,
			Jitter:       cfg.Network.RetryJitter,
		},
		inflight: singleflight.New[[]byte](),
		lists:    cache.New[[]int](),
		stories:  cache.New[hn.Story](),
		comments: cache.New[hn.Comment](),
		logger:   logging.NewLogger("hn-client"),
	}
	if cfg.Redis != nil {
		c.redisBodies = cache.NewRedisStore(cfg.Redis)
	}
	return c, nil
}

// FetchStoryIDs returns the ordered story ids of the given list. stale is
// true when the ids come from an expired cache entry because the network
// is currently failing; the UI should show a degraded-mode indicator.
func (c *Client) FetchStoryIDs(ctx context.Context, kind hn.ListKind) (ids []int, stale bool, err error) {
	if !kind.Valid() {
		return nil, false, fmt.Errorf("hn: unknown list kind %q", kind)
	}
	url := hn.ListURL(c.cfg.BaseURL, kind)
	return fetchCached(ctx, c, c.lists, cache.ListKey(kind.String()), url, "list", c.cfg.ListTTL)
}

// FetchStory returns a single story by id.
func (c *Client) FetchStory(ctx context.Context, id int) (hn.Story, bool, error) {
	url := hn.ItemURL(c.cfg.BaseURL, id)
	return fetchCached(ctx, c, c.stories, cache.StoryKey(id), url, "item", c.cfg.ItemTTL)
}

// FetchComment returns a single comment by id. A story fetch and a
// comment fetch of the same id share one network call (they hit the same
// item endpoint) but decode and cache independently.
func (c *Client) FetchComment(ctx context.Context, id int) (hn.Comment, bool, error) {
	url := hn.ItemURL(c.cfg.BaseURL, id)
	return fetchCached(ctx, c, c.comments, cache.CommentKey(id), url, "item", c.cfg.ItemTTL)
}

// Limiter exposes the admission gate, mainly for tests asserting the
// permit count.
func (c *Client) Limiter() *ratelimit.Limiter {
	return c.limiter
}
