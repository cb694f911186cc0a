package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/chunghha/hn-client/pkg/hn"
	"github.com/redis/go-redis/v9"
)

// NetworkConfig holds the request pipeline tuning knobs. It is an
// immutable snapshot: the client copies it at construction and never
// re-reads it mid-flight.
type NetworkConfig struct {
	// MaxRetries is the number of retries after the initial attempt
	// (0 = no retries).
	MaxRetries int

	// InitialRetryDelay is the backoff before the first retry.
	InitialRetryDelay time.Duration

	// MaxRetryDelay caps the exponential backoff growth.
	MaxRetryDelay time.Duration

	// RetryOnTimeout controls whether timed-out requests are retried.
	RetryOnTimeout bool

	// ConcurrentRequests bounds the local fan-out of a single batch
	// call. It is independent of the rate limiter's global budget.
	ConcurrentRequests int

	// RateLimitPerSecond sizes the global admission gate. The figure is
	// modeled as max(1, round(n)) requests in flight.
	RateLimitPerSecond float64

	// RetryJitter in [0, 1] adds up to that fraction of random extra
	// backoff. Zero keeps delays deterministic.
	RetryJitter float64
}

// DefaultNetworkConfig returns the defaults used by the reader UI:
// 3 retries from 500ms up to 5s, 10-wide batches, 3 req/s.
func DefaultNetworkConfig() NetworkConfig {
	return NetworkConfig{
		MaxRetries:         3,
		InitialRetryDelay:  500 * time.Millisecond,
		MaxRetryDelay:      5 * time.Second,
		RetryOnTimeout:     true,
		ConcurrentRequests: 10,
		RateLimitPerSecond: 3.0,
	}
}

// Config holds the full client configuration.
type Config struct {
	// Network is the request pipeline configuration.
	Network NetworkConfig

	// BaseURL is the API base URL; must end with a slash.
	// Defaults to the public Hacker News API. Override in tests.
	BaseURL string

	// Transport performs the actual HTTP GET. Defaults to an
	// HTTPTransport with a 30s timeout.
	Transport Transport

	// Redis enables a second-level cache of raw response bodies shared
	// across processes. Nil disables it.
	Redis *redis.Client

	// ListTTL is the freshness window for story-ID lists.
	ListTTL time.Duration

	// ItemTTL is the freshness window for stories and comments.
	ItemTTL time.Duration
}

// DefaultConfig returns a ready-to-use configuration against the public
// API with 5-minute cache TTLs.
func DefaultConfig() Config {
	return Config{
		Network: DefaultNetworkConfig(),
		BaseURL: hn.BaseURL,
		ListTTL: 5 * time.Minute,
		ItemTTL: 5 * time.Minute,
	}
}

// validate fills defaults and rejects unusable configurations.
func (cfg *Config) validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = hn.BaseURL
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		return fmt.Errorf("base URL must end with a slash (got %q)", cfg.BaseURL)
	}
	if cfg.Transport == nil {
		cfg.Transport = NewHTTPTransport(30 * time.Second)
	}
	if cfg.ListTTL <= 0 {
		cfg.ListTTL = 5 * time.Minute
	}
	if cfg.ItemTTL <= 0 {
		cfg.ItemTTL = 5 * time.Minute
	}
	if cfg.Network.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0 (got %d)", cfg.Network.MaxRetries)
	}
	if cfg.Network.ConcurrentRequests < 1 {
		return fmt.Errorf("concurrent_requests must be >= 1 (got %d)", cfg.Network.ConcurrentRequests)
	}
	if cfg.Network.InitialRetryDelay <= 0 {
		cfg.Network.InitialRetryDelay = 500 * time.Millisecond
	}
	if cfg.Network.MaxRetryDelay < cfg.Network.InitialRetryDelay {
		cfg.Network.MaxRetryDelay = cfg.Network.InitialRetryDelay
	}
	return nil
}
