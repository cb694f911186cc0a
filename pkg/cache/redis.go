package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisMiss indicates the requested key was not found in Redis.
var ErrRedisMiss = errors.New("cache: redis miss")

// RedisStore is an optional second-level cache for raw response bodies.
// Unlike the in-memory Cache it relies on Redis key expiry, so there is
// no stale read mode: an expired body is simply gone.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a store over an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	if client == nil {
		panic("cache: redis client cannot be nil")
	}
	return &RedisStore{redis: client, prefix: "hn:body:"}
}

// Get retrieves a raw body by key. Returns ErrRedisMiss when absent.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.redis.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			redisMisses.Inc()
			return nil, ErrRedisMiss
		}
		redisErrors.WithLabelValues("get").Inc()
		return nil, fmt.Errorf("redis get: %w", err)
	}
	redisHits.Inc()
	return body, nil
}

// Set stores a raw body with the given TTL. Non-positive TTLs are not
// stored at all.
func (s *RedisStore) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.redis.Set(ctx, s.prefix+key, body, ttl).Err(); err != nil {
		redisErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a stored body.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.prefix+key).Err(); err != nil {
		redisErrors.WithLabelValues("delete").Inc()
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
