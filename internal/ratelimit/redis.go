package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps request histories in Redis so every process instance
// observes the same per-identity state. Histories are stored as JSON arrays
// of Unix-second timestamps and expire with the scope window.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a RedisStore.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: strings.TrimSpace(prefix),
	}
}

// Get fetches and decodes the history stored under key. A missing key is an
// empty history, not an error.
func (s *RedisStore) Get(ctx context.Context, key string) ([]float64, error) {
	if key == "" || s == nil || s.client == nil {
		return nil, nil
	}
	raw, errGet := s.client.Get(ctx, s.buildKey(key)).Result()
	if errors.Is(errGet, redis.Nil) {
		return nil, nil
	}
	if errGet != nil {
		return nil, errGet
	}
	var history []float64
	if errUnmarshal := json.Unmarshal([]byte(raw), &history); errUnmarshal != nil {
		return nil, fmt.Errorf("throttle redis: decode history: %w", errUnmarshal)
	}
	return history, nil
}

// Set encodes and stores history under key with the given TTL.
func (s *RedisStore) Set(ctx context.Context, key string, history []float64, ttl time.Duration) error {
	if key == "" || s == nil || s.client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	payload, errMarshal := json.Marshal(history)
	if errMarshal != nil {
		return fmt.Errorf("throttle redis: encode history: %w", errMarshal)
	}
	return s.client.Set(ctx, s.buildKey(key), payload, ttl).Err()
}

func (s *RedisStore) buildKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
