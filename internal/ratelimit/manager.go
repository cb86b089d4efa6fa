package ratelimit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const redisBreakerDuration = 30 * time.Second

// StoreConfig captures the shared-cache settings for the history store.
type StoreConfig struct {
	RedisEnabled  bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// SettingsProvider supplies the latest store settings snapshot.
type SettingsProvider func() StoreConfig

// RedisClientFactory constructs a Redis client for the given options.
type RedisClientFactory func(options *redis.Options) *redis.Client

type redisConfig struct {
	addr     string
	password string
	prefix   string
	db       int
}

// StoreManager selects the best available history backend per call: Redis
// when configured and healthy, the in-memory store otherwise. Redis errors
// trip a breaker so a dead cache does not add a round trip to every request;
// during the breaker window the memory store serves, which starts empty and
// therefore behaves as the permissive "no history" degradation.
type StoreManager struct {
	provider       SettingsProvider
	nowFn          func() time.Time
	memory         *MemoryStore
	newRedisClient RedisClientFactory

	mu           sync.Mutex
	redisStore   *RedisStore
	redisCfg     redisConfig
	breakerUntil time.Time
}

// NewStoreManager constructs a StoreManager with default dependencies when nil.
func NewStoreManager(provider SettingsProvider, nowFn func() time.Time, newRedisClient RedisClientFactory) *StoreManager {
	if provider == nil {
		provider = func() StoreConfig { return StoreConfig{} }
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	if newRedisClient == nil {
		newRedisClient = redis.NewClient
	}
	return &StoreManager{
		provider:       provider,
		nowFn:          nowFn,
		memory:         NewMemoryStore(),
		newRedisClient: newRedisClient,
	}
}

// Get reads a history from the active backend.
func (m *StoreManager) Get(ctx context.Context, key string) ([]float64, error) {
	if m == nil {
		return nil, nil
	}
	if store := m.activeRedis(ctx); store != nil {
		history, errGet := store.Get(ctx, key)
		if errGet == nil {
			return history, nil
		}
		m.tripBreaker(errGet, m.nowFn())
	}
	return m.memory.Get(ctx, key)
}

// Set writes a history to the active backend.
func (m *StoreManager) Set(ctx context.Context, key string, history []float64, ttl time.Duration) error {
	if m == nil {
		return nil
	}
	if store := m.activeRedis(ctx); store != nil {
		errSet := store.Set(ctx, key, history, ttl)
		if errSet == nil {
			return nil
		}
		m.tripBreaker(errSet, m.nowFn())
	}
	return m.memory.Set(ctx, key, history, ttl)
}

func (m *StoreManager) activeRedis(ctx context.Context) *RedisStore {
	cfg := m.provider()
	if !cfg.RedisEnabled {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	now := m.nowFn()
	if m.isBreakerActive(now) {
		return nil
	}
	store, errEnsure := m.ensureRedis(ctx, cfg)
	if errEnsure != nil {
		m.tripBreaker(errEnsure, now)
		return nil
	}
	return store
}

func (m *StoreManager) isBreakerActive(now time.Time) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.breakerUntil.IsZero() {
		return false
	}
	if now.Before(m.breakerUntil) {
		return true
	}
	m.breakerUntil = time.Time{}
	return false
}

func (m *StoreManager) tripBreaker(err error, now time.Time) {
	if err == nil || m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.breakerUntil.IsZero() && now.Before(m.breakerUntil) {
		return
	}
	m.breakerUntil = now.Add(redisBreakerDuration)
	log.WithError(err).Warn("throttle: redis unavailable, falling back to memory")
}

func (m *StoreManager) ensureRedis(ctx context.Context, cfg StoreConfig) (*RedisStore, error) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("throttle redis: missing address")
	}

	nextCfg := redisConfig{
		addr:     addr,
		password: strings.TrimSpace(cfg.RedisPassword),
		prefix:   strings.TrimSpace(cfg.RedisPrefix),
		db:       cfg.RedisDB,
	}
	if nextCfg.db < 0 {
		nextCfg.db = 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.redisStore != nil && m.redisCfg == nextCfg {
		return m.redisStore, nil
	}
	if m.redisStore != nil {
		_ = m.redisStore.client.Close()
		m.redisStore = nil
	}

	client := m.newRedisClient(&redis.Options{
		Addr:     nextCfg.addr,
		Password: nextCfg.password,
		DB:       nextCfg.db,
	})
	ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if errPing := client.Ping(ctxPing).Err(); errPing != nil {
		_ = client.Close()
		return nil, errPing
	}
	m.redisStore = NewRedisStore(client, nextCfg.prefix)
	m.redisCfg = nextCfg
	return m.redisStore, nil
}
