package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	history   []float64
	expiresAt time.Time
}

// MemoryStore is a process-local HistoryStore used when no shared cache is
// configured or the shared cache is unreachable.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	nowFn   func() time.Time
}

// NewMemoryStore constructs a MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*memoryEntry),
		nowFn:   time.Now,
	}
}

// Get returns the stored history for key, or nil when the key is unknown or
// its TTL has elapsed.
func (s *MemoryStore) Get(_ context.Context, key string) ([]float64, error) {
	if key == "" {
		return nil, nil
	}
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[key]
	if entry == nil {
		return nil, nil
	}
	if !now.Before(entry.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	out := make([]float64, len(entry.history))
	copy(out, entry.history)
	return out, nil
}

// Set stores history under key for ttl. Histories are copied so callers may
// keep mutating their slice.
func (s *MemoryStore) Set(_ context.Context, key string, history []float64, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = time.Second
	}
	stored := make([]float64, len(history))
	copy(stored, history)
	now := s.nowFn()

	s.mu.Lock()
	s.entries[key] = &memoryEntry{history: stored, expiresAt: now.Add(ttl)}
	s.mu.Unlock()
	return nil
}
