package ratelimit

import (
	"context"
	"time"
)

// HistoryStore reads and writes per-identity request histories against a
// shared cache. Histories are Unix timestamps in seconds; entries expire as
// a whole via the TTL supplied on write. Get returns an empty history for
// unknown keys.
//
// The contract is plain get/set, not compare-and-swap: concurrent
// read-modify-write cycles for the same identity can undercount by a
// request or two inside one cache round trip. That is an accepted
// approximation of the sliding window, not a bug to lock around.
type HistoryStore interface {
	Get(ctx context.Context, key string) ([]float64, error)
	Set(ctx context.Context, key string, history []float64, ttl time.Duration) error
}

// Evict returns history without the entries that fell out of the window.
// Pure function; the input slice is never mutated.
func Evict(history []float64, windowSeconds int, now time.Time) []float64 {
	if len(history) == 0 {
		return nil
	}
	nowSec := unixSeconds(now)
	window := float64(windowSeconds)
	kept := make([]float64, 0, len(history))
	for _, entry := range history {
		if nowSec-entry < window {
			kept = append(kept, entry)
		}
	}
	return kept
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func unixTime(sec float64) time.Time {
	return time.Unix(0, int64(sec*float64(time.Second))).UTC()
}
