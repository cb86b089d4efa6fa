package ratelimit

import (
	"math"
	"time"
)

// Evaluate derives the live quota figures for one scope from its request
// history. ok is false when the scope has no usable positive limit; callers
// skip such scopes silently.
func Evaluate(history []float64, limit, windowSeconds int, now time.Time) (QuotaState, bool) {
	if limit <= 0 || windowSeconds <= 0 {
		return QuotaState{}, false
	}
	surviving := Evict(history, windowSeconds, now)

	remaining := limit - len(surviving)
	if remaining < 0 {
		remaining = 0
	}

	window := time.Duration(windowSeconds) * time.Second
	var resetAt time.Time
	if len(surviving) > 0 {
		resetAt = unixTime(earliest(surviving)).Add(window)
	} else {
		resetAt = now.Add(window)
	}

	retryAfter := int(math.Ceil(resetAt.Sub(now).Seconds()))
	if retryAfter < 0 {
		retryAfter = 0
	}

	return QuotaState{
		Limit:      limit,
		Remaining:  remaining,
		ResetAt:    resetAt.UTC(),
		RetryAfter: retryAfter,
		Exhausted:  remaining == 0,
	}, true
}

// earliest returns the smallest timestamp; histories carry no ordering
// guarantee, so eviction and reset both scan every entry.
func earliest(history []float64) float64 {
	min := history[0]
	for _, entry := range history[1:] {
		if entry < min {
			min = entry
		}
	}
	return min
}
