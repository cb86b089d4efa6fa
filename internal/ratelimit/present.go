package ratelimit

import (
	"fmt"
	"strconv"
	"time"
)

// ThrottleUsage is the client-facing quota view for one scope.
type ThrottleUsage struct {
	Limit      int    `json:"limit"`
	Remaining  int    `json:"remaining"`
	ResetTime  string `json:"reset_time"`
	RetryAfter string `json:"retry_after"`
}

// Details is the meta.rate_limits payload attached to enveloped responses.
type Details struct {
	ThrottledBy *string                  `json:"throttled_by"`
	Throttles   map[string]ThrottleUsage `json:"throttles"`
}

// Header is one X-Throttle-* response header pair.
type Header struct {
	Key   string
	Value string
}

// Present formats an aggregate result into envelope metadata and the
// X-Throttle-<scope>-{Limit,Remaining,Reset,Retry-After} response headers.
// Pure formatting, no state.
func Present(result AggregateResult) (Details, []Header) {
	details := Details{Throttles: make(map[string]ThrottleUsage, len(result.Scopes))}
	if result.ThrottledBy != "" {
		name := result.ThrottledBy
		details.ThrottledBy = &name
	}
	headers := make([]Header, 0, len(result.Order)*4)
	for _, name := range result.Order {
		state, okScope := result.Scopes[name]
		if !okScope {
			continue
		}
		usage := ThrottleUsage{
			Limit:      state.Limit,
			Remaining:  state.Remaining,
			ResetTime:  state.ResetAt.UTC().Format(time.RFC3339),
			RetryAfter: fmt.Sprintf("%d seconds", state.RetryAfter),
		}
		details.Throttles[name] = usage
		headers = append(headers,
			Header{Key: "X-Throttle-" + name + "-Limit", Value: strconv.Itoa(usage.Limit)},
			Header{Key: "X-Throttle-" + name + "-Remaining", Value: strconv.Itoa(usage.Remaining)},
			Header{Key: "X-Throttle-" + name + "-Reset", Value: usage.ResetTime},
			Header{Key: "X-Throttle-" + name + "-Retry-After", Value: usage.RetryAfter},
		)
	}
	return details, headers
}
