package ratelimit

import (
	"time"
)

// Kind identifies the closed set of throttle policy kinds.
type Kind int

const (
	KindAnon Kind = iota
	KindUser
	KindCustom
)

// Scope is a named rate limit policy resolved once from configuration and
// immutable for the lifetime of a request.
type Scope struct {
	Kind          Kind
	Name          string
	Limit         int
	WindowSeconds int
}

// Window returns the scope window as a duration.
func (s Scope) Window() time.Duration {
	return time.Duration(s.WindowSeconds) * time.Second
}

// Client carries the per-request identity the throttles key on. UserID is
// empty for anonymous clients.
type Client struct {
	RemoteAddr string
	UserID     string
}

// QuotaState is the live quota view for one scope, derived fresh on every
// inspection and never cached.
type QuotaState struct {
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
	Exhausted  bool
}

// AggregateResult merges quota state across all configured scopes for one
// request. ThrottledBy names the first exhausted scope in configured order,
// or is empty when no scope is exhausted. Order preserves the configured
// scope order for stable metadata and header emission.
type AggregateResult struct {
	ThrottledBy string
	Scopes      map[string]QuotaState
	Order       []string
}

// Rejection describes a rate-exceeded outcome from the enforcement gate.
type Rejection struct {
	Scope      string
	RetryAfter int
}
