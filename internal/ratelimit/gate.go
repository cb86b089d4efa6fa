package ratelimit

import (
	"context"
	"math"
	"time"

	log "github.com/sirupsen/logrus"
)

// Gate re-checks rate limits on the failure path and records permitted
// attempts into history. It is a secondary check behind whatever primary
// enforcement ran upstream: an exhausted window is reported but never grown
// further, so repeated evaluation of the same still-exhausted window stays
// idempotent and a rejected request is not double-penalized.
type Gate struct {
	store HistoryStore
}

// NewGate constructs a Gate over the given history store.
func NewGate(store HistoryStore) *Gate {
	return &Gate{store: store}
}

// Check walks the configured scopes for the client. The first scope whose
// evicted history has reached its limit short-circuits into a Rejection with
// the seconds left until its earliest entry leaves the window; the current
// attempt is not appended on that path. Below the limit the attempt is
// recorded and the history written back with the window as TTL. Store
// failures degrade to allowing the request.
func (g *Gate) Check(ctx context.Context, client Client, scopes []Scope, now time.Time) *Rejection {
	if g == nil || g.store == nil {
		return nil
	}
	for _, scope := range scopes {
		if scope.Limit <= 0 || scope.WindowSeconds <= 0 {
			continue
		}
		key, okKey := CacheKey(scope, client)
		if !okKey {
			continue
		}
		history, errGet := g.store.Get(ctx, key)
		if errGet != nil {
			log.WithError(errGet).WithField("scope", scope.Name).Warn("throttle gate: history unavailable, allowing")
			history = nil
		}
		surviving := Evict(history, scope.WindowSeconds, now)

		if len(surviving) >= scope.Limit {
			retryAfter := scope.WindowSeconds
			if len(surviving) > 0 {
				elapsed := unixSeconds(now) - earliest(surviving)
				retryAfter = int(math.Ceil(float64(scope.WindowSeconds) - elapsed))
			}
			if retryAfter < 0 {
				retryAfter = 0
			}
			log.WithFields(log.Fields{"scope": scope.Name, "retry_after": retryAfter}).Info("throttle gate: rate limit exceeded")
			return &Rejection{Scope: scope.Name, RetryAfter: retryAfter}
		}

		surviving = append(surviving, unixSeconds(now))
		if errSet := g.store.Set(ctx, key, surviving, scope.Window()); errSet != nil {
			log.WithError(errSet).WithField("scope", scope.Name).Warn("throttle gate: history write failed")
		}
	}
	return nil
}
