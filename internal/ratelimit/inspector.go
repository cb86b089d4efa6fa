package ratelimit

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
)

// Inspector reports per-scope quota state without consuming any of it. It
// only reads the history store; recording attempts is the gate's job. Two
// inspections with no intervening write yield identical results.
type Inspector struct {
	store HistoryStore
}

// NewInspector constructs an Inspector over the given history store.
func NewInspector(store HistoryStore) *Inspector {
	return &Inspector{store: store}
}

// Inspect evaluates every configured scope for the client, in configured
// order, and flags the first exhausted scope as the throttling one. Scopes
// that do not apply to the client or carry no usable limit are skipped. A
// store failure counts as an empty history so responses keep flowing.
func (i *Inspector) Inspect(ctx context.Context, client Client, scopes []Scope, now time.Time) AggregateResult {
	result := AggregateResult{Scopes: make(map[string]QuotaState, len(scopes))}
	if i == nil || i.store == nil {
		return result
	}
	for _, scope := range scopes {
		key, okKey := CacheKey(scope, client)
		if !okKey {
			continue
		}
		history, errGet := i.store.Get(ctx, key)
		if errGet != nil {
			log.WithError(errGet).WithField("scope", scope.Name).Warn("throttle inspect: history unavailable, assuming empty")
			history = nil
		}
		state, okEval := Evaluate(history, scope.Limit, scope.WindowSeconds, now)
		if !okEval {
			continue
		}
		result.Scopes[scope.Name] = state
		result.Order = append(result.Order, scope.Name)
		if state.Exhausted && result.ThrottledBy == "" {
			result.ThrottledBy = scope.Name
			log.WithField("scope", scope.Name).Info("throttle inspect: request throttled")
		}
	}
	return result
}
