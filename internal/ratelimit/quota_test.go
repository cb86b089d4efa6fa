package ratelimit

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestEvictDropsExpiredEntries(t *testing.T) {
	now := fixedNow()
	history := []float64{
		unixSeconds(now.Add(-120 * time.Second)),
		unixSeconds(now.Add(-60 * time.Second)),
		unixSeconds(now.Add(-30 * time.Second)),
		unixSeconds(now),
	}
	kept := Evict(history, 60, now)
	if len(kept) != 2 {
		t.Fatalf("expected 2 surviving entries, got %d", len(kept))
	}
	nowSec := unixSeconds(now)
	for _, entry := range kept {
		if nowSec-entry >= 60 {
			t.Fatalf("entry %v is outside the 60s window", entry)
		}
	}
	if len(history) != 4 {
		t.Fatalf("input slice mutated, len=%d", len(history))
	}
}

func TestEvictEmptyHistory(t *testing.T) {
	if kept := Evict(nil, 60, fixedNow()); len(kept) != 0 {
		t.Fatalf("expected empty result, got %v", kept)
	}
}

func TestEvaluateEmptyHistory(t *testing.T) {
	now := fixedNow()
	state, ok := Evaluate(nil, 10, 60, now)
	if !ok {
		t.Fatalf("expected ok")
	}
	if state.Remaining != 10 {
		t.Fatalf("expected remaining=10, got %d", state.Remaining)
	}
	if state.Exhausted {
		t.Fatalf("expected not exhausted")
	}
	if state.RetryAfter != 60 {
		t.Fatalf("expected retry_after=60, got %d", state.RetryAfter)
	}
	if !state.ResetAt.Equal(now.Add(60 * time.Second)) {
		t.Fatalf("expected reset at now+60s, got %v", state.ResetAt)
	}
}

func TestEvaluateRemainingAndExhausted(t *testing.T) {
	now := fixedNow()
	history := make([]float64, 0, 10)
	for i := 0; i < 10; i++ {
		history = append(history, unixSeconds(now))
	}
	state, ok := Evaluate(history, 10, 60, now)
	if !ok {
		t.Fatalf("expected ok")
	}
	if state.Remaining != 0 {
		t.Fatalf("expected remaining=0, got %d", state.Remaining)
	}
	if !state.Exhausted {
		t.Fatalf("expected exhausted")
	}
	if state.RetryAfter != 60 {
		t.Fatalf("expected retry_after=60, got %d", state.RetryAfter)
	}
}

func TestEvaluateRemainingNeverNegative(t *testing.T) {
	now := fixedNow()
	history := make([]float64, 0, 15)
	for i := 0; i < 15; i++ {
		history = append(history, unixSeconds(now))
	}
	state, ok := Evaluate(history, 10, 60, now)
	if !ok {
		t.Fatalf("expected ok")
	}
	if state.Remaining != 0 {
		t.Fatalf("expected remaining clamped to 0, got %d", state.Remaining)
	}
	if !state.Exhausted {
		t.Fatalf("expected exhausted")
	}
}

func TestEvaluateUnconfiguredLimit(t *testing.T) {
	if _, ok := Evaluate(nil, 0, 60, fixedNow()); ok {
		t.Fatalf("expected ok=false for zero limit")
	}
	if _, ok := Evaluate(nil, -5, 60, fixedNow()); ok {
		t.Fatalf("expected ok=false for negative limit")
	}
	if _, ok := Evaluate(nil, 10, 0, fixedNow()); ok {
		t.Fatalf("expected ok=false for zero window")
	}
}

func TestEvaluateResetFromEarliestEntry(t *testing.T) {
	now := fixedNow()
	earliestAt := now.Add(-40 * time.Second)
	history := []float64{
		unixSeconds(now.Add(-10 * time.Second)),
		unixSeconds(earliestAt),
		unixSeconds(now.Add(-20 * time.Second)),
	}
	state, ok := Evaluate(history, 10, 60, now)
	if !ok {
		t.Fatalf("expected ok")
	}
	if !state.ResetAt.Equal(earliestAt.Add(60 * time.Second)) {
		t.Fatalf("expected reset from earliest entry, got %v", state.ResetAt)
	}
	if state.RetryAfter != 20 {
		t.Fatalf("expected retry_after=20, got %d", state.RetryAfter)
	}
}

func TestRetryAfterMonotonicRecovery(t *testing.T) {
	start := fixedNow()
	history := []float64{unixSeconds(start)}

	previous := int(^uint(0) >> 1)
	for elapsed := 0; elapsed <= 60; elapsed += 7 {
		now := start.Add(time.Duration(elapsed) * time.Second)
		state, ok := Evaluate(history, 1, 60, now)
		if elapsed >= 60 {
			// entry evicted, fresh window
			if !ok || state.Remaining != 1 {
				t.Fatalf("expected recovered quota at +%ds, got %+v ok=%v", elapsed, state, ok)
			}
			continue
		}
		if !ok {
			t.Fatalf("expected ok at +%ds", elapsed)
		}
		if state.RetryAfter >= previous {
			t.Fatalf("retry_after did not decrease: %d -> %d at +%ds", previous, state.RetryAfter, elapsed)
		}
		previous = state.RetryAfter
	}

	atReset, ok := Evaluate(history, 1, 60, start.Add(60*time.Second))
	if !ok {
		t.Fatalf("expected ok at reset instant")
	}
	if atReset.Exhausted {
		t.Fatalf("expected quota recovered at reset instant")
	}
}
