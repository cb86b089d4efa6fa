package ratelimit

import (
	"testing"
	"time"
)

func TestPresentEmptyResult(t *testing.T) {
	details, headers := Present(AggregateResult{})
	if details.ThrottledBy != nil {
		t.Fatalf("expected nil throttled_by, got %v", *details.ThrottledBy)
	}
	if len(details.Throttles) != 0 {
		t.Fatalf("expected empty throttles map, got %v", details.Throttles)
	}
	if len(headers) != 0 {
		t.Fatalf("expected no headers, got %v", headers)
	}
}

func TestPresentFormatsMetadataAndHeaders(t *testing.T) {
	resetAt := time.Date(2025, 1, 1, 0, 1, 0, 0, time.UTC)
	result := AggregateResult{
		ThrottledBy: "anon",
		Order:       []string{"anon"},
		Scopes: map[string]QuotaState{
			"anon": {Limit: 10, Remaining: 0, ResetAt: resetAt, RetryAfter: 42, Exhausted: true},
		},
	}

	details, headers := Present(result)
	if details.ThrottledBy == nil || *details.ThrottledBy != "anon" {
		t.Fatalf("expected throttled_by=anon, got %v", details.ThrottledBy)
	}
	usage := details.Throttles["anon"]
	if usage.Limit != 10 || usage.Remaining != 0 {
		t.Fatalf("unexpected usage: %+v", usage)
	}
	if usage.ResetTime != "2025-01-01T00:01:00Z" {
		t.Fatalf("unexpected reset_time: %q", usage.ResetTime)
	}
	if usage.RetryAfter != "42 seconds" {
		t.Fatalf("unexpected retry_after: %q", usage.RetryAfter)
	}

	want := map[string]string{
		"X-Throttle-anon-Limit":       "10",
		"X-Throttle-anon-Remaining":   "0",
		"X-Throttle-anon-Reset":       "2025-01-01T00:01:00Z",
		"X-Throttle-anon-Retry-After": "42 seconds",
	}
	if len(headers) != len(want) {
		t.Fatalf("expected %d headers, got %d", len(want), len(headers))
	}
	for _, header := range headers {
		expected, known := want[header.Key]
		if !known {
			t.Fatalf("unexpected header %q", header.Key)
		}
		if header.Value != expected {
			t.Fatalf("header %q: expected %q, got %q", header.Key, expected, header.Value)
		}
	}
}

func TestPresentKeepsConfiguredOrder(t *testing.T) {
	result := AggregateResult{
		Order: []string{"anon", "user"},
		Scopes: map[string]QuotaState{
			"anon": {Limit: 1, Remaining: 1, ResetAt: fixedNow(), RetryAfter: 60},
			"user": {Limit: 2, Remaining: 2, ResetAt: fixedNow(), RetryAfter: 60},
		},
	}
	_, headers := Present(result)
	if len(headers) != 8 {
		t.Fatalf("expected 8 headers, got %d", len(headers))
	}
	if headers[0].Key != "X-Throttle-anon-Limit" {
		t.Fatalf("expected anon headers first, got %q", headers[0].Key)
	}
	if headers[4].Key != "X-Throttle-user-Limit" {
		t.Fatalf("expected user headers second, got %q", headers[4].Key)
	}
}
