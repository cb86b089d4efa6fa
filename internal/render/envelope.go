package render

import (
	"github.com/rest-core/restcore/internal/ratelimit"
)

const (
	// StatusSucceeded and StatusFailed are the two envelope status values.
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Envelope is the standardized JSON body wrapped around every API response.
// 2xx responses carry the payload in Data with Errors null; everything else
// carries the failure details in Errors with Data null.
type Envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
	Errors     any    `json:"errors"`
	Meta       Meta   `json:"meta"`
}

// Meta carries the per-response metadata block.
type Meta struct {
	ResponseTime     string            `json:"response_time"`
	RequestID        string            `json:"request_id"`
	Timestamp        string            `json:"timestamp"`
	DocumentationURL string            `json:"documentation_url"`
	RateLimits       ratelimit.Details `json:"rate_limits"`
}

// RateLimitDetail is the 429 payload carried in Envelope.Data when the
// enforcement gate rejects a request.
type RateLimitDetail struct {
	Detail     string `json:"detail"`
	RetryAfter int    `json:"retry_after"`
}
