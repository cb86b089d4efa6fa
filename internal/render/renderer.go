package render

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rest-core/restcore/internal/ratelimit"
)

// Renderer assembles enveloped responses. Each write inspects the throttle
// state once (read-only) to populate meta.rate_limits and the X-Throttle-*
// headers, and stamps the measured response time when the timing middleware
// recorded a start instant.
type Renderer struct {
	inspector *ratelimit.Inspector
	docURL    string
	nowFn     func() time.Time
}

// NewRenderer constructs a Renderer. docURL is surfaced verbatim in the
// envelope meta; empty becomes "N/A".
func NewRenderer(inspector *ratelimit.Inspector, docURL string) *Renderer {
	return &Renderer{inspector: inspector, docURL: docURL, nowFn: time.Now}
}

// Success writes a succeeded envelope with data as the payload. A 204 status
// writes headers only, no body.
func (r *Renderer) Success(c *gin.Context, statusCode int, message string, data any) {
	r.write(c, statusCode, message, data, nil)
}

// Error writes a failed envelope carrying errs in the errors field.
func (r *Renderer) Error(c *gin.Context, statusCode int, message string, errs any) {
	r.write(c, statusCode, message, nil, errs)
}

// RateLimited writes the standardized rate-limit-exceeded envelope: HTTP 429
// with the rejection detail and retry_after seconds in the data field.
func (r *Renderer) RateLimited(c *gin.Context, rejection *ratelimit.Rejection) {
	if rejection == nil {
		return
	}
	detail := RateLimitDetail{
		Detail:     "Too many requests. Please try again later.",
		RetryAfter: rejection.RetryAfter,
	}
	r.write(c, http.StatusTooManyRequests, "You have exceeded the rate limit.", detail, nil)
}

func (r *Renderer) write(c *gin.Context, statusCode int, message string, data any, errs any) {
	now := r.nowFn().UTC()
	if message == "" {
		message = http.StatusText(statusCode)
	}

	meta := Meta{
		ResponseTime:     "N/A",
		RequestID:        uuid.NewString(),
		Timestamp:        now.Format(time.RFC3339Nano),
		DocumentationURL: r.docURL,
		RateLimits:       ratelimit.Details{Throttles: map[string]ratelimit.ThrottleUsage{}},
	}
	if meta.DocumentationURL == "" {
		meta.DocumentationURL = "N/A"
	}
	if start, okStart := StartFrom(c); okStart {
		elapsed := fmt.Sprintf("%.6f seconds", now.Sub(start).Seconds())
		meta.ResponseTime = elapsed
		c.Header("X-Response-Time", elapsed)
	}

	if r.inspector != nil {
		result := r.inspector.Inspect(c.Request.Context(), ClientFrom(c), ScopesFrom(c), now)
		details, headers := ratelimit.Present(result)
		for _, header := range headers {
			c.Header(header.Key, header.Value)
		}
		meta.RateLimits = details
	}

	if statusCode == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		c.Writer.WriteHeaderNow()
		return
	}

	status := StatusFailed
	if statusCode >= 200 && statusCode < 300 {
		status = StatusSucceeded
	}

	c.JSON(statusCode, Envelope{
		Status:     status,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Errors:     errs,
		Meta:       meta,
	})
}
