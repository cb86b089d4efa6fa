package render

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/ratelimit"
)

const (
	scopesContextKey = "restcore.throttleScopes"
	userContextKey   = "restcore.userID"
	startContextKey  = "restcore.startTime"
)

// SetScopes records the throttle scopes configured for the current route.
func SetScopes(c *gin.Context, scopes []ratelimit.Scope) {
	c.Set(scopesContextKey, scopes)
}

// ScopesFrom returns the throttle scopes configured for the current route,
// or nil when none were set.
func ScopesFrom(c *gin.Context) []ratelimit.Scope {
	value, okGet := c.Get(scopesContextKey)
	if !okGet {
		return nil
	}
	scopes, okCast := value.([]ratelimit.Scope)
	if !okCast {
		return nil
	}
	return scopes
}

// SetUserID records the authenticated user identity for throttle keying.
// Auth middleware calls this; anonymous requests never do.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userContextKey, userID)
}

// ClientFrom derives the throttle client identity for the current request.
func ClientFrom(c *gin.Context) ratelimit.Client {
	return ratelimit.Client{
		RemoteAddr: c.ClientIP(),
		UserID:     c.GetString(userContextKey),
	}
}

// SetStart records the instant request handling began.
func SetStart(c *gin.Context, start time.Time) {
	c.Set(startContextKey, start)
}

// StartFrom returns the recorded request start instant; ok is false when the
// response-time middleware did not run.
func StartFrom(c *gin.Context) (time.Time, bool) {
	value, okGet := c.Get(startContextKey)
	if !okGet {
		return time.Time{}, false
	}
	start, okCast := value.(time.Time)
	if !okCast || start.IsZero() {
		return time.Time{}, false
	}
	return start, true
}
