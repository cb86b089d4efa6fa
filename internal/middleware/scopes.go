package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/ratelimit"
	"github.com/rest-core/restcore/internal/render"
)

// DefaultScopes sets the throttle scopes every route starts with. Attach it
// engine-wide; route-level ThrottleScopes middleware overrides it.
func DefaultScopes(scopes []ratelimit.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		render.SetScopes(c, scopes)
		c.Next()
	}
}

// ThrottleScopes overrides the throttle scopes for the routes it wraps.
// Attach it per route or per group after the default.
func ThrottleScopes(scopes []ratelimit.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		render.SetScopes(c, scopes)
		c.Next()
	}
}
