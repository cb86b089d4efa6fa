package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/ratelimit"
	"github.com/rest-core/restcore/internal/render"
)

// ErrorHandler converts handler errors into failed envelopes and layers the
// secondary throttle check on top: whenever a request errors out, the
// enforcement gate re-derives whether the client's window is exhausted and,
// if so, answers 429 with retry-after instead of the original failure. When
// the route configured no scopes the gate falls back to the anon scopes.
func ErrorHandler(renderer *render.Renderer, gate *ratelimit.Gate, anonScopes []ratelimit.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		if c.Writer.Written() {
			return
		}

		scopes := render.ScopesFrom(c)
		if len(scopes) == 0 {
			scopes = anonScopes
		}
		if gate != nil {
			rejection := gate.Check(c.Request.Context(), render.ClientFrom(c), scopes, time.Now().UTC())
			if rejection != nil {
				renderer.RateLimited(c, rejection)
				return
			}
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			statusCode = http.StatusInternalServerError
		}
		renderer.Error(c, statusCode, "", gin.H{"detail": c.Errors.Last().Error()})
	}
}
