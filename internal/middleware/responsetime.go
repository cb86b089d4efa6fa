package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rest-core/restcore/internal/render"
	log "github.com/sirupsen/logrus"
)

// ResponseTime records when handling began so the renderer can stamp the
// X-Response-Time header before the body is written, and logs the full
// request duration once handling finishes.
func ResponseTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		render.SetStart(c, start)
		c.Next()
		log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request processed")
	}
}
