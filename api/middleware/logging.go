// ABOUTME: Request logging middleware
// ABOUTME: Logs method, path, status and duration for every inbound request

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"yt-data-api/core/interfaces"
)

// RequestLoggingMiddleware logs one line per completed request.
func RequestLoggingMiddleware(logger interfaces.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"client_ip":   c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request completed", fields)
		} else {
			logger.Info("request completed", fields)
		}
	}
}
