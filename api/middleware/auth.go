// ABOUTME: API key authentication middleware
// ABOUTME: Checks the X-API-Key header, a Bearer token or the api_key query parameter

package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests that do not carry the configured API key.
// An empty configured key disables authentication.
func AuthMiddleware(authKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authKey == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-API-Key")
		if provided == "" {
			header := c.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				provided = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if provided == "" {
			provided = c.Query("api_key")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(authKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or missing API key",
			})
			return
		}

		c.Next()
	}
}
