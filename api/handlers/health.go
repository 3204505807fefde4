// ABOUTME: Health, liveness and readiness endpoints
// ABOUTME: Unauthenticated so orchestrators can probe without credentials

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// GetHealth handles GET /health
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"version":        version,
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"cache":          h.dispatcher.CacheStats(),
	})
}

// GetLive handles GET /live
func (h *Handler) GetLive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// GetReady handles GET /ready. Readiness means the credential pool still
// has quota headroom somewhere.
func (h *Handler) GetReady(c *gin.Context) {
	for _, usage := range h.dispatcher.CredentialStats() {
		if usage.CallsToday < usage.DailyQuota && usage.CallsThisHour < usage.HourlyQuota {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status": "not ready",
		"reason": "all credentials exhausted",
	})
}
