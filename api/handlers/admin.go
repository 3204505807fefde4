// ABOUTME: Operational endpoints: cache stats and clearing, credential usage, service stats
// ABOUTME: Read-only except for the explicit cache clear

package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/dto/responses"
)

// GetCacheStats handles GET /api/cache/stats
func (h *Handler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, responses.OK(h.dispatcher.CacheStats()))
}

// PostCacheClear handles POST /api/cache/clear
func (h *Handler) PostCacheClear(c *gin.Context) {
	h.dispatcher.ClearCache()
	h.logger.Info("response cache cleared", map[string]interface{}{
		"client_ip": c.ClientIP(),
	})
	c.JSON(http.StatusOK, responses.OK(gin.H{"cleared": true}))
}

// GetKeyStats handles GET /api/keys/stats
func (h *Handler) GetKeyStats(c *gin.Context) {
	usages := h.dispatcher.CredentialStats()
	c.JSON(http.StatusOK, responses.OKWithCount(usages, len(usages)))
}

// GetStats handles GET /api/stats
func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"cache":          h.dispatcher.CacheStats(),
		"credentials":    h.dispatcher.CredentialStats(),
	}

	if h.requestLog != nil {
		summary, err := h.requestLog.Summarize(24 * time.Hour)
		if err != nil {
			h.logger.Error("request log summary failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			stats["requests_24h"] = summary
		}
	}

	c.JSON(http.StatusOK, responses.OK(stats))
}
