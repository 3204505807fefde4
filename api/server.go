// ABOUTME: Gin router construction: middleware stack and route registration
// ABOUTME: Health probes stay outside authentication; everything under /api is protected

package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"yt-data-api/api/handlers"
	"yt-data-api/api/middleware"
	"yt-data-api/core/interfaces"
)

// Config holds router configuration.
type Config struct {
	// AuthKey protects /api routes when non-empty
	AuthKey string

	// CORSOrigins is the list of allowed origins, "*" for any
	CORSOrigins []string

	// RateLimit is the per-client request ceiling per window; 0 disables
	RateLimit int

	// RateWindow is the per-client rate limit window
	RateWindow time.Duration

	// CounterStore backs the per-client rate limiter
	CounterStore middleware.CounterStore
}

// NewRouter builds the gin engine with the full middleware stack.
func NewRouter(h *handlers.Handler, logger interfaces.Logger, cfg Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-API-Key")
	router.Use(cors.New(corsConfig))

	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(middleware.RequestLoggingMiddleware(logger))

	// Probes are unauthenticated and uncounted.
	router.GET("/health", h.GetHealth)
	router.GET("/live", h.GetLive)
	router.GET("/ready", h.GetReady)

	apiGroup := router.Group("/api")
	if cfg.RateLimit > 0 && cfg.RateWindow > 0 && cfg.CounterStore != nil {
		apiGroup.Use(middleware.RateLimitMiddleware(cfg.CounterStore, cfg.RateLimit, cfg.RateWindow, logger))
	}
	apiGroup.Use(middleware.AuthMiddleware(cfg.AuthKey))

	apiGroup.GET("/channel/:handle", h.GetChannelByHandle)
	apiGroup.GET("/channel/:handle/videos", h.GetChannelRecentVideos)
	apiGroup.GET("/channel/:handle/rss", h.GetChannelFeed)
	apiGroup.POST("/channels", h.PostChannels)
	apiGroup.POST("/videos", h.PostVideos)
	apiGroup.POST("/rss/channels", h.PostChannelFeeds)
	apiGroup.POST("/batch", h.PostBatch)

	apiGroup.GET("/cache/stats", h.GetCacheStats)
	apiGroup.POST("/cache/clear", h.PostCacheClear)
	apiGroup.GET("/keys/stats", h.GetKeyStats)
	apiGroup.GET("/stats", h.GetStats)

	return router
}
