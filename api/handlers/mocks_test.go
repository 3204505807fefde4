// ABOUTME: Test wiring for handler tests
// ABOUTME: Builds a router over a real service stack with a function-field upstream mock

package handlers

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/middleware"
	"yt-data-api/core/credentials"
	"yt-data-api/core/dispatch"
	"yt-data-api/core/ratelimit"
	"yt-data-api/core/respcache"
	"yt-data-api/core/youtube"
)

type mockUpstream struct {
	CallFunc func(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error)
}

func (m *mockUpstream) Call(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error) {
	if m.CallFunc != nil {
		return m.CallFunc(ctx, operation, params, apiKey)
	}
	return json.RawMessage(`{}`), nil
}

type mockLogger struct{}

func (m *mockLogger) Debug(string, map[string]interface{}) {}
func (m *mockLogger) Info(string, map[string]interface{})  {}
func (m *mockLogger) Warn(string, map[string]interface{})  {}
func (m *mockLogger) Error(string, map[string]interface{}) {}

func newTestRouter(t *testing.T, upstream *mockUpstream) *gin.Engine {
	t.Helper()

	pool, err := credentials.NewPool(credentials.PoolConfig{
		Keys:        []string{"test-key-aaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		Strategy:    credentials.StrategyRoundRobin,
		DailyQuota:  1000,
		HourlyQuota: 1000,
	})
	if err != nil {
		t.Fatalf("NewPool returned error: %v", err)
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		MinInterval:       time.Microsecond,
		MaxAttempts:       2,
		RetryDelay:        time.Millisecond,
		BackoffMultiplier: 2,
	}, &mockLogger{})

	cache := respcache.New(respcache.TTLConfig{
		Channel: time.Minute,
		Video:   time.Minute,
		Feed:    time.Minute,
		Default: time.Minute,
	})

	dispatcher := dispatch.NewDispatcher(upstream, pool, limiter, cache, nil, &mockLogger{}, dispatch.Config{
		MaxBatchSize: 10,
		BatchWorkers: 2,
	})

	service := youtube.NewService(dispatcher, &mockLogger{}, youtube.Config{
		MaxChannelBatch:     50,
		MaxVideoBatch:       50,
		RecentVideosDefault: 15,
	})

	handler := NewHandler(service, dispatcher, nil, &mockLogger{})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.GetHealth)
	router.GET("/ready", handler.GetReady)

	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(""))
	{
		api.GET("/channel/:handle", handler.GetChannelByHandle)
		api.GET("/channel/:handle/videos", handler.GetChannelRecentVideos)
		api.GET("/channel/:handle/rss", handler.GetChannelFeed)
		api.POST("/channels", handler.PostChannels)
		api.POST("/videos", handler.PostVideos)
		api.POST("/rss/channels", handler.PostChannelFeeds)
		api.POST("/batch", handler.PostBatch)
		api.GET("/cache/stats", handler.GetCacheStats)
		api.POST("/cache/clear", handler.PostCacheClear)
		api.GET("/keys/stats", handler.GetKeyStats)
	}
	return router
}
