// ABOUTME: Application entry point wiring config, logging, pipeline and HTTP server
// ABOUTME: Runs until SIGINT/SIGTERM, then shuts down gracefully

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"yt-data-api/api"
	"yt-data-api/api/handlers"
	"yt-data-api/api/middleware"
	"yt-data-api/core/credentials"
	"yt-data-api/core/dispatch"
	"yt-data-api/core/interfaces"
	"yt-data-api/core/ratelimit"
	"yt-data-api/core/respcache"
	coreyoutube "yt-data-api/core/youtube"
	httpstandard "yt-data-api/infrastructure/http/standard"
	"yt-data-api/infrastructure/logger/structured"
	sqlitelog "yt-data-api/infrastructure/requestlog/sqlite"
	upstreamyoutube "yt-data-api/infrastructure/upstream/youtube"
	"yt-data-api/pkg/config"
)

func main() {
	// Missing .env is fine; real deployments set environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := structured.NewStructuredLogger(structured.Config{
		Level:      cfg.Logging.Level,
		FilePath:   cfg.Logging.FilePath,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})

	strategy, err := credentials.ParseStrategy(cfg.Credentials.Strategy)
	if err != nil {
		logger.Error("invalid rotation strategy", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	pool, err := credentials.NewPool(credentials.PoolConfig{
		Keys:        cfg.Credentials.Keys,
		Strategy:    strategy,
		DailyQuota:  cfg.Credentials.DailyQuota,
		HourlyQuota: cfg.Credentials.HourlyQuota,
	})
	if err != nil {
		logger.Error("credential pool setup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		MinInterval:       cfg.RateLimit.MinInterval,
		MaxAttempts:       cfg.RateLimit.MaxAttempts,
		RetryDelay:        cfg.RateLimit.RetryDelay,
		BackoffMultiplier: cfg.RateLimit.BackoffMultiplier,
	}, logger)

	cache := respcache.New(respcache.TTLConfig{
		Channel: cfg.Cache.ChannelTTL,
		Video:   cfg.Cache.VideoTTL,
		Feed:    cfg.Cache.FeedTTL,
		Default: cfg.Cache.DefaultTTL,
	})

	var requestLog *sqlitelog.RequestLog
	if cfg.RequestLog.Enabled {
		requestLog, err = sqlitelog.NewRequestLog(cfg.RequestLog.Path, cfg.RequestLog.BufferSize, logger)
		if err != nil {
			logger.Error("request log setup failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		defer requestLog.Close()
	}

	httpClient := httpstandard.NewStandardHTTPClient(cfg.Upstream.HTTPTimeout)
	upstream := upstreamyoutube.NewClient(interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     logger,
	}, upstreamyoutube.Config{
		BaseURL:      cfg.Upstream.BaseURL,
		FeedBaseURL:  cfg.Upstream.FeedBaseURL,
		ChannelParts: cfg.Upstream.ChannelParts,
		VideoParts:   cfg.Upstream.VideoParts,
	})

	// A nil *RequestLog must not become a non-nil interface value.
	var requestLogSink interfaces.RequestLog
	if requestLog != nil {
		requestLogSink = requestLog
	}
	dispatcher := dispatch.NewDispatcher(upstream, pool, limiter, cache, requestLogSink, logger, dispatch.Config{
		MaxBatchSize: cfg.Batch.MaxBatchSize,
		BatchWorkers: cfg.Batch.Workers,
	})

	service := coreyoutube.NewService(dispatcher, logger, coreyoutube.Config{
		MaxChannelBatch:     cfg.Batch.MaxChannelBatch,
		MaxVideoBatch:       cfg.Batch.MaxVideoBatch,
		RecentVideosDefault: cfg.Batch.RecentVideosDefault,
	})

	counterStore := buildCounterStore(cfg, logger)

	handler := handlers.NewHandler(service, dispatcher, requestLog, logger)
	router := api.NewRouter(handler, logger, api.Config{
		AuthKey:      cfg.Server.AuthKey,
		CORSOrigins:  cfg.Server.CORSOrigins,
		RateLimit:    cfg.Server.ClientRateLimit,
		RateWindow:   cfg.Server.ClientRateWindow,
		CounterStore: counterStore,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":        cfg.Server.Port,
			"credentials": pool.Size(),
			"strategy":    pool.Strategy().String(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down", nil)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", map[string]interface{}{"error": err.Error()})
	}
}

// buildCounterStore picks the shared Redis store when configured, falling
// back to the in-process store.
func buildCounterStore(cfg *config.Config, logger interfaces.Logger) middleware.CounterStore {
	if cfg.Server.RedisAddress == "" {
		return middleware.NewMemoryCounterStore()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Server.RedisAddress,
		Password: cfg.Server.RedisPassword,
	})
	logger.Info("using redis rate limit store", map[string]interface{}{
		"address": cfg.Server.RedisAddress,
	})
	return middleware.NewRedisCounterStore(client)
}
