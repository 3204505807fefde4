// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for the server, credentials, cache and rate limiting

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Upstream contains provider API configuration
	Upstream UpstreamConfig

	// Credentials contains API key pool configuration
	Credentials CredentialsConfig

	// RateLimit contains pacing and retry configuration
	RateLimit RateLimitConfig

	// Cache contains response cache TTL configuration
	Cache CacheConfig

	// Batch contains batch processing limits
	Batch BatchConfig

	// Logging contains log output configuration
	Logging LoggingConfig

	// RequestLog contains request log database configuration
	RequestLog RequestLogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// AuthKey protects the API when non-empty
	AuthKey string

	// CORSOrigins is the list of allowed origins, "*" for any
	CORSOrigins []string

	// ClientRateLimit is the per-client request ceiling per window
	ClientRateLimit int

	// ClientRateWindow is the per-client rate limit window
	ClientRateWindow time.Duration

	// RedisAddress enables a shared rate limit counter store when non-empty
	RedisAddress string

	// RedisPassword authenticates against the counter store
	RedisPassword string

	// RequestTimeout bounds one inbound request end to end
	RequestTimeout time.Duration
}

// UpstreamConfig holds provider API configuration
type UpstreamConfig struct {
	// BaseURL is the provider API root
	BaseURL string

	// FeedBaseURL is the public video feed endpoint
	FeedBaseURL string

	// ChannelParts are the resource parts requested for channels
	ChannelParts []string

	// VideoParts are the resource parts requested for videos
	VideoParts []string

	// HTTPTimeout bounds one outbound HTTP call
	HTTPTimeout time.Duration
}

// CredentialsConfig holds API key pool configuration
type CredentialsConfig struct {
	// Keys is the ordered list of provider API keys
	Keys []string

	// Strategy is the rotation strategy name
	Strategy string

	// DailyQuota is the per-key daily call ceiling
	DailyQuota int64

	// HourlyQuota is the per-key hourly call ceiling
	HourlyQuota int64
}

// RateLimitConfig holds pacing and retry configuration
type RateLimitConfig struct {
	// MinInterval is the global minimum spacing between upstream calls
	MinInterval time.Duration

	// MaxAttempts is the total attempts per call including the first
	MaxAttempts int

	// RetryDelay is the backoff before the first retry
	RetryDelay time.Duration

	// BackoffMultiplier scales the delay per subsequent retry
	BackoffMultiplier float64
}

// CacheConfig holds response cache TTLs
type CacheConfig struct {
	// ChannelTTL is the lifetime of channel lookups
	ChannelTTL time.Duration

	// VideoTTL is the lifetime of video lookups
	VideoTTL time.Duration

	// FeedTTL is the lifetime of feed fetches
	FeedTTL time.Duration

	// DefaultTTL is the lifetime for everything else
	DefaultTTL time.Duration
}

// BatchConfig holds batch processing limits
type BatchConfig struct {
	// MaxVideoBatch caps ids per video lookup
	MaxVideoBatch int

	// MaxChannelBatch caps ids per channel lookup
	MaxChannelBatch int

	// MaxBatchSize caps requests per mixed batch
	MaxBatchSize int

	// Workers bounds concurrent batch requests
	Workers int

	// RecentVideosDefault is the default feed window for channel reports
	RecentVideosDefault int
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// FilePath enables rotated file output when non-empty
	FilePath string

	// MaxSizeMB is the rotation threshold per log file
	MaxSizeMB int

	// MaxBackups is how many rotated files to keep
	MaxBackups int

	// MaxAgeDays drops rotated files older than this
	MaxAgeDays int
}

// RequestLogConfig holds request log database configuration
type RequestLogConfig struct {
	// Enabled turns the request log on
	Enabled bool

	// Path is the SQLite database file
	Path string

	// BufferSize is the in-flight entry buffer before drops
	BufferSize int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:             getEnvOrDefault("PORT", "8080"),
			AuthKey:          os.Getenv("API_AUTH_KEY"),
			CORSOrigins:      getEnvAsListOrDefault("CORS_ORIGINS", []string{"*"}),
			ClientRateLimit:  getEnvAsIntOrDefault("CLIENT_RATE_LIMIT", 100),
			ClientRateWindow: getEnvAsDurationOrDefault("CLIENT_RATE_WINDOW", time.Hour),
			RedisAddress:     os.Getenv("REDIS_ADDRESS"),
			RedisPassword:    os.Getenv("REDIS_PASSWORD"),
			RequestTimeout:   getEnvAsDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		},
		Upstream: UpstreamConfig{
			BaseURL:      getEnvOrDefault("YOUTUBE_API_BASE_URL", "https://www.googleapis.com/youtube/v3"),
			FeedBaseURL:  getEnvOrDefault("YOUTUBE_FEED_BASE_URL", "https://www.youtube.com/feeds/videos.xml"),
			ChannelParts: getEnvAsListOrDefault("DEFAULT_CHANNEL_PARTS", []string{"contentDetails", "snippet", "statistics", "status", "topicDetails"}),
			VideoParts:   getEnvAsListOrDefault("DEFAULT_VIDEO_PARTS", []string{"contentDetails", "id", "player", "snippet", "statistics", "status", "topicDetails"}),
			HTTPTimeout:  getEnvAsDurationOrDefault("HTTP_TIMEOUT", 30*time.Second),
		},
		Credentials: CredentialsConfig{
			Keys:        getEnvAsListOrDefault("YOUTUBE_API_KEYS", nil),
			Strategy:    getEnvOrDefault("KEY_ROTATION_STRATEGY", "round_robin"),
			DailyQuota:  int64(getEnvAsIntOrDefault("KEY_DAILY_QUOTA", 10000)),
			HourlyQuota: int64(getEnvAsIntOrDefault("KEY_HOURLY_QUOTA", 1000)),
		},
		RateLimit: RateLimitConfig{
			MinInterval:       getEnvAsDurationOrDefault("MIN_REQUEST_INTERVAL", 100*time.Millisecond),
			MaxAttempts:       getEnvAsIntOrDefault("MAX_RETRIES", 3),
			RetryDelay:        getEnvAsDurationOrDefault("RETRY_DELAY", time.Second),
			BackoffMultiplier: getEnvAsFloatOrDefault("RETRY_BACKOFF_MULTIPLIER", 2.0),
		},
		Cache: CacheConfig{
			ChannelTTL: getEnvAsDurationOrDefault("CACHE_TTL_CHANNEL", 1800*time.Second),
			VideoTTL:   getEnvAsDurationOrDefault("CACHE_TTL_VIDEO", 600*time.Second),
			FeedTTL:    getEnvAsDurationOrDefault("CACHE_TTL_RSS", 300*time.Second),
			DefaultTTL: getEnvAsDurationOrDefault("DEFAULT_CACHE_TTL", 3600*time.Second),
		},
		Batch: BatchConfig{
			MaxVideoBatch:       getEnvAsIntOrDefault("MAX_VIDEO_BATCH_SIZE", 50),
			MaxChannelBatch:     getEnvAsIntOrDefault("MAX_CHANNEL_BATCH_SIZE", 50),
			MaxBatchSize:        getEnvAsIntOrDefault("MAX_BATCH_SIZE", 20),
			Workers:             getEnvAsIntOrDefault("MAX_CONCURRENT_WORKERS", 5),
			RecentVideosDefault: getEnvAsIntOrDefault("RECENT_VIDEOS_DEFAULT", 15),
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			FilePath:   getEnvOrDefault("LOG_FILE", "logs/api.log"),
			MaxSizeMB:  getEnvAsIntOrDefault("LOG_MAX_SIZE_MB", 10),
			MaxBackups: getEnvAsIntOrDefault("LOG_BACKUP_COUNT", 5),
			MaxAgeDays: getEnvAsIntOrDefault("LOG_MAX_AGE_DAYS", 28),
		},
		RequestLog: RequestLogConfig{
			Enabled:    getEnvAsBoolOrDefault("REQUEST_LOG_ENABLED", true),
			Path:       getEnvOrDefault("REQUEST_LOG_PATH", "logs/requests.db"),
			BufferSize: getEnvAsIntOrDefault("REQUEST_LOG_BUFFER", 1024),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if len(c.Credentials.Keys) == 0 {
		return errors.New("YOUTUBE_API_KEYS is required: provide at least one API key")
	}
	for i, key := range c.Credentials.Keys {
		if len(key) < 30 {
			return fmt.Errorf("API key %d appears to be invalid", i+1)
		}
	}
	if c.RateLimit.MinInterval <= 0 {
		return errors.New("MIN_REQUEST_INTERVAL must be positive")
	}
	if c.RateLimit.MaxAttempts < 1 {
		return errors.New("MAX_RETRIES must be at least 1")
	}
	if c.Batch.Workers < 1 {
		return errors.New("MAX_CONCURRENT_WORKERS must be at least 1")
	}
	if c.Batch.MaxBatchSize < 1 {
		return errors.New("MAX_BATCH_SIZE must be at least 1")
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns the environment variable as bool or a default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDurationOrDefault parses a duration, accepting bare numbers as
// seconds for compatibility with older deployments.
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}
	return defaultValue
}

// getEnvAsListOrDefault splits a comma separated variable into a list
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
