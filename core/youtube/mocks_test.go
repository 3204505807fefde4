// ABOUTME: Test mocks and wiring helpers for the youtube service tests
// ABOUTME: Builds a real dispatcher stack around a function-field upstream mock

package youtube

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"yt-data-api/core/credentials"
	"yt-data-api/core/dispatch"
	"yt-data-api/core/ratelimit"
	"yt-data-api/core/respcache"
)

type mockUpstream struct {
	CallFunc func(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error)

	mu    sync.Mutex
	calls []string
}

func (m *mockUpstream) Call(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error) {
	m.mu.Lock()
	m.calls = append(m.calls, operation)
	m.mu.Unlock()

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

func newTestService(t *testing.T, upstream *mockUpstream) *Service {
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

	return NewService(dispatcher, &mockLogger{}, Config{
		MaxChannelBatch:     50,
		MaxVideoBatch:       50,
		RecentVideosDefault: 15,
	})
}
