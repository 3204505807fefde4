// ABOUTME: Test mocks for the dispatch package
// ABOUTME: Function-field mocks for the upstream client, logger and request log

package dispatch

import (
	"context"
	"encoding/json"
	"sync"

	"yt-data-api/core/interfaces"
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

func (m *mockUpstream) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockRequestLog struct {
	mu      sync.Mutex
	entries []interfaces.RequestEntry
}

func (m *mockRequestLog) Record(entry interfaces.RequestEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *mockRequestLog) recorded() []interfaces.RequestEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]interfaces.RequestEntry, len(m.entries))
	copy(out, m.entries)
	return out
}

type mockLogger struct{}

func (m *mockLogger) Debug(string, map[string]interface{}) {}
func (m *mockLogger) Info(string, map[string]interface{})  {}
func (m *mockLogger) Warn(string, map[string]interface{})  {}
func (m *mockLogger) Error(string, map[string]interface{}) {}
