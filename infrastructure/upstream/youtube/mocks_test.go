// ABOUTME: Test mocks for the provider client
// ABOUTME: Function-field HTTP client and canned responses

package youtube

import (
	"context"
	"io"
	"strings"

	"yt-data-api/core/interfaces"
)

type mockHTTPClient struct {
	GetFunc func(ctx context.Context, url string) (interfaces.Response, error)

	urls []string
}

func (m *mockHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	m.urls = append(m.urls, url)
	return m.GetFunc(ctx, url)
}

type mockResponse struct {
	status  int
	body    string
	headers map[string]string
}

func (m *mockResponse) StatusCode() int {
	return m.status
}

func (m *mockResponse) Body() io.ReadCloser {
	return io.NopCloser(strings.NewReader(m.body))
}

func (m *mockResponse) Header(key string) string {
	return m.headers[key]
}

type mockLogger struct{}

func (m *mockLogger) Debug(string, map[string]interface{}) {}
func (m *mockLogger) Info(string, map[string]interface{})  {}
func (m *mockLogger) Warn(string, map[string]interface{})  {}
func (m *mockLogger) Error(string, map[string]interface{}) {}
