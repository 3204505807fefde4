// ABOUTME: Test mocks for middleware tests
// ABOUTME: No-op logger satisfying the Logger interface

package middleware

type mockLogger struct{}

func (m *mockLogger) Debug(string, map[string]interface{}) {}
func (m *mockLogger) Info(string, map[string]interface{})  {}
func (m *mockLogger) Warn(string, map[string]interface{})  {}
func (m *mockLogger) Error(string, map[string]interface{}) {}
