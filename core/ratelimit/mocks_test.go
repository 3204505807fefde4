// ABOUTME: Test mocks for the ratelimit package
// ABOUTME: Function-field logger mock so tests can ignore or inspect log output

package ratelimit

type mockLogger struct {
	DebugFunc func(msg string, fields map[string]interface{})
	InfoFunc  func(msg string, fields map[string]interface{})
	WarnFunc  func(msg string, fields map[string]interface{})
	ErrorFunc func(msg string, fields map[string]interface{})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {
	if m.DebugFunc != nil {
		m.DebugFunc(msg, fields)
	}
}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {
	if m.InfoFunc != nil {
		m.InfoFunc(msg, fields)
	}
}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	if m.WarnFunc != nil {
		m.WarnFunc(msg, fields)
	}
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	if m.ErrorFunc != nil {
		m.ErrorFunc(msg, fields)
	}
}
