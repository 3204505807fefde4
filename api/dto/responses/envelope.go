// ABOUTME: Standard response envelope shared by all endpoints
// ABOUTME: Success payloads carry a meta block; failures carry error type and message

package responses

import "time"

// Meta describes the response itself rather than the data.
type Meta struct {
	Timestamp   string `json:"timestamp"`
	Count       *int   `json:"count,omitempty"`
	FromCache   *bool  `json:"from_cache,omitempty"`
	CacheStatus string `json:"cache_status,omitempty"`
}

// Envelope is the standard success shape.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    Meta        `json:"meta"`
}

// ErrorEnvelope is the standard failure shape.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Meta    Meta   `json:"meta"`
}

// OK wraps data in a success envelope.
func OK(data interface{}) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Meta:    Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
}

// OKWithCount wraps list data and records its length.
func OKWithCount(data interface{}, count int) Envelope {
	env := OK(data)
	env.Meta.Count = &count
	return env
}

// WithCache annotates the meta block with how the cache served the
// request. "partial" means a composite served only some sub-calls from
// cache.
func (e Envelope) WithCache(status string) Envelope {
	fromCache := status == "hit"
	e.Meta.FromCache = &fromCache
	e.Meta.CacheStatus = status
	return e
}

// Fail builds a failure envelope.
func Fail(errType, message string) ErrorEnvelope {
	return ErrorEnvelope{
		Success: false,
		Error:   errType,
		Message: message,
		Meta:    Meta{Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
}
