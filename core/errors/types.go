// ABOUTME: Custom error types for the core dispatch pipeline
// ABOUTME: Provides the error taxonomy that drives retry, caching and HTTP status decisions

package errors

import (
	"errors"
	"fmt"
)

// UpstreamErrorKind classifies a provider API failure.
type UpstreamErrorKind int

const (
	// KindRateLimited is a 429 from the provider
	KindRateLimited UpstreamErrorKind = iota

	// KindServerError is a 5xx from the provider
	KindServerError

	// KindClientError is a 4xx other than 429
	KindClientError

	// KindNetwork is a transport-level failure (timeout, connection reset)
	KindNetwork

	// KindMalformed is a response body that could not be decoded
	KindMalformed
)

// String returns the kind name used in logs and responses.
func (k UpstreamErrorKind) String() string {
	switch k {
	case KindRateLimited:
		return "rate_limited"
	case KindServerError:
		return "server_error"
	case KindClientError:
		return "client_error"
	case KindNetwork:
		return "network"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// UpstreamError represents a failed call to the provider API.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	StatusCode int
	Operation  string
	Message    string
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream error on %s: %s (%d): %s", e.Operation, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream error on %s: %s: %s", e.Operation, e.Kind, e.Message)
}

// Transient reports whether retrying the call could succeed.
// Rate limits, server errors and network blips are transient; everything
// else will fail the same way again and must not consume more quota.
func (e *UpstreamError) Transient() bool {
	switch e.Kind {
	case KindRateLimited, KindServerError, KindNetwork:
		return true
	default:
		return false
	}
}

// QuotaExhaustedError indicates that no credential in the pool has quota
// headroom. It is never retried internally; the caller must wait for a
// window reset or add credentials.
type QuotaExhaustedError struct {
	Credentials int
}

// Error implements the error interface
func (e *QuotaExhaustedError) Error() string {
	return fmt.Sprintf("quota exhausted: all %d credentials are over their daily or hourly quota", e.Credentials)
}

// RetryExhaustedError indicates that every retry attempt failed with a
// transient error. Last carries the final underlying cause.
type RetryExhaustedError struct {
	Attempts int
	Last     error
}

// Error implements the error interface
func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("retry exhausted after %d attempts: %v", e.Attempts, e.Last)
}

// Unwrap exposes the final underlying cause.
func (e *RetryExhaustedError) Unwrap() error {
	return e.Last
}

// ValidationError represents a request rejected before any credential or
// rate-limit resource was consumed.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// NotFoundError represents a resource the provider does not know about.
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// TimeoutError indicates the overall per-call deadline elapsed while
// waiting on the rate limiter or between retries.
type TimeoutError struct {
	Operation string
	Cause     error
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout during %s: %v", e.Operation, e.Cause)
}

// Unwrap exposes the underlying context error.
func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// IsQuotaExhausted checks if an error is a QuotaExhaustedError
func IsQuotaExhausted(err error) bool {
	var quotaErr *QuotaExhaustedError
	return errors.As(err, &quotaErr)
}

// IsRetryExhausted checks if an error is a RetryExhaustedError
func IsRetryExhausted(err error) bool {
	var retryErr *RetryExhaustedError
	return errors.As(err, &retryErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsTimeout checks if an error is a TimeoutError
func IsTimeout(err error) bool {
	var timeoutErr *TimeoutError
	return errors.As(err, &timeoutErr)
}

// IsUpstream checks if an error is an UpstreamError and returns it
func IsUpstream(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
