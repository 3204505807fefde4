// ABOUTME: HTTP client abstraction used by the upstream provider client
// ABOUTME: Allows tests to substitute canned responses for real network calls

package interfaces

import (
	"context"
	"io"
)

// HTTPClient defines the interface for outgoing HTTP requests.
type HTTPClient interface {
	// Get performs an HTTP GET request against url.
	// A non-2xx status is not an error at this level; callers inspect
	// the response status code.
	Get(ctx context.Context, url string) (Response, error)
}

// Response represents an HTTP response.
type Response interface {
	// StatusCode returns the HTTP status code
	StatusCode() int

	// Body returns the response body. The caller must close it.
	Body() io.ReadCloser

	// Header returns the value of the named response header
	Header(key string) string
}
