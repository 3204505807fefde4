// Package api provides the HTTP layer of the service.
//
// The package is structured as follows:
//
//   - server.go: gin engine construction, middleware stack and routes
//   - handlers/: HTTP request handlers
//   - dto/: request and response shapes
//   - middleware/: authentication, per-client rate limiting, request logging
//
// All responses use a common envelope: successes carry a data payload and a
// meta block with a timestamp (and a count for list responses), failures
// carry a machine-readable error type plus a human-readable message. Domain
// errors are mapped to HTTP status codes in handlers/errors.go.
//
// Health probes (/health, /live, /ready) sit outside the authenticated /api
// group so orchestrators can reach them without credentials.
package api
