// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/dto/responses"
	"yt-data-api/core/errors"
)

// respondError writes the HTTP response for a domain error.
func respondError(c *gin.Context, err error) {
	status, errType := classify(err)
	c.JSON(status, responses.Fail(errType, err.Error()))
}

// classify maps the error taxonomy onto status codes. Quota exhaustion and
// retry exhaustion surface as 503 so clients back off rather than treating
// the condition as their fault.
func classify(err error) (int, string) {
	switch {
	case errors.IsValidation(err):
		return http.StatusBadRequest, "validation_error"
	case errors.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.IsQuotaExhausted(err):
		return http.StatusServiceUnavailable, "quota_exhausted"
	case errors.IsRetryExhausted(err):
		return http.StatusServiceUnavailable, "retry_exhausted"
	case errors.IsTimeout(err):
		return http.StatusGatewayTimeout, "timeout"
	}

	if upstreamErr, ok := errors.IsUpstream(err); ok {
		switch {
		case upstreamErr.StatusCode == 429:
			return http.StatusTooManyRequests, "upstream_rate_limited"
		case upstreamErr.StatusCode >= 500:
			return http.StatusBadGateway, "upstream_error"
		case upstreamErr.StatusCode >= 400:
			return http.StatusBadRequest, "upstream_rejected"
		default:
			return http.StatusBadGateway, "upstream_error"
		}
	}

	return http.StatusInternalServerError, "internal_error"
}
