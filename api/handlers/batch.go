// ABOUTME: Mixed batch endpoint running several operations in one request
// ABOUTME: Results are positional; individual failures do not fail the batch

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/dto/requests"
	"yt-data-api/api/dto/responses"
	"yt-data-api/core/dispatch"
	coreerrors "yt-data-api/core/errors"
)

// batchResult is one slot in the batch response.
type batchResult struct {
	Operation   string          `json:"type"`
	Success     bool            `json:"success"`
	Data        json.RawMessage `json:"data,omitempty"`
	CacheStatus string          `json:"cache_status,omitempty"`
	Error       string          `json:"error,omitempty"`
}

// PostBatch handles POST /api/batch
func (h *Handler) PostBatch(c *gin.Context) {
	var req requests.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &coreerrors.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}

	dispatchRequests := make([]dispatch.Request, len(req.Requests))
	for i, item := range req.Requests {
		dispatchRequests[i] = dispatch.Request{
			Operation: item.Operation,
			Params:    item.Params,
		}
	}

	results, err := h.dispatcher.DispatchMany(c.Request.Context(), dispatchRequests, dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]batchResult, len(results))
	for i, result := range results {
		out[i] = batchResult{
			Operation:   req.Requests[i].Operation,
			Success:     result.Err == nil,
			Data:        result.Payload,
			CacheStatus: string(result.CacheStatus),
		}
		if result.Err != nil {
			out[i].Error = result.Err.Error()
		}
	}
	c.JSON(http.StatusOK, responses.OKWithCount(out, len(out)))
}
