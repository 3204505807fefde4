// ABOUTME: Video endpoints: bulk lookup by id
// ABOUTME: Thin translation between HTTP and the service layer

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/dto/requests"
	"yt-data-api/api/dto/responses"
	coreerrors "yt-data-api/core/errors"
)

// PostVideos handles POST /api/videos
func (h *Handler) PostVideos(c *gin.Context) {
	var req requests.VideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &coreerrors.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}

	videos, status, err := h.service.GetVideosByID(c.Request.Context(), req.VideoIDs, dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.OKWithCount(videos, len(videos)).WithCache(string(status)))
}
