// ABOUTME: Channel endpoints: lookup by handle, bulk lookup, feeds and the recent-videos report
// ABOUTME: Thin translation between HTTP and the service layer

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yt-data-api/api/dto/requests"
	"yt-data-api/api/dto/responses"
	"yt-data-api/core/dispatch"
	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/youtube"
)

const maxFeedsPerRequest = 10

// GetChannelByHandle handles GET /api/channel/:handle
func (h *Handler) GetChannelByHandle(c *gin.Context) {
	channel, status, err := h.service.GetChannelByHandle(c.Request.Context(), c.Param("handle"), dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.OK(channel).WithCache(string(status)))
}

// GetChannelRecentVideos handles GET /api/channel/:handle/videos
func (h *Handler) GetChannelRecentVideos(c *gin.Context) {
	maxVideos := 0
	if raw := c.Query("max_videos"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, &coreerrors.ValidationError{
				Field:   "max_videos",
				Message: "max_videos must be a positive integer",
			})
			return
		}
		maxVideos = parsed
	}
	includeDetailed := c.Query("detailed") == "true"

	report, status, err := h.service.GetRecentVideosReport(c.Request.Context(), c.Param("handle"), maxVideos, includeDetailed, dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.OK(report).WithCache(string(status)))
}

// GetChannelFeed handles GET /api/channel/:handle/rss, where the path
// segment is a channel id rather than a handle.
func (h *Handler) GetChannelFeed(c *gin.Context) {
	entries, status, err := h.service.GetChannelFeed(c.Request.Context(), c.Param("handle"), dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.OKWithCount(entries, len(entries)).WithCache(string(status)))
}

// PostChannels handles POST /api/channels
func (h *Handler) PostChannels(c *gin.Context) {
	var req requests.ChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &coreerrors.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}

	channels, status, err := h.service.GetChannelsByID(c.Request.Context(), req.ChannelIDs, dispatchOptions(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses.OKWithCount(channels, len(channels)).WithCache(string(status)))
}

// PostChannelFeeds handles POST /api/rss/channels
func (h *Handler) PostChannelFeeds(c *gin.Context) {
	var req requests.FeedsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &coreerrors.ValidationError{Field: "body", Message: "request body must be valid JSON"})
		return
	}
	if len(req.ChannelIDs) == 0 {
		respondError(c, &coreerrors.ValidationError{Field: "channel_ids", Message: "at least one channel id is required"})
		return
	}
	if len(req.ChannelIDs) > maxFeedsPerRequest {
		respondError(c, &coreerrors.ValidationError{
			Field:   "channel_ids",
			Message: "at most " + strconv.Itoa(maxFeedsPerRequest) + " channels per request",
		})
		return
	}

	opts := dispatchOptions(c)
	results := make(map[string][]youtube.FeedVideo, len(req.ChannelIDs))
	hits := 0
	for _, channelID := range req.ChannelIDs {
		entries, status, err := h.service.GetChannelFeed(c.Request.Context(), channelID, opts)
		if err != nil {
			respondError(c, err)
			return
		}
		if status == dispatch.StatusHit {
			hits++
		}
		results[channelID] = entries
	}

	overall := "miss"
	switch hits {
	case len(req.ChannelIDs):
		overall = "hit"
	case 0:
	default:
		overall = "partial"
	}
	c.JSON(http.StatusOK, responses.OKWithCount(results, len(results)).WithCache(overall))
}
