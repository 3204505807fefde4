// ABOUTME: Typed service facade over the dispatcher for provider operations
// ABOUTME: Owns validation, response decoding and the recent-videos composite operation

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"yt-data-api/core/dispatch"
	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
)

// Config holds service-level limits and defaults.
type Config struct {
	// MaxChannelBatch caps ids per channels_by_id call
	MaxChannelBatch int

	// MaxVideoBatch caps ids per videos_by_id call
	MaxVideoBatch int

	// RecentVideosDefault is the feed window when the caller does not give one
	RecentVideosDefault int
}

// Service exposes typed provider operations on top of the dispatcher.
// Construction registers the recent-videos composite so batch requests can
// reach it by name.
type Service struct {
	dispatcher *dispatch.Dispatcher
	logger     interfaces.Logger
	cfg        Config
}

// NewService creates the service and registers its composite operations.
func NewService(dispatcher *dispatch.Dispatcher, logger interfaces.Logger, cfg Config) *Service {
	s := &Service{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
	dispatcher.RegisterComposite("channel_recent_videos", s.recentVideosComposite)
	return s
}

// GetChannelByHandle fetches one channel by its @handle.
func (s *Service) GetChannelByHandle(ctx context.Context, handle string, opts dispatch.Options) (*Channel, dispatch.CacheStatus, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return nil, dispatch.StatusMiss, &coreerrors.ValidationError{Field: "handle", Message: "handle must not be empty"}
	}

	payload, status, err := s.dispatcher.Dispatch(ctx, "channel_by_handle", map[string]interface{}{
		"handle": handle,
	}, opts)
	if err != nil {
		return nil, status, err
	}

	var raw apiChannel
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, status, coreerrors.WrapError(err, "decoding channel payload")
	}
	return formatChannel(&raw, nil), status, nil
}

// GetChannelsByID fetches up to MaxChannelBatch channels in one call.
func (s *Service) GetChannelsByID(ctx context.Context, ids []string, opts dispatch.Options) ([]*Channel, dispatch.CacheStatus, error) {
	if err := validateIDs(ids, "channel_ids", s.cfg.MaxChannelBatch); err != nil {
		return nil, dispatch.StatusMiss, err
	}

	payload, status, err := s.dispatcher.Dispatch(ctx, "channels_by_id", map[string]interface{}{
		"ids": ids,
	}, opts)
	if err != nil {
		return nil, status, err
	}

	var raws []apiChannel
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, status, coreerrors.WrapError(err, "decoding channels payload")
	}

	channels := make([]*Channel, len(raws))
	for i := range raws {
		channels[i] = formatChannel(&raws[i], nil)
	}
	return channels, status, nil
}

// GetVideosByID fetches up to MaxVideoBatch videos in one call.
func (s *Service) GetVideosByID(ctx context.Context, ids []string, opts dispatch.Options) ([]*Video, dispatch.CacheStatus, error) {
	if err := validateIDs(ids, "video_ids", s.cfg.MaxVideoBatch); err != nil {
		return nil, dispatch.StatusMiss, err
	}

	payload, status, err := s.dispatcher.Dispatch(ctx, "videos_by_id", map[string]interface{}{
		"ids": ids,
	}, opts)
	if err != nil {
		return nil, status, err
	}

	videos, err := decodeVideos(payload)
	return videos, status, err
}

// GetChannelFeed fetches the public upload feed for a channel.
func (s *Service) GetChannelFeed(ctx context.Context, channelID string, opts dispatch.Options) ([]FeedVideo, dispatch.CacheStatus, error) {
	if strings.TrimSpace(channelID) == "" {
		return nil, dispatch.StatusMiss, &coreerrors.ValidationError{Field: "channel_id", Message: "channel id must not be empty"}
	}

	payload, status, err := s.dispatcher.Dispatch(ctx, "channel_rss", map[string]interface{}{
		"channel_id": channelID,
	}, opts)
	if err != nil {
		return nil, status, err
	}

	var entries []FeedVideo
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, status, coreerrors.WrapError(err, "decoding feed payload")
	}
	return entries, status, nil
}

// RecentVideosReport combines channel info, analytics and optionally the
// analyzed videos themselves. CacheDetails records how each sub-call was
// served; the overall status is hit only when every sub-call hit.
type RecentVideosReport struct {
	Channel      *Channel          `json:"channel"`
	Analytics    Analytics         `json:"analytics"`
	Videos       []*Video          `json:"videos,omitempty"`
	CacheStatus  string            `json:"cache_status,omitempty"`
	CacheDetails map[string]string `json:"cache_details,omitempty"`
}

// GetRecentVideosReport builds the combined channel report. maxVideos <= 0
// uses the configured default.
func (s *Service) GetRecentVideosReport(ctx context.Context, handle string, maxVideos int, includeDetailed bool, opts dispatch.Options) (*RecentVideosReport, dispatch.CacheStatus, error) {
	handle = strings.TrimPrefix(strings.TrimSpace(handle), "@")
	if handle == "" {
		return nil, dispatch.StatusMiss, &coreerrors.ValidationError{Field: "handle", Message: "handle must not be empty"}
	}
	if maxVideos <= 0 {
		maxVideos = s.cfg.RecentVideosDefault
	}

	payload, status, err := s.dispatcher.Dispatch(ctx, "channel_recent_videos", map[string]interface{}{
		"handle":           handle,
		"max_videos":       maxVideos,
		"include_detailed": includeDetailed,
	}, opts)
	if err != nil {
		return nil, status, err
	}

	var report RecentVideosReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, status, coreerrors.WrapError(err, "decoding recent videos report")
	}
	return &report, status, nil
}

// recentVideosComposite implements channel_recent_videos in terms of the
// primitive operations, so the channel lookup, feed fetch and video details
// each hit their own cache entry.
func (s *Service) recentVideosComposite(ctx context.Context, params map[string]interface{}) (json.RawMessage, dispatch.CacheStatus, error) {
	handle, _ := params["handle"].(string)
	maxVideos := intParam(params, "max_videos", s.cfg.RecentVideosDefault)
	includeDetailed := boolParam(params, "include_detailed")

	if handle == "" {
		return nil, dispatch.StatusMiss, &coreerrors.ValidationError{Field: "handle", Message: "handle must not be empty"}
	}

	details := make(map[string]string, 3)

	channelPayload, channelStatus, err := s.dispatcher.Dispatch(ctx, "channel_by_handle", map[string]interface{}{
		"handle": handle,
	}, dispatch.Options{})
	if err != nil {
		return nil, channelStatus, err
	}
	details["channel"] = string(channelStatus)

	var rawChannel apiChannel
	if err := json.Unmarshal(channelPayload, &rawChannel); err != nil {
		return nil, channelStatus, coreerrors.WrapError(err, "decoding channel payload")
	}
	subscriberCount := parseCount(rawChannel.Statistics.SubscriberCount)

	feed, feedStatus, err := s.GetChannelFeed(ctx, rawChannel.ID, dispatch.Options{})
	if err != nil {
		return nil, overallStatus(details), err
	}
	details["feed"] = string(feedStatus)

	videoIDs := make([]string, 0, maxVideos)
	for _, entry := range feed {
		if len(videoIDs) == maxVideos {
			break
		}
		if entry.VideoID != "" {
			videoIDs = append(videoIDs, entry.VideoID)
		}
	}

	if len(videoIDs) == 0 {
		status := overallStatus(details)
		report := RecentVideosReport{
			Channel:      formatChannel(&rawChannel, nil),
			CacheStatus:  string(status),
			CacheDetails: details,
		}
		payload, err := json.Marshal(report)
		return payload, status, err
	}

	videosPayload, videosStatus, err := s.dispatcher.Dispatch(ctx, "videos_by_id", map[string]interface{}{
		"ids": videoIDs,
	}, dispatch.Options{})
	if err != nil {
		return nil, overallStatus(details), err
	}
	details["videos"] = string(videosStatus)

	videos, err := decodeVideos(videosPayload)
	if err != nil {
		return nil, overallStatus(details), err
	}

	// The feed knows whether an upload is a short; the detail API does not.
	byID := make(map[string]FeedVideo, len(feed))
	for _, entry := range feed {
		byID[entry.VideoID] = entry
	}
	for _, v := range videos {
		if entry, ok := byID[v.ID]; ok {
			v.VideoType = entry.VideoType
			v.FeedURL = entry.URL
		} else {
			v.VideoType = "unknown"
		}
	}

	analysis := analyzeLanguages(videos)

	status := overallStatus(details)
	report := RecentVideosReport{
		Channel:      formatChannel(&rawChannel, analysis),
		Analytics:    buildAnalytics(videos, subscriberCount, analysis, includeDetailed),
		CacheStatus:  string(status),
		CacheDetails: details,
	}
	if includeDetailed {
		report.Videos = videos
	}

	payload, err := json.Marshal(report)
	return payload, status, err
}

// overallStatus folds per-sub-call cache statuses into one: hit when every
// sub-call hit, miss when none did, partial otherwise.
func overallStatus(details map[string]string) dispatch.CacheStatus {
	if len(details) == 0 {
		return dispatch.StatusMiss
	}
	hits := 0
	for _, status := range details {
		if status == string(dispatch.StatusHit) {
			hits++
		}
	}
	switch hits {
	case len(details):
		return dispatch.StatusHit
	case 0:
		return dispatch.StatusMiss
	default:
		return dispatch.StatusPartial
	}
}

func decodeVideos(payload json.RawMessage) ([]*Video, error) {
	var raws []apiVideo
	if err := json.Unmarshal(payload, &raws); err != nil {
		return nil, coreerrors.WrapError(err, "decoding videos payload")
	}
	videos := make([]*Video, len(raws))
	for i := range raws {
		videos[i] = formatVideo(&raws[i])
	}
	return videos, nil
}

func validateIDs(ids []string, field string, max int) error {
	if len(ids) == 0 {
		return &coreerrors.ValidationError{Field: field, Message: "at least one id is required"}
	}
	if len(ids) > max {
		return &coreerrors.ValidationError{
			Field:   field,
			Message: fmt.Sprintf("at most %d ids per request, got %d", max, len(ids)),
		}
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &coreerrors.ValidationError{Field: field, Message: "ids must not be empty"}
		}
	}
	return nil
}

// intParam reads an int from loosely typed params. JSON decoding gives
// float64, direct Go calls give int.
func intParam(params map[string]interface{}, key string, fallback int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return fallback
	}
}

func boolParam(params map[string]interface{}, key string) bool {
	v, _ := params[key].(bool)
	return v
}
