// ABOUTME: Request DTOs for lookup and batch endpoints
// ABOUTME: Field validation happens in handlers against the typed error taxonomy

package requests

// ChannelsRequest asks for multiple channels by id.
type ChannelsRequest struct {
	ChannelIDs []string `json:"channel_ids"`
}

// VideosRequest asks for multiple videos by id.
type VideosRequest struct {
	VideoIDs []string `json:"video_ids"`
}

// FeedsRequest asks for upload feeds of multiple channels.
type FeedsRequest struct {
	ChannelIDs []string `json:"channel_ids"`
}

// BatchItem is one operation inside a mixed batch.
type BatchItem struct {
	Operation string                 `json:"type"`
	Params    map[string]interface{} `json:"params"`
}

// BatchRequest runs several operations with bounded parallelism.
type BatchRequest struct {
	Requests []BatchItem `json:"requests"`
}
