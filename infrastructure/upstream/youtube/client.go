// ABOUTME: Provider API client translating named operations into HTTP calls
// ABOUTME: Maps transport and status failures onto the typed upstream error taxonomy

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
	coreyoutube "yt-data-api/core/youtube"
)

// Config holds endpoint and query defaults for the provider client.
type Config struct {
	// BaseURL is the provider API root, e.g. https://www.googleapis.com/youtube/v3
	BaseURL string

	// FeedBaseURL is the public video feed endpoint
	FeedBaseURL string

	// ChannelParts are the resource parts requested for channel lookups
	ChannelParts []string

	// VideoParts are the resource parts requested for video lookups
	VideoParts []string
}

// Client implements the UpstreamClient interface against the provider API.
type Client struct {
	http   interfaces.HTTPClient
	logger interfaces.Logger
	cfg    Config
	parser *gofeed.Parser
}

// NewClient creates a provider client using the given dependencies.
func NewClient(deps interfaces.Dependencies, cfg Config) *Client {
	return &Client{
		http:   deps.HTTPClient,
		logger: deps.Logger,
		cfg:    cfg,
		parser: gofeed.NewParser(),
	}
}

// Call executes one named operation. apiKey is empty for operations that
// hit public endpoints.
func (c *Client) Call(ctx context.Context, operation string, params map[string]interface{}, apiKey string) (json.RawMessage, error) {
	c.logger.Debug("upstream call", map[string]interface{}{
		"operation": operation,
	})

	switch operation {
	case "channel_by_handle":
		return c.channelByHandle(ctx, params, apiKey)
	case "channels_by_id":
		return c.listByID(ctx, "channels", c.cfg.ChannelParts, params, apiKey)
	case "videos_by_id":
		return c.listByID(ctx, "videos", c.cfg.VideoParts, params, apiKey)
	case "channel_rss":
		return c.channelFeed(ctx, params)
	default:
		return nil, &coreerrors.ValidationError{
			Field:   "operation",
			Message: fmt.Sprintf("unknown upstream operation %q", operation),
		}
	}
}

// listResponse is the provider's list envelope.
type listResponse struct {
	Items []json.RawMessage `json:"items"`
}

func (c *Client) channelByHandle(ctx context.Context, params map[string]interface{}, apiKey string) (json.RawMessage, error) {
	handle := stringParam(params, "handle")

	query := url.Values{}
	query.Set("part", strings.Join(c.cfg.ChannelParts, ","))
	query.Set("forHandle", "@"+strings.TrimPrefix(handle, "@"))
	query.Set("key", apiKey)

	list, err := c.fetchList(ctx, "channel_by_handle", "channels", query)
	if err != nil {
		return nil, err
	}
	if len(list.Items) == 0 {
		return nil, &coreerrors.NotFoundError{Resource: "channel", ID: "@" + handle}
	}
	return list.Items[0], nil
}

func (c *Client) listByID(ctx context.Context, resource string, parts []string, params map[string]interface{}, apiKey string) (json.RawMessage, error) {
	ids := stringSliceParam(params, "ids")

	query := url.Values{}
	query.Set("part", strings.Join(parts, ","))
	query.Set("id", strings.Join(ids, ","))
	query.Set("key", apiKey)

	operation := resource + "_by_id"
	list, err := c.fetchList(ctx, operation, resource, query)
	if err != nil {
		return nil, err
	}
	return json.Marshal(list.Items)
}

func (c *Client) fetchList(ctx context.Context, operation, resource string, query url.Values) (*listResponse, error) {
	endpoint := fmt.Sprintf("%s/%s?%s", c.cfg.BaseURL, resource, query.Encode())

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, &coreerrors.UpstreamError{
			Kind:      coreerrors.KindNetwork,
			Operation: operation,
			Message:   err.Error(),
		}
	}
	defer resp.Body().Close()

	if err := statusError(operation, resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body())
	if err != nil {
		return nil, &coreerrors.UpstreamError{
			Kind:      coreerrors.KindNetwork,
			Operation: operation,
			Message:   err.Error(),
		}
	}

	var list listResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &coreerrors.UpstreamError{
			Kind:      coreerrors.KindMalformed,
			Operation: operation,
			Message:   err.Error(),
		}
	}
	return &list, nil
}

func (c *Client) channelFeed(ctx context.Context, params map[string]interface{}) (json.RawMessage, error) {
	channelID := stringParam(params, "channel_id")
	endpoint := fmt.Sprintf("%s?channel_id=%s", c.cfg.FeedBaseURL, url.QueryEscape(channelID))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, &coreerrors.UpstreamError{
			Kind:      coreerrors.KindNetwork,
			Operation: "channel_rss",
			Message:   err.Error(),
		}
	}
	defer resp.Body().Close()

	if resp.StatusCode() == 404 {
		return nil, &coreerrors.NotFoundError{Resource: "channel feed", ID: channelID}
	}
	if err := statusError("channel_rss", resp); err != nil {
		return nil, err
	}

	feed, err := c.parser.Parse(resp.Body())
	if err != nil {
		return nil, &coreerrors.UpstreamError{
			Kind:      coreerrors.KindMalformed,
			Operation: "channel_rss",
			Message:   err.Error(),
		}
	}

	entries := make([]coreyoutube.FeedVideo, 0, len(feed.Items))
	for _, item := range feed.Items {
		entries = append(entries, feedEntry(item))
	}
	return json.Marshal(entries)
}

// feedEntry converts one feed item. The video id comes from the yt
// extension when present, falling back to parsing the link.
func feedEntry(item *gofeed.Item) coreyoutube.FeedVideo {
	entry := coreyoutube.FeedVideo{
		Title:       item.Title,
		PublishedAt: item.Published,
		UpdatedAt:   item.Updated,
		URL:         item.Link,
		VideoType:   coreyoutube.VideoTypeFromURL(item.Link),
	}

	if ext, ok := item.Extensions["yt"]["videoId"]; ok && len(ext) > 0 {
		entry.VideoID = ext[0].Value
	}
	if entry.VideoID == "" {
		entry.VideoID = coreyoutube.VideoIDFromURL(item.Link)
	}

	entry.FeedViews = feedViews(item)
	return entry
}

// feedViews digs the view counter out of the media extension tree.
func feedViews(item *gofeed.Item) int64 {
	groups, ok := item.Extensions["media"]["group"]
	if !ok || len(groups) == 0 {
		return 0
	}
	communities, ok := groups[0].Children["community"]
	if !ok || len(communities) == 0 {
		return 0
	}
	stats, ok := communities[0].Children["statistics"]
	if !ok || len(stats) == 0 {
		return 0
	}
	views, err := strconv.ParseInt(stats[0].Attrs["views"], 10, 64)
	if err != nil {
		return 0
	}
	return views
}

// statusError maps a non-2xx response to the error taxonomy. The response
// body, when readable, becomes the error message.
func statusError(operation string, resp interfaces.Response) error {
	code := resp.StatusCode()
	if code >= 200 && code < 300 {
		return nil
	}

	message := readErrorBody(resp)
	kind := coreerrors.KindClientError
	switch {
	case code == 429:
		kind = coreerrors.KindRateLimited
	case code >= 500:
		kind = coreerrors.KindServerError
	}

	return &coreerrors.UpstreamError{
		Kind:       kind,
		StatusCode: code,
		Operation:  operation,
		Message:    message,
	}
}

// readErrorBody extracts the provider's error message, capped so a huge
// error page cannot balloon the log.
func readErrorBody(resp interfaces.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body(), 4096))
	if err != nil || len(body) == 0 {
		return "no response body"
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func stringParam(params map[string]interface{}, key string) string {
	v, _ := params[key].(string)
	return v
}

func stringSliceParam(params map[string]interface{}, key string) []string {
	switch v := params[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
