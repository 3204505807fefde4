// ABOUTME: Tests for the provider client: request shaping, error mapping and feed parsing
// ABOUTME: Drives the client with canned HTTP responses, including a real Atom feed document

package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
	coreyoutube "yt-data-api/core/youtube"
)

func newTestClient(httpClient *mockHTTPClient) *Client {
	return NewClient(interfaces.Dependencies{
		HTTPClient: httpClient,
		Logger:     &mockLogger{},
	}, Config{
		BaseURL:      "https://api.example.com/v3",
		FeedBaseURL:  "https://feeds.example.com/videos.xml",
		ChannelParts: []string{"snippet", "statistics"},
		VideoParts:   []string{"snippet", "statistics", "contentDetails"},
	})
}

func TestClient_ChannelByHandle_BuildsRequest(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(_ context.Context, url string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: `{"items":[{"id":"UC1"}]}`}, nil
		},
	}
	client := newTestClient(httpClient)

	payload, err := client.Call(context.Background(), "channel_by_handle", map[string]interface{}{"handle": "somebody"}, "secret-key")
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if string(payload) != `{"id":"UC1"}` {
		t.Errorf("payload = %s, want first item", payload)
	}

	url := httpClient.urls[0]
	for _, want := range []string{"/channels?", "forHandle=%40somebody", "key=secret-key", "part=snippet%2Cstatistics"} {
		if !strings.Contains(url, want) {
			t.Errorf("request url %q missing %q", url, want)
		}
	}
}

func TestClient_ChannelByHandle_EmptyItemsIsNotFound(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: `{"items":[]}`}, nil
		},
	}
	client := newTestClient(httpClient)

	_, err := client.Call(context.Background(), "channel_by_handle", map[string]interface{}{"handle": "ghost"}, "k")
	if !coreerrors.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		status    int
		wantKind  coreerrors.UpstreamErrorKind
		transient bool
	}{
		{429, coreerrors.KindRateLimited, true},
		{503, coreerrors.KindServerError, true},
		{403, coreerrors.KindClientError, false},
	}

	for _, tc := range cases {
		httpClient := &mockHTTPClient{
			GetFunc: func(context.Context, string) (interfaces.Response, error) {
				return &mockResponse{status: tc.status, body: `{"error":{"message":"denied"}}`}, nil
			},
		}
		client := newTestClient(httpClient)

		_, err := client.Call(context.Background(), "videos_by_id", map[string]interface{}{"ids": []string{"v1"}}, "k")
		upstreamErr, ok := coreerrors.IsUpstream(err)
		if !ok {
			t.Fatalf("status %d: error = %v, want UpstreamError", tc.status, err)
		}
		if upstreamErr.Kind != tc.wantKind {
			t.Errorf("status %d: kind = %s, want %s", tc.status, upstreamErr.Kind, tc.wantKind)
		}
		if upstreamErr.Transient() != tc.transient {
			t.Errorf("status %d: transient = %v, want %v", tc.status, upstreamErr.Transient(), tc.transient)
		}
		if upstreamErr.Message != "denied" {
			t.Errorf("status %d: message = %q, want provider message", tc.status, upstreamErr.Message)
		}
	}
}

func TestClient_NetworkErrorMapped(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return nil, errors.New("connection refused")
		},
	}
	client := newTestClient(httpClient)

	_, err := client.Call(context.Background(), "channels_by_id", map[string]interface{}{"ids": []string{"UC1"}}, "k")
	upstreamErr, ok := coreerrors.IsUpstream(err)
	if !ok || upstreamErr.Kind != coreerrors.KindNetwork {
		t.Fatalf("error = %v, want network UpstreamError", err)
	}
}

func TestClient_MalformedBodyMapped(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: `{"items": [`}, nil
		},
	}
	client := newTestClient(httpClient)

	_, err := client.Call(context.Background(), "videos_by_id", map[string]interface{}{"ids": []string{"v1"}}, "k")
	upstreamErr, ok := coreerrors.IsUpstream(err)
	if !ok || upstreamErr.Kind != coreerrors.KindMalformed {
		t.Fatalf("error = %v, want malformed UpstreamError", err)
	}
}

func TestClient_VideosByID_JoinsIDs(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: `{"items":[{"id":"v1"},{"id":"v2"}]}`}, nil
		},
	}
	client := newTestClient(httpClient)

	payload, err := client.Call(context.Background(), "videos_by_id", map[string]interface{}{"ids": []string{"v1", "v2"}}, "k")
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		t.Fatalf("payload not an array: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("got %d items, want 2", len(items))
	}
	if !strings.Contains(httpClient.urls[0], "id=v1%2Cv2") {
		t.Errorf("request url %q missing joined ids", httpClient.urls[0])
	}
}

const atomFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015"
      xmlns:media="http://search.yahoo.com/mrss/"
      xmlns="http://www.w3.org/2005/Atom">
  <title>Test Channel</title>
  <entry>
    <id>yt:video:abc123</id>
    <yt:videoId>abc123</yt:videoId>
    <title>First Video</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123"/>
    <published>2026-01-15T10:00:00+00:00</published>
    <updated>2026-01-16T10:00:00+00:00</updated>
    <media:group>
      <media:title>First Video</media:title>
      <media:community>
        <media:statistics views="4321"/>
      </media:community>
    </media:group>
  </entry>
  <entry>
    <id>yt:video:def456</id>
    <yt:videoId>def456</yt:videoId>
    <title>A Short</title>
    <link rel="alternate" href="https://www.youtube.com/shorts/def456"/>
    <published>2026-01-14T10:00:00+00:00</published>
    <updated>2026-01-14T10:00:00+00:00</updated>
  </entry>
</feed>`

func TestClient_ChannelFeed_ParsesAtom(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return &mockResponse{status: 200, body: atomFeed}, nil
		},
	}
	client := newTestClient(httpClient)

	payload, err := client.Call(context.Background(), "channel_rss", map[string]interface{}{"channel_id": "UC123"}, "")
	if err != nil {
		t.Fatalf("Call returned error: %v", err)
	}
	if !strings.Contains(httpClient.urls[0], "channel_id=UC123") {
		t.Errorf("feed url %q missing channel id", httpClient.urls[0])
	}

	var entries []coreyoutube.FeedVideo
	if err := json.Unmarshal(payload, &entries); err != nil {
		t.Fatalf("payload not a feed list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if entries[0].VideoID != "abc123" || entries[0].VideoType != "long" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[0].FeedViews != 4321 {
		t.Errorf("entry 0 views = %d, want 4321", entries[0].FeedViews)
	}
	if entries[1].VideoID != "def456" || entries[1].VideoType != "shorts" {
		t.Errorf("entry 1 = %+v", entries[1])
	}
}

func TestClient_ChannelFeed_404IsNotFound(t *testing.T) {
	httpClient := &mockHTTPClient{
		GetFunc: func(context.Context, string) (interfaces.Response, error) {
			return &mockResponse{status: 404, body: "not found"}, nil
		},
	}
	client := newTestClient(httpClient)

	_, err := client.Call(context.Background(), "channel_rss", map[string]interface{}{"channel_id": "UCnope"}, "")
	if !coreerrors.IsNotFound(err) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestClient_UnknownOperation(t *testing.T) {
	client := newTestClient(&mockHTTPClient{})

	_, err := client.Call(context.Background(), "mystery", nil, "")
	if !coreerrors.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}
