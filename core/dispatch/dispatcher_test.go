// ABOUTME: Tests for the dispatcher pipeline: caching, credentials, batching and composites
// ABOUTME: Uses a real pool, limiter and cache around a mocked upstream client

package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"yt-data-api/core/credentials"
	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
	"yt-data-api/core/ratelimit"
	"yt-data-api/core/respcache"
)

func newTestDispatcher(t *testing.T, upstream *mockUpstream, requestLog *mockRequestLog) *Dispatcher {
	t.Helper()

	pool, err := credentials.NewPool(credentials.PoolConfig{
		Keys:        []string{"test-key-aaaaaaaaaaaaaaaaaaaaaaaaaaaa", "test-key-bbbbbbbbbbbbbbbbbbbbbbbbbbbb"},
		Strategy:    credentials.StrategyRoundRobin,
		DailyQuota:  1000,
		HourlyQuota: 1000,
	})
	if err != nil {
		t.Fatalf("NewPool returned error: %v", err)
	}

	limiter := ratelimit.NewLimiter(ratelimit.Config{
		MinInterval:       time.Microsecond,
		MaxAttempts:       3,
		RetryDelay:        time.Millisecond,
		BackoffMultiplier: 2,
	}, &mockLogger{})

	cache := respcache.New(respcache.TTLConfig{
		Channel: time.Minute,
		Video:   time.Minute,
		Feed:    time.Minute,
		Default: time.Minute,
	})

	var logSink interfaces.RequestLog
	if requestLog != nil {
		logSink = requestLog
	}

	return NewDispatcher(upstream, pool, limiter, cache, logSink, &mockLogger{}, Config{
		MaxBatchSize: 5,
		BatchWorkers: 2,
	})
}

func TestDispatcher_Dispatch_UnknownOperation(t *testing.T) {
	d := newTestDispatcher(t, &mockUpstream{}, nil)

	_, _, err := d.Dispatch(context.Background(), "nonsense", nil, Options{})
	if !coreerrors.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestDispatcher_Dispatch_CachesSecondCall(t *testing.T) {
	upstream := &mockUpstream{}
	d := newTestDispatcher(t, upstream, nil)

	params := map[string]interface{}{"handle": "somechannel"}
	wantStatus := []CacheStatus{StatusMiss, StatusHit}
	for i := 0; i < 2; i++ {
		_, status, err := d.Dispatch(context.Background(), "channel_by_handle", params, Options{})
		if err != nil {
			t.Fatalf("Dispatch %d returned error: %v", i, err)
		}
		if status != wantStatus[i] {
			t.Errorf("call %d status = %s, want %s", i, status, wantStatus[i])
		}
	}

	if upstream.callCount() != 1 {
		t.Errorf("upstream called %d times, want 1 (second call cached)", upstream.callCount())
	}
}

func TestDispatcher_Dispatch_ForceRefreshBypassesCache(t *testing.T) {
	upstream := &mockUpstream{}
	d := newTestDispatcher(t, upstream, nil)

	params := map[string]interface{}{"handle": "somechannel"}
	d.Dispatch(context.Background(), "channel_by_handle", params, Options{})
	_, status, _ := d.Dispatch(context.Background(), "channel_by_handle", params, Options{ForceRefresh: true})

	if status != StatusRefresh {
		t.Errorf("status = %s, want refresh", status)
	}
	if upstream.callCount() != 2 {
		t.Errorf("upstream called %d times, want 2 with force refresh", upstream.callCount())
	}
}

func TestDispatcher_Dispatch_FailuresNotCached(t *testing.T) {
	fail := true
	upstream := &mockUpstream{
		CallFunc: func(context.Context, string, map[string]interface{}, string) (json.RawMessage, error) {
			if fail {
				return nil, &coreerrors.UpstreamError{Kind: coreerrors.KindClientError, StatusCode: 400}
			}
			return json.RawMessage(`{"id":"x"}`), nil
		},
	}
	d := newTestDispatcher(t, upstream, nil)

	params := map[string]interface{}{"ids": []string{"x"}}
	if _, _, err := d.Dispatch(context.Background(), "videos_by_id", params, Options{}); err == nil {
		t.Fatal("expected first dispatch to fail")
	}

	fail = false
	payload, _, err := d.Dispatch(context.Background(), "videos_by_id", params, Options{})
	if err != nil {
		t.Fatalf("Dispatch after recovery returned error: %v", err)
	}
	if string(payload) != `{"id":"x"}` {
		t.Errorf("payload = %s, want fresh response", payload)
	}
}

func TestDispatcher_Dispatch_FeedNeedsNoCredential(t *testing.T) {
	var gotKey string
	upstream := &mockUpstream{
		CallFunc: func(_ context.Context, _ string, _ map[string]interface{}, apiKey string) (json.RawMessage, error) {
			gotKey = apiKey
			return json.RawMessage(`[]`), nil
		},
	}
	d := newTestDispatcher(t, upstream, nil)

	if _, _, err := d.Dispatch(context.Background(), "channel_rss", map[string]interface{}{"channel_id": "UC1"}, Options{}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if gotKey != "" {
		t.Errorf("feed operation passed api key %q, want none", gotKey)
	}

	for _, usage := range d.CredentialStats() {
		if usage.CallsToday != 0 {
			t.Errorf("credential %s consumed quota for a feed fetch", usage.ID)
		}
	}
}

func TestDispatcher_Dispatch_RotatesCredentialOnRetry(t *testing.T) {
	var keys []string
	upstream := &mockUpstream{
		CallFunc: func(_ context.Context, _ string, _ map[string]interface{}, apiKey string) (json.RawMessage, error) {
			keys = append(keys, apiKey)
			if len(keys) < 2 {
				return nil, &coreerrors.UpstreamError{Kind: coreerrors.KindRateLimited, StatusCode: 429}
			}
			return json.RawMessage(`{}`), nil
		},
	}
	d := newTestDispatcher(t, upstream, nil)

	if _, _, err := d.Dispatch(context.Background(), "channel_by_handle", map[string]interface{}{"handle": "h"}, Options{}); err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}

	if len(keys) != 2 {
		t.Fatalf("upstream attempts = %d, want 2", len(keys))
	}
	if keys[0] == keys[1] {
		t.Error("retry reused the throttled credential instead of rotating")
	}
}

func TestDispatcher_Dispatch_RecordsRequestLog(t *testing.T) {
	requestLog := &mockRequestLog{}
	d := newTestDispatcher(t, &mockUpstream{}, requestLog)

	params := map[string]interface{}{"handle": "h"}
	d.Dispatch(context.Background(), "channel_by_handle", params, Options{})
	d.Dispatch(context.Background(), "channel_by_handle", params, Options{})

	entries := requestLog.recorded()
	if len(entries) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(entries))
	}
	if entries[0].CacheStatus != "miss" || entries[1].CacheStatus != "hit" {
		t.Errorf("cache statuses = %s/%s, want miss/hit", entries[0].CacheStatus, entries[1].CacheStatus)
	}
	if entries[0].CredentialID == "" {
		t.Error("miss entry should carry the credential id")
	}
}

func TestDispatcher_DispatchMany_PositionalResults(t *testing.T) {
	upstream := &mockUpstream{
		CallFunc: func(_ context.Context, operation string, _ map[string]interface{}, _ string) (json.RawMessage, error) {
			if operation == "videos_by_id" {
				return nil, &coreerrors.UpstreamError{Kind: coreerrors.KindClientError, StatusCode: 400}
			}
			return json.RawMessage(fmt.Sprintf(`{"op":%q}`, operation)), nil
		},
	}
	d := newTestDispatcher(t, upstream, nil)

	requests := []Request{
		{Operation: "channel_by_handle", Params: map[string]interface{}{"handle": "a"}},
		{Operation: "videos_by_id", Params: map[string]interface{}{"ids": []string{"x"}}},
		{Operation: "channel_rss", Params: map[string]interface{}{"channel_id": "UC1"}},
	}

	results, err := d.DispatchMany(context.Background(), requests, Options{})
	if err != nil {
		t.Fatalf("DispatchMany returned error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Err != nil || string(results[0].Payload) != `{"op":"channel_by_handle"}` {
		t.Errorf("result 0 wrong: %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("result 1 should carry the failure")
	}
	if results[2].Err != nil {
		t.Errorf("result 2 failed: %v", results[2].Err)
	}
}

func TestDispatcher_DispatchMany_EmptyBatchRejected(t *testing.T) {
	d := newTestDispatcher(t, &mockUpstream{}, nil)

	_, err := d.DispatchMany(context.Background(), nil, Options{})
	if !coreerrors.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestDispatcher_DispatchMany_OversizedBatchRejected(t *testing.T) {
	d := newTestDispatcher(t, &mockUpstream{}, nil)

	requests := make([]Request, 6)
	for i := range requests {
		requests[i] = Request{Operation: "channel_rss", Params: map[string]interface{}{"channel_id": fmt.Sprintf("UC%d", i)}}
	}

	_, err := d.DispatchMany(context.Background(), requests, Options{})
	if !coreerrors.IsValidation(err) {
		t.Fatalf("error = %v, want ValidationError for oversized batch", err)
	}
}

func TestDispatcher_RegisterComposite_Dispatchable(t *testing.T) {
	d := newTestDispatcher(t, &mockUpstream{}, nil)

	d.RegisterComposite("double_lookup", func(ctx context.Context, params map[string]interface{}) (json.RawMessage, CacheStatus, error) {
		payload, status, err := d.Dispatch(ctx, "channel_by_handle", map[string]interface{}{"handle": params["handle"]}, Options{})
		if err != nil {
			return nil, status, err
		}
		out, err := json.Marshal(map[string]interface{}{"inner": json.RawMessage(payload)})
		return out, status, err
	})

	payload, status, err := d.Dispatch(context.Background(), "double_lookup", map[string]interface{}{"handle": "h"}, Options{})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if string(payload) != `{"inner":{}}` {
		t.Errorf("composite payload = %s", payload)
	}
	if status != StatusMiss {
		t.Errorf("status = %s, want miss on first composite call", status)
	}

	// The composite itself is never cached, but its sub-call is.
	_, status, err = d.Dispatch(context.Background(), "double_lookup", map[string]interface{}{"handle": "h"}, Options{})
	if err != nil {
		t.Fatalf("second Dispatch returned error: %v", err)
	}
	if status != StatusHit {
		t.Errorf("status = %s, want hit from the cached sub-call", status)
	}
}
