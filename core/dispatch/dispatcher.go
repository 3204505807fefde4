// ABOUTME: Central dispatcher routing operations through cache, credentials and rate limiting
// ABOUTME: Single entry point for all upstream work; batch fan-out is bounded by a semaphore

package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"yt-data-api/core/credentials"
	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
	"yt-data-api/core/ratelimit"
	"yt-data-api/core/respcache"
)

// opSpec describes a primitive operation the dispatcher can route upstream.
type opSpec struct {
	class           respcache.Class
	needsCredential bool
}

// primitives is the fixed registry of upstream operations. Feed fetches hit
// a public endpoint and consume no credential.
var primitives = map[string]opSpec{
	"channel_by_handle": {class: respcache.ClassChannel, needsCredential: true},
	"channels_by_id":    {class: respcache.ClassChannel, needsCredential: true},
	"videos_by_id":      {class: respcache.ClassVideo, needsCredential: true},
	"channel_rss":       {class: respcache.ClassFeed, needsCredential: false},
}

// CacheStatus reports how the cache participated in one dispatch.
type CacheStatus string

const (
	// StatusHit means the response came from the cache
	StatusHit CacheStatus = "hit"

	// StatusMiss means the cache had no entry and the upstream was called
	StatusMiss CacheStatus = "miss"

	// StatusRefresh means the caller forced a fresh upstream call
	StatusRefresh CacheStatus = "refresh"

	// StatusPartial means a composite served some sub-calls from cache
	StatusPartial CacheStatus = "partial"
)

// CompositeFunc implements a higher-level operation in terms of Dispatch
// calls back into the same dispatcher. Composites are not cached as a
// whole; each sub-call owns its own entry, and the returned status
// aggregates them.
type CompositeFunc func(ctx context.Context, params map[string]interface{}) (json.RawMessage, CacheStatus, error)

// Config holds dispatcher construction parameters.
type Config struct {
	// MaxBatchSize caps the number of requests in one DispatchMany call
	MaxBatchSize int

	// BatchWorkers bounds how many batch requests run concurrently
	BatchWorkers int
}

// Dispatcher coordinates the full pipeline for one upstream operation:
// fingerprint, cache lookup, credential lease, rate-limited call with
// retries, cache write and request logging.
type Dispatcher struct {
	upstream   interfaces.UpstreamClient
	pool       *credentials.Pool
	limiter    *ratelimit.Limiter
	cache      *respcache.Cache
	requestLog interfaces.RequestLog
	logger     interfaces.Logger
	cfg        Config

	mu         sync.RWMutex
	composites map[string]CompositeFunc
}

// NewDispatcher wires the pipeline stages together.
func NewDispatcher(
	upstream interfaces.UpstreamClient,
	pool *credentials.Pool,
	limiter *ratelimit.Limiter,
	cache *respcache.Cache,
	requestLog interfaces.RequestLog,
	logger interfaces.Logger,
	cfg Config,
) *Dispatcher {
	return &Dispatcher{
		upstream:   upstream,
		pool:       pool,
		limiter:    limiter,
		cache:      cache,
		requestLog: requestLog,
		logger:     logger,
		cfg:        cfg,
		composites: make(map[string]CompositeFunc),
	}
}

// RegisterComposite adds a named composite operation. Composites are
// registered by the service layer at startup; registering twice replaces
// the earlier definition.
func (d *Dispatcher) RegisterComposite(name string, fn CompositeFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.composites[name] = fn
}

// Options adjusts a single dispatch.
type Options struct {
	// ForceRefresh bypasses the cache read and overwrites the entry with
	// the fresh response
	ForceRefresh bool
}

// Dispatch runs one operation through the full pipeline and returns the
// raw response payload together with how the cache participated.
func (d *Dispatcher) Dispatch(ctx context.Context, operation string, params map[string]interface{}, opts Options) (json.RawMessage, CacheStatus, error) {
	start := time.Now()

	spec, isPrimitive := primitives[operation]
	d.mu.RLock()
	comp, isComposite := d.composites[operation]
	d.mu.RUnlock()

	if !isPrimitive && !isComposite {
		return nil, StatusMiss, &coreerrors.ValidationError{
			Field:   "operation",
			Message: fmt.Sprintf("unknown operation %q", operation),
		}
	}

	fingerprint := Fingerprint(operation, params)

	if isComposite {
		payload, status, err := comp(ctx, params)
		d.logRequest(operation, fingerprint, string(status), "", time.Since(start), err)
		return payload, status, err
	}

	if !opts.ForceRefresh {
		if payload, ok := d.cache.Get(fingerprint); ok {
			d.logRequest(operation, fingerprint, string(StatusHit), "", time.Since(start), nil)
			return payload, StatusHit, nil
		}
	}

	payload, credentialID, err := d.callUpstream(ctx, operation, params, spec)

	status := StatusMiss
	if opts.ForceRefresh {
		status = StatusRefresh
	}
	d.logRequest(operation, fingerprint, string(status), credentialID, time.Since(start), err)

	if err != nil {
		return nil, status, err
	}

	d.cache.Set(fingerprint, spec.class, payload)
	return payload, status, nil
}

// callUpstream runs a primitive operation under the rate limiter. The
// credential lease lives inside the retry callback, so every attempt
// selects a fresh key and records its own outcome: a retried 429 rotates
// away from the throttled credential instead of hammering it.
func (d *Dispatcher) callUpstream(ctx context.Context, operation string, params map[string]interface{}, spec opSpec) (json.RawMessage, string, error) {
	var lastCredential string

	payload, err := d.limiter.Execute(ctx, operation, func(ctx context.Context) (json.RawMessage, error) {
		var apiKey string
		var lease *credentials.Lease

		if spec.needsCredential {
			var err error
			lease, err = d.pool.Select()
			if err != nil {
				return nil, err
			}
			apiKey = lease.Key()
			lastCredential = lease.ID()
		}

		result, err := d.upstream.Call(ctx, operation, params, apiKey)
		if lease != nil {
			d.pool.Record(lease, err == nil)
		}
		return result, err
	})

	return payload, lastCredential, err
}

// Request is one entry in a batch.
type Request struct {
	Operation string                 `json:"operation"`
	Params    map[string]interface{} `json:"params"`
}

// Result is the positional outcome for one batch entry. Exactly one of
// Payload and Err is set.
type Result struct {
	Payload     json.RawMessage
	CacheStatus CacheStatus
	Err         error
}

// DispatchMany runs a batch of requests with bounded parallelism and
// returns results in request order. Individual failures do not abort the
// batch; each slot carries its own outcome.
func (d *Dispatcher) DispatchMany(ctx context.Context, requests []Request, opts Options) ([]Result, error) {
	if len(requests) == 0 {
		return nil, &coreerrors.ValidationError{Field: "requests", Message: "batch must not be empty"}
	}
	if len(requests) > d.cfg.MaxBatchSize {
		return nil, &coreerrors.ValidationError{
			Field:   "requests",
			Message: fmt.Sprintf("batch size %d exceeds maximum %d", len(requests), d.cfg.MaxBatchSize),
		}
	}

	results := make([]Result, len(requests))
	sem := make(chan struct{}, d.cfg.BatchWorkers)
	var wg sync.WaitGroup

	for i, req := range requests {
		wg.Add(1)
		go func(i int, req Request) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			payload, status, err := d.Dispatch(ctx, req.Operation, req.Params, opts)
			results[i] = Result{Payload: payload, CacheStatus: status, Err: err}
		}(i, req)
	}
	wg.Wait()

	return results, nil
}

// CacheStats exposes the response cache counters.
func (d *Dispatcher) CacheStats() interfaces.CacheStats {
	return d.cache.Stats()
}

// ClearCache flushes the response cache.
func (d *Dispatcher) ClearCache() {
	d.cache.Clear()
}

// CredentialStats exposes per-credential usage.
func (d *Dispatcher) CredentialStats() []credentials.Usage {
	return d.pool.Stats()
}

func (d *Dispatcher) logRequest(operation, fingerprint, cacheStatus, credentialID string, duration time.Duration, err error) {
	entry := interfaces.RequestEntry{
		Operation:    operation,
		Fingerprint:  fingerprint,
		CacheStatus:  cacheStatus,
		CredentialID: credentialID,
		Duration:     duration,
		Success:      err == nil,
		At:           time.Now().UTC(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if d.requestLog != nil {
		d.requestLog.Record(entry)
	}

	fields := map[string]interface{}{
		"operation":   operation,
		"fingerprint": fingerprint,
		"cache":       cacheStatus,
		"duration_ms": duration.Milliseconds(),
	}
	if credentialID != "" {
		fields["credential"] = credentialID
	}
	if err != nil {
		fields["error"] = err.Error()
		d.logger.Warn("dispatch failed", fields)
		return
	}
	d.logger.Debug("dispatch completed", fields)
}
