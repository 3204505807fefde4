// ABOUTME: Global rate limiter and retry/backoff wrapper for upstream calls
// ABOUTME: A single shared pacer is the only point of upstream throughput control

package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"golang.org/x/time/rate"

	coreerrors "yt-data-api/core/errors"
	"yt-data-api/core/interfaces"
)

// Config holds rate limiting and retry policy parameters.
type Config struct {
	// MinInterval is the minimum spacing between any two upstream calls,
	// shared across all callers and all credentials
	MinInterval time.Duration

	// MaxAttempts is the total number of attempts per call, including the first
	MaxAttempts int

	// RetryDelay is the backoff before the first retry
	RetryDelay time.Duration

	// BackoffMultiplier scales the delay for each subsequent retry
	BackoffMultiplier float64
}

// Limiter paces upstream calls and retries transient failures.
//
// Pacing uses a token bucket with burst 1, so the wait-then-advance of the
// shared baseline is atomic inside the bucket: overlapping callers each
// observe an advancing "last call" timestamp and queue up min-interval
// apart instead of bursting after a quiet period.
type Limiter struct {
	pace   *rate.Limiter
	cfg    Config
	logger interfaces.Logger
}

// NewLimiter creates a Limiter from the given policy.
func NewLimiter(cfg Config, logger interfaces.Logger) *Limiter {
	return &Limiter{
		pace:   rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		cfg:    cfg,
		logger: logger,
	}
}

// Execute runs fn under the pacing floor and retry policy.
//
// Each attempt waits for a pacing token first, so retries are spaced by
// both the backoff delay and the global minimum interval. Transient errors
// (429, 5xx, network) are retried up to MaxAttempts; permanent errors and
// QuotaExhausted return immediately. When the context deadline elapses
// while waiting, Execute returns a TimeoutError instead of hanging.
func (l *Limiter) Execute(ctx context.Context, operation string, fn func(context.Context) (json.RawMessage, error)) (json.RawMessage, error) {
	var last error

	for attempt := 1; attempt <= l.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := l.backoff(attempt - 1)
			l.logger.Warn("retrying upstream call", map[string]interface{}{
				"operation": operation,
				"attempt":   attempt,
				"delay":     delay.String(),
				"cause":     last.Error(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, l.contextError(ctx, operation)
			}
		}

		if err := l.pace.Wait(ctx); err != nil {
			return nil, l.contextError(ctx, operation)
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		last = err

		// Quota exhaustion is terminal for this call: retrying a still
		// exhausted pool cannot succeed until a window resets.
		if coreerrors.IsQuotaExhausted(err) {
			return nil, err
		}

		if upstreamErr, ok := coreerrors.IsUpstream(err); ok && upstreamErr.Transient() {
			continue
		}

		return nil, err
	}

	return nil, &coreerrors.RetryExhaustedError{
		Attempts: l.cfg.MaxAttempts,
		Last:     last,
	}
}

// backoff returns the delay before the given retry (1-based).
func (l *Limiter) backoff(retry int) time.Duration {
	scale := math.Pow(l.cfg.BackoffMultiplier, float64(retry-1))
	return time.Duration(float64(l.cfg.RetryDelay) * scale)
}

// contextError maps a context failure to the typed taxonomy.
func (l *Limiter) contextError(ctx context.Context, operation string) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return &coreerrors.TimeoutError{Operation: operation, Cause: err}
	}
	return err
}
