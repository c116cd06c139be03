package api

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryDoer is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryDoer struct {
	inner  Doer
	config RetryConfig
}

// WithRetry wraps a Doer with retry logic.
func WithRetry(d Doer, cfg RetryConfig) Doer {
	return &RetryDoer{inner: d, config: cfg}
}

func (r *RetryDoer) Do(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	attempts := max(r.config.MaxAttempts, 1)

	for attempt := range attempts {
		resp, err := r.inner.Do(withAttempt(ctx, attempt+1), req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !shouldRetry(req, err) {
			return nil, err
		}

		// Last attempt: don't sleep, just return the error.
		if attempt == attempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
	}

	return nil, lastErr
}

// shouldRetry determines if an error is retryable.
func shouldRetry(req Request, err error) bool {
	// Context errors are never retried.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Rate limits are always safe to retry: the request was not processed.
	var rl *ErrRateLimit
	if errors.As(err, &rl) {
		return true
	}

	// A 4xx reply will not change on retry.
	var se *StatusError
	var unavail *ErrUnavailable
	if errors.As(err, &se) && !errors.As(err, &unavail) {
		return false
	}

	// Generation is not idempotent; only retry it when the server never
	// got to process it.
	if req.Method == "POST" && errors.As(err, &se) {
		return false
	}

	return true
}

// backoff computes the wait duration for the given attempt.
func (r *RetryDoer) backoff(attempt int, err error) time.Duration {
	// Respect RetryAfter for rate limits.
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// Add ±20% jitter.
	jitter := wait * 0.2 * (2*rand.Float64() - 1)
	wait += jitter

	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
