package scryfall

import (
	"context"
	"time"

	"github.com/lmancini/MTG-Proxyshop/internal/ratelimit"
)

// Every outbound request passes through the same policy pipeline:
// rate limiting outermost, then retry with a bounded backoff budget.
// The terminal conversion of whatever error survives into a typed
// not-found value (or an empty fallback) happens in each endpoint
// function, so no transport fault ever crosses the package boundary.

// callFunc performs one outbound request.
type callFunc func(ctx context.Context) error

// policy wraps a call with one cross-cutting behavior.
type policy func(next callFunc) callFunc

// pipeline is an ordered policy stack; index 0 is outermost.
type pipeline []policy

// wrap applies the pipeline to a call, preserving order.
func (p pipeline) wrap(call callFunc) callFunc {
	for i := len(p) - 1; i >= 0; i-- {
		call = p[i](call)
	}
	return call
}

// rateLimitPolicy blocks until the shared limiter admits the call.
func rateLimitPolicy(limiter *ratelimit.Limiter) policy {
	return func(next callFunc) callFunc {
		return func(ctx context.Context) error {
			if err := limiter.Wait(ctx); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}

// retryPolicy retries transient transport failures with exponential
// backoff. The cumulative sleep never exceeds budget, and the attempt
// count never exceeds maxAttempts, whichever runs out first.
func retryPolicy(maxAttempts int, budget time.Duration) policy {
	return func(next callFunc) callFunc {
		return func(ctx context.Context) error {
			remaining := budget
			var lastErr error
			for attempt := 1; attempt <= maxAttempts; attempt++ {
				err := next(ctx)
				if err == nil {
					return nil
				}
				lastErr = err
				if !isRetryable(err) || attempt == maxAttempts {
					return err
				}
				delay := backoffDelay(attempt)
				if delay > remaining {
					delay = remaining
				}
				if delay <= 0 {
					return err
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
				remaining -= delay
			}
			return lastErr
		}
	}
}
