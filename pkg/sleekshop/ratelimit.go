package sleekshop

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"

	"github.com/donaldgifford/sleekshop-go/internal/metrics"
)

// RateLimiter throttles outgoing backend calls with a token bucket.
type RateLimiter struct {
	limiter *rate.Limiter
	calls   atomic.Int64
}

// NewRateLimiter creates a rate limiter allowing perSecond calls with the
// given burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until the limiter allows the call, or the context is canceled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if !r.limiter.Allow() {
		metrics.RateLimitWaitsTotal.Inc()
		if err := r.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}
	}
	r.calls.Add(1)
	return nil
}

// Calls returns the number of calls let through so far.
func (r *RateLimiter) Calls() int64 {
	return r.calls.Load()
}
