package ingestion

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter paces requests to the ingestion API with a token bucket.
// A 429 is reported to the caller and does not delay later requests.
// A nil bucket means requests are not paced.
type RateLimiter struct {
	bucket *rate.Limiter
}

// NewRateLimiter creates a limiter allowing requestsPerMinute requests.
// Zero or negative disables pacing.
func NewRateLimiter(requestsPerMinute int) *RateLimiter {
	r := &RateLimiter{}
	if requestsPerMinute > 0 {
		r.bucket = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1)
	}
	return r
}

// Wait blocks until a request can be made.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.bucket == nil {
		return nil
	}
	return r.bucket.Wait(ctx)
}
