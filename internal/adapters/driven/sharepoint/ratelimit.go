package sharepoint

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the steady request rate allowed to the endpoint.
	ProactiveRate = 10

	// ProactiveBurst lets both category requests of one search go out together.
	ProactiveBurst = 4

	// MaxBackoff caps how long a Retry-After header can hold requests.
	MaxBackoff = 2 * time.Minute

	// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests to the search endpoint.
// It combines a token bucket with the server's Retry-After hints.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter with the default rate.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(rate.Limit(ProactiveRate), ProactiveBurst)
}

// NewRateLimiterWithRate creates a limiter with an explicit rate and burst.
func NewRateLimiterWithRate(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, burst),
		now:    time.Now,
	}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	wait := r.blockedUntil.Sub(r.now())
	r.mu.Unlock()

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.bucket.Wait(ctx)
}

// Observe records throttling hints from a response.
// It returns the back-off that was applied, or zero.
func (r *RateLimiter) Observe(resp *http.Response) time.Duration {
	if resp == nil {
		return 0
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	backoff := parseRetryAfter(resp.Header.Get(HeaderRetryAfter), r.now())
	if backoff <= 0 {
		return 0
	}
	if backoff > MaxBackoff {
		backoff = MaxBackoff
	}
	if until := r.now().Add(backoff); until.After(r.blockedUntil) {
		r.blockedUntil = until
	}
	return backoff
}

// BlockedUntil returns the end of the current back-off window.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}

// parseRetryAfter accepts delta-seconds or an HTTP date.
func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		return at.Sub(now)
	}
	return 0
}
