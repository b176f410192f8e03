package connectors

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/sercha-integrations/internal/core/domain"
)

// RateLimitConfig holds rate limiting configuration for a provider.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimits keeps each provider below its published limits.
var DefaultRateLimits = map[domain.ProviderType]RateLimitConfig{
	domain.ProviderHubSpot: {RequestsPerSecond: 9.0, BurstSize: 10}, // 100 requests per 10s per app
	domain.ProviderNotion:  {RequestsPerSecond: 3.0, BurstSize: 3},  // average 3 requests/sec
}

const (
	// defaultBackoff applies when a 429 carries no Retry-After.
	defaultBackoff = 10 * time.Second
	// maxBackoff caps the window a provider's Retry-After can open.
	maxBackoff = 60 * time.Second
)

// RateLimiter is a token bucket with a backoff window opened by 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter for the provider's defaults.
func NewRateLimiter(provider domain.ProviderType) *RateLimiter {
	cfg, ok := DefaultRateLimits[provider]
	if !ok {
		cfg = RateLimitConfig{RequestsPerSecond: 3.0, BurstSize: 3}
	}
	return NewRateLimiterWithConfig(cfg)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
// A non-positive rate disables limiting.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(limit, cfg.BurstSize),
	}
}

// Wait blocks until a request may be sent, honouring any backoff window.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError opens a backoff window after a 429 response.
// The window is capped at maxBackoff.
func (r *RateLimiter) RecordRateLimitError(retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfter <= 0 {
		retryAfter = defaultBackoff
	}
	if retryAfter > maxBackoff {
		retryAfter = maxBackoff
	}
	r.retryAt = time.Now().Add(retryAfter)
}

// Backoff returns how long the current backoff window stays open, or zero.
func (r *RateLimiter) Backoff() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d := time.Until(r.retryAt); d > 0 {
		return d
	}
	return 0
}
