package resilience

import (
	"context"
	"math"
	"sync"
	"time"
)

// ClientLimiterConfig configures the per-client rate limiter.
type ClientLimiterConfig struct {
	// Rate is the number of tokens replenished per second, shared by
	// every client bucket.
	// Default: 1
	Rate float64

	// Burst is the maximum bucket size. New clients start with a full
	// bucket, so bursts up to this size are admitted immediately.
	// Default: 10
	Burst int
}

// clientBucket holds the token state for one client key.
type clientBucket struct {
	tokens     float64
	lastUpdate time.Time
}

// ClientLimiter is a token bucket rate limiter keyed by client.
//
// Buckets are created lazily on a client's first request and are never
// evicted; long-lived processes serving unbounded client populations will
// grow the map without bound. All buckets share one coarse lock and
// refill is computed lazily at check time, never by a background timer.
type ClientLimiter struct {
	config ClientLimiterConfig

	mu      sync.Mutex
	buckets map[string]*clientBucket
}

// NewClientLimiter creates a new per-client rate limiter.
func NewClientLimiter(config ClientLimiterConfig) *ClientLimiter {
	// Apply defaults
	if config.Rate <= 0 {
		config.Rate = 1
	}
	if config.Burst <= 0 {
		config.Burst = 10
	}

	return &ClientLimiter{
		config:  config,
		buckets: make(map[string]*clientBucket),
	}
}

// Allow reports whether a request from the given client is admitted,
// deducting one token on admission.
func (cl *ClientLimiter) Allow(key string) bool {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	b := cl.refillLocked(key)

	if b.tokens >= 1.0 {
		b.tokens -= 1.0
		return true
	}

	return false
}

// RetryAfter returns how long the client should wait for its next token.
// Always at least one second.
func (cl *ClientLimiter) RetryAfter(key string) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	b := cl.refillLocked(key)

	needed := 1.0 - b.tokens
	if needed <= 0 {
		return time.Second
	}

	seconds := math.Ceil(needed / cl.config.Rate)
	if seconds < 1 {
		seconds = 1
	}
	return time.Duration(seconds) * time.Second
}

// Execute runs the operation if the client is admitted, otherwise
// returns a *RateLimitError carrying the retry-after hint.
func (cl *ClientLimiter) Execute(ctx context.Context, key string, op Operation) error {
	if !cl.Allow(key) {
		return &RateLimitError{ClientKey: key, RetryAfter: cl.RetryAfter(key)}
	}
	return op(ctx)
}

// Tokens returns the current token count for a client.
func (cl *ClientLimiter) Tokens(key string) float64 {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return cl.refillLocked(key).tokens
}

// Clients returns the number of tracked client buckets.
func (cl *ClientLimiter) Clients() int {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return len(cl.buckets)
}

// refillLocked fetches or creates the bucket for key and replenishes it
// for the time elapsed since its last update.
func (cl *ClientLimiter) refillLocked(key string) *clientBucket {
	now := time.Now()

	b, ok := cl.buckets[key]
	if !ok {
		b = &clientBucket{
			tokens:     float64(cl.config.Burst),
			lastUpdate: now,
		}
		cl.buckets[key] = b
		return b
	}

	elapsed := now.Sub(b.lastUpdate).Seconds()
	b.tokens = math.Min(float64(cl.config.Burst), b.tokens+elapsed*cl.config.Rate)
	b.lastUpdate = now

	return b
}
