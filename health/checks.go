package health

import (
	"context"
	"fmt"

	"github.com/jonwraymond/llmguard/cache"
	"github.com/jonwraymond/llmguard/resilience"
)

// BreakerChecker reports health from a circuit breaker's state: a closed
// circuit is healthy, a half-open circuit is degraded, an open circuit is
// unhealthy.
type BreakerChecker struct {
	breaker *resilience.CircuitBreaker
}

// NewBreakerChecker creates a checker for the given circuit breaker.
func NewBreakerChecker(breaker *resilience.CircuitBreaker) *BreakerChecker {
	return &BreakerChecker{breaker: breaker}
}

// Name returns the breaker's name.
func (c *BreakerChecker) Name() string {
	return c.breaker.Name()
}

// Check maps the breaker state to a health result.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	m := c.breaker.Metrics()

	details := map[string]any{
		"state":     m.State.String(),
		"failures":  m.Failures,
		"successes": m.Successes,
	}
	if !m.LastFailure.IsZero() {
		details["last_failure"] = m.LastFailure
	}

	switch m.State {
	case resilience.StateOpen:
		return Unhealthy(
			fmt.Sprintf("circuit %s is open", c.breaker.Name()),
			&resilience.CircuitOpenError{Dependency: c.breaker.Name()},
		).WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded(
			fmt.Sprintf("circuit %s is recovering", c.breaker.Name()),
		).WithDetails(details)
	default:
		return Healthy(
			fmt.Sprintf("circuit %s is closed", c.breaker.Name()),
		).WithDetails(details)
	}
}

// StatsFunc returns a cache statistics snapshot.
type StatsFunc func() cache.Stats

// CacheCheckerConfig configures a CacheChecker.
type CacheCheckerConfig struct {
	// Name identifies the cache in health output.
	Name string

	// Stats supplies the cache's statistics snapshot.
	Stats StatsFunc

	// MinHitRate is the hit rate below which the cache reports degraded.
	// Zero disables the threshold.
	MinHitRate float64

	// MinSamples is the number of lookups required before the hit rate is
	// judged (default: 100). An underused cache is healthy, not degraded.
	MinSamples uint64
}

// CacheChecker reports health from cache effectiveness. A cold or
// well-performing cache is healthy; a busy cache with a poor hit rate is
// degraded. A cache is never unhealthy: it only loses the service money,
// not correctness.
type CacheChecker struct {
	config CacheCheckerConfig
}

// NewCacheChecker creates a checker for a cache's statistics.
func NewCacheChecker(config CacheCheckerConfig) *CacheChecker {
	if config.MinSamples == 0 {
		config.MinSamples = 100
	}
	return &CacheChecker{config: config}
}

// Name returns the cache's name.
func (c *CacheChecker) Name() string {
	return c.config.Name
}

// Check judges the cache hit rate against the configured threshold.
func (c *CacheChecker) Check(ctx context.Context) Result {
	s := c.config.Stats()

	details := map[string]any{
		"size":     s.Size,
		"max_size": s.MaxSize,
		"hits":     s.Hits,
		"misses":   s.Misses,
		"hit_rate": s.HitRate,
	}

	lookups := s.Hits + s.Misses
	if c.config.MinHitRate > 0 && lookups >= c.config.MinSamples && s.HitRate < c.config.MinHitRate {
		return Degraded(
			fmt.Sprintf("cache %s hit rate %.2f below %.2f", c.config.Name, s.HitRate, c.config.MinHitRate),
		).WithDetails(details)
	}

	return Healthy(fmt.Sprintf("cache %s ok", c.config.Name)).WithDetails(details)
}

var _ Checker = (*BreakerChecker)(nil)
var _ Checker = (*CacheChecker)(nil)
