package cache

import (
	"context"
	"time"
)

// ResponseCache is an argument-addressed cache for backend responses.
// The key is derived from the full argument tuple, so calls with
// identical arguments share one entry.
type ResponseCache struct {
	lru *LRU[any]
}

// NewResponseCache creates a new response cache.
func NewResponseCache(maxSize int, ttl time.Duration) (*ResponseCache, error) {
	lru, err := NewLRU[any](maxSize, ttl)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{lru: lru}, nil
}

// Get retrieves the cached response for the given argument tuple.
// A key derivation failure is reported as a miss.
func (c *ResponseCache) Get(args ...any) (any, bool) {
	key, err := ArgsKey(args...)
	if err != nil {
		return nil, false
	}
	return c.lru.Get(key)
}

// Set stores the response for the given argument tuple.
func (c *ResponseCache) Set(value any, args ...any) error {
	key, err := ArgsKey(args...)
	if err != nil {
		return err
	}
	c.lru.Set(key, value)
	return nil
}

// Invalidate removes the entry for the given argument tuple.
func (c *ResponseCache) Invalidate(args ...any) bool {
	key, err := ArgsKey(args...)
	if err != nil {
		return false
	}
	return c.lru.Delete(key)
}

// GetOrCompute returns the cached response for the argument tuple,
// computing and caching it on a miss. Compute errors are returned and
// never cached. A key derivation failure executes computeFn uncached.
func (c *ResponseCache) GetOrCompute(ctx context.Context, computeFn func(ctx context.Context) (any, error), args ...any) (any, error) {
	key, err := ArgsKey(args...)
	if err != nil {
		return computeFn(ctx)
	}

	if value, ok := c.lru.Get(key); ok {
		return value, nil
	}

	value, err := computeFn(ctx)
	if err != nil {
		return nil, err
	}

	c.lru.Set(key, value)
	return value, nil
}

// Clear removes all entries and resets the counters. Returns the number
// of entries removed.
func (c *ResponseCache) Clear() int {
	return c.lru.Clear()
}

// Stats returns a snapshot of cache occupancy and effectiveness.
func (c *ResponseCache) Stats() Stats {
	return c.lru.Stats()
}
