package cache

import (
	"context"
	"sync"
	"time"
)

// EmbeddingCacheConfig configures an EmbeddingCache.
type EmbeddingCacheConfig struct {
	// MaxSize is the maximum number of cached vectors (default: 1000).
	MaxSize int

	// TTL is the lifetime of a cached vector (default: 1 hour).
	TTL time.Duration

	// OnDimensionMismatch is called when a stored vector's length differs
	// from the dimension fixed by the first store. Diagnostic only; the
	// vector is stored regardless. Optional.
	OnDimensionMismatch func(key string, want, got int)
}

// EmbeddingCache is a content-addressed cache for embedding vectors.
// Identical input text always maps to the same key, so re-embedding the
// same content is answered from memory.
type EmbeddingCache struct {
	lru    *LRU[[]float32]
	config EmbeddingCacheConfig

	mu  sync.Mutex
	dim int // fixed by the first stored vector
}

// NewEmbeddingCache creates a new embedding cache.
func NewEmbeddingCache(config EmbeddingCacheConfig) (*EmbeddingCache, error) {
	if config.MaxSize == 0 {
		config.MaxSize = 1000
	}
	if config.TTL == 0 {
		config.TTL = time.Hour
	}

	lru, err := NewLRU[[]float32](config.MaxSize, config.TTL)
	if err != nil {
		return nil, err
	}

	return &EmbeddingCache{
		lru:    lru,
		config: config,
	}, nil
}

// Get retrieves the cached vector for the given text.
func (c *EmbeddingCache) Get(text string) ([]float32, bool) {
	return c.lru.Get(ContentKey(text))
}

// Set stores the vector for the given text. The first stored vector fixes
// the cache's expected dimension; later vectors of a different length are
// still stored, but trigger the OnDimensionMismatch hook.
func (c *EmbeddingCache) Set(text string, vector []float32) {
	key := ContentKey(text)

	c.mu.Lock()
	switch {
	case c.dim == 0:
		c.dim = len(vector)
	case len(vector) != c.dim:
		if hook := c.config.OnDimensionMismatch; hook != nil {
			want, got := c.dim, len(vector)
			c.mu.Unlock()
			hook(key, want, got)
			c.mu.Lock()
		}
	}
	c.mu.Unlock()

	c.lru.Set(key, vector)
}

// GetOrCompute returns the cached vector for the text, computing and
// caching it on a miss. Compute errors are returned and never cached.
//
// Concurrent misses for the same text may each invoke computeFn; callers
// needing single-flight semantics must coalesce upstream.
func (c *EmbeddingCache) GetOrCompute(ctx context.Context, text string, computeFn func(ctx context.Context) ([]float32, error)) ([]float32, error) {
	if vector, ok := c.Get(text); ok {
		return vector, nil
	}

	vector, err := computeFn(ctx)
	if err != nil {
		return nil, err
	}

	c.Set(text, vector)
	return vector, nil
}

// Delete removes the cached vector for the given text.
func (c *EmbeddingCache) Delete(text string) bool {
	return c.lru.Delete(ContentKey(text))
}

// Dimension returns the expected vector dimension, or 0 before any store.
func (c *EmbeddingCache) Dimension() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dim
}

// Stats returns a snapshot of cache occupancy and effectiveness.
func (c *EmbeddingCache) Stats() Stats {
	return c.lru.Stats()
}
