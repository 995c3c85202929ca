package cache

import (
	"context"
)

// ComputeFunc is the function signature for a wrapped computation.
type ComputeFunc[V any] func(ctx context.Context) (V, error)

// KeyFunc derives a cache key from an argument tuple.
type KeyFunc func(args ...any) (string, error)

// Wrapper adds caching around arbitrary computations sharing one LRU.
//
// On cache hit, the computation is not invoked. On miss, the computation
// runs and its result is cached. Errors are NOT cached. A key derivation
// failure executes the computation uncached.
type Wrapper[V any] struct {
	cache *LRU[V]
	keyFn KeyFunc
}

// NewWrapper creates a caching wrapper around the given cache.
// If keyFn is nil, ArgsKey is used.
func NewWrapper[V any](cache *LRU[V], keyFn KeyFunc) *Wrapper[V] {
	if keyFn == nil {
		keyFn = ArgsKey
	}
	return &Wrapper[V]{
		cache: cache,
		keyFn: keyFn,
	}
}

// Do runs the computation with caching, keyed by the argument tuple.
func (w *Wrapper[V]) Do(ctx context.Context, computeFn ComputeFunc[V], args ...any) (V, error) {
	key, err := w.keyFn(args...)
	if err != nil {
		// Key derivation failed - execute without caching.
		return computeFn(ctx)
	}

	if value, ok := w.cache.Get(key); ok {
		return value, nil
	}

	value, err := computeFn(ctx)
	if err != nil {
		return value, err
	}

	w.cache.Set(key, value)
	return value, nil
}

// Stats returns a snapshot of the underlying cache.
func (w *Wrapper[V]) Stats() Stats {
	return w.cache.Stats()
}
