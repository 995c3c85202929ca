package cache

import (
	"errors"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrInvalidMaxSize is returned when a cache is constructed with a
	// non-positive capacity.
	ErrInvalidMaxSize = errors.New("cache: max size must be positive")
)

// Stats reports cache occupancy and effectiveness.
type Stats struct {
	// Size is the current number of entries.
	Size int

	// MaxSize is the configured capacity.
	MaxSize int

	// Hits is the number of reads answered from the cache.
	Hits uint64

	// Misses is the number of reads that fell through, including reads
	// of expired entries.
	Misses uint64

	// HitRate is Hits / (Hits + Misses), or 0 before any read.
	HitRate float64

	// DefaultTTL is the TTL applied when Set is used without an override.
	DefaultTTL time.Duration
}
