package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// BulkheadConfig configures the bulkhead.
type BulkheadConfig struct {
	// MaxConcurrent is the maximum number of in-flight operations.
	// Generation backends degrade badly under concurrency spikes, so keep
	// this at or below the backend's own worker count.
	// Default: 10
	MaxConcurrent int

	// MaxWait is the maximum time to wait for a slot.
	// Default: 0 (no waiting, reject immediately)
	MaxWait time.Duration
}

// Bulkhead caps concurrent in-flight calls to one dependency.
type Bulkhead struct {
	config BulkheadConfig
	sem    *semaphore.Weighted

	mu       sync.Mutex
	active   int
	peak     int
	rejected int64
}

// NewBulkhead creates a new bulkhead.
func NewBulkhead(config BulkheadConfig) *Bulkhead {
	// Apply defaults
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = 10
	}

	return &Bulkhead{
		config: config,
		sem:    semaphore.NewWeighted(int64(config.MaxConcurrent)),
	}
}

// Acquire claims a slot, returning ErrBulkheadFull when none becomes
// available within MaxWait.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	if b.sem.TryAcquire(1) {
		b.noteAcquired()
		return nil
	}

	if b.config.MaxWait <= 0 {
		b.noteRejected()
		return ErrBulkheadFull
	}

	waitCtx, cancel := context.WithTimeout(ctx, b.config.MaxWait)
	defer cancel()

	if err := b.sem.Acquire(waitCtx, 1); err != nil {
		// Distinguish the caller giving up from the wait expiring.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			b.noteRejected()
			return ErrBulkheadFull
		}
		return err
	}

	b.noteAcquired()
	return nil
}

// Release returns a slot to the bulkhead.
func (b *Bulkhead) Release() {
	b.mu.Lock()
	if b.active > 0 {
		b.active--
		b.sem.Release(1)
	}
	b.mu.Unlock()
}

// Execute runs the operation within the bulkhead.
func (b *Bulkhead) Execute(ctx context.Context, op Operation) error {
	if err := b.Acquire(ctx); err != nil {
		return err
	}
	defer b.Release()

	return op(ctx)
}

func (b *Bulkhead) noteAcquired() {
	b.mu.Lock()
	b.active++
	if b.active > b.peak {
		b.peak = b.active
	}
	b.mu.Unlock()
}

func (b *Bulkhead) noteRejected() {
	b.mu.Lock()
	b.rejected++
	b.mu.Unlock()
}

// Metrics returns current bulkhead statistics.
func (b *Bulkhead) Metrics() BulkheadMetrics {
	b.mu.Lock()
	defer b.mu.Unlock()

	return BulkheadMetrics{
		Active:        b.active,
		Peak:          b.peak,
		Available:     b.config.MaxConcurrent - b.active,
		MaxConcurrent: b.config.MaxConcurrent,
		Rejected:      b.rejected,
	}
}

// BulkheadMetrics contains bulkhead statistics.
type BulkheadMetrics struct {
	Active        int
	Peak          int
	Available     int
	MaxConcurrent int
	Rejected      int64
}
