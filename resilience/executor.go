package resilience

import (
	"context"
	"time"
)

// Executor composes resilience patterns into one guarded call.
//
// Unlike ad-hoc wrapping at each call site, the order of application is
// fixed (see Execute), so a breaker rejection never consumes a retry
// attempt and the breaker records exactly one outcome per composed
// invocation.
type Executor struct {
	limiter   *ClientLimiter
	clientKey string
	bulkhead  *Bulkhead
	breaker   *CircuitBreaker
	retry     *Retry
	timeout   *Timeout
	fallback  *Fallback
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCircuitBreaker adds a circuit breaker to the executor.
func WithCircuitBreaker(cb *CircuitBreaker) ExecutorOption {
	return func(e *Executor) {
		e.breaker = cb
	}
}

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithClientLimiter adds rate limiting to the executor, charged against
// the given client key.
func WithClientLimiter(cl *ClientLimiter, clientKey string) ExecutorOption {
	return func(e *Executor) {
		e.limiter = cl
		e.clientKey = clientKey
	}
}

// WithBulkhead adds concurrency isolation to the executor.
func WithBulkhead(b *Bulkhead) ExecutorOption {
	return func(e *Executor) {
		e.bulkhead = b
	}
}

// WithTimeout adds a per-attempt timeout to the executor.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.timeout = NewTimeout(TimeoutConfig{Timeout: timeout})
	}
}

// WithTimeoutConfig adds a per-attempt timeout with custom config.
func WithTimeoutConfig(t *Timeout) ExecutorOption {
	return func(e *Executor) {
		e.timeout = t
	}
}

// WithFallback adds a terminal fallback to the executor.
func WithFallback(f *Fallback) ExecutorOption {
	return func(e *Executor) {
		e.fallback = f
	}
}

// Execute runs the operation through all configured patterns, in fixed
// order per invocation:
//
//  1. Rate limiter admission (if configured); rejection returns a
//     *RateLimitError without touching any other pattern.
//  2. Bulkhead slot (if configured).
//  3. Circuit breaker availability; an open circuit returns a
//     *CircuitOpenError immediately, consuming no retry attempt and
//     recording no outcome.
//  4. The retry loop around the timeout-wrapped operation. The timeout
//     bounds each individual attempt, not the whole retry sequence, so a
//     timed-out attempt can still be retried fresh.
//  5. Exactly one breaker outcome, recorded after the retry loop
//     concludes.
//  6. On terminal failure, the fallback (if configured and matching),
//     otherwise the failure propagates unchanged.
func (e *Executor) Execute(ctx context.Context, op Operation) error {
	guarded := func(ctx context.Context) error {
		if e.limiter != nil {
			if !e.limiter.Allow(e.clientKey) {
				return &RateLimitError{
					ClientKey:  e.clientKey,
					RetryAfter: e.limiter.RetryAfter(e.clientKey),
				}
			}
		}

		body := func(ctx context.Context) error {
			if e.breaker != nil {
				if err := e.breaker.Allow(); err != nil {
					return err
				}
			}

			err := e.attempt(ctx, op)

			if e.breaker != nil {
				e.breaker.Record(err)
			}
			return err
		}

		if e.bulkhead != nil {
			return e.bulkhead.Execute(ctx, body)
		}
		return body(ctx)
	}

	if e.fallback != nil {
		return e.fallback.Execute(ctx, guarded)
	}
	return guarded(ctx)
}

// attempt runs the timeout-wrapped operation through the retry loop.
func (e *Executor) attempt(ctx context.Context, op Operation) error {
	run := op
	if e.timeout != nil {
		inner := run
		run = func(ctx context.Context) error {
			return e.timeout.Execute(ctx, inner)
		}
	}

	if e.retry != nil {
		return e.retry.Execute(ctx, run)
	}
	return run(ctx)
}
