package resilience

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for resilience operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker rejects a call.
	ErrCircuitOpen = errors.New("resilience: circuit breaker is open")

	// ErrRateLimitExceeded is returned when a client exceeds its rate limit.
	ErrRateLimitExceeded = errors.New("resilience: rate limit exceeded")

	// ErrBulkheadFull is returned when the bulkhead is at capacity.
	ErrBulkheadFull = errors.New("resilience: bulkhead at capacity")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("resilience: operation timed out")
)

// CircuitOpenError is returned when a breaker rejects a call without
// attempting the operation. It carries the identity of the guarded
// dependency and matches ErrCircuitOpen via errors.Is.
type CircuitOpenError struct {
	// Dependency is the name of the guarded dependency.
	Dependency string
}

func (e *CircuitOpenError) Error() string {
	if e.Dependency == "" {
		return ErrCircuitOpen.Error()
	}
	return fmt.Sprintf("%s: %s", ErrCircuitOpen.Error(), e.Dependency)
}

func (e *CircuitOpenError) Unwrap() error {
	return ErrCircuitOpen
}

// TimeoutError is returned when a deadline elapses. It carries the
// configured timeout and matches ErrTimeout via errors.Is.
type TimeoutError struct {
	// Timeout is the configured deadline that elapsed.
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s after %s", ErrTimeout.Error(), e.Timeout)
}

func (e *TimeoutError) Unwrap() error {
	return ErrTimeout
}

// RateLimitError is returned when a client is rejected by the rate
// limiter. It carries how long the client should wait before retrying
// and matches ErrRateLimitExceeded via errors.Is.
type RateLimitError struct {
	// ClientKey identifies the rejected client.
	ClientKey string

	// RetryAfter is the wait before the next token becomes available.
	// Always at least one second.
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s for %s, retry after %s", ErrRateLimitExceeded.Error(), e.ClientKey, e.RetryAfter)
}

func (e *RateLimitError) Unwrap() error {
	return ErrRateLimitExceeded
}
