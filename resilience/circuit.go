package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means the circuit is operating normally.
	StateClosed State = iota
	// StateOpen means the circuit is blocking all requests.
	StateOpen
	// StateHalfOpen means the circuit is testing if the dependency recovered.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the guarded dependency. It is carried by the
	// rejection error so callers can tell which dependency is open.
	Name string

	// FailureThreshold is the number of consecutive failures while closed
	// before opening the circuit.
	// Default: 5
	FailureThreshold int

	// RecoveryTimeout is how long the circuit stays open before trial
	// calls are admitted. The open-to-half-open transition is evaluated
	// lazily on state queries; there is no background timer.
	// Default: 30 seconds
	RecoveryTimeout time.Duration

	// HalfOpenMaxCalls is both the number of trial calls admitted while
	// half-open and the number of consecutive successes required to close.
	// Default: 1
	HalfOpenMaxCalls int

	// OnStateChange is called when the circuit state changes. Intended
	// for logging and metrics; it never alters control flow.
	OnStateChange func(from, to State)

	// IsFailure classifies an error as a failure against the breaker.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool
}

// CircuitBreaker guards a single dependency. Construct one breaker per
// protected dependency at process start and share it across callers; all
// state lives behind the breaker's own lock.
type CircuitBreaker struct {
	config CircuitBreakerConfig

	mu            sync.Mutex
	state         State
	failures      int
	successes     int
	lastFailure   time.Time
	halfOpenCalls int
}

// NewCircuitBreaker creates a new circuit breaker.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	// Apply defaults
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = 5
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
	}
}

// Execute runs the operation through the circuit breaker, recording
// exactly one outcome for the call.
func (cb *CircuitBreaker) Execute(ctx context.Context, op Operation) error {
	if err := cb.Allow(); err != nil {
		return err
	}

	err := op(ctx)
	cb.Record(err)
	return err
}

// Allow reports whether a call may proceed. While half-open it also
// reserves one of the trial slots, so every nil return must be balanced
// by exactly one Record call.
func (cb *CircuitBreaker) Allow() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateOpen:
		return &CircuitOpenError{Dependency: cb.config.Name}
	case StateHalfOpen:
		if cb.halfOpenCalls >= cb.config.HalfOpenMaxCalls {
			return &CircuitOpenError{Dependency: cb.config.Name}
		}
		cb.halfOpenCalls++
	}

	return nil
}

// IsAvailable reports whether a call would currently be admitted. Unlike
// Allow it reserves nothing.
func (cb *CircuitBreaker) IsAvailable() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.currentStateLocked() {
	case StateClosed:
		return true
	case StateHalfOpen:
		return cb.halfOpenCalls < cb.config.HalfOpenMaxCalls
	default:
		return false
	}
}

// Record records one outcome against the breaker, classified by the
// configured IsFailure predicate.
func (cb *CircuitBreaker) Record(err error) {
	if cb.config.IsFailure(err) {
		cb.RecordFailure()
	} else {
		cb.RecordSuccess()
	}
}

// RecordSuccess records a successful call.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state

	switch cb.state {
	case StateHalfOpen:
		cb.successes++
		if cb.successes >= cb.config.HalfOpenMaxCalls {
			// Dependency recovered
			cb.state = StateClosed
			cb.failures = 0
			cb.successes = 0
			cb.halfOpenCalls = 0
		}
	case StateClosed:
		cb.failures = 0
	}

	cb.notifyLocked(oldState)
}

// RecordFailure records a failed call.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.lastFailure = time.Now()

	switch cb.state {
	case StateHalfOpen:
		// Failed during probe, go back to open and restart the timeout.
		cb.state = StateOpen
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.FailureThreshold {
			cb.state = StateOpen
		}
	}

	cb.notifyLocked(oldState)
}

// State returns the current circuit state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentStateLocked()
}

// Name returns the name of the guarded dependency.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// Reset forces the breaker to closed and clears all counters and timers,
// regardless of elapsed time. Operator action only.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	oldState := cb.state
	cb.state = StateClosed
	cb.failures = 0
	cb.successes = 0
	cb.halfOpenCalls = 0
	cb.lastFailure = time.Time{}

	cb.notifyLocked(oldState)
}

func (cb *CircuitBreaker) currentStateLocked() State {
	if cb.state == StateOpen && time.Since(cb.lastFailure) >= cb.config.RecoveryTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenCalls = 0
		cb.successes = 0
		if cb.config.OnStateChange != nil {
			cb.config.OnStateChange(StateOpen, StateHalfOpen)
		}
	}
	return cb.state
}

func (cb *CircuitBreaker) notifyLocked(oldState State) {
	if oldState != cb.state && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(oldState, cb.state)
	}
}

// Metrics returns current circuit breaker statistics.
func (cb *CircuitBreaker) Metrics() CircuitBreakerMetrics {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return CircuitBreakerMetrics{
		State:       cb.currentStateLocked(),
		Failures:    cb.failures,
		Successes:   cb.successes,
		LastFailure: cb.lastFailure,
	}
}

// CircuitBreakerMetrics contains circuit breaker statistics.
type CircuitBreakerMetrics struct {
	State       State
	Failures    int
	Successes   int
	LastFailure time.Time
}
