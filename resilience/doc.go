// Package resilience shields calls to slow or unreliable dependencies,
// such as LLM generation backends and vector-search backends, from
// cascading failures and unbounded latency.
//
// The package is agnostic to what the wrapped operation does; it only
// observes whether the operation succeeds, fails, or exceeds a deadline.
//
// # Patterns
//
//   - Circuit Breaker: stops calling a failing dependency for a cooldown
//     period. Construct one breaker per logical dependency at process
//     start and share it by reference; breakers are the only cross-request
//     shared mutable state in this package besides rate limiter buckets.
//
//   - Retry: exponential backoff with jitter around an operation, with a
//     caller-supplied predicate classifying retryable vs. fatal failures.
//
//   - ClientLimiter: per-client token bucket admission control with a
//     retry-after hint on rejection.
//
//   - Timeout: races an operation against a deadline.
//
//   - Fallback: substitutes a recovery operation for selected failures.
//
//   - Bulkhead: caps concurrent in-flight calls to one dependency.
//
// # Composition
//
// The Executor applies the patterns in a fixed order so that a breaker
// rejection never consumes a retry attempt and each composed invocation
// records exactly one breaker outcome:
//
//	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
//	    Name:             "llm-backend",
//	    FailureThreshold: 3,
//	    RecoveryTimeout:  30 * time.Second,
//	})
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: time.Second,
//	    Jitter:       true,
//	})
//
//	executor := resilience.NewExecutor(
//	    resilience.WithCircuitBreaker(breaker),
//	    resilience.WithRetry(retry),
//	    resilience.WithTimeout(30*time.Second),
//	    resilience.WithFallback(resilience.NewFallback(cachedAnswer, nil)),
//	)
//
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return callBackend(ctx)
//	})
//
// State is process-local and lost on restart; these are advisory
// performance and stability controls, not correctness-critical data.
package resilience
