package observe

import (
	"context"
	"fmt"
	"time"
)

// Hooks adapt logger and metrics to the callback signatures exposed by the
// cache and resilience packages, so those packages stay free of telemetry
// imports.

// RetryLogHook returns a callback for retry OnRetry hooks that logs each
// retry and records it as a metric.
func RetryLogHook(logger Logger, metrics Metrics, meta DependencyMeta) func(attempt int, err error, delay time.Duration) {
	depLogger := logger.WithDependency(meta)
	return func(attempt int, err error, delay time.Duration) {
		ctx := context.Background()
		metrics.RecordRetry(ctx, meta, attempt)
		depLogger.Warn(ctx, "retrying dependency call",
			Field{Key: "attempt", Value: attempt},
			Field{Key: "error", Value: err.Error()},
			Field{Key: "delay_ms", Value: float64(delay.Milliseconds())},
		)
	}
}

// StateChangeLogHook returns a callback for circuit breaker OnStateChange
// hooks. It is generic over the breaker's state type to avoid a dependency
// on the resilience package.
func StateChangeLogHook[S fmt.Stringer](logger Logger, metrics Metrics, breaker string) func(from, to S) {
	return func(from, to S) {
		ctx := context.Background()
		metrics.RecordStateChange(ctx, breaker, from.String(), to.String())
		logger.Warn(ctx, "circuit breaker state changed",
			Field{Key: "breaker", Value: breaker},
			Field{Key: "from", Value: from.String()},
			Field{Key: "to", Value: to.String()},
		)
	}
}

// DimensionMismatchLogHook returns a callback for the embedding cache's
// OnDimensionMismatch hook.
func DimensionMismatchLogHook(logger Logger) func(key string, want, got int) {
	return func(key string, want, got int) {
		logger.Warn(context.Background(), "embedding dimension mismatch",
			Field{Key: "key", Value: key},
			Field{Key: "want", Value: want},
			Field{Key: "got", Value: got},
		)
	}
}
