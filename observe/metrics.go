package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records cache and resilience events for guarded calls.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordCall records a guarded dependency call with duration and error status.
	RecordCall(ctx context.Context, meta DependencyMeta, duration time.Duration, err error)

	// RecordCacheLookup records a cache read as a hit or a miss.
	RecordCacheLookup(ctx context.Context, cacheName string, hit bool)

	// RecordRetry records one retry of a dependency call.
	RecordRetry(ctx context.Context, meta DependencyMeta, attempt int)

	// RecordStateChange records a circuit breaker transition.
	RecordStateChange(ctx context.Context, breaker, from, to string)

	// RecordRateLimited records a rate-limiter rejection for a client.
	RecordRateLimited(ctx context.Context, clientKey string)
}

type metricsImpl struct {
	meter        metric.Meter
	callCount    metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
	cacheLookups metric.Int64Counter
	retries      metric.Int64Counter
	transitions  metric.Int64Counter
	rateLimited  metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	callCount, err := meter.Int64Counter(
		"guard.call.total",
		metric.WithDescription("Total number of guarded dependency calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"guard.call.errors",
		metric.WithDescription("Total number of guarded call errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"guard.call.duration_ms",
		metric.WithDescription("Guarded call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"guard.cache.lookups",
		metric.WithDescription("Cache lookups, partitioned by hit/miss"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	retries, err := meter.Int64Counter(
		"guard.retry.attempts",
		metric.WithDescription("Retries of guarded calls"),
		metric.WithUnit("{retry}"),
	)
	if err != nil {
		return nil, err
	}

	transitions, err := meter.Int64Counter(
		"guard.breaker.transitions",
		metric.WithDescription("Circuit breaker state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	rateLimited, err := meter.Int64Counter(
		"guard.ratelimit.rejections",
		metric.WithDescription("Rate limiter rejections"),
		metric.WithUnit("{rejection}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		callCount:    callCount,
		errorCount:   errorCount,
		durationHist: durationHist,
		cacheLookups: cacheLookups,
		retries:      retries,
		transitions:  transitions,
		rateLimited:  rateLimited,
	}, nil
}

func (m *metricsImpl) RecordCall(ctx context.Context, meta DependencyMeta, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("dependency.name", meta.Name),
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("dependency.operation", meta.Operation))
	}

	opt := metric.WithAttributes(attrs...)

	m.callCount.Add(ctx, 1, opt)
	if err != nil {
		m.errorCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

func (m *metricsImpl) RecordCacheLookup(ctx context.Context, cacheName string, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache.name", cacheName),
		attribute.Bool("cache.hit", hit),
	))
}

func (m *metricsImpl) RecordRetry(ctx context.Context, meta DependencyMeta, attempt int) {
	m.retries.Add(ctx, 1, metric.WithAttributes(
		attribute.String("dependency.name", meta.Name),
		attribute.Int("retry.attempt", attempt),
	))
}

func (m *metricsImpl) RecordStateChange(ctx context.Context, breaker, from, to string) {
	m.transitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("breaker.name", breaker),
		attribute.String("breaker.from", from),
		attribute.String("breaker.to", to),
	))
}

func (m *metricsImpl) RecordRateLimited(ctx context.Context, clientKey string) {
	m.rateLimited.Add(ctx, 1, metric.WithAttributes(
		attribute.String("client.key", clientKey),
	))
}

// NoopMetrics is a metrics implementation that does nothing.
type NoopMetrics struct{}

func (NoopMetrics) RecordCall(ctx context.Context, meta DependencyMeta, duration time.Duration, err error) {
}
func (NoopMetrics) RecordCacheLookup(ctx context.Context, cacheName string, hit bool)  {}
func (NoopMetrics) RecordRetry(ctx context.Context, meta DependencyMeta, attempt int)  {}
func (NoopMetrics) RecordStateChange(ctx context.Context, breaker, from, to string)    {}
func (NoopMetrics) RecordRateLimited(ctx context.Context, clientKey string)            {}

var _ Metrics = (*metricsImpl)(nil)
var _ Metrics = NoopMetrics{}
