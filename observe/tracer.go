package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// DependencyMeta identifies a guarded external dependency for telemetry.
type DependencyMeta struct {
	Name      string // Dependency name, e.g. "llm-backend" (required)
	Kind      string // Dependency kind, e.g. "llm", "vector", "http" (optional)
	Operation string // Operation name, e.g. "generate", "search" (optional)
}

// SpanName returns the deterministic span name for this dependency call.
// Format: guard.call.<name>.<operation> or guard.call.<name>
func (m DependencyMeta) SpanName() string {
	if m.Operation != "" {
		return "guard.call." + m.Name + "." + m.Operation
	}
	return "guard.call." + m.Name
}

// Tracer wraps OpenTelemetry tracing with dependency-call span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndSpan must be best-effort and must not panic.
type Tracer interface {
	// StartSpan starts a new span for a dependency call.
	StartSpan(ctx context.Context, meta DependencyMeta) (context.Context, trace.Span)

	// EndSpan ends the span, recording any error.
	EndSpan(span trace.Span, err error)
}

type tracerImpl struct {
	tracer trace.Tracer
}

// NewTracer creates a Tracer wrapping the given OpenTelemetry tracer.
func NewTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartSpan starts a new span with dependency metadata as attributes.
func (t *tracerImpl) StartSpan(ctx context.Context, meta DependencyMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("dependency.name", meta.Name),
		attribute.Bool("dependency.error", false), // Updated in EndSpan on error
	}
	if meta.Kind != "" {
		attrs = append(attrs, attribute.String("dependency.kind", meta.Kind))
	}
	if meta.Operation != "" {
		attrs = append(attrs, attribute.String("dependency.operation", meta.Operation))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	return ctx, span
}

// EndSpan ends the span and records the error status if present.
func (t *tracerImpl) EndSpan(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Bool("dependency.error", true))
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// NewNoopTracer creates a no-op tracer.
func NewNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartSpan(ctx context.Context, meta DependencyMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndSpan(span trace.Span, err error) {
	span.End()
}
