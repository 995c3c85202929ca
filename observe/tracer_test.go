package observe

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDependencyMeta_SpanName(t *testing.T) {
	tests := []struct {
		meta DependencyMeta
		want string
	}{
		{DependencyMeta{Name: "llm-backend"}, "guard.call.llm-backend"},
		{DependencyMeta{Name: "vector-store", Operation: "search"}, "guard.call.vector-store.search"},
	}

	for _, tt := range tests {
		if got := tt.meta.SpanName(); got != tt.want {
			t.Errorf("SpanName() = %q, want %q", got, tt.want)
		}
	}
}

func TestTracer_StartEndSpan(t *testing.T) {
	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))
	tr := NewTracer(tp.Tracer("test"))

	ctx, span := tr.StartSpan(context.Background(), DependencyMeta{
		Name: "llm-backend",
		Kind: "llm",
	})
	if ctx == nil {
		t.Fatal("StartSpan() ctx = nil")
	}
	tr.EndSpan(span, nil)

	got := spans.GetSpans()
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	if got[0].Status.Code != codes.Ok {
		t.Errorf("status = %v, want Ok", got[0].Status.Code)
	}
}

func TestTracer_EndSpanRecordsError(t *testing.T) {
	spans := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(spans))
	tr := NewTracer(tp.Tracer("test"))

	_, span := tr.StartSpan(context.Background(), DependencyMeta{Name: "dep"})
	tr.EndSpan(span, errors.New("call failed"))

	got := spans.GetSpans()
	if len(got) != 1 {
		t.Fatalf("got %d spans, want 1", len(got))
	}
	if got[0].Status.Code != codes.Error {
		t.Errorf("status = %v, want Error", got[0].Status.Code)
	}
	if got[0].Status.Description != "call failed" {
		t.Errorf("description = %q, want call failed", got[0].Status.Description)
	}
}

func TestNoopTracer(t *testing.T) {
	tr := NewNoopTracer()

	_, span := tr.StartSpan(context.Background(), DependencyMeta{Name: "dep"})
	// Must not panic, with or without an error.
	tr.EndSpan(span, errors.New("ignored"))
}
