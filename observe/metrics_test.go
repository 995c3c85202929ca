package observe

import (
	"context"
	"errors"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMetrics(t *testing.T) (Metrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}
	return m, reader
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	found := findMetric(rm, name)
	if found == nil {
		t.Fatalf("metric %s not found", name)
	}

	sum, ok := found.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s: expected Sum[int64], got %T", name, found.Data)
	}

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_RecordCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := DependencyMeta{Name: "llm-backend", Operation: "generate"}

	m.RecordCall(context.Background(), meta, 100*time.Millisecond, nil)

	if got := collectSum(t, reader, "guard.call.total"); got != 1 {
		t.Errorf("guard.call.total = %d, want 1", got)
	}
}

func TestMetrics_RecordCallError(t *testing.T) {
	m, reader := newTestMetrics(t)
	meta := DependencyMeta{Name: "llm-backend"}

	m.RecordCall(context.Background(), meta, time.Millisecond, errors.New("backend down"))
	m.RecordCall(context.Background(), meta, time.Millisecond, nil)

	if got := collectSum(t, reader, "guard.call.errors"); got != 1 {
		t.Errorf("guard.call.errors = %d, want 1", got)
	}
	if got := collectSum(t, reader, "guard.call.total"); got != 2 {
		t.Errorf("guard.call.total = %d, want 2", got)
	}
}

func TestMetrics_RecordCallDuration(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordCall(context.Background(), DependencyMeta{Name: "dep"}, 250*time.Millisecond, nil)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}

	found := findMetric(rm, "guard.call.duration_ms")
	if found == nil {
		t.Fatal("guard.call.duration_ms not found")
	}
	hist, ok := found.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected Histogram[float64], got %T", found.Data)
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no histogram data points")
	}
	if hist.DataPoints[0].Sum != 250 {
		t.Errorf("duration sum = %f, want 250", hist.DataPoints[0].Sum)
	}
}

func TestMetrics_RecordCacheLookup(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordCacheLookup(ctx, "embeddings", true)
	m.RecordCacheLookup(ctx, "embeddings", false)
	m.RecordCacheLookup(ctx, "responses", true)

	if got := collectSum(t, reader, "guard.cache.lookups"); got != 3 {
		t.Errorf("guard.cache.lookups = %d, want 3", got)
	}
}

func TestMetrics_RecordRetry(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordRetry(context.Background(), DependencyMeta{Name: "llm-backend"}, 1)
	m.RecordRetry(context.Background(), DependencyMeta{Name: "llm-backend"}, 2)

	if got := collectSum(t, reader, "guard.retry.attempts"); got != 2 {
		t.Errorf("guard.retry.attempts = %d, want 2", got)
	}
}

func TestMetrics_RecordStateChange(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordStateChange(context.Background(), "llm-backend", "closed", "open")

	if got := collectSum(t, reader, "guard.breaker.transitions"); got != 1 {
		t.Errorf("guard.breaker.transitions = %d, want 1", got)
	}
}

func TestMetrics_RecordRateLimited(t *testing.T) {
	m, reader := newTestMetrics(t)

	m.RecordRateLimited(context.Background(), "key:sk-abcde")

	if got := collectSum(t, reader, "guard.ratelimit.rejections"); got != 1 {
		t.Errorf("guard.ratelimit.rejections = %d, want 1", got)
	}
}

func TestNoopMetrics_DoesNotPanic(t *testing.T) {
	var m Metrics = NoopMetrics{}
	ctx := context.Background()

	m.RecordCall(ctx, DependencyMeta{Name: "dep"}, time.Second, errors.New("x"))
	m.RecordCacheLookup(ctx, "c", true)
	m.RecordRetry(ctx, DependencyMeta{Name: "dep"}, 1)
	m.RecordStateChange(ctx, "b", "closed", "open")
	m.RecordRateLimited(ctx, "k")
}
