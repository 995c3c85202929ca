package cache

import (
	"context"
	"errors"
	"testing"
)

func TestWrapper_CacheHitSkipsCompute(t *testing.T) {
	lru, _ := NewLRU[string](10, 0)
	w := NewWrapper(lru, nil)
	ctx := context.Background()

	computes := 0
	compute := func(ctx context.Context) (string, error) {
		computes++
		return "result", nil
	}

	for i := 0; i < 3; i++ {
		v, err := w.Do(ctx, compute, "search", "golang lru")
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if v != "result" {
			t.Errorf("Do() = %q, want result", v)
		}
	}

	if computes != 1 {
		t.Errorf("computeFn ran %d times, want 1", computes)
	}
}

func TestWrapper_DistinctArgsComputeSeparately(t *testing.T) {
	lru, _ := NewLRU[int](10, 0)
	w := NewWrapper(lru, nil)
	ctx := context.Background()

	computes := 0
	compute := func(ctx context.Context) (int, error) {
		computes++
		return computes, nil
	}

	v1, _ := w.Do(ctx, compute, "q1")
	v2, _ := w.Do(ctx, compute, "q2")

	if v1 == v2 {
		t.Error("distinct args shared a cache entry")
	}
	if computes != 2 {
		t.Errorf("computeFn ran %d times, want 2", computes)
	}
}

func TestWrapper_ErrorsNotCached(t *testing.T) {
	lru, _ := NewLRU[string](10, 0)
	w := NewWrapper(lru, nil)
	ctx := context.Background()

	backendErr := errors.New("backend down")
	computes := 0

	_, err := w.Do(ctx, func(ctx context.Context) (string, error) {
		computes++
		return "", backendErr
	}, "args")
	if !errors.Is(err, backendErr) {
		t.Fatalf("Do() error = %v, want %v", err, backendErr)
	}

	v, err := w.Do(ctx, func(ctx context.Context) (string, error) {
		computes++
		return "recovered", nil
	}, "args")
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if v != "recovered" {
		t.Errorf("Do() = %q, want recovered", v)
	}
	if computes != 2 {
		t.Errorf("computeFn ran %d times, want 2", computes)
	}
}

func TestWrapper_CustomKeyFunc(t *testing.T) {
	lru, _ := NewLRU[string](10, 0)
	w := NewWrapper(lru, func(args ...any) (string, error) {
		// Collapse all args onto one key.
		return "fixed", nil
	})
	ctx := context.Background()

	computes := 0
	compute := func(ctx context.Context) (string, error) {
		computes++
		return "v", nil
	}

	_, _ = w.Do(ctx, compute, "a")
	_, _ = w.Do(ctx, compute, "b")

	if computes != 1 {
		t.Errorf("computeFn ran %d times, want 1 with collapsing key func", computes)
	}
}

func TestWrapper_KeyFailureExecutesUncached(t *testing.T) {
	lru, _ := NewLRU[string](10, 0)
	w := NewWrapper(lru, func(args ...any) (string, error) {
		return "", errors.New("no key")
	})
	ctx := context.Background()

	computes := 0
	for i := 0; i < 2; i++ {
		v, err := w.Do(ctx, func(ctx context.Context) (string, error) {
			computes++
			return "v", nil
		}, "args")
		if err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		if v != "v" {
			t.Errorf("Do() = %q, want v", v)
		}
	}

	if computes != 2 {
		t.Errorf("computeFn ran %d times, want 2", computes)
	}
	if s := w.Stats(); s.Size != 0 {
		t.Errorf("Size = %d, want 0 with failing key func", s.Size)
	}
}
