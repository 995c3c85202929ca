package cache

import (
	"testing"
)

func TestContentKey_Deterministic(t *testing.T) {
	k1 := ContentKey("the quick brown fox")
	k2 := ContentKey("the quick brown fox")

	if k1 != k2 {
		t.Errorf("same text produced different keys: %q vs %q", k1, k2)
	}
	if len(k1) != 32 {
		t.Errorf("key length = %d, want 32 hex chars", len(k1))
	}
}

func TestContentKey_DistinctTexts(t *testing.T) {
	if ContentKey("alpha") == ContentKey("beta") {
		t.Error("distinct texts produced the same key")
	}
}

func TestArgsKey_Deterministic(t *testing.T) {
	k1, err := ArgsKey("query", 5, true)
	if err != nil {
		t.Fatalf("ArgsKey() error = %v", err)
	}
	k2, err := ArgsKey("query", 5, true)
	if err != nil {
		t.Fatalf("ArgsKey() error = %v", err)
	}

	if k1 != k2 {
		t.Errorf("same args produced different keys: %q vs %q", k1, k2)
	}
}

func TestArgsKey_MapOrderIndependent(t *testing.T) {
	// Maps with the same contents must hash identically regardless of
	// iteration order.
	m1 := map[string]any{"a": 1, "b": 2, "c": 3}
	m2 := map[string]any{"c": 3, "b": 2, "a": 1}

	k1, err := ArgsKey(m1)
	if err != nil {
		t.Fatalf("ArgsKey() error = %v", err)
	}
	k2, err := ArgsKey(m2)
	if err != nil {
		t.Fatalf("ArgsKey() error = %v", err)
	}

	if k1 != k2 {
		t.Errorf("equivalent maps produced different keys: %q vs %q", k1, k2)
	}
}

func TestArgsKey_NestedStructures(t *testing.T) {
	nested := map[string]any{
		"outer": map[string]any{"z": 1, "a": 2},
		"list":  []any{1, "two", map[string]any{"k": "v"}},
	}

	k1, err := ArgsKey(nested)
	if err != nil {
		t.Fatalf("ArgsKey() error = %v", err)
	}
	k2, _ := ArgsKey(map[string]any{
		"list":  []any{1, "two", map[string]any{"k": "v"}},
		"outer": map[string]any{"a": 2, "z": 1},
	})

	if k1 != k2 {
		t.Error("equivalent nested structures produced different keys")
	}
}

func TestArgsKey_DistinctArgs(t *testing.T) {
	k1, _ := ArgsKey("query", 5)
	k2, _ := ArgsKey("query", 6)

	if k1 == k2 {
		t.Error("distinct args produced the same key")
	}
}

func TestArgsKey_ArgOrderMatters(t *testing.T) {
	k1, _ := ArgsKey("a", "b")
	k2, _ := ArgsKey("b", "a")

	if k1 == k2 {
		t.Error("reordered args produced the same key")
	}
}

func TestArgsKey_NilArgs(t *testing.T) {
	k1, err := ArgsKey(nil)
	if err != nil {
		t.Fatalf("ArgsKey(nil) error = %v", err)
	}
	k2, _ := ArgsKey(nil)

	if k1 != k2 {
		t.Error("nil arg produced unstable key")
	}
}

func TestArgsKey_UnmarshalableArg(t *testing.T) {
	if _, err := ArgsKey(func() {}); err == nil {
		t.Error("ArgsKey(func) error = nil, want marshal error")
	}
}
