package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
)

// ContentKey generates a deterministic cache key from a piece of text.
// The key is the first 16 bytes of SHA-256(text) in hex (32 characters).
func ContentKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:16])
}

// ArgsKey generates a deterministic cache key from an argument tuple.
// Arguments are serialized to canonical JSON (maps sorted by key) before
// hashing, so identical tuples always map to the same key regardless of
// map iteration order.
func ArgsKey(args ...any) (string, error) {
	canonical, err := canonicalize([]any(args))
	if err != nil {
		return "", fmt.Errorf("cache: failed to canonicalize args: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:16]), nil
}

// canonicalize produces a deterministic JSON representation of the value.
// Maps are sorted by key.
func canonicalize(v any) ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}

	switch val := v.(type) {
	case map[string]any:
		return canonicalizeMap(val)
	case []any:
		return canonicalizeSlice(val)
	default:
		return json.Marshal(v)
	}
}

func canonicalizeMap(m map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []byte("{")
	for i, k := range keys {
		if i > 0 {
			result = append(result, ',')
		}

		keyBytes, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		result = append(result, keyBytes...)
		result = append(result, ':')

		valBytes, err := canonicalize(m[k])
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, '}')

	return result, nil
}

func canonicalizeSlice(s []any) ([]byte, error) {
	result := []byte("[")
	for i, v := range s {
		if i > 0 {
			result = append(result, ',')
		}

		valBytes, err := canonicalize(v)
		if err != nil {
			return nil, err
		}
		result = append(result, valBytes...)
	}
	result = append(result, ']')

	return result, nil
}
