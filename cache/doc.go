// Package cache provides bounded in-memory caching for expensive calls.
//
// It provides a generic LRU store with per-entry TTLs, deterministic
// SHA-256 key derivation, and specializations for embedding vectors and
// argument-addressed responses.
package cache
