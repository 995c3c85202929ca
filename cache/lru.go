package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	createdAt time.Time
	expiresAt time.Time // zero = no expiry
	hits      uint64
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// LRU is a bounded in-memory cache with least-recently-used eviction and
// optional per-entry TTLs. All operations are safe for concurrent use; a
// single mutex guards each instance.
type LRU[V any] struct {
	mu         sync.Mutex
	entries    map[string]*list.Element
	order      *list.List // front = most recently used
	maxSize    int
	defaultTTL time.Duration
	maxTTL     time.Duration
	hits       uint64
	misses     uint64
}

// NewLRU creates a bounded cache holding at most maxSize entries.
// defaultTTL applies to entries stored without an explicit TTL; zero means
// entries do not expire.
func NewLRU[V any](maxSize int, defaultTTL time.Duration) (*LRU[V], error) {
	if maxSize <= 0 {
		return nil, ErrInvalidMaxSize
	}
	return &LRU[V]{
		entries:    make(map[string]*list.Element, maxSize),
		order:      list.New(),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
	}, nil
}

// SetMaxTTL caps the TTL of subsequently stored entries. Explicit overrides
// above the cap are clamped. Zero removes the cap.
func (c *LRU[V]) SetMaxTTL(d time.Duration) {
	c.mu.Lock()
	c.maxTTL = d
	c.mu.Unlock()
}

// Get retrieves a value and promotes it to most recently used. Expired
// entries are removed and reported as misses. A read of an absent key is a
// miss, never an error.
func (c *LRU[V]) Get(key string) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if ent.expired(time.Now()) {
		c.removeLocked(elem)
		c.misses++
		return zero, false
	}

	c.order.MoveToFront(elem)
	ent.hits++
	c.hits++
	return ent.value, true
}

// Set stores a value under the cache's default TTL.
func (c *LRU[V]) Set(key string, value V) {
	c.SetTTL(key, value, 0)
}

// SetTTL stores a value with an explicit TTL. A non-positive ttl falls back
// to the cache default; a zero default means no expiry. Storing over an
// existing key replaces the entry. When the cache is full the least
// recently used entries are evicted.
func (c *LRU[V]) SetTTL(key string, value V, ttl time.Duration) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	effective := ttl
	if effective <= 0 {
		effective = c.defaultTTL
	}
	if c.maxTTL > 0 && effective > c.maxTTL {
		effective = c.maxTTL
	}

	var expiresAt time.Time
	if effective > 0 {
		expiresAt = now.Add(effective)
	}

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.createdAt = now
		ent.expiresAt = expiresAt
		ent.hits = 0
		c.order.MoveToFront(elem)
		return
	}

	elem := c.order.PushFront(&entry[V]{
		key:       key,
		value:     value,
		createdAt: now,
		expiresAt: expiresAt,
	})
	c.entries[key] = elem

	for len(c.entries) > c.maxSize {
		c.removeLocked(c.order.Back())
	}
}

// Delete removes a key. Reports whether an entry was present.
func (c *LRU[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(elem)
	return true
}

// Clear removes all entries and resets the hit and miss counters.
// Returns the number of entries removed.
func (c *LRU[V]) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]*list.Element, c.maxSize)
	c.order.Init()
	c.hits = 0
	c.misses = 0
	return n
}

// CleanupExpired removes all expired entries and returns how many were
// removed. Expiry during cleanup does not count as a miss.
func (c *LRU[V]) CleanupExpired() int {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry[V]).expired(now) {
			c.removeLocked(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Len returns the current number of entries, including any not yet
// observed as expired.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of cache occupancy and effectiveness.
func (c *LRU[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var hitRate float64
	if total := c.hits + c.misses; total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:       len(c.entries),
		MaxSize:    c.maxSize,
		Hits:       c.hits,
		Misses:     c.misses,
		HitRate:    hitRate,
		DefaultTTL: c.defaultTTL,
	}
}

func (c *LRU[V]) removeLocked(elem *list.Element) {
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*entry[V]).key)
}
