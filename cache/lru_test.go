package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewLRU_InvalidMaxSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewLRU[string](size, 0); !errors.Is(err, ErrInvalidMaxSize) {
			t.Errorf("NewLRU(%d) error = %v, want ErrInvalidMaxSize", size, err)
		}
	}
}

func TestLRU_GetSet(t *testing.T) {
	c, err := NewLRU[string](10, 0)
	if err != nil {
		t.Fatalf("NewLRU() error = %v", err)
	}

	c.Set("k1", "v1")

	got, ok := c.Get("k1")
	if !ok {
		t.Fatal("Get(k1) ok = false")
	}
	if got != "v1" {
		t.Errorf("Get(k1) = %q, want v1", got)
	}

	if _, ok := c.Get("absent"); ok {
		t.Error("Get(absent) ok = true")
	}
}

func TestLRU_MissOnEmptyCacheIsNotAnError(t *testing.T) {
	c, _ := NewLRU[int](5, 0)

	if v, ok := c.Get("anything"); ok || v != 0 {
		t.Errorf("Get() = (%d, %v), want zero value miss", v, ok)
	}
	if s := c.Stats(); s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := NewLRU[int](3, 0)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the LRU entry.
	c.Get("a")

	c.Set("d", 4)

	if _, ok := c.Get("b"); ok {
		t.Error("b survived eviction, want evicted as LRU")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("%s evicted, want retained", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLRU_ReplaceExistingKey(t *testing.T) {
	c, _ := NewLRU[string](2, 0)

	c.Set("k", "old")
	c.Set("k", "new")

	got, _ := c.Get("k")
	if got != "new" {
		t.Errorf("Get(k) = %q, want new", got)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestLRU_TTLExpiry(t *testing.T) {
	c, _ := NewLRU[string](10, 10*time.Millisecond)

	c.Set("k", "v")
	if _, ok := c.Get("k"); !ok {
		t.Fatal("Get() ok = false before expiry")
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Get() ok = true after expiry")
	}
	// The expired read counts as a miss and removes the entry.
	if s := c.Stats(); s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestLRU_SetTTLOverridesDefault(t *testing.T) {
	c, _ := NewLRU[string](10, time.Hour)

	c.SetTTL("short", "v", 10*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("short-TTL entry survived its override")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("default-TTL entry expired early")
	}
}

func TestLRU_ZeroTTLMeansNoExpiry(t *testing.T) {
	c, _ := NewLRU[string](10, 0)

	c.Set("k", "v")
	time.Sleep(15 * time.Millisecond)

	if _, ok := c.Get("k"); !ok {
		t.Error("entry expired with no TTL configured")
	}
}

func TestLRU_MaxTTLClampsOverride(t *testing.T) {
	c, _ := NewLRU[string](10, 0)
	c.SetMaxTTL(10 * time.Millisecond)

	c.SetTTL("k", "v", time.Hour)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("entry survived past the TTL cap")
	}
}

func TestLRU_Delete(t *testing.T) {
	c, _ := NewLRU[string](10, 0)

	c.Set("k", "v")
	if !c.Delete("k") {
		t.Error("Delete(k) = false, want true")
	}
	if c.Delete("k") {
		t.Error("second Delete(k) = true, want false")
	}
	if _, ok := c.Get("k"); ok {
		t.Error("Get(k) ok = true after delete")
	}
}

func TestLRU_Clear(t *testing.T) {
	c, _ := NewLRU[string](10, 0)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a")
	c.Get("absent")

	if n := c.Clear(); n != 2 {
		t.Errorf("Clear() = %d, want 2", n)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	s := c.Stats()
	if s.Hits != 0 || s.Misses != 0 {
		t.Errorf("Stats after Clear = %d hits / %d misses, want 0/0", s.Hits, s.Misses)
	}
}

func TestLRU_CleanupExpired(t *testing.T) {
	c, _ := NewLRU[string](10, 0)

	c.SetTTL("e1", "v", 5*time.Millisecond)
	c.SetTTL("e2", "v", 5*time.Millisecond)
	c.Set("live", "v")

	time.Sleep(15 * time.Millisecond)

	if n := c.CleanupExpired(); n != 2 {
		t.Errorf("CleanupExpired() = %d, want 2", n)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	// Cleanup is not a read; miss counters stay put.
	if s := c.Stats(); s.Misses != 0 {
		t.Errorf("Misses = %d, want 0", s.Misses)
	}
}

func TestLRU_Stats(t *testing.T) {
	c, _ := NewLRU[string](5, time.Minute)

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("absent")

	s := c.Stats()
	if s.Size != 1 {
		t.Errorf("Size = %d, want 1", s.Size)
	}
	if s.MaxSize != 5 {
		t.Errorf("MaxSize = %d, want 5", s.MaxSize)
	}
	if s.Hits != 2 {
		t.Errorf("Hits = %d, want 2", s.Hits)
	}
	if s.Misses != 1 {
		t.Errorf("Misses = %d, want 1", s.Misses)
	}
	if want := 2.0 / 3.0; s.HitRate != want {
		t.Errorf("HitRate = %f, want %f", s.HitRate, want)
	}
	if s.DefaultTTL != time.Minute {
		t.Errorf("DefaultTTL = %v, want 1m", s.DefaultTTL)
	}
}

func TestLRU_ConcurrentAccess(t *testing.T) {
	c, _ := NewLRU[int](100, 0)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%50)
				c.Set(key, g*1000+i)
				c.Get(key)
				if i%10 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, want <= max size 100", c.Len())
	}
}
