package render

import (
	"image"
	"testing"
)

func frameOf(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestKeyString(t *testing.T) {
	k := Key{Bucket: LateNight, Width: 1080, Height: 1920}
	if got, want := k.String(), "late_night:1080x1920"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func testCacheContract(t *testing.T, c Cache) {
	t.Helper()

	k1 := Key{Bucket: Morning, Width: 10, Height: 20}
	k2 := Key{Bucket: Morning, Width: 20, Height: 10}
	k3 := Key{Bucket: Night, Width: 10, Height: 20}

	if !c.ShouldRecompute(k1) {
		t.Fatal("empty cache should recompute")
	}
	img := frameOf(10, 20)
	c.Store(k1, img)
	if c.ShouldRecompute(k1) {
		t.Fatal("stored key should not recompute")
	}
	got, ok := c.Get(k1)
	if !ok || got != img {
		t.Fatal("expected stored image")
	}
	for _, k := range []Key{k2, k3} {
		if !c.ShouldRecompute(k) {
			t.Fatalf("%s should recompute", k)
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("Get(%s) returned an entry for another key", k)
		}
	}

	c.Purge()
	if c.Len() != 0 || c.Bytes() != 0 {
		t.Fatalf("after Purge len=%d bytes=%d", c.Len(), c.Bytes())
	}
	if !c.ShouldRecompute(k1) {
		t.Fatal("purged key should recompute")
	}
}

func TestSingleCacheContract(t *testing.T) {
	testCacheContract(t, NewSingleCache())
}

func TestLRUCacheContract(t *testing.T) {
	c, err := NewLRUCache(1 << 20)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	testCacheContract(t, c)
}

func TestSingleCacheKeepsOnlyLatest(t *testing.T) {
	c := NewSingleCache()
	a := Key{Bucket: Morning, Width: 1, Height: 1}
	b := Key{Bucket: Evening, Width: 1, Height: 1}
	c.Store(a, frameOf(1, 1))
	c.Store(b, frameOf(1, 1))
	if !c.ShouldRecompute(a) || c.ShouldRecompute(b) {
		t.Fatal("expected only the latest key to be cached")
	}
	if c.Len() != 1 || c.Bytes() != 4 {
		t.Fatalf("len=%d bytes=%d, want 1 and 4", c.Len(), c.Bytes())
	}
}

func TestLRUCacheEvictsByBytes(t *testing.T) {
	// Each 10x10 frame is 400 bytes; the budget fits two.
	c, err := NewLRUCache(800)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	var evicted []Key
	c.OnEvict = func(k Key, _ int) { evicted = append(evicted, k) }

	k1 := Key{Bucket: Morning, Width: 10, Height: 10}
	k2 := Key{Bucket: Afternoon, Width: 10, Height: 10}
	k3 := Key{Bucket: Evening, Width: 10, Height: 10}

	c.Store(k1, frameOf(10, 10))
	c.Store(k2, frameOf(10, 10))
	if _, ok := c.Get(k1); !ok {
		t.Fatal("expected k1")
	}
	c.Store(k3, frameOf(10, 10))

	if len(evicted) != 1 || evicted[0] != k2 {
		t.Fatalf("evicted = %v, want [%s]", evicted, k2)
	}
	if c.Len() != 2 || c.Bytes() != 800 {
		t.Fatalf("len=%d bytes=%d, want 2 and 800", c.Len(), c.Bytes())
	}
}

func TestLRUCacheReplaceSameKey(t *testing.T) {
	c, _ := NewLRUCache(10000)
	k := Key{Bucket: Night, Width: 10, Height: 10}
	c.Store(k, frameOf(10, 10))
	c.Store(k, frameOf(10, 10))
	if c.Len() != 1 || c.Bytes() != 400 {
		t.Fatalf("len=%d bytes=%d, want 1 and 400", c.Len(), c.Bytes())
	}
}

func TestLRUCacheKeepsOversizedEntry(t *testing.T) {
	c, _ := NewLRUCache(100)
	small := Key{Bucket: Morning, Width: 2, Height: 2}
	big := Key{Bucket: Night, Width: 10, Height: 10}
	c.Store(small, frameOf(2, 2))
	c.Store(big, frameOf(10, 10))
	if c.ShouldRecompute(big) {
		t.Fatal("oversized current entry must stay cached")
	}
	if !c.ShouldRecompute(small) {
		t.Fatal("older entry should have been evicted")
	}
}

func TestNewLRUCacheRejectsZeroBudget(t *testing.T) {
	if _, err := NewLRUCache(0); err == nil {
		t.Fatal("expected error for zero budget")
	}
}

func TestBudgetFor(t *testing.T) {
	if got := budgetFor(8 << 30); got != 1<<30 {
		t.Fatalf("budgetFor(8GiB) = %d, want 1GiB", got)
	}
	if got := budgetFor(7); got != FallbackBudget {
		t.Fatalf("budgetFor(7) = %d, want fallback", got)
	}
	if DefaultBudget() <= 0 {
		t.Fatal("DefaultBudget must be positive")
	}
}
