package render

import (
	"fmt"
	"image"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Key identifies one scaled image: the bucket it shows and the surface it was scaled for.
type Key struct {
	Bucket Bucket
	Width  int
	Height int
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%dx%d", k.Bucket, k.Width, k.Height)
}

// Cache holds scaled images between draws.
//
// Implementations never return an entry stored under a different key.
type Cache interface {
	ShouldRecompute(k Key) bool
	Get(k Key) (*image.RGBA, bool)
	Store(k Key, img *image.RGBA)
	Purge()
	Len() int
	Bytes() int
}

func imageBytes(img *image.RGBA) int {
	if img == nil {
		return 0
	}
	return len(img.Pix)
}

// SingleCache remembers only the most recent image.
type SingleCache struct {
	key Key
	img *image.RGBA
}

func NewSingleCache() *SingleCache { return &SingleCache{} }

func (c *SingleCache) ShouldRecompute(k Key) bool {
	return c.img == nil || c.key != k
}

func (c *SingleCache) Get(k Key) (*image.RGBA, bool) {
	if c.ShouldRecompute(k) {
		return nil, false
	}
	return c.img, true
}

func (c *SingleCache) Store(k Key, img *image.RGBA) {
	if img == nil {
		c.Purge()
		return
	}
	c.key = k
	c.img = img
}

func (c *SingleCache) Purge() {
	c.key = Key{}
	c.img = nil
}

func (c *SingleCache) Len() int {
	if c.img == nil {
		return 0
	}
	return 1
}

func (c *SingleCache) Bytes() int { return imageBytes(c.img) }

// LRUCache keeps recently used images up to a byte budget.
//
// The most recent entry is kept even if it alone exceeds the budget.
type LRUCache struct {
	budget int
	bytes  int
	lru    *simplelru.LRU[Key, *image.RGBA]

	// OnEvict, if set, observes every entry leaving the cache.
	OnEvict func(Key, int)
}

// NewLRUCache returns a cache bounded to budget bytes of pixel data.
func NewLRUCache(budget int) (*LRUCache, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("render: cache budget must be positive, got %d", budget)
	}
	c := &LRUCache{budget: budget}
	// The entry count bound is never the limiting factor; bytes are.
	l, err := simplelru.NewLRU[Key, *image.RGBA](1<<20, c.evicted)
	if err != nil {
		return nil, fmt.Errorf("render: new lru: %w", err)
	}
	c.lru = l
	return c, nil
}

func (c *LRUCache) evicted(k Key, img *image.RGBA) {
	n := imageBytes(img)
	c.bytes -= n
	if c.OnEvict != nil {
		c.OnEvict(k, n)
	}
}

func (c *LRUCache) ShouldRecompute(k Key) bool {
	return !c.lru.Contains(k)
}

func (c *LRUCache) Get(k Key) (*image.RGBA, bool) {
	return c.lru.Get(k)
}

func (c *LRUCache) Store(k Key, img *image.RGBA) {
	if img == nil {
		c.lru.Remove(k)
		return
	}
	c.lru.Remove(k)
	c.lru.Add(k, img)
	c.bytes += imageBytes(img)
	for c.bytes > c.budget && c.lru.Len() > 1 {
		c.lru.RemoveOldest()
	}
}

func (c *LRUCache) Purge() { c.lru.Purge() }

func (c *LRUCache) Len() int { return c.lru.Len() }

func (c *LRUCache) Bytes() int { return c.bytes }

// Budget returns the configured byte budget.
func (c *LRUCache) Budget() int { return c.budget }
