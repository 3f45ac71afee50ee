package text

import (
	"hash/fnv"

	"github.com/gogpu/glyphatlas/internal/cache"
)

type shapeKey struct {
	font Identity
	text string
}

func hashShapeKey(k shapeKey) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(k.font.String()))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(k.text))
	return h.Sum64()
}

// CachedShaper memoizes another Shaper's output per (font identity, string).
//
// Cached slices are shared between callers and must not be modified.
type CachedShaper struct {
	next  Shaper
	cache *cache.Sharded[shapeKey, []ShapedGlyph]
}

// NewCachedShaper wraps next with a cache holding up to capacity entries
// per shard. A capacity <= 0 uses the cache default.
func NewCachedShaper(next Shaper, capacity int) *CachedShaper {
	return &CachedShaper{
		next:  next,
		cache: cache.NewSharded[shapeKey, []ShapedGlyph](capacity, hashShapeKey),
	}
}

// Shape implements Shaper.
func (c *CachedShaper) Shape(f *Font, s string) []ShapedGlyph {
	if f == nil || s == "" {
		return nil
	}
	key := shapeKey{font: f.Identity(), text: s}
	return c.cache.GetOrCreate(key, func() []ShapedGlyph {
		return c.next.Shape(f, s)
	})
}

// Stats returns the cache hit and miss counts.
func (c *CachedShaper) Stats() (hits, misses uint64) {
	st := c.cache.Stats()
	return st.Hits, st.Misses
}
