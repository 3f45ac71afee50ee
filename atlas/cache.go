package atlas

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gogpu/glyphatlas/internal/parallel"
	"github.com/gogpu/glyphatlas/msdf"
	"github.com/gogpu/glyphatlas/text"
)

// CacheStats reports cache activity.
type CacheStats struct {
	Hits     uint64
	Misses   uint64
	Rebuilds uint64
	Fonts    int
	Glyphs   int // packed glyphs across all current atlases
}

// CacheOption configures a Cache.
type CacheOption func(*cacheOptions)

type cacheOptions struct {
	rasterizer Rasterizer
	pool       *parallel.WorkerPool
}

// WithRasterizer replaces the default MSDF rasterizer.
func WithRasterizer(r Rasterizer) CacheOption {
	return func(o *cacheOptions) {
		o.rasterizer = r
	}
}

// WithWorkerPool runs rasterization on an existing pool instead of one
// owned by the cache. The cache does not close a pool it was given.
func WithWorkerPool(p *parallel.WorkerPool) CacheOption {
	return func(o *cacheOptions) {
		o.pool = p
	}
}

// Cache keeps the current atlas for each font and rebuilds it when a
// request needs glyphs the atlas was not built for.
//
// Cache is safe for concurrent use. Rebuilds for one font are serialized;
// different fonts build independently.
type Cache struct {
	provider   text.Provider
	cfg        Config
	rasterizer Rasterizer
	pool       *parallel.WorkerPool
	ownsPool   bool

	mu    sync.Mutex
	fonts map[text.Identity]*fontSlot

	hits     atomic.Uint64
	misses   atomic.Uint64
	rebuilds atomic.Uint64
	closed   atomic.Bool
}

// fontSlot holds the published atlas for one font.
type fontSlot struct {
	build   sync.Mutex
	current atomic.Pointer[Atlas]
}

// NewCache creates a cache that loads fonts from provider.
func NewCache(provider text.Provider, cfg Config, opts ...CacheOption) (*Cache, error) {
	if provider == nil {
		return nil, ErrNoProvider
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o cacheOptions
	for _, opt := range opts {
		opt(&o)
	}
	c := &Cache{
		provider:   provider,
		cfg:        cfg,
		rasterizer: o.rasterizer,
		pool:       o.pool,
		fonts:      make(map[text.Identity]*fontSlot),
	}
	if c.rasterizer == nil {
		g, err := msdf.NewGenerator(msdf.Config{AngleThreshold: cfg.AngleThreshold})
		if err != nil {
			return nil, err
		}
		c.rasterizer = g
	}
	if c.pool == nil {
		c.pool = parallel.NewWorkerPool(cfg.workers())
		c.ownsPool = true
	}
	return c, nil
}

// Config returns the cache configuration.
func (c *Cache) Config() Config { return c.cfg }

// Ensure returns an atlas for font id that was built for every glyph in
// gids.
//
// When the current atlas already covers gids it is returned unchanged and
// nothing is rasterized. Otherwise the union of its glyphs and gids is
// rasterized and packed into a fresh atlas, which replaces the current one
// atomically. Glyphs dropped for lack of space count as covered, so a full
// canvas does not cause a rebuild on every call.
//
// On error the current atlas is left in place.
func (c *Cache) Ensure(id text.Identity, gids []text.GlyphID) (*Atlas, error) {
	if c.closed.Load() {
		return nil, ErrClosed
	}
	slot := c.slot(id)
	if a := slot.current.Load(); a != nil && a.Covers(gids) {
		c.hits.Add(1)
		return a, nil
	}

	slot.build.Lock()
	defer slot.build.Unlock()

	// Another caller may have finished a covering build while we waited.
	prev := slot.current.Load()
	if prev != nil && prev.Covers(gids) {
		c.hits.Add(1)
		return prev, nil
	}
	c.misses.Add(1)

	f, err := c.provider.Font(id)
	if err != nil {
		return nil, fmt.Errorf("atlas: font %s: %w", id, err)
	}

	union := unionOf(prev, gids)
	logger().Debug("atlas: rebuilding", "font", id.String(), "glyphs", len(union))

	glyphs := rasterizeGlyphs(f, union, c.cfg, c.rasterizer, c.pool)
	a, err := Build(id, glyphs, c.cfg)
	if err != nil {
		return nil, err
	}
	slot.current.Store(a)
	c.rebuilds.Add(1)
	return a, nil
}

// Atlas returns the current atlas for a font, or nil if none was built.
func (c *Cache) Atlas(id text.Identity) *Atlas {
	c.mu.Lock()
	slot := c.fonts[id]
	c.mu.Unlock()
	if slot == nil {
		return nil
	}
	return slot.current.Load()
}

// Evict forgets the atlas for a font. The next Ensure rebuilds it from the
// requested glyphs only.
func (c *Cache) Evict(id text.Identity) {
	c.mu.Lock()
	delete(c.fonts, id)
	c.mu.Unlock()
}

// Fonts returns the identities with a current atlas.
func (c *Cache) Fonts() []text.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]text.Identity, 0, len(c.fonts))
	for id, slot := range c.fonts {
		if slot.current.Load() != nil {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b text.Identity) int {
		switch sa, sb := a.String(), b.String(); {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return 0
	})
	return ids
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	s := CacheStats{
		Hits:     c.hits.Load(),
		Misses:   c.misses.Load(),
		Rebuilds: c.rebuilds.Load(),
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, slot := range c.fonts {
		if a := slot.current.Load(); a != nil {
			s.Fonts++
			s.Glyphs += a.Len()
		}
	}
	return s
}

// Close stops the cache's worker pool. Ensure fails with ErrClosed
// afterwards; atlases already returned remain valid.
func (c *Cache) Close() {
	if c.closed.Swap(true) {
		return
	}
	if c.ownsPool {
		c.pool.Close()
	}
}

func (c *Cache) slot(id text.Identity) *fontSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	slot, ok := c.fonts[id]
	if !ok {
		slot = &fontSlot{}
		c.fonts[id] = slot
	}
	return slot
}

// unionOf returns the glyphs prev was built for plus gids, sorted and
// without duplicates.
func unionOf(prev *Atlas, gids []text.GlyphID) []text.GlyphID {
	set := make(map[text.GlyphID]struct{}, len(gids))
	if prev != nil {
		for gid := range prev.requested {
			set[gid] = struct{}{}
		}
	}
	for _, gid := range gids {
		set[gid] = struct{}{}
	}
	union := maps.Keys(set)
	slices.Sort(union)
	return union
}
