package atlas

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/gogpu/glyphatlas/text"
)

// UVRect is a glyph's region in normalized texture coordinates, origin at
// the top-left corner of the atlas.
type UVRect struct {
	U, V, W, H float32
}

// Entry is one glyph packed into an atlas.
type Entry struct {
	UV UVRect

	// Metrics of the drawn glyph in font units.
	Metrics text.GlyphMetrics

	// X, Y, Width and Height locate the bitmap on the canvas in pixels.
	X, Y          int
	Width, Height int

	// GID is the glyph actually drawn; it is text.NotdefGlyph when the
	// requested glyph was substituted.
	GID         text.GlyphID
	Substituted bool
}

// IsEmpty reports whether the entry has no bitmap, as for whitespace.
func (e Entry) IsEmpty() bool { return e.Width == 0 || e.Height == 0 }

// Atlas is an immutable packed glyph texture for one font.
type Atlas struct {
	font   text.Identity
	scale  float64
	rng    float64
	width  int
	height int
	image  *image.NRGBA

	entries   map[text.GlyphID]Entry
	requested map[text.GlyphID]struct{}
	dropped   []text.GlyphID

	utilization float64
}

// Build packs glyphs into a new atlas in input order.
//
// Glyphs that do not fit are dropped and reported through the package
// logger; the remaining glyphs still pack. A glyph listed more than once is
// packed once. Build fails only when the canvas cannot be exported.
func Build(id text.Identity, glyphs []RasterizedGlyph, cfg Config) (*Atlas, error) {
	start := time.Now()
	c := newCanvas(cfg.CanvasWidth, cfg.CanvasHeight)
	sky := NewSkyline(c.width, c.height, cfg.Padding)

	a := &Atlas{
		font:      id,
		scale:     cfg.Scale,
		rng:       cfg.Range,
		width:     c.width,
		height:    c.height,
		entries:   make(map[text.GlyphID]Entry, len(glyphs)),
		requested: make(map[text.GlyphID]struct{}, len(glyphs)),
	}

	for i := range glyphs {
		g := &glyphs[i]
		if _, seen := a.requested[g.Requested]; seen {
			continue
		}
		a.requested[g.Requested] = struct{}{}

		w, h := g.Size()
		x, y, ok := sky.Insert(w, h)
		if !ok {
			err := &PackingError{GID: g.Requested, Width: w, Height: h}
			logger().Warn("atlas: glyph dropped", "font", id.String(), "err", err)
			a.dropped = append(a.dropped, g.Requested)
			continue
		}
		c.blit(g, x, y)
		a.entries[g.Requested] = a.entry(g, x, y, w, h)
	}

	img, err := export(c)
	if err != nil {
		return nil, fmt.Errorf("atlas: export %s: %w", id, err)
	}
	a.image = img
	a.utilization = sky.Utilization()

	logger().Debug("atlas: built",
		"font", id.String(),
		"glyphs", len(a.entries),
		"dropped", len(a.dropped),
		"utilization", a.utilization,
		"elapsed", time.Since(start))
	return a, nil
}

func (a *Atlas) entry(g *RasterizedGlyph, x, y, w, h int) Entry {
	e := Entry{
		Metrics:     g.Metrics,
		X:           x,
		Y:           y,
		Width:       w,
		Height:      h,
		GID:         g.GID,
		Substituted: g.Substituted,
	}
	if w > 0 && h > 0 {
		e.UV = UVRect{
			U: float32(x) / float32(a.width),
			V: float32(y) / float32(a.height),
			W: float32(float64(g.Metrics.Width())*a.scale) / float32(a.width),
			H: float32(float64(g.Metrics.Height())*a.scale) / float32(a.height),
		}
	}
	return e
}

// Font returns the identity the atlas was built for.
func (a *Atlas) Font() text.Identity { return a.font }

// Scale returns the font-unit to pixel scale used for rasterization.
// Layout must use the same value.
func (a *Atlas) Scale() float64 { return a.scale }

// Range returns the distance field range in font units.
func (a *Atlas) Range() float64 { return a.rng }

// PixelRange returns the distance field range in atlas pixels.
func (a *Atlas) PixelRange() float64 { return a.rng * a.scale }

// Size returns the canvas dimensions in pixels.
func (a *Atlas) Size() (width, height int) { return a.width, a.height }

// Image returns the packed RGBA image. It is shared and must not be
// modified.
func (a *Atlas) Image() *image.NRGBA { return a.image }

// Pixels returns the tightly packed RGBA8 bytes, row by row.
func (a *Atlas) Pixels() []byte { return a.image.Pix }

// Lookup returns the entry for a glyph.
func (a *Atlas) Lookup(gid text.GlyphID) (Entry, bool) {
	e, ok := a.entries[gid]
	return e, ok
}

// UV returns the texture region for a glyph.
func (a *Atlas) UV(gid text.GlyphID) (UVRect, bool) {
	e, ok := a.entries[gid]
	return e.UV, ok
}

// Contains reports whether gid was packed into the atlas.
func (a *Atlas) Contains(gid text.GlyphID) bool {
	_, ok := a.entries[gid]
	return ok
}

// Covers reports whether every glyph in gids was part of the request the
// atlas was built for, packed or dropped.
func (a *Atlas) Covers(gids []text.GlyphID) bool {
	for _, gid := range gids {
		if _, ok := a.requested[gid]; !ok {
			return false
		}
	}
	return true
}

// Len returns the number of packed glyphs.
func (a *Atlas) Len() int { return len(a.entries) }

// Glyphs returns the packed glyph IDs in ascending order.
func (a *Atlas) Glyphs() []text.GlyphID {
	gids := maps.Keys(a.entries)
	slices.Sort(gids)
	return gids
}

// Requested returns the glyph IDs the atlas was built for in ascending
// order, including dropped ones.
func (a *Atlas) Requested() []text.GlyphID {
	gids := maps.Keys(a.requested)
	slices.Sort(gids)
	return gids
}

// Dropped returns the glyphs that did not fit, in packing order.
func (a *Atlas) Dropped() []text.GlyphID { return slices.Clone(a.dropped) }

// Utilization returns the fraction of the canvas covered by glyphs.
func (a *Atlas) Utilization() float64 { return a.utilization }
