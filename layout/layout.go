// Package layout turns shaped glyph sequences into screen-space quads that
// sample a glyph atlas.
//
// Positions are computed in pixels with the origin at the top-left corner
// of the screen and Y pointing down, then converted to normalized device
// coordinates with Y pointing up:
//
//	ndcX = 2*x/width - 1
//	ndcY = 1 - 2*y/height
//
// Each sequence's origin is a point on its baseline. Font-unit metrics are
// scaled by the atlas scale, the same value the glyphs were rasterized
// with.
package layout

import (
	"fmt"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/text"
)

// Sequence is one shaped run of text positioned on screen.
type Sequence struct {
	Font   text.Identity
	X, Y   float32 // baseline origin in pixels
	Glyphs []text.ShapedGlyph
}

// Size is the screen size in pixels.
type Size struct {
	Width, Height float32
}

// AtlasLookup returns the atlas for a font, or nil.
type AtlasLookup func(text.Identity) *atlas.Atlas

// Single serves one atlas for its own font.
func Single(a *atlas.Atlas) AtlasLookup {
	return func(id text.Identity) *atlas.Atlas {
		if a != nil && a.Font() == id {
			return a
		}
		return nil
	}
}

// Layout emits one quad per visible glyph of every sequence.
//
// Glyphs the atlas has no bitmap for (whitespace, or glyphs dropped when
// the atlas filled up) advance the pen without producing a quad.
func Layout(seqs []Sequence, atlases AtlasLookup, screen Size, opts ...Option) (*Mesh, error) {
	if !(screen.Width > 0) || !(screen.Height > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidScreen, screen.Width, screen.Height)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	n := 0
	for i := range seqs {
		n += len(seqs[i].Glyphs)
	}
	m := &Mesh{
		Vertices: make([]Vertex, 0, n*4),
		Indices:  make([]uint32, 0, n*6),
	}

	for i := range seqs {
		seq := &seqs[i]
		if len(seq.Glyphs) == 0 {
			continue
		}
		var a *atlas.Atlas
		if atlases != nil {
			a = atlases(seq.Font)
		}
		if a == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoAtlas, seq.Font)
		}
		layoutSequence(m, seq, a, screen, &o)
	}
	return m, nil
}

func layoutSequence(m *Mesh, seq *Sequence, a *atlas.Atlas, screen Size, o *options) {
	s := float32(a.Scale())
	penX, penY := seq.X, seq.Y

	for i, g := range seq.Glyphs {
		if i > 0 && o.kerning != nil {
			penX += o.kerning(seq.Font, seq.Glyphs[i-1].GID, g.GID) * s
		}

		if e, ok := a.Lookup(g.GID); ok && !e.IsEmpty() {
			left := penX + (g.XOffset+e.Metrics.HorSideBearing)*s
			top := penY - (g.YOffset+e.Metrics.YMax)*s
			m.addQuad(
				left, top,
				left+e.Metrics.Width()*s, top+e.Metrics.Height()*s,
				e.UV, screen,
			)
		}

		penX += g.XAdvance * s
		penY -= g.YAdvance * s
	}
}
