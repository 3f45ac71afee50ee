package layout

import "github.com/gogpu/glyphatlas/text"

// KerningTable returns the pen adjustment, in font units, between two
// consecutive glyphs of a font.
type KerningTable func(font text.Identity, left, right text.GlyphID) float32

// FontKerning reads kerning from the fonts' kern tables. Shapers that
// already apply GPOS kerning must not be combined with it.
func FontKerning(p text.Provider) KerningTable {
	return func(id text.Identity, left, right text.GlyphID) float32 {
		f, err := p.Font(id)
		if err != nil {
			return 0
		}
		return f.Kern(left, right)
	}
}

// Option configures Layout.
type Option func(*options)

type options struct {
	kerning KerningTable
}

// WithKerning adjusts the pen between glyph pairs before placing each
// quad.
func WithKerning(k KerningTable) Option {
	return func(o *options) {
		o.kerning = k
	}
}
