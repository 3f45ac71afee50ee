package text

// Shaper turns a string into positioned glyphs for one font.
//
// Implementations must be safe for concurrent use. Shapers are injected
// where they are needed; nothing in this module reads a global shaper.
type Shaper interface {
	Shape(f *Font, s string) []ShapedGlyph
}

// ShaperFunc adapts a function to the Shaper interface.
type ShaperFunc func(f *Font, s string) []ShapedGlyph

// Shape calls fn(f, s).
func (fn ShaperFunc) Shape(f *Font, s string) []ShapedGlyph { return fn(f, s) }
