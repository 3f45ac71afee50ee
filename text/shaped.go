package text

// ShapedGlyph is one positioned glyph produced by a Shaper.
// All values are in font units; offsets follow the font's Y-up convention.
type ShapedGlyph struct {
	// GID is the glyph index in the font.
	GID GlyphID

	// Cluster is the index of the first source rune mapped to this glyph.
	Cluster int

	XAdvance float32
	YAdvance float32

	XOffset float32
	YOffset float32
}

// Advance returns the total horizontal advance of glyphs in font units.
func Advance(glyphs []ShapedGlyph) float32 {
	var x float32
	for i := range glyphs {
		x += glyphs[i].XAdvance
	}
	return x
}

// GlyphIDs returns the glyph IDs of glyphs in order, including duplicates.
func GlyphIDs(glyphs []ShapedGlyph) []GlyphID {
	ids := make([]GlyphID, len(glyphs))
	for i := range glyphs {
		ids[i] = glyphs[i].GID
	}
	return ids
}
