package text

// BuiltinShaper maps runes to glyphs one-to-one through the font's cmap and
// positions them by their horizontal advances.
//
// It performs no substitution, no kerning and no reordering. Kerning can be
// applied at layout time from the font's kern table.
//
// BuiltinShaper is stateless and safe for concurrent use.
type BuiltinShaper struct{}

// Shape implements Shaper. Runes without a glyph map to NotdefGlyph.
func (BuiltinShaper) Shape(f *Font, s string) []ShapedGlyph {
	if s == "" || f == nil {
		return nil
	}

	out := make([]ShapedGlyph, 0, len(s))
	cluster := 0
	for _, r := range s {
		gid, _ := f.GlyphIndex(r)
		var adv float32
		if m, err := f.Metrics(gid); err == nil {
			adv = m.HorAdvance
		}
		out = append(out, ShapedGlyph{
			GID:      gid,
			Cluster:  cluster,
			XAdvance: adv,
		})
		cluster++
	}
	return out
}
