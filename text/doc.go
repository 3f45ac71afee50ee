// Package text loads fonts and shapes strings into positioned glyphs.
//
// A Font is parsed once and shared. It answers glyph lookups, metrics and
// outlines in font units with the Y axis pointing up, which is what the
// atlas builder rasterizes from.
//
// Fonts are addressed by Identity, a comparable value that also keys the
// atlas cache. A Registry maps identities to fonts:
//
//	reg := text.NewRegistry()
//	if err := text.RegisterGoFonts(reg); err != nil {
//	    log.Fatal(err)
//	}
//	f, _ := reg.Font(text.DefaultIdentity)
//
// # Shaping
//
// A Shaper converts a string into ShapedGlyph values with advances and
// offsets in font units:
//
//   - GoTextShaper runs HarfBuzz shaping from go-text/typesetting,
//     including ligatures, GPOS kerning and right-to-left scripts.
//   - BuiltinShaper maps runes to glyphs one-to-one through the cmap.
//   - CachedShaper memoizes another shaper's results.
package text
