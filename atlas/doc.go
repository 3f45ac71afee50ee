// Package atlas builds glyph atlases: it rasterizes a font's glyphs into
// distance fields on a worker pool, packs them into one fixed-size canvas
// and exports the result as an RGBA image together with a UV table.
//
// An Atlas is immutable once built. Cache keeps the current atlas per font
// and rebuilds it from scratch whenever a request names a glyph the atlas
// was not built for; readers always see either the previous or the new
// atlas, never a partial one.
//
// Canvas coordinates have their origin at the top-left corner with Y
// pointing down. Glyph metrics stay in font units with Y up; Scale converts
// font units into canvas pixels and is the single scale shared with text
// layout.
package atlas
