// Package glyphatlas renders shaped text for a GPU pipeline.
//
// # Overview
//
// Text goes through four stages:
//
//  1. A text.Shaper turns a string into glyph IDs with advances and offsets.
//  2. An atlas.Cache makes sure every glyph is rasterized into a
//     multi-channel signed distance field and packed into the font's atlas,
//     rebuilding the atlas from scratch when new glyphs are needed.
//  3. layout.Layout positions one textured quad per glyph in normalized
//     device coordinates.
//  4. The gpu package uploads the atlas texture and the vertex and index
//     buffers.
//
// Renderer wires the first three stages together per frame and returns one
// DrawList per font, so each font costs one draw call.
//
// # Quick Start
//
//	reg := text.NewRegistry()
//	text.RegisterGoFonts(reg)
//
//	cache, _ := atlas.NewCache(reg, atlas.DefaultConfig())
//	defer cache.Close()
//
//	r, _ := glyphatlas.NewRenderer(reg, cache, nil)
//	r.Draw(10, 40, "Hello, World!", text.DefaultIdentity)
//	lists, _ := r.Frame(layout.Size{Width: 800, Height: 600})
//
// # Coordinates
//
// Font metrics are in font units with Y up. Atlas and screen pixels have
// their origin at the top-left with Y down. Quads are emitted in clip space
// with Y up. One scale, atlas.Config.Scale, converts font units to pixels
// for both rasterization and layout.
//
// # Logging
//
// The library is silent by default. SetLogger enables structured logging
// for all sub-packages.
package glyphatlas
