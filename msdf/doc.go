// Package msdf rasterizes glyph outlines into multi-channel signed distance
// fields.
//
// Generator produces MTSDF images: the red, green and blue channels hold
// per-edge-color distances whose median reconstructs sharp corners, and the
// alpha channel holds the true signed distance. Values are normalized so
// that 0.5 lies on the outline, larger values are inside the glyph, and the
// configured pixel range maps to the [0, 1] interval.
//
// Coordinates follow the font: outlines are in font units with Y up. A
// Projection maps them into bitmap pixels; images are stored top row first.
package msdf
