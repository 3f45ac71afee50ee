package atlas

import (
	"errors"
	"fmt"

	"github.com/gogpu/glyphatlas/text"
)

var (
	// ErrPackingOverflow is reported when a glyph does not fit in the
	// remaining canvas space. The glyph is dropped; the build continues.
	ErrPackingOverflow = errors.New("atlas: glyph does not fit in canvas")

	// ErrRasterization is reported when the rasterizer fails for a glyph.
	ErrRasterization = errors.New("atlas: rasterization failed")

	// ErrDegenerateOutline is reported for a non-empty outline with a
	// zero-area bounding box.
	ErrDegenerateOutline = errors.New("atlas: degenerate outline")

	// ErrZeroCanvas is returned when the canvas has no pixels.
	ErrZeroCanvas = errors.New("atlas: canvas has zero width or height")

	// ErrMalformedCanvas is returned when the canvas buffer does not match
	// its dimensions.
	ErrMalformedCanvas = errors.New("atlas: malformed canvas buffer")

	// ErrClosed is returned by a Cache after Close.
	ErrClosed = errors.New("atlas: cache closed")

	// ErrNoProvider is returned by NewCache without a font provider.
	ErrNoProvider = errors.New("atlas: nil font provider")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("atlas: invalid config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// GlyphError describes why a glyph could not be rasterized as requested.
type GlyphError struct {
	GID text.GlyphID
	Err error
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("atlas: glyph %d: %v", e.GID, e.Err)
}

func (e *GlyphError) Unwrap() error { return e.Err }

// PackingError reports a glyph dropped because the canvas is full.
type PackingError struct {
	GID           text.GlyphID
	Width, Height int
}

func (e *PackingError) Error() string {
	return fmt.Sprintf("atlas: glyph %d (%dx%d): %v", e.GID, e.Width, e.Height, ErrPackingOverflow)
}

func (e *PackingError) Unwrap() error { return ErrPackingOverflow }
