package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrGlyphNotFound is returned when a glyph ID is outside the font's glyph range.
	ErrGlyphNotFound = errors.New("text: glyph not found")

	// ErrUnknownFont is returned by a Provider that has no font for an identity.
	ErrUnknownFont = errors.New("text: unknown font")
)

// FontError reports a failure to read font data for a specific glyph.
type FontError struct {
	Font   Identity
	GID    GlyphID
	Reason string
	Err    error
}

func (e *FontError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("text: %s glyph %d: %s: %v", e.Font, e.GID, e.Reason, e.Err)
	}
	return fmt.Sprintf("text: %s glyph %d: %s", e.Font, e.GID, e.Reason)
}

func (e *FontError) Unwrap() error { return e.Err }
