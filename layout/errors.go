package layout

import "errors"

var (
	// ErrInvalidScreen is returned for a screen without area.
	ErrInvalidScreen = errors.New("layout: screen size must be positive")

	// ErrNoAtlas is returned when a sequence's font has no atlas.
	ErrNoAtlas = errors.New("layout: no atlas for font")
)
