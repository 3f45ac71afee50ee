package msdf

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyOutline is returned when an outline has no closed contours.
	ErrEmptyOutline = errors.New("msdf: outline has no contours")

	// ErrInvalidSize is returned for a bitmap with no pixels.
	ErrInvalidSize = errors.New("msdf: bitmap size must be positive")

	// ErrInvalidRange is returned for a distance range <= 0.
	ErrInvalidRange = errors.New("msdf: distance range must be positive")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("msdf: invalid config %s: %s", e.Field, e.Reason)
}
