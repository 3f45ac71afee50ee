package atlas

import (
	"math"
	"runtime"

	"github.com/gogpu/glyphatlas/msdf"
)

// Config holds the atlas build settings.
type Config struct {
	// CanvasWidth and CanvasHeight are the atlas texture size in pixels.
	// Default: 2048x2048
	CanvasWidth  int
	CanvasHeight int

	// Scale converts font units into bitmap pixels. Layout reads the same
	// value back from the built Atlas.
	// Default: 1/12
	Scale float64

	// Range is the distance field range in font units.
	// Default: 128 (about 10.7 pixels at the default scale)
	Range float64

	// Padding between packed glyphs, in pixels.
	// Default: 0
	Padding int

	// Workers is the rasterization pool size. Zero means GOMAXPROCS.
	// Default: 4
	Workers int

	// AngleThreshold is the corner threshold, in radians, used by the
	// default MSDF rasterizer.
	// Default: 3.0
	AngleThreshold float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		CanvasWidth:    2048,
		CanvasHeight:   2048,
		Scale:          1.0 / 12,
		Range:          128,
		Padding:        0,
		Workers:        4,
		AngleThreshold: msdf.DefaultConfig().AngleThreshold,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.CanvasWidth < 0 || c.CanvasHeight < 0 {
		return &ConfigError{Field: "Canvas", Reason: "must be non-negative"}
	}
	if c.CanvasWidth == 0 || c.CanvasHeight == 0 {
		return &ConfigError{Field: "Canvas", Reason: "must have a positive area", Err: ErrZeroCanvas}
	}
	if !(c.Scale > 0) || math.IsInf(c.Scale, 0) {
		return &ConfigError{Field: "Scale", Reason: "must be positive and finite"}
	}
	if !(c.Range > 0) || math.IsInf(c.Range, 0) {
		return &ConfigError{Field: "Range", Reason: "must be positive and finite"}
	}
	if c.Padding < 0 {
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	if c.Workers < 0 {
		return &ConfigError{Field: "Workers", Reason: "must be non-negative"}
	}
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	return nil
}

// PixelRange returns the distance field range in bitmap pixels.
func (c *Config) PixelRange() float64 { return c.Range * c.Scale }

func (c *Config) workers() int {
	if c.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}
