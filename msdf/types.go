package msdf

import "math"

// Config holds generator settings.
type Config struct {
	// AngleThreshold is the minimum direction change, in radians, at which
	// two adjacent edges form a corner that gets distinct channel colors.
	AngleThreshold float64
}

// DefaultConfig returns the settings used by msdfgen's simple edge coloring.
func DefaultConfig() Config {
	return Config{AngleThreshold: 3.0}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.AngleThreshold <= 0 || c.AngleThreshold > math.Pi {
		return &ConfigError{Field: "AngleThreshold", Reason: "must be in (0, pi]"}
	}
	return nil
}

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }
func (p Point) Length() float64       { return math.Hypot(p.X, p.Y) }
func (p Point) Lerp(q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Normalized returns p scaled to unit length, or (0, 1) for a zero vector.
func (p Point) Normalized() Point {
	l := p.Length()
	if l == 0 {
		return Point{0, 1}
	}
	return Point{p.X / l, p.Y / l}
}

// Projection maps font units to bitmap pixels: pixel = (p + Translate) * Scale.
// Bitmap pixel space has its origin at the bottom-left corner and Y up.
type Projection struct {
	Scale     float64
	Translate Point
}

// Project maps a font-space point to bitmap space.
func (pr Projection) Project(p Point) Point {
	return p.Add(pr.Translate).Mul(pr.Scale)
}

// Unproject maps a bitmap-space point back to font space.
func (pr Projection) Unproject(p Point) Point {
	return p.Mul(1 / pr.Scale).Sub(pr.Translate)
}

// FloatImage is a float32 image with interleaved channels, top row first.
type FloatImage struct {
	Width    int
	Height   int
	Channels int
	Pix      []float32
}

// NewFloatImage allocates a zeroed image.
func NewFloatImage(width, height, channels int) *FloatImage {
	return &FloatImage{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]float32, width*height*channels),
	}
}

// Offset returns the index of channel 0 of pixel (x, y) in Pix.
func (m *FloatImage) Offset(x, y int) int {
	return (y*m.Width + x) * m.Channels
}

// Pixel returns the channels of pixel (x, y). The slice aliases Pix.
func (m *FloatImage) Pixel(x, y int) []float32 {
	i := m.Offset(x, y)
	return m.Pix[i : i+m.Channels]
}

// IsEmpty reports whether the image has no pixels.
func (m *FloatImage) IsEmpty() bool {
	return m == nil || m.Width <= 0 || m.Height <= 0
}

// signedDistance is a distance with a tie-breaker: when two edges are
// equally close, the one approached more perpendicularly wins.
type signedDistance struct {
	dist float64
	dot  float64
}

var farAway = signedDistance{dist: -math.MaxFloat64, dot: 1}

func (d signedDistance) closerThan(o signedDistance) bool {
	ad, ao := math.Abs(d.dist), math.Abs(o.dist)
	if ad != ao {
		return ad < ao
	}
	return d.dot < o.dot
}
