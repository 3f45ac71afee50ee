package msdf

import (
	"math"

	"github.com/gogpu/glyphatlas/text"
)

// Channels is the number of channels in generated images (RGB + alpha).
const Channels = 4

// Generator rasterizes outlines into MTSDF images.
// A Generator holds no mutable state and is safe for concurrent use.
type Generator struct {
	cfg Config
}

// NewGenerator creates a generator with the given settings.
func NewGenerator(cfg Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{cfg: cfg}, nil
}

// DefaultGenerator returns a generator using DefaultConfig.
func DefaultGenerator() *Generator {
	return &Generator{cfg: DefaultConfig()}
}

// Config returns the generator settings.
func (g *Generator) Config() Config { return g.cfg }

// Rasterize converts an outline into a width x height MTSDF image.
// pxRange is the distance, in bitmap pixels, spanned by the [0, 1] value
// range. proj maps the outline's font units into the bitmap.
func (g *Generator) Rasterize(o *text.Outline, width, height int, pxRange float64, proj Projection) (*FloatImage, error) {
	shape := ShapeFromOutline(o)
	if len(shape.Contours) == 0 {
		return nil, ErrEmptyOutline
	}
	shape.ColorEdges(g.cfg.AngleThreshold)
	return g.Generate(shape, width, height, pxRange, proj)
}

// Generate renders an already colored shape.
func (g *Generator) Generate(shape *Shape, width, height int, pxRange float64, proj Projection) (*FloatImage, error) {
	if width <= 0 || height <= 0 || proj.Scale <= 0 {
		return nil, ErrInvalidSize
	}
	if pxRange <= 0 {
		return nil, ErrInvalidRange
	}

	img := NewFloatImage(width, height, Channels)
	sign := 1.0
	if shape.inverted {
		sign = -1
	}
	toValue := func(d signedDistance) float32 {
		px := sign * d.dist * proj.Scale
		return float32(math.Max(0, math.Min(1, 0.5+px/pxRange)))
	}

	for y := range height {
		// Row 0 is the top of the bitmap; projection space is Y up.
		by := float64(height-y) - 0.5
		for x := range width {
			p := proj.Unproject(Point{float64(x) + 0.5, by})
			r, gr, b, all := shape.channelDistances(p)
			px := img.Pixel(x, y)
			px[0] = toValue(r)
			px[1] = toValue(gr)
			px[2] = toValue(b)
			px[3] = toValue(all)
		}
	}
	return img, nil
}

// channelDistances returns the closest edge distance per color channel and
// over all edges. A channel without edges falls back to the overall distance.
func (s *Shape) channelDistances(p Point) (r, g, b, all signedDistance) {
	r, g, b, all = farAway, farAway, farAway, farAway
	for ci := range s.Contours {
		edges := s.Contours[ci].Edges
		for ei := range edges {
			e := &edges[ei]
			d := e.distanceTo(p)
			if d.closerThan(all) {
				all = d
			}
			if e.Color.Has(ColorRed) && d.closerThan(r) {
				r = d
			}
			if e.Color.Has(ColorGreen) && d.closerThan(g) {
				g = d
			}
			if e.Color.Has(ColorBlue) && d.closerThan(b) {
				b = d
			}
		}
	}
	if r == farAway {
		r = all
	}
	if g == farAway {
		g = all
	}
	if b == farAway {
		b = all
	}
	return r, g, b, all
}

// Median returns the median of the three color channels of a pixel, the
// value a shader compares against 0.5.
func Median(px []float32) float32 {
	r, g, b := px[0], px[1], px[2]
	return max(min(r, g), min(max(r, g), b))
}
