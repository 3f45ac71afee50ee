package atlas

import (
	"fmt"
	"image"
	"math"
)

// canvas is the packer's float working image: four interleaved channels
// plus a coverage mask marking pixels that belong to a packed glyph.
type canvas struct {
	width   int
	height  int
	pix     []float32
	covered []bool
}

func newCanvas(width, height int) *canvas {
	width, height = max(width, 0), max(height, 0)
	return &canvas{
		width:   width,
		height:  height,
		pix:     make([]float32, width*height*4),
		covered: make([]bool, width*height),
	}
}

// blit copies g's bitmap into the canvas with its top-left corner at (x, y).
// Three-channel bitmaps get an opaque alpha channel.
func (c *canvas) blit(g *RasterizedGlyph, x, y int) {
	bmp := g.Bitmap
	if bmp.IsEmpty() {
		return
	}
	for row := 0; row < bmp.Height; row++ {
		cy := y + row
		if cy < 0 || cy >= c.height {
			continue
		}
		for col := 0; col < bmp.Width; col++ {
			cx := x + col
			if cx < 0 || cx >= c.width {
				continue
			}
			src := bmp.Pixel(col, row)
			i := cy*c.width + cx
			dst := c.pix[i*4 : i*4+4]
			copy(dst, src)
			if bmp.Channels == 3 {
				dst[3] = 1
			}
			c.covered[i] = true
		}
	}
}

// export converts the canvas into an 8-bit RGBA image. Uncovered pixels are
// fully transparent.
func export(c *canvas) (*image.NRGBA, error) {
	if c.width == 0 || c.height == 0 {
		return nil, ErrZeroCanvas
	}
	n := c.width * c.height
	if len(c.pix) != n*4 || len(c.covered) != n {
		return nil, fmt.Errorf("%w: %d values and %d mask entries for %dx%d",
			ErrMalformedCanvas, len(c.pix), len(c.covered), c.width, c.height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+c.width*4]
		for x := 0; x < c.width; x++ {
			i := y*c.width + x
			if !c.covered[i] {
				continue
			}
			for ch := 0; ch < 4; ch++ {
				row[x*4+ch] = toByte(c.pix[i*4+ch])
			}
		}
	}
	return img, nil
}

func toByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}
