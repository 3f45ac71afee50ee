package atlas

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/glyphatlas/msdf"
	"github.com/gogpu/glyphatlas/text"
)

// fakeRasterizer fills bitmaps with a constant and counts calls. Glyphs
// listed in fail return an error; glyphs listed in panics panic.
type fakeRasterizer struct {
	calls  atomic.Int64
	value  float32
	fail   map[text.GlyphID]bool
	panics map[text.GlyphID]bool

	mu   sync.Mutex
	seen []text.GlyphID
}

var errFake = errors.New("fake rasterizer failure")

func (r *fakeRasterizer) Rasterize(o *text.Outline, width, height int, _ float64, _ msdf.Projection) (*msdf.FloatImage, error) {
	r.calls.Add(1)
	r.mu.Lock()
	r.seen = append(r.seen, o.GID)
	r.mu.Unlock()

	if r.panics[o.GID] {
		panic("fake rasterizer panic")
	}
	if r.fail[o.GID] {
		return nil, errFake
	}
	img := msdf.NewFloatImage(width, height, 4)
	v := r.value
	if v == 0 {
		v = 0.75
	}
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img, nil
}

func loadGoRegular(t *testing.T) *text.Font {
	t.Helper()
	f, err := text.NewFont(goregular.TTF, text.DefaultIdentity)
	if err != nil {
		t.Fatalf("NewFont() error = %v", err)
	}
	return f
}

func glyphFor(t *testing.T, f *text.Font, r rune) text.GlyphID {
	t.Helper()
	gid, ok := f.GlyphIndex(r)
	if !ok {
		t.Fatalf("GlyphIndex(%q) not found", r)
	}
	return gid
}

func glyphsFor(t *testing.T, f *text.Font, s string) []text.GlyphID {
	t.Helper()
	gids := make([]text.GlyphID, 0, len(s))
	for _, r := range s {
		gids = append(gids, glyphFor(t, f, r))
	}
	return gids
}

// squareGlyph returns a synthetic rasterized glyph of size x size pixels at
// scale 1.
func squareGlyph(gid text.GlyphID, size int) RasterizedGlyph {
	return sizedGlyph(gid, size, size)
}

func sizedGlyph(gid text.GlyphID, w, h int) RasterizedGlyph {
	img := msdf.NewFloatImage(w, h, 4)
	for i := range img.Pix {
		img.Pix[i] = 1
	}
	return RasterizedGlyph{
		GID:       gid,
		Requested: gid,
		Metrics: text.GlyphMetrics{
			XMax:       float32(w),
			YMax:       float32(h),
			HorAdvance: float32(w),
		},
		Bitmap: img,
	}
}

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.CanvasWidth = w
	cfg.CanvasHeight = h
	cfg.Scale = 1
	cfg.Workers = 2
	return cfg
}

func overlaps(a, b Entry) bool {
	return a.X < b.X+b.Width && b.X < a.X+a.Width &&
		a.Y < b.Y+b.Height && b.Y < a.Y+a.Height
}
