package atlas

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphatlas/internal/parallel"
	"github.com/gogpu/glyphatlas/msdf"
	"github.com/gogpu/glyphatlas/text"
)

// Rasterizer converts one glyph outline into a distance field image.
// Implementations must be safe for concurrent use.
//
// *msdf.Generator implements Rasterizer.
type Rasterizer interface {
	Rasterize(o *text.Outline, width, height int, pxRange float64, proj msdf.Projection) (*msdf.FloatImage, error)
}

var _ Rasterizer = (*msdf.Generator)(nil)

// RasterizedGlyph is the output of one rasterization task.
type RasterizedGlyph struct {
	// GID is the glyph that was drawn. It differs from Requested when
	// .notdef was substituted.
	GID text.GlyphID

	// Requested is the glyph the caller asked for; the atlas stores the
	// result under this ID.
	Requested text.GlyphID

	// Metrics of the drawn glyph, in font units.
	Metrics text.GlyphMetrics

	// Bitmap is nil for glyphs without ink (whitespace).
	Bitmap *msdf.FloatImage

	// Substituted is set when the requested glyph could not be drawn.
	Substituted bool
}

// Size returns the bitmap dimensions, 0x0 when there is no bitmap.
func (g *RasterizedGlyph) Size() (width, height int) {
	if g.Bitmap == nil {
		return 0, 0
	}
	return g.Bitmap.Width, g.Bitmap.Height
}

type rasterResult struct {
	index int
	glyph RasterizedGlyph
}

// rasterizeGlyphs rasterizes gids on the pool and returns one result per
// input, in input order. Failures are absorbed per glyph.
func rasterizeGlyphs(f *text.Font, gids []text.GlyphID, cfg Config, r Rasterizer, pool *parallel.WorkerPool) []RasterizedGlyph {
	results := make(chan rasterResult, len(gids))
	tasks := make([]func(), len(gids))
	for i, gid := range gids {
		tasks[i] = func() {
			results <- rasterResult{index: i, glyph: rasterizeOne(f, gid, cfg, r)}
		}
	}

	pool.ExecuteAll(tasks)
	close(results)

	out := make([]RasterizedGlyph, len(gids))
	for i, gid := range gids {
		out[i] = RasterizedGlyph{GID: gid, Requested: gid, Substituted: true}
	}
	for res := range results {
		out[res.index] = res.glyph
	}
	return out
}

// rasterizeOne draws gid, falling back to .notdef and then to an empty
// glyph.
func rasterizeOne(f *text.Font, gid text.GlyphID, cfg Config, r Rasterizer) RasterizedGlyph {
	g, err := drawGlyph(f, gid, gid, cfg, r)
	if err == nil {
		return g
	}
	logger().Warn("atlas: substituting .notdef",
		"font", f.Identity().String(), "glyph", gid, "err", err)

	if gid != text.NotdefGlyph {
		g, err = drawGlyph(f, gid, text.NotdefGlyph, cfg, r)
		if err == nil {
			g.Substituted = true
			return g
		}
	}
	logger().Warn("atlas: .notdef unavailable, glyph left empty",
		"font", f.Identity().String(), "glyph", gid, "err", err)
	return RasterizedGlyph{GID: gid, Requested: gid, Substituted: true}
}

// drawGlyph rasterizes gid and files the result under requested.
func drawGlyph(f *text.Font, requested, gid text.GlyphID, cfg Config, r Rasterizer) (RasterizedGlyph, error) {
	if !f.HasGlyph(gid) {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: text.ErrGlyphNotFound}
	}
	m, err := f.Metrics(gid)
	if err != nil {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: err}
	}
	o, err := f.Outline(gid)
	if err != nil {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: err}
	}

	g := RasterizedGlyph{GID: gid, Requested: requested, Metrics: m}
	if o.IsEmpty() {
		return g, nil
	}
	if m.IsEmpty() {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: ErrDegenerateOutline}
	}

	w := int(math.Ceil(float64(m.Width()) * cfg.Scale))
	h := int(math.Ceil(float64(m.Height()) * cfg.Scale))
	proj := msdf.Projection{
		Scale:     cfg.Scale,
		Translate: msdf.Point{X: -float64(m.XMin), Y: -float64(m.YMin)},
	}
	bmp, err := safeRasterize(r, o, w, h, cfg.PixelRange(), proj)
	if err != nil {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: fmt.Errorf("%w: %w", ErrRasterization, err)}
	}
	if bmp == nil || bmp.Width != w || bmp.Height != h || bmp.Channels < 3 || bmp.Channels > 4 || len(bmp.Pix) != w*h*bmp.Channels {
		return RasterizedGlyph{}, &GlyphError{GID: gid, Err: fmt.Errorf("%w: bitmap does not match %dx%d", ErrRasterization, w, h)}
	}
	g.Bitmap = bmp
	return g, nil
}

// safeRasterize turns a rasterizer panic into an error so that one bad
// outline cannot take down its siblings.
func safeRasterize(r Rasterizer, o *text.Outline, w, h int, pxRange float64, proj msdf.Projection) (img *msdf.FloatImage, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, fmt.Errorf("rasterizer panic: %v", rec)
		}
	}()
	return r.Rasterize(o, w, h, pxRange, proj)
}
