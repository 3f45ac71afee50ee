package text

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Font is a parsed font resource.
//
// All measurements returned by Font are in font units with the Y axis pointing
// up, independent of any render size. Font is immutable and safe for
// concurrent use; every method borrows its own sfnt.Buffer.
type Font struct {
	id    Identity
	data  []byte
	sfnt  *sfnt.Font
	name  string
	upem  int
	ppem  fixed.Int26_6
	vmetr VerticalMetrics

	buffers sync.Pool
}

// VerticalMetrics holds the font-wide line metrics in font units.
// Descent is negative (below the baseline).
type VerticalMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// NewFont parses TrueType or OpenType data.
// The data slice is copied and can be reused after this call.
func NewFont(data []byte, id Identity, opts ...FontOption) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	cfg := defaultFontConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	parsed, err := parseFont(buf, cfg.collectionIndex)
	if err != nil {
		return nil, fmt.Errorf("text: parse %s: %w", id, err)
	}

	f := &Font{
		id:   id,
		data: buf,
		sfnt: parsed,
		upem: int(parsed.UnitsPerEm()),
	}
	// Loading at ppem == unitsPerEm makes every 26.6 result a font-unit value.
	f.ppem = fixed.Int26_6(f.upem << 6)
	f.buffers.New = func() any { return new(sfnt.Buffer) }

	if name, err := parsed.Name(nil, sfnt.NameIDFamily); err == nil {
		f.name = name
	}

	b := f.buffer()
	m, err := parsed.Metrics(b, f.ppem, font.HintingNone)
	f.release(b)
	if err != nil {
		return nil, fmt.Errorf("text: metrics %s: %w", id, err)
	}
	f.vmetr = VerticalMetrics{
		Ascent:  unitsOf(m.Ascent),
		Descent: -unitsOf(m.Descent),
		LineGap: unitsOf(m.Height) - unitsOf(m.Ascent) - unitsOf(m.Descent),
	}
	return f, nil
}

// LoadFont reads a font file and parses it.
func LoadFont(path string, id Identity, opts ...FontOption) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: read font %q: %w", path, err)
	}
	return NewFont(data, id, opts...)
}

// Identity returns the logical identity of the font.
func (f *Font) Identity() Identity { return f.id }

// Name returns the family name stored in the font's name table.
func (f *Font) Name() string { return f.name }

// Data returns the raw font bytes. The slice must not be modified.
func (f *Font) Data() []byte { return f.data }

// UnitsPerEm returns the number of font units per em.
func (f *Font) UnitsPerEm() int { return f.upem }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.sfnt.NumGlyphs() }

// VerticalMetrics returns the font-wide ascent, descent and line gap.
func (f *Font) VerticalMetrics() VerticalMetrics { return f.vmetr }

// GlyphIndex maps a rune to a glyph ID. It reports false if the font has no
// glyph for r.
func (f *Font) GlyphIndex(r rune) (GlyphID, bool) {
	b := f.buffer()
	defer f.release(b)

	idx, err := f.sfnt.GlyphIndex(b, r)
	if err != nil || idx == 0 {
		return NotdefGlyph, false
	}
	return GlyphID(idx), true
}

// HasGlyph reports whether gid is within the font's glyph range.
func (f *Font) HasGlyph(gid GlyphID) bool {
	return int(gid) < f.sfnt.NumGlyphs()
}

// Metrics returns the glyph's bounding box and advance metrics.
func (f *Font) Metrics(gid GlyphID) (GlyphMetrics, error) {
	if !f.HasGlyph(gid) {
		return GlyphMetrics{}, &FontError{Font: f.id, GID: gid, Reason: "metrics", Err: ErrGlyphNotFound}
	}

	b := f.buffer()
	defer f.release(b)

	bounds, advance, err := f.sfnt.GlyphBounds(b, sfnt.GlyphIndex(gid), f.ppem, font.HintingNone)
	if err != nil {
		return GlyphMetrics{}, &FontError{Font: f.id, GID: gid, Reason: "glyph bounds", Err: err}
	}

	// sfnt reports bounds with Y pointing down.
	m := GlyphMetrics{
		XMin:       unitsOf(bounds.Min.X),
		XMax:       unitsOf(bounds.Max.X),
		YMin:       -unitsOf(bounds.Max.Y),
		YMax:       -unitsOf(bounds.Min.Y),
		HorAdvance: unitsOf(advance),
	}
	if m.IsEmpty() {
		m = GlyphMetrics{HorAdvance: m.HorAdvance}
	}
	m.HorSideBearing = m.XMin
	m.VerAdvance = f.vmetr.Ascent - f.vmetr.Descent
	m.VerSideBearing = f.vmetr.Ascent - m.YMax
	m.YOrigin = f.vmetr.Ascent
	return m, nil
}

// Kern returns the kerning adjustment between two glyphs from the font's
// kern table, in font units. Fonts without a kern table return 0.
func (f *Font) Kern(left, right GlyphID) float32 {
	b := f.buffer()
	defer f.release(b)

	k, err := f.sfnt.Kern(b, sfnt.GlyphIndex(left), sfnt.GlyphIndex(right), f.ppem, font.HintingNone)
	if err != nil {
		return 0
	}
	return unitsOf(k)
}

func parseFont(data []byte, index int) (*sfnt.Font, error) {
	if index <= 0 {
		return opentype.Parse(data)
	}
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	if index >= c.NumFonts() {
		return nil, fmt.Errorf("collection index %d out of range [0,%d)", index, c.NumFonts())
	}
	return c.Font(index)
}

func (f *Font) buffer() *sfnt.Buffer {
	return f.buffers.Get().(*sfnt.Buffer)
}

func (f *Font) release(b *sfnt.Buffer) {
	f.buffers.Put(b)
}

// unitsOf converts a 26.6 value loaded at ppem == unitsPerEm to font units.
func unitsOf(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
