package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
	xlanguage "golang.org/x/text/language"
)

// GoTextShaper shapes text with the HarfBuzz port in go-text/typesetting,
// which applies the font's GSUB and GPOS tables (ligatures, kerning, marks).
//
// The direction and script of each string are guessed with GuessSegment
// before shaping. Glyphs are shaped at a size of one em per unitsPerEm so
// the results are in font units.
//
// GoTextShaper is safe for concurrent use. Parsed go-text fonts are cached
// per *Font; HarfbuzzShaper instances are pooled since they are not.
type GoTextShaper struct {
	shaperPool sync.Pool
	lang       language.Language

	mu        sync.RWMutex
	fontCache map[*Font]*font.Font
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper(opts ...ShaperOption) *GoTextShaper {
	cfg := defaultShaperConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tag, err := xlanguage.Parse(cfg.language)
	if err != nil {
		tag = xlanguage.English
	}

	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		lang:      language.NewLanguage(tag.String()),
		fontCache: make(map[*Font]*font.Font),
	}
}

// Shape implements Shaper. It returns nil if the font data cannot be parsed
// by go-text.
func (s *GoTextShaper) Shape(f *Font, str string) []ShapedGlyph {
	if str == "" || f == nil {
		return nil
	}

	gf, err := s.goTextFont(f)
	if err != nil {
		logger().Warn("gotext: parse font failed", "font", f.Identity().String(), "err", err)
		return nil
	}

	props := GuessSegment(str)
	dir := di.DirectionLTR
	if props.Direction == DirectionRTL {
		dir = di.DirectionRTL
	}

	runes := []rune(str)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      font.NewFace(gf),
		Size:      fixed.Int26_6(f.UnitsPerEm() << 6),
		Script:    props.Script,
		Language:  s.lang,
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	out := make([]ShapedGlyph, len(output.Glyphs))
	for i, g := range output.Glyphs {
		out[i] = ShapedGlyph{
			GID:      GlyphID(uint16(g.GlyphID)), //nolint:gosec // sfnt glyph IDs are 16-bit
			Cluster:  g.TextIndex(),
			XAdvance: unitsOf(g.Advance),
			XOffset:  unitsOf(g.XOffset),
			YOffset:  unitsOf(g.YOffset),
		}
	}
	return out
}

func (s *GoTextShaper) goTextFont(f *Font) (*font.Font, error) {
	s.mu.RLock()
	gf, ok := s.fontCache[f]
	s.mu.RUnlock()
	if ok {
		return gf, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gf, ok := s.fontCache[f]; ok {
		return gf, nil
	}

	face, err := font.ParseTTF(bytes.NewReader(f.Data()))
	if err != nil {
		return nil, err
	}
	s.fontCache[f] = face.Font
	return face.Font, nil
}

// Forget drops the cached go-text font parsed from f.
func (s *GoTextShaper) Forget(f *Font) {
	s.mu.Lock()
	delete(s.fontCache, f)
	s.mu.Unlock()
}
