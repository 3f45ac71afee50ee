package glyphatlas

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/layout"
	"github.com/gogpu/glyphatlas/text"
)

// ErrNilCache is returned by NewRenderer when no atlas cache is given.
var ErrNilCache = errors.New("glyphatlas: nil atlas cache")

// DrawList is the geometry for one font in a frame. Mesh samples Atlas and
// is drawn with a single indexed draw call.
type DrawList struct {
	Font  text.Identity
	Atlas *atlas.Atlas
	Mesh  *layout.Mesh
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithKerning applies kern-table kerning from the renderer's fonts during
// layout. Only useful with shapers that do not kern themselves, such as
// text.BuiltinShaper.
func WithKerning() RendererOption {
	return func(r *Renderer) {
		r.kerning = layout.FontKerning(r.provider)
	}
}

// Renderer collects text for a frame and produces per-font draw lists.
//
// A Renderer is safe for concurrent use; Frame blocks Draw until the
// frame's atlases and meshes are built.
type Renderer struct {
	provider text.Provider
	cache    *atlas.Cache
	shaper   text.Shaper
	kerning  layout.KerningTable

	mu    sync.Mutex
	order []text.Identity
	seqs  map[text.Identity][]layout.Sequence
}

// NewRenderer creates a renderer. A nil shaper selects a cached HarfBuzz
// shaper.
func NewRenderer(provider text.Provider, cache *atlas.Cache, shaper text.Shaper, opts ...RendererOption) (*Renderer, error) {
	if provider == nil {
		return nil, atlas.ErrNoProvider
	}
	if cache == nil {
		return nil, ErrNilCache
	}
	if shaper == nil {
		shaper = text.NewCachedShaper(text.NewGoTextShaper(), 0)
	}
	r := &Renderer{
		provider: provider,
		cache:    cache,
		shaper:   shaper,
		seqs:     make(map[text.Identity][]layout.Sequence),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Draw queues s for the next frame with its baseline origin at (x, y)
// in pixels.
func (r *Renderer) Draw(x, y float32, s string, font text.Identity) error {
	f, err := r.provider.Font(font)
	if err != nil {
		return fmt.Errorf("glyphatlas: draw: %w", err)
	}
	if s == "" {
		return nil
	}
	glyphs := r.shaper.Shape(f, s)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seqs[font]; !ok {
		r.order = append(r.order, font)
	}
	r.seqs[font] = append(r.seqs[font], layout.Sequence{Font: font, X: x, Y: y, Glyphs: glyphs})
	return nil
}

// Frame makes sure every queued glyph is in its font's atlas and lays out
// the queued text. Lists are returned in the order fonts were first drawn.
// The queue is kept; call Reset to start a new frame.
func (r *Renderer) Frame(screen layout.Size) ([]DrawList, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var opts []layout.Option
	if r.kerning != nil {
		opts = append(opts, layout.WithKerning(r.kerning))
	}

	lists := make([]DrawList, 0, len(r.order))
	for _, id := range r.order {
		seqs := r.seqs[id]
		a, err := r.cache.Ensure(id, glyphsOf(seqs))
		if err != nil {
			return nil, fmt.Errorf("glyphatlas: frame %s: %w", id, err)
		}
		mesh, err := layout.Layout(seqs, layout.Single(a), screen, opts...)
		if err != nil {
			return nil, fmt.Errorf("glyphatlas: frame %s: %w", id, err)
		}
		if mesh.IsEmpty() {
			continue
		}
		lists = append(lists, DrawList{Font: id, Atlas: a, Mesh: mesh})
	}
	Logger().Debug("glyphatlas: frame", "fonts", len(r.order), "lists", len(lists))
	return lists, nil
}

// Reset drops all queued text.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = r.order[:0]
	clear(r.seqs)
}

// glyphsOf returns the distinct glyph IDs used by seqs in ascending order.
func glyphsOf(seqs []layout.Sequence) []text.GlyphID {
	var gids []text.GlyphID
	for i := range seqs {
		gids = append(gids, text.GlyphIDs(seqs[i].Glyphs)...)
	}
	slices.Sort(gids)
	return slices.Compact(gids)
}
