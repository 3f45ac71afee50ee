package atlas

import (
	"encoding/json"
	"fmt"
	"image/png"
	"io"

	"github.com/gogpu/glyphatlas/text"
)

// Metadata describes an atlas in the JSON layout written by msdf-atlas-gen,
// so existing MSDF text renderers can consume it.
type Metadata struct {
	Atlas   MetadataAtlas   `json:"atlas"`
	Metrics MetadataMetrics `json:"metrics"`
	Glyphs  []MetadataGlyph `json:"glyphs"`
}

// MetadataAtlas holds the texture parameters.
type MetadataAtlas struct {
	Type          string  `json:"type"`
	DistanceRange float64 `json:"distanceRange"`
	Size          float64 `json:"size"` // pixels per em
	Width         int     `json:"width"`
	Height        int     `json:"height"`
	YOrigin       string  `json:"yOrigin"`
}

// MetadataMetrics holds font-wide metrics in font units.
type MetadataMetrics struct {
	EmSize     float32 `json:"emSize"`
	LineHeight float32 `json:"lineHeight"`
	Ascender   float32 `json:"ascender"`
	Descender  float32 `json:"descender"`
}

// MetadataGlyph is one packed glyph. PlaneBounds are in font units, Y up;
// AtlasBounds are in atlas pixels, Y down.
type MetadataGlyph struct {
	Index       text.GlyphID `json:"index"`
	Advance     float32      `json:"advance"`
	PlaneBounds *Bounds      `json:"planeBounds,omitempty"`
	AtlasBounds *Bounds      `json:"atlasBounds,omitempty"`
}

// Bounds is a rectangle in msdf-atlas-gen notation.
type Bounds struct {
	Left   float32 `json:"left"`
	Bottom float32 `json:"bottom"`
	Right  float32 `json:"right"`
	Top    float32 `json:"top"`
}

// Metadata describes the atlas. f supplies font-wide metrics and may be
// nil.
func (a *Atlas) Metadata(f *text.Font) Metadata {
	md := Metadata{
		Atlas: MetadataAtlas{
			Type:          "mtsdf",
			DistanceRange: a.PixelRange(),
			Width:         a.width,
			Height:        a.height,
			YOrigin:       "top",
		},
		Glyphs: make([]MetadataGlyph, 0, len(a.entries)),
	}
	if f != nil {
		vm := f.VerticalMetrics()
		upem := float32(f.UnitsPerEm())
		md.Atlas.Size = float64(upem) * a.scale
		md.Metrics = MetadataMetrics{
			EmSize:     upem,
			LineHeight: vm.Ascent - vm.Descent + vm.LineGap,
			Ascender:   vm.Ascent,
			Descender:  vm.Descent,
		}
	}

	scale := float32(a.scale)
	for _, gid := range a.Glyphs() {
		e := a.entries[gid]
		g := MetadataGlyph{Index: gid, Advance: e.Metrics.HorAdvance}
		if !e.IsEmpty() {
			m := e.Metrics
			g.PlaneBounds = &Bounds{Left: m.XMin, Bottom: m.YMin, Right: m.XMax, Top: m.YMax}
			g.AtlasBounds = &Bounds{
				Left:   float32(e.X),
				Top:    float32(e.Y),
				Right:  float32(e.X) + m.Width()*scale,
				Bottom: float32(e.Y) + m.Height()*scale,
			}
		}
		md.Glyphs = append(md.Glyphs, g)
	}
	return md
}

// WriteMetadata writes the atlas description as indented JSON.
func (a *Atlas) WriteMetadata(w io.Writer, f *text.Font) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a.Metadata(f)); err != nil {
		return fmt.Errorf("atlas: write metadata: %w", err)
	}
	return nil
}

// WritePNG encodes the atlas image as PNG.
func (a *Atlas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, a.image); err != nil {
		return fmt.Errorf("atlas: write png: %w", err)
	}
	return nil
}
