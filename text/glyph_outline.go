package text

import (
	"math"

	"golang.org/x/image/font/sfnt"
)

// GlyphMetrics describes a glyph in font units with the Y axis pointing up.
type GlyphMetrics struct {
	XMin, YMin, XMax, YMax float32

	HorAdvance float32
	VerAdvance float32

	HorSideBearing float32
	VerSideBearing float32

	// YOrigin is the Y coordinate of the vertical origin.
	YOrigin float32
}

// Width returns the bounding box width.
func (m GlyphMetrics) Width() float32 { return m.XMax - m.XMin }

// Height returns the bounding box height.
func (m GlyphMetrics) Height() float32 { return m.YMax - m.YMin }

// IsEmpty reports whether the bounding box has no area.
func (m GlyphMetrics) IsEmpty() bool {
	return m.XMax <= m.XMin || m.YMax <= m.YMin
}

// OutlineOp is the type of an outline segment.
type OutlineOp uint8

const (
	OutlineOpMoveTo OutlineOp = iota
	OutlineOpLineTo
	OutlineOpQuadTo
	OutlineOpCubicTo
)

// OutlinePoint is a point in font units.
type OutlinePoint struct {
	X, Y float32
}

// OutlineSegment is one path command. MoveTo and LineTo use Points[0],
// QuadTo uses Points[0..1] and CubicTo uses Points[0..2].
type OutlineSegment struct {
	Op     OutlineOp
	Points [3]OutlinePoint
}

// Outline is the vector outline of a glyph in font units, Y up.
type Outline struct {
	GID      GlyphID
	Segments []OutlineSegment
}

// IsEmpty reports whether the outline has no drawing commands.
// Whitespace glyphs have empty outlines.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Bounds returns the bounding box of all control points.
// The result is conservative for curves.
func (o *Outline) Bounds() (xmin, ymin, xmax, ymax float32) {
	if o.IsEmpty() {
		return 0, 0, 0, 0
	}
	xmin, ymin = math.MaxFloat32, math.MaxFloat32
	xmax, ymax = -math.MaxFloat32, -math.MaxFloat32
	for _, seg := range o.Segments {
		for _, p := range seg.Points[:seg.Op.pointCount()] {
			xmin = min(xmin, p.X)
			ymin = min(ymin, p.Y)
			xmax = max(xmax, p.X)
			ymax = max(ymax, p.Y)
		}
	}
	return xmin, ymin, xmax, ymax
}

func (op OutlineOp) pointCount() int {
	switch op {
	case OutlineOpQuadTo:
		return 2
	case OutlineOpCubicTo:
		return 3
	default:
		return 1
	}
}

// Outline loads the glyph's outline.
func (f *Font) Outline(gid GlyphID) (*Outline, error) {
	if !f.HasGlyph(gid) {
		return nil, &FontError{Font: f.id, GID: gid, Reason: "outline", Err: ErrGlyphNotFound}
	}

	b := f.buffer()
	defer f.release(b)

	segs, err := f.sfnt.LoadGlyph(b, sfnt.GlyphIndex(gid), f.ppem, nil)
	if err != nil {
		return nil, &FontError{Font: f.id, GID: gid, Reason: "load glyph", Err: err}
	}

	out := &Outline{
		GID:      gid,
		Segments: make([]OutlineSegment, 0, len(segs)),
	}
	for _, seg := range segs {
		var os OutlineSegment
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			os.Op = OutlineOpMoveTo
		case sfnt.SegmentOpLineTo:
			os.Op = OutlineOpLineTo
		case sfnt.SegmentOpQuadTo:
			os.Op = OutlineOpQuadTo
		case sfnt.SegmentOpCubeTo:
			os.Op = OutlineOpCubicTo
		default:
			continue
		}
		// Flip sfnt's Y-down coordinates into font space.
		for i := range os.Op.pointCount() {
			os.Points[i] = OutlinePoint{
				X: unitsOf(seg.Args[i].X),
				Y: -unitsOf(seg.Args[i].Y),
			}
		}
		out.Segments = append(out.Segments, os)
	}
	return out, nil
}
