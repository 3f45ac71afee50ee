package msdf

import (
	"math"

	"github.com/gogpu/glyphatlas/text"
)

// Contour is a closed sequence of edges.
type Contour struct {
	Edges []Edge
}

// area returns the signed area of the contour's chord polygon.
// Counter-clockwise contours are positive.
func (c *Contour) area() float64 {
	var a float64
	for i := range c.Edges {
		a += c.Edges[i].Start().Cross(c.Edges[i].End())
	}
	return a / 2
}

// Shape is a set of contours in font units.
type Shape struct {
	Contours []Contour

	// inverted is set when the outer contours wind clockwise, as in
	// TrueType outlines, so distances must be negated to be positive inside.
	inverted bool
}

// ShapeFromOutline converts a glyph outline to a shape. Open contours are
// closed with a straight edge and degenerate edges are dropped.
func ShapeFromOutline(o *text.Outline) *Shape {
	s := &Shape{}
	if o.IsEmpty() {
		return s
	}

	var cur Contour
	var start, pen Point
	flush := func() {
		if pen != start {
			cur.Edges = append(cur.Edges, lineEdge(pen, start))
		}
		if len(cur.Edges) > 0 {
			s.Contours = append(s.Contours, cur)
		}
		cur = Contour{}
	}
	pt := func(p text.OutlinePoint) Point { return Point{float64(p.X), float64(p.Y)} }

	for _, seg := range o.Segments {
		switch seg.Op {
		case text.OutlineOpMoveTo:
			flush()
			start = pt(seg.Points[0])
			pen = start
		case text.OutlineOpLineTo:
			end := pt(seg.Points[0])
			if end != pen {
				cur.Edges = append(cur.Edges, lineEdge(pen, end))
			}
			pen = end
		case text.OutlineOpQuadTo:
			end := pt(seg.Points[1])
			cur.Edges = append(cur.Edges, quadEdge(pen, pt(seg.Points[0]), end))
			pen = end
		case text.OutlineOpCubicTo:
			end := pt(seg.Points[2])
			cur.Edges = append(cur.Edges, cubicEdge(pen, pt(seg.Points[0]), pt(seg.Points[1]), end))
			pen = end
		}
	}
	flush()

	var total float64
	for i := range s.Contours {
		total += s.Contours[i].area()
	}
	s.inverted = total < 0
	return s
}

// EdgeCount returns the number of edges in all contours.
func (s *Shape) EdgeCount() int {
	n := 0
	for i := range s.Contours {
		n += len(s.Contours[i].Edges)
	}
	return n
}

// Area returns the absolute area of the shape's chord polygons.
// A shape with zero area produces no distance field.
func (s *Shape) Area() float64 {
	var total float64
	for i := range s.Contours {
		total += s.Contours[i].area()
	}
	return math.Abs(total)
}

// ColorEdges assigns channel colors so that edges meeting at a corner
// never share all channels. Contours without corners stay white.
func (s *Shape) ColorEdges(angleThreshold float64) {
	crossThreshold := math.Sin(angleThreshold)
	for i := range s.Contours {
		colorContour(&s.Contours[i], crossThreshold)
	}
}

func colorContour(c *Contour, crossThreshold float64) {
	n := len(c.Edges)
	var corners []int
	for i := range n {
		prev := c.Edges[(i+n-1)%n].Direction(1).Normalized()
		next := c.Edges[i].Direction(0).Normalized()
		if isCorner(prev, next, crossThreshold) {
			corners = append(corners, i)
		}
	}

	palette := [3]EdgeColor{ColorCyan, ColorMagenta, ColorYellow}
	switch len(corners) {
	case 0:
		for i := range c.Edges {
			c.Edges[i].Color = ColorWhite
		}
	case 1:
		// A teardrop: split the single spline into three colored thirds.
		for k := range n {
			third := min(3*k/n, 2)
			c.Edges[(corners[0]+k)%n].Color = palette[third]
		}
	default:
		// One color per spline between corners. The last spline must also
		// differ from the first, which it meets at corner 0.
		spline := 0
		first := corners[0]
		for k := range n {
			i := (first + k) % n
			if spline+1 < len(corners) && i == corners[spline+1] {
				spline++
			}
			color := palette[spline%3]
			if spline == len(corners)-1 && spline%3 == 0 {
				color = palette[1]
			}
			c.Edges[i].Color = color
		}
	}
}

// isCorner reports whether unit directions a and b turn by more than the
// threshold, or by 90 degrees or more.
func isCorner(a, b Point, crossThreshold float64) bool {
	return a.Dot(b) <= 0 || math.Abs(a.Cross(b)) > crossThreshold
}
