package msdf

import "math"

// EdgeColor is a bitmask of the RGB channels an edge contributes to.
type EdgeColor uint8

const (
	ColorBlack   EdgeColor = 0
	ColorRed     EdgeColor = 1
	ColorGreen   EdgeColor = 2
	ColorBlue    EdgeColor = 4
	ColorYellow            = ColorRed | ColorGreen
	ColorMagenta           = ColorRed | ColorBlue
	ColorCyan              = ColorGreen | ColorBlue
	ColorWhite             = ColorRed | ColorGreen | ColorBlue
)

// Has reports whether c includes every channel of ch.
func (c EdgeColor) Has(ch EdgeColor) bool { return c&ch == ch }

// EdgeKind is the degree of an edge segment.
type EdgeKind uint8

const (
	EdgeLinear EdgeKind = iota
	EdgeQuadratic
	EdgeCubic
)

// Edge is one segment of a contour. P holds the start point, the control
// points and the end point; unused entries are zero.
type Edge struct {
	Kind  EdgeKind
	P     [4]Point
	Color EdgeColor
}

func lineEdge(a, b Point) Edge          { return Edge{Kind: EdgeLinear, P: [4]Point{a, b}, Color: ColorWhite} }
func quadEdge(a, c, b Point) Edge       { return Edge{Kind: EdgeQuadratic, P: [4]Point{a, c, b}, Color: ColorWhite} }
func cubicEdge(a, c1, c2, b Point) Edge { return Edge{Kind: EdgeCubic, P: [4]Point{a, c1, c2, b}, Color: ColorWhite} }

// Start returns the first point of the edge.
func (e *Edge) Start() Point { return e.P[0] }

// End returns the last point of the edge.
func (e *Edge) End() Point { return e.P[e.Kind+1] }

// At evaluates the edge at t in [0, 1].
func (e *Edge) At(t float64) Point {
	p := e.P
	switch e.Kind {
	case EdgeQuadratic:
		return p[0].Lerp(p[1], t).Lerp(p[1].Lerp(p[2], t), t)
	case EdgeCubic:
		p12 := p[1].Lerp(p[2], t)
		return p[0].Lerp(p[1], t).Lerp(p12, t).Lerp(p12.Lerp(p[2].Lerp(p[3], t), t), t)
	default:
		return p[0].Lerp(p[1], t)
	}
}

// Direction returns the (unnormalized) tangent at t.
func (e *Edge) Direction(t float64) Point {
	p := e.P
	var d Point
	switch e.Kind {
	case EdgeQuadratic:
		d = p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t)
		if d == (Point{}) {
			return p[2].Sub(p[0])
		}
	case EdgeCubic:
		d = p[1].Sub(p[0]).Lerp(p[2].Sub(p[1]), t).Lerp(p[2].Sub(p[1]).Lerp(p[3].Sub(p[2]), t), t)
		if d == (Point{}) {
			if t == 0 {
				return p[2].Sub(p[0])
			}
			return p[3].Sub(p[1])
		}
	default:
		d = p[1].Sub(p[0])
	}
	return d
}

// distanceTo returns the signed distance from p to the edge. Points to the
// left of the edge direction are positive.
func (e *Edge) distanceTo(p Point) signedDistance {
	switch e.Kind {
	case EdgeQuadratic:
		return e.quadraticDistance(p)
	case EdgeCubic:
		return e.cubicDistance(p)
	default:
		return e.linearDistance(p)
	}
}

// sampleAt builds the signed distance for the closest point at parameter t.
func (e *Edge) sampleAt(p Point, t float64) signedDistance {
	t = math.Max(0, math.Min(1, t))
	dir := e.Direction(t)
	diff := p.Sub(e.At(t))
	d := diff.Length()
	if dir.Cross(diff) < 0 {
		d = -d
	}
	var dot float64
	if t == 0 || t == 1 {
		dot = math.Abs(dir.Normalized().Dot(diff.Normalized()))
	}
	return signedDistance{dist: d, dot: dot}
}

func (e *Edge) linearDistance(p Point) signedDistance {
	ab := e.P[1].Sub(e.P[0])
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return signedDistance{dist: p.Sub(e.P[0]).Length(), dot: 1}
	}
	return e.sampleAt(p, p.Sub(e.P[0]).Dot(ab)/l2)
}

func (e *Edge) quadraticDistance(p Point) signedDistance {
	// B(t) - p = a t^2 + b t + c; the closest point solves dot(B-p, B') = 0.
	p0, p1, p2 := e.P[0], e.P[1], e.P[2]
	a := p0.Sub(p1.Mul(2)).Add(p2)
	b := p1.Sub(p0).Mul(2)
	c := p0.Sub(p)

	best := e.sampleAt(p, 0)
	if d := e.sampleAt(p, 1); d.closerThan(best) {
		best = d
	}
	for _, t := range cubicRoots(2*a.Dot(a), 3*a.Dot(b), 2*a.Dot(c)+b.Dot(b), b.Dot(c)) {
		if t > 0 && t < 1 {
			if d := e.sampleAt(p, t); d.closerThan(best) {
				best = d
			}
		}
	}
	return best
}

func (e *Edge) cubicDistance(p Point) signedDistance {
	const samples = 8
	best := e.sampleAt(p, 0)
	if d := e.sampleAt(p, 1); d.closerThan(best) {
		best = d
	}
	for i := 0; i <= samples; i++ {
		t := e.refineCubic(p, float64(i)/samples)
		if d := e.sampleAt(p, t); d.closerThan(best) {
			best = d
		}
	}
	return best
}

// refineCubic runs Newton iterations on dot(B(t)-p, B'(t)) = 0.
func (e *Edge) refineCubic(p Point, t float64) float64 {
	pp := e.P
	for range 6 {
		diff := e.At(t).Sub(p)
		d1 := e.Direction(t).Mul(3)
		u := 1 - t
		d2 := pp[2].Sub(pp[1].Mul(2)).Add(pp[0]).Mul(6 * u).Add(pp[3].Sub(pp[2].Mul(2)).Add(pp[1]).Mul(6 * t))
		den := d1.Dot(d1) + diff.Dot(d2)
		if den == 0 {
			break
		}
		step := diff.Dot(d1) / den
		t = math.Max(0, math.Min(1, t-step))
		if math.Abs(step) < 1e-9 {
			break
		}
	}
	return t
}

// Bounds returns the bounding box of the edge's control polygon.
func (e *Edge) Bounds() (lo, hi Point) {
	lo, hi = e.P[0], e.P[0]
	for _, q := range e.P[1 : e.Kind+2] {
		lo = Point{math.Min(lo.X, q.X), math.Min(lo.Y, q.Y)}
		hi = Point{math.Max(hi.X, q.X), math.Max(hi.Y, q.Y)}
	}
	return lo, hi
}

// cubicRoots returns the real roots of a x^3 + b x^2 + c x + d.
func cubicRoots(a, b, c, d float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		return quadraticRoots(b, c, d)
	}
	b, c, d = b/a, c/a, d/a
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	shift := -b / 3
	disc := q*q/4 + p*p*p/27

	switch {
	case disc > eps:
		s := math.Sqrt(disc)
		return []float64{math.Cbrt(-q/2+s) + math.Cbrt(-q/2-s) + shift}
	case disc < -eps:
		r := 2 * math.Sqrt(-p/3)
		phi := math.Acos(math.Max(-1, math.Min(1, 3*q/(p*r))))
		return []float64{
			r*math.Cos(phi/3) + shift,
			r*math.Cos((phi+2*math.Pi)/3) + shift,
			r*math.Cos((phi+4*math.Pi)/3) + shift,
		}
	default:
		u := math.Cbrt(-q / 2)
		return []float64{2*u + shift, -u + shift}
	}
}

func quadraticRoots(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	s := math.Sqrt(disc)
	return []float64{(-b + s) / (2 * a), (-b - s) / (2 * a)}
}
