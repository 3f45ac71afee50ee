package atlas

// Skyline implements bottom-left skyline rectangle packing over a fixed
// canvas.
//
// The skyline is the upper envelope of everything placed so far, kept as a
// list of horizontal segments ordered by x. A new rectangle goes where its
// top edge ends up lowest (smallest y, since y grows downwards), choosing
// the leftmost position on ties. Rectangles are never rotated and are
// placed strictly in insertion order, so the same input always yields the
// same layout.
type Skyline struct {
	width   int
	height  int
	padding int
	nodes   []skylineNode

	usedArea int
}

// skylineNode is one horizontal segment of the skyline.
type skylineNode struct {
	x     int // left edge
	y     int // first free row below everything placed over [x, x+width)
	width int
}

// NewSkyline creates a packer for a width x height canvas. padding is
// reserved to the right of and below every rectangle.
func NewSkyline(width, height, padding int) *Skyline {
	s := &Skyline{
		width:   width,
		height:  height,
		padding: padding,
		nodes:   make([]skylineNode, 0, 32),
	}
	s.Reset()
	return s
}

// Insert finds space for a w x h rectangle.
// Returns its top-left corner and true, or -1, -1, false when the canvas has
// no room; the skyline is unchanged on failure. An empty rectangle always
// succeeds at (0, 0) and occupies nothing.
func (s *Skyline) Insert(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, true
	}
	paddedW := w + s.padding
	paddedH := h + s.padding

	best := -1
	bestX, bestY := -1, -1
	for i := range s.nodes {
		fy, fits := s.fit(i, paddedW, paddedH)
		if !fits {
			continue
		}
		// Nodes are visited left to right, so a strict comparison keeps
		// the leftmost candidate on ties.
		if best < 0 || fy < bestY {
			best, bestX, bestY = i, s.nodes[i].x, fy
		}
	}
	if best < 0 {
		return -1, -1, false
	}

	s.place(best, bestX, bestY+paddedH, paddedW)
	s.usedArea += w * h
	return bestX, bestY, true
}

// fit returns the y at which a w x h rectangle rests when its left edge is
// aligned with node i.
func (s *Skyline) fit(i, w, h int) (int, bool) {
	x := s.nodes[i].x
	if x+w > s.width {
		return 0, false
	}
	y := 0
	remaining := w
	for j := i; remaining > 0; j++ {
		y = max(y, s.nodes[j].y)
		if y+h > s.height {
			return 0, false
		}
		remaining -= s.nodes[j].width
	}
	return y, true
}

// place raises the skyline over [x, x+w) to top and merges equal neighbors.
func (s *Skyline) place(i, x, top, w int) {
	s.nodes = append(s.nodes, skylineNode{})
	copy(s.nodes[i+1:], s.nodes[i:])
	s.nodes[i] = skylineNode{x: x, y: top, width: w}

	// Shrink or remove the nodes now covered by the new segment.
	for j := i + 1; j < len(s.nodes); {
		prevEnd := s.nodes[j-1].x + s.nodes[j-1].width
		n := &s.nodes[j]
		if n.x >= prevEnd {
			break
		}
		shrink := prevEnd - n.x
		if shrink < n.width {
			n.x += shrink
			n.width -= shrink
			break
		}
		s.nodes = append(s.nodes[:j], s.nodes[j+1:]...)
	}

	for j := 0; j < len(s.nodes)-1; {
		if s.nodes[j].y == s.nodes[j+1].y {
			s.nodes[j].width += s.nodes[j+1].width
			s.nodes = append(s.nodes[:j+1], s.nodes[j+2:]...)
			continue
		}
		j++
	}
}

// Reset clears all placements, allowing the packer to be reused.
func (s *Skyline) Reset() {
	s.nodes = s.nodes[:0]
	if s.width > 0 {
		s.nodes = append(s.nodes, skylineNode{x: 0, y: 0, width: s.width})
	}
	s.usedArea = 0
}

// Utilization returns the fraction of the canvas covered by rectangles
// (0.0 to 1.0), excluding padding.
func (s *Skyline) Utilization() float64 {
	total := s.width * s.height
	if total == 0 {
		return 0
	}
	return float64(s.usedArea) / float64(total)
}

// Size returns the canvas dimensions.
func (s *Skyline) Size() (width, height int) { return s.width, s.height }
