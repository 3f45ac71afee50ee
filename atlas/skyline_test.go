package atlas

import (
	"math/rand/v2"
	"testing"
)

func TestSkylineThreeSquaresThenOverflow(t *testing.T) {
	s := NewSkyline(256, 256, 0)

	want := [][2]int{{0, 0}, {64, 0}, {128, 0}}
	for i, w := range want {
		x, y, ok := s.Insert(64, 64)
		if !ok {
			t.Fatalf("Insert #%d failed", i)
		}
		if x != w[0] || y != w[1] {
			t.Errorf("Insert #%d = (%d, %d), want (%d, %d)", i, x, y, w[0], w[1])
		}
	}

	if _, _, ok := s.Insert(256, 256); ok {
		t.Error("Insert(256, 256) succeeded on a partly filled canvas, want overflow")
	}

	// The failed insert must not disturb the skyline.
	x, y, ok := s.Insert(64, 64)
	if !ok || x != 192 || y != 0 {
		t.Errorf("Insert after overflow = (%d, %d, %v), want (192, 0, true)", x, y, ok)
	}
}

func TestSkylineLowestTopWins(t *testing.T) {
	s := NewSkyline(100, 100, 0)
	s.Insert(50, 40) // (0, 0)
	s.Insert(50, 10) // (50, 0)

	// Lowest resting place for a 50x10 rectangle is on top of the short one.
	x, y, ok := s.Insert(50, 10)
	if !ok || x != 50 || y != 10 {
		t.Errorf("Insert = (%d, %d, %v), want (50, 10, true)", x, y, ok)
	}

	// A full-width rectangle has to clear the tall one.
	x, y, ok = s.Insert(100, 10)
	if !ok || x != 0 || y != 40 {
		t.Errorf("Insert(100, 10) = (%d, %d, %v), want (0, 40, true)", x, y, ok)
	}
}

func TestSkylineZeroSize(t *testing.T) {
	s := NewSkyline(16, 16, 0)
	for _, sz := range [][2]int{{0, 0}, {0, 5}, {5, 0}} {
		x, y, ok := s.Insert(sz[0], sz[1])
		if !ok || x != 0 || y != 0 {
			t.Errorf("Insert(%d, %d) = (%d, %d, %v), want (0, 0, true)", sz[0], sz[1], x, y, ok)
		}
	}
	if s.Utilization() != 0 {
		t.Errorf("Utilization() = %v, want 0", s.Utilization())
	}
	if x, y, ok := s.Insert(16, 16); !ok || x != 0 || y != 0 {
		t.Errorf("Insert(16, 16) = (%d, %d, %v), want full canvas", x, y, ok)
	}
}

func TestSkylinePadding(t *testing.T) {
	s := NewSkyline(64, 64, 2)
	s.Insert(10, 10)
	x, y, ok := s.Insert(10, 10)
	if !ok || x != 12 || y != 0 {
		t.Errorf("Insert = (%d, %d, %v), want (12, 0, true)", x, y, ok)
	}
}

func TestSkylineNoOverlap(t *testing.T) {
	const size = 512
	s := NewSkyline(size, size, 1)
	rng := rand.New(rand.NewPCG(1, 2))

	type rect struct{ x, y, w, h int }
	var placed []rect
	for range 400 {
		w, h := 1+rng.IntN(48), 1+rng.IntN(48)
		x, y, ok := s.Insert(w, h)
		if !ok {
			continue
		}
		if x < 0 || y < 0 || x+w > size || y+h > size {
			t.Fatalf("rect (%d, %d, %d, %d) outside canvas", x, y, w, h)
		}
		r := rect{x, y, w, h}
		for _, p := range placed {
			if r.x < p.x+p.w && p.x < r.x+r.w && r.y < p.y+p.h && p.y < r.y+r.h {
				t.Fatalf("rect %v overlaps %v", r, p)
			}
		}
		placed = append(placed, r)
	}
	if len(placed) == 0 {
		t.Fatal("nothing placed")
	}
	if u := s.Utilization(); u <= 0 || u > 1 {
		t.Errorf("Utilization() = %v, want in (0, 1]", u)
	}
}

func TestSkylineReset(t *testing.T) {
	s := NewSkyline(32, 32, 0)
	s.Insert(32, 32)
	if _, _, ok := s.Insert(1, 1); ok {
		t.Fatal("Insert into full canvas succeeded")
	}
	s.Reset()
	if x, y, ok := s.Insert(32, 32); !ok || x != 0 || y != 0 {
		t.Errorf("Insert after Reset = (%d, %d, %v), want (0, 0, true)", x, y, ok)
	}
}

func TestSkylineZeroCanvas(t *testing.T) {
	s := NewSkyline(0, 0, 0)
	if _, _, ok := s.Insert(1, 1); ok {
		t.Error("Insert into zero canvas succeeded")
	}
}
