package layout

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/msdf"
	"github.com/gogpu/glyphatlas/text"
)

const (
	gidA     text.GlyphID = 1
	gidB     text.GlyphID = 2
	gidSpace text.GlyphID = 3
	gidHuge  text.GlyphID = 4
)

func glyph(gid text.GlyphID, w, h int) atlas.RasterizedGlyph {
	return atlas.RasterizedGlyph{
		GID:       gid,
		Requested: gid,
		Metrics: text.GlyphMetrics{
			XMax:       float32(w),
			YMax:       float32(h),
			HorAdvance: float32(w + 2),
		},
		Bitmap: msdf.NewFloatImage(w, h, 4),
	}
}

// testAtlas packs A (8x10), B (9x10), a space and a glyph too large for the
// 64x64 canvas, at scale 1.
func testAtlas(t *testing.T) *atlas.Atlas {
	t.Helper()
	cfg := atlas.DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 64, 64
	cfg.Scale = 1
	glyphs := []atlas.RasterizedGlyph{
		glyph(gidA, 8, 10),
		glyph(gidB, 9, 10),
		{GID: gidSpace, Requested: gidSpace, Metrics: text.GlyphMetrics{HorAdvance: 5}},
		glyph(gidHuge, 100, 100),
	}
	a, err := atlas.Build(text.DefaultIdentity, glyphs, cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if a.Contains(gidHuge) {
		t.Fatal("huge glyph unexpectedly packed")
	}
	return a
}

func seq(x, y float32, glyphs ...text.ShapedGlyph) []Sequence {
	return []Sequence{{Font: text.DefaultIdentity, X: x, Y: y, Glyphs: glyphs}}
}

func sg(gid text.GlyphID, adv float32) text.ShapedGlyph {
	return text.ShapedGlyph{GID: gid, XAdvance: adv}
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-6 }

func TestLayoutAB(t *testing.T) {
	a := testAtlas(t)
	m, err := Layout(seq(0, 0, sg(gidA, 10), sg(gidB, 12)), Single(a), Size{100, 100})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	if m.Quads != 2 {
		t.Fatalf("Quads = %d, want 2", m.Quads)
	}
	if got := m.Vertices[0].Position[0]; !near(got, -1) {
		t.Errorf("A left = %v, want -1", got)
	}
	if got := m.Vertices[4].Position[0]; !near(got, -0.8) {
		t.Errorf("B left = %v, want -0.8", got)
	}
	// A is 8px wide: right edge at 2*8/100-1.
	if got := m.Vertices[1].Position[0]; !near(got, -0.84) {
		t.Errorf("A right = %v, want -0.84", got)
	}
}

func TestLayoutQuadCorners(t *testing.T) {
	a := testAtlas(t)
	m, err := Layout(seq(20, 50, sg(gidA, 10)), Single(a), Size{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	e, _ := a.Lookup(gidA)
	uv := e.UV

	// Baseline at y=50 and YMax=10: top at 40, bottom at 50.
	want := []Vertex{
		{Position: [2]float32{-0.6, 0.2}, UV: [2]float32{uv.U, uv.V}},
		{Position: [2]float32{-0.44, 0.2}, UV: [2]float32{uv.U + uv.W, uv.V}},
		{Position: [2]float32{-0.44, 0}, UV: [2]float32{uv.U + uv.W, uv.V + uv.H}},
		{Position: [2]float32{-0.6, 0}, UV: [2]float32{uv.U, uv.V + uv.H}},
	}
	for i, w := range want {
		got := m.Vertices[i]
		for k := range 2 {
			if !near(got.Position[k], w.Position[k]) || !near(got.UV[k], w.UV[k]) {
				t.Errorf("vertex %d = %+v, want %+v", i, got, w)
				break
			}
		}
	}
	wantIdx := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range wantIdx {
		if m.Indices[i] != idx {
			t.Errorf("Indices = %v, want %v", m.Indices, wantIdx)
			break
		}
	}
}

func TestLayoutWindingIsClockwise(t *testing.T) {
	a := testAtlas(t)
	m, err := Layout(seq(0, 30, sg(gidA, 10), sg(gidB, 12), sg(gidA, 10)), Single(a), Size{64, 48})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(m.Indices); i += 3 {
		p0 := m.Vertices[m.Indices[i]].Position
		p1 := m.Vertices[m.Indices[i+1]].Position
		p2 := m.Vertices[m.Indices[i+2]].Position
		cross := (p1[0]-p0[0])*(p2[1]-p0[1]) - (p1[1]-p0[1])*(p2[0]-p0[0])
		if cross >= 0 {
			t.Errorf("triangle %d winds counter-clockwise (cross %v)", i/3, cross)
		}
	}
}

func TestLayoutSkipsDroppedGlyph(t *testing.T) {
	a := testAtlas(t)
	glyphs := []text.ShapedGlyph{sg(gidA, 10), sg(gidHuge, 30), sg(gidB, 12)}
	m, err := Layout(seq(0, 0, glyphs...), Single(a), Size{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if m.Quads != len(glyphs)-1 {
		t.Errorf("Quads = %d, want %d", m.Quads, len(glyphs)-1)
	}
	if len(m.Vertices) != m.Quads*4 || len(m.Indices) != m.Quads*6 {
		t.Errorf("buffers = %d vertices, %d indices for %d quads", len(m.Vertices), len(m.Indices), m.Quads)
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Errorf("index %d out of range", idx)
		}
	}
	// The dropped glyph still advances the pen: B starts at 40px.
	if got := m.Vertices[4].Position[0]; !near(got, -0.2) {
		t.Errorf("B left = %v, want -0.2", got)
	}
}

func TestLayoutWhitespaceAdvances(t *testing.T) {
	a := testAtlas(t)
	m, err := Layout(seq(0, 0, sg(gidA, 10), sg(gidSpace, 5), sg(gidB, 12)), Single(a), Size{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if m.Quads != 2 {
		t.Errorf("Quads = %d, want 2", m.Quads)
	}
	if got := m.Vertices[4].Position[0]; !near(got, -0.7) {
		t.Errorf("B left = %v, want -0.7", got)
	}
}

func TestLayoutOffsetsAndVerticalAdvance(t *testing.T) {
	a := testAtlas(t)
	glyphs := []text.ShapedGlyph{
		{GID: gidA, XAdvance: 10, YAdvance: 20, XOffset: 5, YOffset: 10},
		{GID: gidB},
	}
	m, err := Layout(seq(0, 50, glyphs...), Single(a), Size{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	// A: left 5, top 50-(10+10) = 30.
	if p := m.Vertices[0].Position; !near(p[0], -0.9) || !near(p[1], 0.4) {
		t.Errorf("A top-left = %v, want (-0.9, 0.4)", p)
	}
	// B: pen (10, 30), top 20.
	if p := m.Vertices[4].Position; !near(p[0], -0.8) || !near(p[1], 0.6) {
		t.Errorf("B top-left = %v, want (-0.8, 0.6)", p)
	}
}

func TestLayoutKerning(t *testing.T) {
	a := testAtlas(t)
	kern := func(_ text.Identity, l, r text.GlyphID) float32 {
		if l == gidA && r == gidB {
			return -2
		}
		return 0
	}
	m, err := Layout(seq(0, 0, sg(gidA, 10), sg(gidB, 12)), Single(a), Size{100, 100}, WithKerning(kern))
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Vertices[4].Position[0]; !near(got, -0.84) {
		t.Errorf("kerned B left = %v, want -0.84", got)
	}
}

func TestLayoutUsesAtlasScale(t *testing.T) {
	cfg := atlas.DefaultConfig()
	cfg.CanvasWidth, cfg.CanvasHeight = 64, 64
	cfg.Scale = 0.5
	g := glyph(gidA, 8, 10)
	g.Metrics.XMax, g.Metrics.YMax = 16, 20
	a, err := atlas.Build(text.DefaultIdentity, []atlas.RasterizedGlyph{g, glyph(gidB, 4, 5)}, cfg)
	if err != nil {
		t.Fatal(err)
	}

	m, err := Layout(seq(0, 0, sg(gidA, 20), sg(gidB, 0)), Single(a), Size{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	// 16 font units at scale 0.5 is 8px wide; an advance of 20 is 10px.
	if got := m.Vertices[1].Position[0]; !near(got, -0.84) {
		t.Errorf("A right = %v, want -0.84", got)
	}
	if got := m.Vertices[4].Position[0]; !near(got, -0.8) {
		t.Errorf("B left = %v, want -0.8", got)
	}
}

func TestLayoutDeterministic(t *testing.T) {
	a := testAtlas(t)
	seqs := []Sequence{
		{Font: text.DefaultIdentity, X: 3, Y: 20, Glyphs: []text.ShapedGlyph{sg(gidA, 10), sg(gidB, 12), sg(gidSpace, 5)}},
		{Font: text.DefaultIdentity, X: 7, Y: 40, Glyphs: []text.ShapedGlyph{sg(gidB, 12), sg(gidA, 10)}},
	}
	m1, err := Layout(seqs, Single(a), Size{320, 240})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := Layout(seqs, Single(a), Size{320, 240})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(m1.VertexBytes(), m2.VertexBytes()) {
		t.Error("VertexBytes() differ between identical layouts")
	}
	if !bytes.Equal(m1.IndexBytes(), m2.IndexBytes()) {
		t.Error("IndexBytes() differ between identical layouts")
	}
}

func TestLayoutMonotonicPen(t *testing.T) {
	a := testAtlas(t)
	var glyphs []text.ShapedGlyph
	for i := range 40 {
		gid := gidA
		if i%3 == 0 {
			gid = gidB
		}
		glyphs = append(glyphs, sg(gid, float32(i%4)*3))
	}
	m, err := Layout(seq(0, 10, glyphs...), Single(a), Size{800, 100})
	if err != nil {
		t.Fatal(err)
	}
	for q := 1; q < m.Quads; q++ {
		prev, cur := m.Vertices[(q-1)*4].Position[0], m.Vertices[q*4].Position[0]
		if cur < prev {
			t.Errorf("quad %d x-origin %v < previous %v", q, cur, prev)
		}
	}
}

func TestLayoutErrors(t *testing.T) {
	a := testAtlas(t)
	tests := []struct {
		name    string
		seqs    []Sequence
		atlases AtlasLookup
		screen  Size
		want    error
	}{
		{"zero width", seq(0, 0, sg(gidA, 1)), Single(a), Size{0, 10}, ErrInvalidScreen},
		{"negative height", seq(0, 0, sg(gidA, 1)), Single(a), Size{10, -1}, ErrInvalidScreen},
		{"nil lookup", seq(0, 0, sg(gidA, 1)), nil, Size{10, 10}, ErrNoAtlas},
		{"other font", []Sequence{{Font: text.MonospaceIdentity, Glyphs: []text.ShapedGlyph{sg(gidA, 1)}}}, Single(a), Size{10, 10}, ErrNoAtlas},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Layout(tt.seqs, tt.atlases, tt.screen)
			if !errors.Is(err, tt.want) {
				t.Errorf("Layout() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLayoutEmpty(t *testing.T) {
	m, err := Layout(nil, nil, Size{10, 10})
	if err != nil {
		t.Fatal(err)
	}
	if !m.IsEmpty() || m.VertexBytes() != nil || m.IndexBytes() != nil {
		t.Errorf("Layout(nil) = %+v, want empty mesh", m)
	}
}
