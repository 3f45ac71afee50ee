package layout

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"honnef.co/go/safeish"

	"github.com/gogpu/glyphatlas/atlas"
)

// Vertex is one corner of a glyph quad.
type Vertex struct {
	Position [2]float32 // NDC
	UV       [2]float32 // atlas texture coordinates, origin top-left
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = 16

// Mesh is the output of one Layout call: four vertices and six indices per
// quad.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Quads    int
}

// addQuad appends the rectangle (x0, y0)-(x1, y1) in screen pixels.
// Vertices go top-left, top-right, bottom-right, bottom-left; both
// triangles wind clockwise in NDC.
func (m *Mesh) addQuad(x0, y0, x1, y1 float32, uv atlas.UVRect, screen Size) {
	nx0, ny0 := toNDC(x0, y0, screen)
	nx1, ny1 := toNDC(x1, y1, screen)
	u0, v0 := uv.U, uv.V
	u1, v1 := uv.U+uv.W, uv.V+uv.H

	b := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		Vertex{Position: [2]float32{nx0, ny0}, UV: [2]float32{u0, v0}},
		Vertex{Position: [2]float32{nx1, ny0}, UV: [2]float32{u1, v0}},
		Vertex{Position: [2]float32{nx1, ny1}, UV: [2]float32{u1, v1}},
		Vertex{Position: [2]float32{nx0, ny1}, UV: [2]float32{u0, v1}},
	)
	m.Indices = append(m.Indices, b, b+1, b+2, b, b+2, b+3)
	m.Quads++
}

func toNDC(x, y float32, screen Size) (float32, float32) {
	return 2*x/screen.Width - 1, 1 - 2*y/screen.Height
}

// IsEmpty reports whether the mesh has no quads.
func (m *Mesh) IsEmpty() bool { return m.Quads == 0 }

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() int { return len(m.Indices) }

// IndexFormat returns the narrowest index format that can address every
// vertex.
func (m *Mesh) IndexFormat() gputypes.IndexFormat {
	if len(m.Vertices) <= math.MaxUint16+1 {
		return gputypes.IndexFormatUint16
	}
	return gputypes.IndexFormatUint32
}

// VertexBytes returns the vertex data for upload. The slice aliases
// Vertices; GPUs and the supported hosts are little-endian.
func (m *Mesh) VertexBytes() []byte {
	if len(m.Vertices) == 0 {
		return nil
	}
	return safeish.SliceCast[[]byte](m.Vertices)
}

// IndexBytes returns the little-endian index data in IndexFormat.
func (m *Mesh) IndexBytes() []byte {
	if len(m.Indices) == 0 {
		return nil
	}
	if m.IndexFormat() == gputypes.IndexFormatUint32 {
		return safeish.SliceCast[[]byte](m.Indices)
	}
	data := make([]byte, 0, len(m.Indices)*2)
	for _, idx := range m.Indices {
		data = binary.LittleEndian.AppendUint16(data, uint16(idx))
	}
	return data
}

// VertexBufferLayout describes Vertex for render pipeline creation.
func VertexBufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1}, // uv
		},
	}
}
