// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/glyphatlas/atlas"
	"github.com/gogpu/glyphatlas/layout"
	"github.com/gogpu/glyphatlas/text"
)

// AtlasTexture is an atlas image resident on the GPU.
type AtlasTexture struct {
	Texture hal.Texture
	View    hal.TextureView
	Width   uint32
	Height  uint32
	Font    text.Identity

	source *atlas.Atlas
}

// Source returns the atlas last written to the texture.
func (t *AtlasTexture) Source() *atlas.Atlas { return t.source }

// MeshBuffers holds one frame's geometry for one font.
type MeshBuffers struct {
	Vertex      hal.Buffer
	Index       hal.Buffer
	IndexCount  uint32
	IndexFormat gputypes.IndexFormat
}

// Uploader creates GPU resources for atlases and meshes.
type Uploader struct {
	device hal.Device
	queue  hal.Queue
}

// NewUploader creates an uploader for a device and its queue.
func NewUploader(device hal.Device, queue hal.Queue) *Uploader {
	return &Uploader{device: device, queue: queue}
}

// UploadAtlas creates a texture for a and writes its pixels.
func (u *Uploader) UploadAtlas(a *atlas.Atlas) (*AtlasTexture, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	w, h := a.Size()
	label := "glyph_atlas_" + a.Font().String()

	tex, err := u.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create atlas texture: %w", err)
	}
	view, err := u.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		u.device.DestroyTexture(tex)
		return nil, fmt.Errorf("gpu: create atlas texture view: %w", err)
	}

	t := &AtlasTexture{
		Texture: tex,
		View:    view,
		Width:   uint32(w),
		Height:  uint32(h),
		Font:    a.Font(),
	}
	if err := u.writeAtlas(t, a); err != nil {
		u.device.DestroyTextureView(view)
		u.device.DestroyTexture(tex)
		return nil, err
	}
	slogger().Debug("gpu: atlas uploaded", "font", t.Font.String(), "width", w, "height", h)
	return t, nil
}

// UpdateAtlas rewrites t with a rebuilt atlas of the same size. Writing the
// atlas t already holds is a no-op.
func (u *Uploader) UpdateAtlas(t *AtlasTexture, a *atlas.Atlas) error {
	if a == nil {
		return ErrNilAtlas
	}
	if a == t.source {
		return nil
	}
	if w, h := a.Size(); uint32(w) != t.Width || uint32(h) != t.Height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, w, h, t.Width, t.Height)
	}
	return u.writeAtlas(t, a)
}

func (u *Uploader) writeAtlas(t *AtlasTexture, a *atlas.Atlas) error {
	err := u.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.Texture,
			MipLevel: 0,
		},
		a.Pixels(),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  t.Width * 4,
			RowsPerImage: t.Height,
		},
		&hal.Extent3D{Width: t.Width, Height: t.Height, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("gpu: write atlas texture: %w", err)
	}
	t.source = a
	return nil
}

// DestroyAtlas releases the texture and its view.
func (u *Uploader) DestroyAtlas(t *AtlasTexture) {
	if t == nil {
		return
	}
	if t.View != nil {
		u.device.DestroyTextureView(t.View)
		t.View = nil
	}
	if t.Texture != nil {
		u.device.DestroyTexture(t.Texture)
		t.Texture = nil
	}
}

// UploadMesh creates vertex and index buffers for m.
func (u *Uploader) UploadMesh(m *layout.Mesh) (*MeshBuffers, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptyMesh
	}
	vb, err := u.createBuffer("text_vertices", m.VertexBytes(), gputypes.BufferUsageVertex)
	if err != nil {
		return nil, err
	}
	ib, err := u.createBuffer("text_indices", m.IndexBytes(), gputypes.BufferUsageIndex)
	if err != nil {
		u.device.DestroyBuffer(vb)
		return nil, err
	}
	return &MeshBuffers{
		Vertex:      vb,
		Index:       ib,
		IndexCount:  uint32(m.IndexCount()),
		IndexFormat: m.IndexFormat(),
	}, nil
}

// createBuffer creates a buffer padded to a multiple of 4 bytes, as queue
// writes require, and fills it with data.
func (u *Uploader) createBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	if pad := len(data) % 4; pad != 0 {
		data = append(data[:len(data):len(data)], make([]byte, 4-pad)...)
	}
	buf, err := u.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	if err := u.queue.WriteBuffer(buf, 0, data); err != nil {
		u.device.DestroyBuffer(buf)
		return nil, fmt.Errorf("gpu: write %s: %w", label, err)
	}
	return buf, nil
}

// DestroyMesh releases the buffers.
func (u *Uploader) DestroyMesh(b *MeshBuffers) {
	if b == nil {
		return
	}
	if b.Vertex != nil {
		u.device.DestroyBuffer(b.Vertex)
		b.Vertex = nil
	}
	if b.Index != nil {
		u.device.DestroyBuffer(b.Index)
		b.Index = nil
	}
}

// UpdateTexture writes a's pixels into a texture owned by a host
// application, such as one created through gpucontext.
func UpdateTexture(tex any, a *atlas.Atlas) error {
	if a == nil {
		return ErrNilAtlas
	}
	updater, ok := tex.(gpucontext.TextureUpdater)
	if !ok {
		return ErrNotUpdatable
	}
	if err := updater.UpdateData(a.Pixels()); err != nil {
		return fmt.Errorf("gpu: texture update failed: %w", err)
	}
	return nil
}
