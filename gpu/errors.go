// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "errors"

var (
	// ErrNilAtlas is returned when uploading a nil atlas.
	ErrNilAtlas = errors.New("gpu: nil atlas")

	// ErrEmptyMesh is returned when uploading a mesh without quads.
	ErrEmptyMesh = errors.New("gpu: empty mesh")

	// ErrSizeMismatch is returned when updating a texture with an atlas of
	// a different size.
	ErrSizeMismatch = errors.New("gpu: atlas size does not match texture")

	// ErrNotUpdatable is returned by UpdateTexture for textures that do not
	// implement gpucontext.TextureUpdater.
	ErrNotUpdatable = errors.New("gpu: texture does not support data updates")
)
