// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpu hands atlases and text meshes to a WebGPU HAL device.
//
// Uploader creates one RGBA8Unorm texture per atlas and one vertex/index
// buffer pair per mesh. The embedded WGSL shader samples the MTSDF atlas
// and reconstructs glyph coverage from the median of the color channels.
// Clip space is Y up, which is what layout.Layout produces.
//
// Build with the nogpu tag to exclude the HAL-backed code.
package gpu
