// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
)

//go:embed shaders/msdf_text.wgsl
var msdfTextShaderSource string

// UniformSize is the size of the text uniform block in bytes.
const UniformSize = 32

// ShaderSource returns the WGSL source of the MSDF text shader. Entry
// points are vs_main and fs_main.
func ShaderSource() string { return msdfTextShaderSource }

// CompileShader compiles the text shader to SPIR-V.
func CompileShader() ([]byte, error) {
	spirv, err := naga.Compile(msdfTextShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile msdf text shader: %w", err)
	}
	return spirv, nil
}

// TextUniforms encodes the uniform block: the premultiplied color followed
// by the distance range in screen pixels. For quads drawn at the atlas
// scale that is atlas.PixelRange(); zoomed text multiplies it by the zoom.
// Values below 1 are raised to 1.
func TextUniforms(color [4]float32, screenPxRange float32) []byte {
	buf := make([]byte, UniformSize)
	a := color[3]
	premul := [4]float32{color[0] * a, color[1] * a, color[2] * a, a}
	for i, v := range premul {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	binary.LittleEndian.PutUint32(buf[16:], math.Float32bits(max(screenPxRange, 1)))
	return buf
}
