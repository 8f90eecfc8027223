package model

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// GPUVertexSource is the WGSL vertex input struct, imported by shaders as oxy::vertex.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertexSize is the stride of one vertex in the vertex buffer.
const GPUVertexSize = 32

// GPUVertex is one interleaved mesh vertex.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	UV       [2]float32 // offset 24
}

// MarshalVertices packs vertices into little-endian bytes.
//
// Parameters:
//   - vs: the vertices to pack
//
// Returns:
//   - []byte: len(vs) * GPUVertexSize bytes
func MarshalVertices(vs []GPUVertex) []byte {
	buf := make([]byte, len(vs)*GPUVertexSize)
	for i, v := range vs {
		off := i * GPUVertexSize
		fs := [8]float32{v.Position[0], v.Position[1], v.Position[2], v.Normal[0], v.Normal[1], v.Normal[2], v.UV[0], v.UV[1]}
		for j, f := range fs {
			binary.LittleEndian.PutUint32(buf[off+j*4:], math.Float32bits(f))
		}
	}
	return buf
}

// MarshalIndices packs 32-bit indices into little-endian bytes.
func MarshalIndices(is []uint32) []byte {
	buf := make([]byte, len(is)*4)
	for i, idx := range is {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// VertexBufferLayout describes GPUVertex to a render pipeline.
//
// Returns:
//   - wgpu.VertexBufferLayout: layout for vertex buffer slot 0
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}
