package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPUViewSource is the WGSL declaration of the View uniform, imported by shaders as oxy::view.
//
//go:embed assets/view.wgsl
var GPUViewSource string

// GPUViewSize is the byte size of GPUView.
const GPUViewSize = 224

// GPUView is the per-camera uniform shared by every pass of a frame.
type GPUView struct {
	ViewProj        [16]float32 // offset   0
	InverseViewProj [16]float32 // offset  64
	PrevViewProj    [16]float32 // offset 128
	WorldPosition   [3]float32  // offset 192
	Exposure        float32     // offset 204
	Viewport        [4]float32  // offset 208: x, y, width, height
}

// NewGPUView captures a camera's current matrices for upload.
//
// Parameters:
//   - c: the camera to read
//   - width, height: target size in pixels
//
// Returns:
//   - GPUView: the uniform contents
func NewGPUView(c Camera, width, height uint32) GPUView {
	pos := c.Position()
	return GPUView{
		ViewProj:        c.ViewProjectionMatrix(),
		InverseViewProj: c.InverseViewProjectionMatrix(),
		PrevViewProj:    c.PreviousViewProjectionMatrix(),
		WorldPosition:   pos,
		Exposure:        c.Exposure(),
		Viewport:        [4]float32{0, 0, float32(width), float32(height)},
	}
}

// Marshal serializes the uniform into little-endian bytes.
//
// Returns:
//   - []byte: GPUViewSize bytes
func (g *GPUView) Marshal() []byte {
	buf := make([]byte, GPUViewSize)
	put := func(off int, vs []float32) {
		for i, v := range vs {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v))
		}
	}
	put(0, g.ViewProj[:])
	put(64, g.InverseViewProj[:])
	put(128, g.PrevViewProj[:])
	put(192, g.WorldPosition[:])
	put(204, []float32{g.Exposure})
	put(208, g.Viewport[:])
	return buf
}
