package light

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// MaxGPULights is the capacity of the light uniform array.
const MaxGPULights = 256

// GPUPointLightSize is the byte size of one GPUPointLight.
const GPUPointLightSize = 32

// GPULightsHeaderSize is the byte size of the header before the light array.
const GPULightsHeaderSize = 16

// GPULightsSize is the byte size of the whole Lights uniform.
const GPULightsSize = GPULightsHeaderSize + MaxGPULights*GPUPointLightSize

// GPULightsSource is the WGSL declaration of PointLight and Lights, imported as oxy::lights.
//
//go:embed assets/lights.wgsl
var GPULightsSource string

// GPUPointLight is one light as the shaders see it. Color is linear RGB already
// multiplied by the light's luminous intensity.
type GPUPointLight struct {
	Position [3]float32 // offset  0
	Range    float32    // offset 12
	Color    [3]float32 // offset 16
	Radius   float32    // offset 28
}

// NewGPUPointLight converts a light for upload. Lumens become luminous intensity in
// candela by spreading the power over the full sphere.
//
// Parameters:
//   - l: the light to convert
//
// Returns:
//   - GPUPointLight: the shader representation
func NewGPUPointLight(l Light) GPUPointLight {
	candela := l.Intensity() / (4 * math32.Pi)
	c := l.Color().LinearRGB().Scale(candela)
	return GPUPointLight{
		Position: l.Position(),
		Range:    l.Range(),
		Color:    c,
		Radius:   l.Radius(),
	}
}

// MarshalLights packs the enabled lights, up to MaxGPULights, behind a header
// holding the ambient colour and the count.
//
// Parameters:
//   - ambient: linear ambient colour
//   - lights: the scene's lights
//
// Returns:
//   - []byte: GPULightsSize bytes
//   - int: number of lights written
func MarshalLights(ambient common.Vec3, lights []Light) ([]byte, int) {
	buf := make([]byte, GPULightsSize)
	putF := func(off int, v float32) { binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v)) }

	n := 0
	for _, l := range lights {
		if n == MaxGPULights {
			break
		}
		if l == nil || !l.Enabled() {
			continue
		}
		g := NewGPUPointLight(l)
		off := GPULightsHeaderSize + n*GPUPointLightSize
		for i := range 3 {
			putF(off+i*4, g.Position[i])
			putF(off+16+i*4, g.Color[i])
		}
		putF(off+12, g.Range)
		putF(off+28, g.Radius)
		n++
	}

	for i := range 3 {
		putF(i*4, ambient[i])
	}
	binary.LittleEndian.PutUint32(buf[12:], uint32(n))
	return buf, n
}
