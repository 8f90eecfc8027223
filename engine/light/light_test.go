package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

func f32At(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestNewPointLightDefaults(t *testing.T) {
	l := NewPointLight()
	assert.True(t, l.Enabled())
	assert.False(t, l.ShadowsEnabled())
	assert.Equal(t, float32(DefaultRange), l.Range())
}

func TestGPUPointLightScalesColorByCandela(t *testing.T) {
	l := NewPointLight(
		WithIntensity(4*math.Pi),
		WithColor(common.RGB(1, 1, 1)),
		WithRadius(1),
		WithPosition(common.Vec3{1, 2, 3}),
	)
	g := NewGPUPointLight(l)
	assert.InDelta(t, 1, g.Color[0], 1e-5)
	assert.Equal(t, [3]float32{1, 2, 3}, g.Position)
	assert.Equal(t, float32(1), g.Radius)
}

func TestMarshalLightsSkipsDisabled(t *testing.T) {
	on := NewPointLight(WithPosition(common.Vec3{1, 0, 0}))
	off := NewPointLight(WithEnabled(false))
	buf, n := MarshalLights(common.Vec3{0.1, 0.2, 0.3}, []Light{off, on, nil})
	require.Len(t, buf, GPULightsSize)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[12:]))
	assert.InDelta(t, 0.2, f32At(buf, 4), 1e-6)
	assert.Equal(t, float32(1), f32At(buf, GPULightsHeaderSize))
}

func TestMarshalLightsCapsAtCapacity(t *testing.T) {
	lights := make([]Light, MaxGPULights+10)
	for i := range lights {
		lights[i] = NewPointLight()
	}
	_, n := MarshalLights(common.Vec3{}, lights)
	assert.Equal(t, MaxGPULights, n)
}
