package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

func TestStandardMaterialDefaults(t *testing.T) {
	m := NewStandardMaterial(WithBaseColor(common.RGB(0.1, 0.1, 0.1)))
	assert.Equal(t, float32(0), m.Metallic())
	assert.Equal(t, float32(0.5), m.Roughness())
	assert.Equal(t, OpaqueDefault, m.OpaqueMethod())
	assert.True(t, ShaderFor(m, PassMain).IsDefault())
	assert.True(t, ShaderFor(m, PassPrepass).IsDefault())

	b := m.Bindings()
	require.Len(t, b, 1)
	assert.Equal(t, BindingUniform, b[0].Kind)
	require.Len(t, b[0].Data, StandardUniformSize)
	r := math.Float32frombits(binary.LittleEndian.Uint32(b[0].Data[0:]))
	assert.InDelta(t, 0.01, r, 1e-3)
	rough := math.Float32frombits(binary.LittleEndian.Uint32(b[0].Data[36:]))
	assert.Equal(t, float32(0.5), rough)
}

func TestStandardMaterialClamps(t *testing.T) {
	m := NewStandardMaterial(WithMetallic(3), WithRoughness(0))
	assert.Equal(t, float32(1), m.Metallic())
	assert.Equal(t, float32(0.089), m.Roughness())
}

func TestRegistrySharesInstances(t *testing.T) {
	r := NewRegistry()
	m := NewStandardMaterial(WithName("ground"))
	h := r.Add(m)
	other := r.Add(NewStandardMaterial(WithName("other")))

	assert.True(t, h.IsValid())
	assert.NotEqual(t, h, other)
	assert.False(t, Handle{}.IsValid())

	got, ok := r.Get(h)
	require.True(t, ok)
	assert.Same(t, m, got)

	var names []string
	r.Each(func(_ Handle, m Material) { names = append(names, m.Name()) })
	assert.Equal(t, []string{"ground", "other"}, names)

	r.Remove(h)
	_, ok = r.Get(h)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())
}
