package orbs

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/config"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
	"github.com/Carmen-Shannon/oxy-orbs/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupPopulatesScene(t *testing.T) {
	sc := scene.NewScene("orbs")
	h := Setup(sc, nil)

	// ground + twelve orbs
	assert.Equal(t, 13, sc.Count())
	require.Len(t, h.Orbs, len(Locations))
	assert.Len(t, sc.Lights(), len(Locations))

	for i, orb := range h.Orbs {
		assert.Equal(t, Locations[i], orb.Position())
		assert.Equal(t, h.Material, orb.Material())

		l := orb.Light()
		require.NotNil(t, l, "orb %d has no light", i)
		assert.Equal(t, float32(LightIntensity), l.Intensity())
		assert.Equal(t, float32(LightRadius), l.Radius())
		assert.Equal(t, LightColor, l.Color())
		assert.Equal(t, orb.Position(), orb.LightWorldPosition())
	}

	require.NotNil(t, h.Ground.Model())
	assert.Equal(t, 4, h.Ground.Model().VertexCount())
	assert.Equal(t, 6, h.Ground.Model().IndexCount())
	assert.Equal(t, float32(GroundSize), h.Ground.Model().Shape().(model.Plane).Size)

	assert.NotEqual(t, h.Material, h.Ground.Material())
	ground, ok := sc.Materials().Get(h.Ground.Material())
	require.True(t, ok)
	assert.Equal(t, material.DefaultShader, material.ShaderFor(ground, material.PassMain))
}

func TestOrbsShareOneMaterialInstance(t *testing.T) {
	sc := scene.NewScene("orbs")
	h := Setup(sc, nil)

	first, ok := sc.Materials().Get(h.Orbs[0].Material())
	require.True(t, ok)
	for _, orb := range h.Orbs[1:] {
		m, ok := sc.Materials().Get(orb.Material())
		require.True(t, ok)
		assert.Same(t, first, m)
	}
	assert.Same(t, h.Glowy, first)
}

func TestGlowyMaterialUsesOneShaderForBothPasses(t *testing.T) {
	m := NewGlowyMaterial("", nil)
	assert.Equal(t, DefaultGlowShader, material.ShaderFor(m, material.PassMain))
	assert.Equal(t, material.ShaderFor(m, material.PassMain), material.ShaderFor(m, material.PassPrepass))
	assert.Equal(t, material.OpaqueDefault, m.OpaqueMethod())

	b := m.Bindings()
	require.Len(t, b, 2)
	assert.Equal(t, material.BindingTexture, b[0].Kind)
	assert.Equal(t, uint32(0), b[0].Index)
	assert.Equal(t, material.BindingSampler, b[1].Kind)
	assert.Equal(t, uint32(1), b[1].Index)

	custom := NewGlowyMaterial("shaders/other.wgsl", nil)
	assert.Equal(t, material.ShaderRef("shaders/other.wgsl"), material.ShaderFor(custom, material.PassPrepass))
}

func TestSetupCamera(t *testing.T) {
	sc := scene.NewScene("orbs")
	h := Setup(sc, nil)

	assert.Same(t, h.Camera, sc.Camera())
	assert.True(t, h.Camera.HDR())
	assert.True(t, h.Camera.Fxaa())
	assert.Equal(t, camera.PrepassDepth|camera.PrepassMotionVector|camera.PrepassDeferred, h.Camera.Prepasses())

	ctrl := h.Camera.Controller()
	require.NotNil(t, ctrl)
	assert.True(t, ctrl.OrbitMode())
	assert.Equal(t, CameraFocus, ctrl.Target())
	pos := h.Camera.Position()
	for i := range pos {
		assert.InDelta(t, CameraPosition[i], pos[i], 1e-4)
	}
}

func TestSetupRequestsEnvironmentWithoutBlocking(t *testing.T) {
	var logs bytes.Buffer
	server := asset.NewServer(t.TempDir(), asset.WithLogger(log.New(&logs, "", 0)))
	sc := scene.NewScene("orbs")

	h := Setup(sc, server, WithEnvironmentMap("textures/missing.hdr"))
	require.NotNil(t, h.Glowy.Environment())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, server.WaitIdle(ctx))

	handle, ok := server.Get("textures/missing.hdr")
	require.True(t, ok)
	assert.Error(t, handle.Err())
	_, loaded := h.Glowy.Environment().Staging()
	assert.False(t, loaded)
	assert.Equal(t, 13, sc.Count())
}

func TestBindingsToggleRenderMode(t *testing.T) {
	var out bytes.Buffer
	sc := scene.NewScene("orbs")
	h := Setup(sc, nil)
	ctrl := Bindings(sc, config.Default().Input, log.New(&out, "", 0))
	kb := input.NewKeyboard()

	kb.Press(common.Key2)
	kb.Sync()
	ctrl.Update(kb)
	assert.Equal(t, rendermode.Forward, sc.Settings().Method())
	assert.Equal(t, camera.PrepassNone, h.Camera.Prepasses())

	// held key does not fire again
	kb.Sync()
	ctrl.Update(kb)
	kb.Release(common.Key2)

	kb.Press(common.Key1)
	kb.Sync()
	ctrl.Update(kb)
	assert.Equal(t, rendermode.Deferred, sc.Settings().Method())
	assert.True(t, h.Camera.HasPrepass(camera.PrepassDeferred))

	assert.Equal(t, "DefaultOpaqueRendererMethod: Forward\nDefaultOpaqueRendererMethod: Deferred\n", out.String())
}

func TestBindingsBothKeysForwardWins(t *testing.T) {
	var out bytes.Buffer
	sc := scene.NewScene("orbs")
	Setup(sc, nil)
	ctrl := Bindings(sc, config.Default().Input, log.New(&out, "", 0))
	kb := input.NewKeyboard()

	kb.Press(common.Key1)
	kb.Press(common.Key2)
	kb.Sync()
	ctrl.Update(kb)

	assert.Equal(t, rendermode.Forward, sc.Settings().Method())
	assert.Equal(t, "DefaultOpaqueRendererMethod: Deferred\nDefaultOpaqueRendererMethod: Forward\n", out.String())
}
