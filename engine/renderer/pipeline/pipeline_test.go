package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepassTargetsOrder(t *testing.T) {
	assert.Empty(t, PrepassTargets(camera.PrepassDepth))
	assert.Equal(t,
		[]PrepassTarget{TargetMotionVector, TargetGBuffer0, TargetGBuffer1, TargetGBuffer2},
		PrepassTargets(camera.PrepassDepth|camera.PrepassMotionVector|camera.PrepassDeferred))
	assert.Equal(t,
		[]PrepassTarget{TargetNormal, TargetMotionVector},
		PrepassTargets(camera.PrepassNormal|camera.PrepassMotionVector))
	assert.Equal(t, wgpu.TextureFormatRG16Float, TargetMotionVector.Format())
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, TargetGBuffer1.Format())
}

func TestKeyDefs(t *testing.T) {
	main := Key{Shader: "shaders/glowy.wgsl", Pass: material.PassMain, Prepass: camera.PrepassDepth, HDR: true}
	assert.Equal(t, "HDR", main.Defs().String())

	pre := Key{
		Shader:   "shaders/glowy.wgsl",
		Pass:     material.PassPrepass,
		Prepass:  camera.PrepassDepth | camera.PrepassMotionVector | camera.PrepassDeferred,
		Deferred: true,
	}
	defs := pre.Defs()
	assert.True(t, defs.Has("PREPASS_PIPELINE"))
	assert.True(t, defs.Has("PREPASS_FRAGMENT"))
	assert.True(t, defs.Has("DEPTH_PREPASS"))
	assert.True(t, defs.Has("DEFERRED_MATERIAL"))
	assert.False(t, defs.Has("NORMAL_PREPASS"))
	assert.Equal(t, "0", defs["MOTION_VECTOR_LOCATION"])
	assert.Equal(t, "1", defs["DEFERRED_LOCATION_0"])
	assert.Equal(t, "3", defs["DEFERRED_LOCATION_2"])

	depthOnly := Key{Pass: material.PassPrepass, Prepass: camera.PrepassDepth}.Defs()
	assert.False(t, depthOnly.Has("PREPASS_FRAGMENT"))
}

func TestKeyString(t *testing.T) {
	k := Key{Pass: material.PassPrepass, Prepass: camera.PrepassDepth | camera.PrepassDeferred, HDR: true, Deferred: true}
	assert.Equal(t, "standard/prepass[Depth|Deferred]/hdr/deferred", k.String())
	assert.Equal(t, "shaders/glowy.wgsl/main", Key{Shader: "shaders/glowy.wgsl"}.String())
}

func TestPrepassDefsCompileAgainstStandardShader(t *testing.T) {
	k := Key{Pass: material.PassPrepass, Prepass: camera.PrepassDepth | camera.PrepassNormal | camera.PrepassMotionVector | camera.PrepassDeferred}
	s, err := shader.NewShader(k.String(), shader.StandardSource, k.Defs(), nil)
	require.NoError(t, err)
	assert.Contains(t, s.Source(), "@location(0) normal: vec4<f32>")
	assert.Contains(t, s.Source(), "@location(1) motion_vector: vec2<f32>")
	assert.Contains(t, s.Source(), "@location(4) gbuffer2: vec4<f32>")
	assert.Contains(t, s.Source(), "out.gbuffer2 = vec4<f32>(0.0);")
}

func TestPipelineDefaults(t *testing.T) {
	mesh := NewPipeline(Key{}, KindMesh, nil, WithColorFormats(wgpu.TextureFormatRGBA16Float))
	assert.True(t, mesh.DepthTestEnabled())
	assert.Equal(t, wgpu.CompareFunctionLess, mesh.DepthCompare())
	assert.Equal(t, wgpu.TextureFormatDepth32Float, mesh.DepthFormat())
	assert.Equal(t, wgpu.CullModeBack, mesh.CullMode())
	assert.Equal(t, []wgpu.TextureFormat{wgpu.TextureFormatRGBA16Float}, mesh.ColorFormats())
	assert.Nil(t, mesh.BlendState())

	fs := NewPipeline(Key{Shader: "oxy::tonemap"}, KindFullscreen, nil)
	assert.False(t, fs.DepthTestEnabled())
	assert.Equal(t, wgpu.CompareFunctionAlways, fs.DepthCompare())
	assert.Equal(t, wgpu.TextureFormatUndefined, fs.DepthFormat())
	assert.Equal(t, wgpu.CullModeNone, fs.CullMode())

	later := NewPipeline(Key{}, KindMesh, nil, WithDepthCompare(wgpu.CompareFunctionLessEqual), WithDepthWriteEnabled(false))
	assert.Equal(t, wgpu.CompareFunctionLessEqual, later.DepthCompare())
	assert.False(t, later.DepthWriteEnabled())
}

func TestCacheEvictsByShader(t *testing.T) {
	c := NewCache()
	glowMain := NewPipeline(Key{Shader: "shaders/glowy.wgsl", Pass: material.PassMain}, KindMesh, nil)
	glowPre := NewPipeline(Key{Shader: "shaders/glowy.wgsl", Pass: material.PassPrepass, Prepass: camera.PrepassDepth}, KindMesh, nil)
	std := NewPipeline(Key{Pass: material.PassMain}, KindMesh, nil)
	c.Put(glowMain)
	c.Put(glowPre)
	c.Put(std)
	require.Equal(t, 3, c.Len())

	got, ok := c.Get(Key{Shader: "shaders/glowy.wgsl", Pass: material.PassMain})
	require.True(t, ok)
	assert.Same(t, glowMain, got)

	assert.Equal(t, 2, c.Evict("shaders/glowy.wgsl"))
	assert.Equal(t, 1, c.Len())
	_, ok = c.Get(glowMain.Key())
	assert.False(t, ok)
	assert.Equal(t, []Key{std.Key()}, c.Keys())

	c.Clear()
	assert.Zero(t, c.Len())
}
