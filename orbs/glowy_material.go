package orbs

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
)

// DefaultGlowShader is the asset path of the glow shader.
const DefaultGlowShader material.ShaderRef = "shaders/glowy.wgsl"

// GlowyMaterial shades the orbs with an emissive reflection of an environment
// map. The same shader runs in the main pass and the prepass, so the orbs write
// the G-buffer themselves when rendered deferred.
type GlowyMaterial struct {
	shader material.ShaderRef
	env    material.TextureSource
}

var _ material.Material = &GlowyMaterial{}

// NewGlowyMaterial creates the glow material.
//
// Parameters:
//   - shader: the shader asset path, DefaultGlowShader when empty
//   - env: the equirectangular environment texture, nil binds a black fallback
//
// Returns:
//   - *GlowyMaterial: the material
func NewGlowyMaterial(shader material.ShaderRef, env material.TextureSource) *GlowyMaterial {
	return &GlowyMaterial{
		shader: common.Coalesce(shader, DefaultGlowShader),
		env:    env,
	}
}

func (m *GlowyMaterial) Name() string { return "glowy" }

func (m *GlowyMaterial) FragmentShader() material.ShaderRef { return m.shader }

func (m *GlowyMaterial) PrepassFragmentShader() material.ShaderRef { return m.shader }

func (m *GlowyMaterial) OpaqueMethod() material.OpaqueMethod { return material.OpaqueDefault }

// Environment returns the environment texture, or nil.
func (m *GlowyMaterial) Environment() material.TextureSource { return m.env }

// Bindings binds the environment texture at 0 and its sampler at 1.
func (m *GlowyMaterial) Bindings() []material.Binding {
	return []material.Binding{
		{Index: 0, Kind: material.BindingTexture, Texture: m.env},
		{Index: 1, Kind: material.BindingSampler, Sampler: common.LinearRepeatSampler()},
	}
}
