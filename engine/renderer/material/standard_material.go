package material

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// StandardUniformSize is the byte size of the standard material uniform.
const StandardUniformSize = 48

type standardMaterial struct {
	mu *sync.Mutex

	name      string
	baseColor common.Color
	emissive  common.Color
	metallic  float32
	roughness float32
	method    OpaqueMethod
}

// StandardMaterial is the built-in metallic/roughness material.
type StandardMaterial interface {
	Material

	// BaseColor returns the authored sRGB albedo.
	BaseColor() common.Color

	// Emissive returns the authored sRGB emission.
	Emissive() common.Color

	// Metallic returns the metallic factor in [0, 1].
	Metallic() float32

	// Roughness returns the perceptual roughness in [0, 1].
	Roughness() float32
}

var _ StandardMaterial = &standardMaterial{}

// NewStandardMaterial creates a white dielectric with roughness 0.5.
//
// Parameters:
//   - options: functional options to configure the material
//
// Returns:
//   - StandardMaterial: the newly created material
func NewStandardMaterial(options ...StandardMaterialOption) StandardMaterial {
	m := &standardMaterial{
		mu:        &sync.Mutex{},
		name:      "standard",
		baseColor: common.RGB(1, 1, 1),
		emissive:  common.Black,
		roughness: 0.5,
	}
	for _, option := range options {
		option(m)
	}
	return m
}

func (m *standardMaterial) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *standardMaterial) FragmentShader() ShaderRef        { return DefaultShader }
func (m *standardMaterial) PrepassFragmentShader() ShaderRef { return DefaultShader }

func (m *standardMaterial) OpaqueMethod() OpaqueMethod {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.method
}

func (m *standardMaterial) BaseColor() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.baseColor
}

func (m *standardMaterial) Emissive() common.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emissive
}

func (m *standardMaterial) Metallic() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metallic
}

func (m *standardMaterial) Roughness() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roughness
}

// Bindings exposes one uniform: linear base colour, linear emissive, metallic, roughness.
func (m *standardMaterial) Bindings() []Binding {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, StandardUniformSize)
	vals := make([]float32, 0, 10)
	base := m.baseColor.Linear()
	emissive := m.emissive.Linear()
	vals = append(vals, base[:]...)
	vals = append(vals, emissive[:]...)
	vals = append(vals, m.metallic, m.roughness)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return []Binding{{Index: 0, Kind: BindingUniform, Data: buf}}
}

// StandardMaterialOption configures a StandardMaterial.
type StandardMaterialOption func(*standardMaterial)

// WithName sets the material name.
func WithName(name string) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.name = name
	}
}

// WithBaseColor sets the sRGB albedo.
//
// Parameters:
//   - c: the albedo
//
// Returns:
//   - StandardMaterialOption: a function that sets the base colour
func WithBaseColor(c common.Color) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.baseColor = c
	}
}

// WithEmissive sets the sRGB emission.
func WithEmissive(c common.Color) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.emissive = c
	}
}

// WithMetallic sets the metallic factor, clamped to [0, 1].
func WithMetallic(v float32) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.metallic = min(max(v, 0), 1)
	}
}

// WithRoughness sets the perceptual roughness, clamped to [0.089, 1].
func WithRoughness(v float32) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.roughness = min(max(v, 0.089), 1)
	}
}

// WithOpaqueMethod overrides the renderer's default opaque method for this material.
func WithOpaqueMethod(method OpaqueMethod) StandardMaterialOption {
	return func(m *standardMaterial) {
		m.method = method
	}
}
