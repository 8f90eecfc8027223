package material

import "github.com/Carmen-Shannon/oxy-orbs/common"

// Pass identifies which render pass asks a material for its shader.
type Pass int

const (
	// PassMain is the forward opaque pass.
	PassMain Pass = iota
	// PassPrepass writes depth, normals, motion vectors and, for deferred materials,
	// the G-buffer before the main pass.
	PassPrepass
)

func (p Pass) String() string {
	switch p {
	case PassMain:
		return "main"
	case PassPrepass:
		return "prepass"
	default:
		return "unknown"
	}
}

// ShaderRef names a WGSL asset relative to the asset root. The empty ref selects
// the engine's built-in standard shader.
type ShaderRef string

// DefaultShader selects the built-in shader.
const DefaultShader ShaderRef = ""

// IsDefault reports whether the ref selects the built-in shader.
func (s ShaderRef) IsDefault() bool { return s == DefaultShader }

// OpaqueMethod selects how a material's opaque surfaces are lit.
type OpaqueMethod int

const (
	// OpaqueDefault follows the renderer's default opaque method.
	OpaqueDefault OpaqueMethod = iota
	// OpaqueDeferred writes the G-buffer when the camera has a deferred prepass.
	OpaqueDeferred
	// OpaqueForward always shades in the main pass.
	OpaqueForward
)

func (m OpaqueMethod) String() string {
	switch m {
	case OpaqueDefault:
		return "default"
	case OpaqueDeferred:
		return "deferred"
	case OpaqueForward:
		return "forward"
	default:
		return "unknown"
	}
}

// BindingKind is the resource type of a material binding.
type BindingKind int

const (
	BindingUniform BindingKind = iota
	BindingTexture
	BindingSampler
)

// TextureSource yields pixel data once it is available. Asset handles implement it.
type TextureSource interface {
	// Staging returns the current pixels. ok is false while the data is not loaded,
	// in which case the renderer binds a 1x1 fallback.
	Staging() (data common.TextureStagingData, ok bool)
}

// Binding is one entry of a material's bind group (group 2 in every material shader).
type Binding struct {
	Index   uint32
	Kind    BindingKind
	Data    []byte
	Texture TextureSource
	Sampler common.SamplerStagingData
}

// Material describes how a mesh is shaded. Materials are plain descriptors: the
// renderer turns their shaders and bindings into pipelines and bind groups.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// FragmentShader returns the shader used in the main pass.
	//
	// Returns:
	//   - ShaderRef: the main pass shader, DefaultShader for the built-in one
	FragmentShader() ShaderRef

	// PrepassFragmentShader returns the shader used in the prepass.
	//
	// Returns:
	//   - ShaderRef: the prepass shader, DefaultShader for the built-in one
	PrepassFragmentShader() ShaderRef

	// OpaqueMethod returns the material's lighting method override.
	OpaqueMethod() OpaqueMethod

	// Bindings returns the resources bound at group 2, ordered by Index.
	//
	// Returns:
	//   - []Binding: the material bindings
	Bindings() []Binding
}

// ShaderFor returns the shader a material uses in the given pass.
//
// Parameters:
//   - m: the material
//   - pass: the requesting pass
//
// Returns:
//   - ShaderRef: the shader for that pass
func ShaderFor(m Material, pass Pass) ShaderRef {
	if pass == PassPrepass {
		return m.PrepassFragmentShader()
	}
	return m.FragmentShader()
}
