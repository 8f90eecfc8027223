package shader

import _ "embed"

var (
	//go:embed assets/mesh.wgsl
	meshSource string

	//go:embed assets/pbr.wgsl
	pbrSource string

	//go:embed assets/output.wgsl
	outputSource string

	//go:embed assets/fullscreen.wgsl
	fullscreenSource string
)

// StandardSource is the fragment shader of the engine's StandardMaterial. It is
// used for any material whose shader reference is empty.
//
//go:embed assets/standard.wgsl
var StandardSource string

// DepthPrepassSource is the vertex-only shader used for prepasses that write depth alone.
//
//go:embed assets/depth_prepass.wgsl
var DepthPrepassSource string

// DeferredLightingSource shades the G-buffer into the HDR target.
//
//go:embed assets/deferred_lighting.wgsl
var DeferredLightingSource string

// TonemapSource maps the HDR target into the display range.
//
//go:embed assets/tonemap.wgsl
var TonemapSource string

// FxaaSource is the fast approximate anti-aliasing pass.
//
//go:embed assets/fxaa.wgsl
var FxaaSource string
