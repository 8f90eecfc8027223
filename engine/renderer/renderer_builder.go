package renderer

import (
	"log"

	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.pendingPresentMode = &mode
	}
}

// WithAssets sets the asset server material shaders are loaded from. Shader
// assets reloaded by the server evict their pipelines.
//
// Parameters:
//   - server: the asset server
//
// Returns:
//   - RendererBuilderOption: a function that applies the asset option to a renderer
func WithAssets(server asset.Server) RendererBuilderOption {
	return func(r *renderer) {
		r.assets = server
	}
}

// WithPreProcessor replaces the shader preprocessor, e.g. to register extra import modules.
func WithPreProcessor(pp shader.PreProcessor) RendererBuilderOption {
	return func(r *renderer) {
		r.pp = pp
	}
}

// WithLogger sets the logger pipeline errors and shader reloads are reported to.
//
// Parameters:
//   - l: the logger, log.Default() when not set
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(l *log.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = l
	}
}

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}
