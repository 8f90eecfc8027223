package scene

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/game_object"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithObjects adds initial objects to the scene.
// Objects without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.add(obj)
		}
	}
}

// WithCamera adds a camera. The first camera becomes the primary camera.
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		if cam != nil {
			s.cameras = append(s.cameras, cam)
		}
	}
}

// WithRenderer attaches the renderer the scene is drawn with.
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.renderer = r
	}
}

// WithAssets attaches the asset server scene content is loaded from.
func WithAssets(server asset.Server) SceneBuilderOption {
	return func(s *scene) {
		s.assets = server
	}
}

// WithMaterials shares a material registry instead of creating one per scene.
//
// Parameters:
//   - reg: the registry
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithMaterials(reg material.Registry) SceneBuilderOption {
	return func(s *scene) {
		if reg != nil {
			s.materials = reg
		}
	}
}

// WithSettings shares renderer settings, e.g. with a rendermode.Controller.
//
// Parameters:
//   - settings: the settings holding the default opaque method
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithSettings(settings rendermode.Settings) SceneBuilderOption {
	return func(s *scene) {
		if settings != nil {
			s.settings = settings
		}
	}
}

// WithAmbient sets the ambient light colour in linear RGB.
func WithAmbient(c common.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.ambient = c
	}
}

// WithClearColor sets the background colour.
func WithClearColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

// WithCullingDisabled disables frustum culling for the scene. By default culling
// is enabled (disabled = false).
//
// Parameters:
//   - disabled: true to disable frustum culling, false to enable it (default)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCullingDisabled(disabled bool) SceneBuilderOption {
	return func(s *scene) {
		s.cullingDisabled = disabled
	}
}
