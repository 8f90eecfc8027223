package game_object

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject.
type GameObjectBuilderOption func(*gameObject)

// WithName sets the debug name.
func WithName(name string) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.name = name
	}
}

// WithEnabled sets whether the node starts enabled.
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.enabled.Store(enabled)
	}
}

// WithModel sets the mesh.
//
// Parameters:
//   - m: the model to draw
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mdl = m
	}
}

// WithMaterial sets the material handle the mesh is drawn with.
//
// Parameters:
//   - h: a handle from the scene's material registry
//
// Returns:
//   - GameObjectBuilderOption: a function that sets the material
func WithMaterial(h material.Handle) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.mat = h
	}
}

// WithPosition sets the world-space translation.
func WithPosition(p common.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.position = p
	}
}

// WithScale sets the per-axis scale.
func WithScale(s common.Vec3) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.scale = s
	}
}

// WithLight attaches a child light at the node's origin.
//
// Parameters:
//   - l: the light to attach
//
// Returns:
//   - GameObjectBuilderOption: a function that attaches the light
func WithLight(l light.Light) GameObjectBuilderOption {
	return func(g *gameObject) {
		g.attachedLight = l
		g.lightOffset = common.Vec3{}
	}
}
