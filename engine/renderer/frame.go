package renderer

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

// DrawItem is one visible mesh of a frame.
type DrawItem struct {
	// ObjectID keys the per-object GPU resources.
	ObjectID uint64
	Model    model.Model
	Material material.Material
	// MaterialHandle keys the per-material GPU resources.
	MaterialHandle material.Handle
	World          [16]float32
}

// FrameView is everything the renderer needs for one frame, extracted from the
// scene so rendering never touches scene objects directly.
type FrameView struct {
	View       camera.GPUView
	Prepasses  camera.Prepass
	HDR        bool
	Fxaa       bool
	Method     rendermode.Method
	ClearColor common.Color
	Ambient    common.Vec3
	Lights     []light.Light
	Draws      []DrawItem
}
