package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
)

type gameObject struct {
	mu *sync.Mutex

	id       uint64
	name     string
	enabled  atomic.Bool
	mdl      model.Model
	mat      material.Handle
	position common.Vec3
	scale    common.Vec3

	attachedLight light.Light
	lightOffset   common.Vec3
}

// GameObject is a renderable scene node: a mesh drawn with a material at a
// world position. A node may carry one child light that follows it.
type GameObject interface {
	// ID returns the identifier assigned by the scene, 0 before it is added.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the debug name.
	Name() string

	// Enabled returns whether this object is drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Model returns the mesh, or nil.
	//
	// Returns:
	//   - model.Model: the associated model or nil
	Model() model.Model

	// Material returns the handle of the material the mesh is drawn with.
	//
	// Returns:
	//   - material.Handle: the material handle, zero when unset
	Material() material.Handle

	// Position returns the world-space translation.
	Position() common.Vec3

	// Scale returns the per-axis scale.
	Scale() common.Vec3

	// WorldMatrix returns the model matrix (column-major).
	//
	// Returns:
	//   - [16]float32: translation * scale
	WorldMatrix() [16]float32

	// Light returns the attached child light, or nil.
	//
	// Returns:
	//   - light.Light: the child light or nil
	Light() light.Light

	// LightWorldPosition returns where the child light sits in world space.
	// The light inherits the node's translation; its local offset is not scaled.
	LightWorldPosition() common.Vec3

	// SetID sets the identifier. Called by the scene.
	SetID(id uint64)

	// SetEnabled sets whether the object is drawn.
	SetEnabled(enabled bool)

	// SetPosition moves the node.
	//
	// Parameters:
	//   - p: world-space translation
	SetPosition(p common.Vec3)

	// SetMaterial replaces the material handle.
	SetMaterial(h material.Handle)

	// SetLight attaches a child light at a local offset, replacing any previous one.
	//
	// Parameters:
	//   - l: the light, nil detaches
	//   - offset: local translation relative to the node
	SetLight(l light.Light, offset common.Vec3)
}

var _ GameObject = &gameObject{}

// NewGameObject creates an enabled node at the origin with unit scale.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - GameObject: the newly created node
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:    &sync.Mutex{},
		scale: common.Vec3{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, option := range options {
		option(g)
	}
	return g
}

func (g *gameObject) ID() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.id
}

func (g *gameObject) Name() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Model() model.Model {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mdl
}

func (g *gameObject) Material() material.Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mat
}

func (g *gameObject) Position() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Scale() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) WorldMatrix() [16]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var m [16]float32
	common.Compose(m[:], g.position, g.scale)
	return m
}

func (g *gameObject) Light() light.Light {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.attachedLight
}

func (g *gameObject) LightWorldPosition() common.Vec3 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position.Add(g.lightOffset)
}

func (g *gameObject) SetID(id uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(p common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = p
}

func (g *gameObject) SetMaterial(h material.Handle) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mat = h
}

func (g *gameObject) SetLight(l light.Light, offset common.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.attachedLight = l
	g.lightOffset = offset
}
