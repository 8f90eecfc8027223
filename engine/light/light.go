package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// DefaultRange is the distance past which a point light contributes nothing.
const DefaultRange = 20.0

type pointLight struct {
	mu *sync.Mutex

	position   common.Vec3
	color      common.Color
	intensity  float32
	radius     float32
	lightRange float32
	enabled    bool
	shadows    bool
}

// Light is an omnidirectional point light.
//
// The scene places lights: a light attached to a node follows the node's world
// position every frame. Intensity is luminous power in lumens; radius is the size
// of the emitting sphere used to soften highlights.
type Light interface {
	// Position returns the world-space position.
	Position() common.Vec3

	// SetPosition moves the light. The scene calls this for lights attached to nodes.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p common.Vec3)

	// Color returns the authored sRGB colour.
	Color() common.Color

	// Intensity returns the luminous power in lumens.
	Intensity() float32

	// Radius returns the radius of the emitting sphere.
	Radius() float32

	// Range returns the attenuation cutoff distance.
	Range() float32

	// Enabled reports whether the light is uploaded to the GPU.
	Enabled() bool

	// SetEnabled toggles the light.
	SetEnabled(enabled bool)

	// ShadowsEnabled reports whether the light casts shadows. Point light shadows are not rendered.
	ShadowsEnabled() bool
}

var _ Light = &pointLight{}

// NewPointLight creates an enabled white point light of 800 lumens.
//
// Parameters:
//   - options: functional options to configure the light
//
// Returns:
//   - Light: the newly created light
func NewPointLight(options ...LightBuilderOption) Light {
	l := &pointLight{
		mu:         &sync.Mutex{},
		color:      common.RGB(1, 1, 1),
		intensity:  800,
		lightRange: DefaultRange,
		enabled:    true,
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *pointLight) Position() common.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *pointLight) SetPosition(p common.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = p
}

func (l *pointLight) Color() common.Color {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *pointLight) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *pointLight) Radius() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.radius
}

func (l *pointLight) Range() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lightRange
}

func (l *pointLight) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *pointLight) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *pointLight) ShadowsEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.shadows
}
