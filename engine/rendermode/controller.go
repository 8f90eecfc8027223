package rendermode

import (
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
)

// Unbound disables a key binding.
const Unbound = -1

// deferredPrepasses are the markers a camera needs to render deferred.
var deferredPrepasses = []camera.Prepass{camera.PrepassDepth, camera.PrepassMotionVector, camera.PrepassDeferred}

type controller struct {
	mu *sync.Mutex

	settings    Settings
	cameras     func() []camera.Camera
	logger      *log.Logger
	deferredKey int
	forwardKey  int
}

// Controller switches the default opaque method from the keyboard and keeps every
// camera's prepass set consistent with it.
type Controller interface {
	// Update checks the key bindings against the frame's keyboard snapshot. The
	// deferred binding is checked first and the forward binding second, each
	// independently, so when both are pressed on the same frame Forward wins.
	//
	// Parameters:
	//   - kb: the keyboard, already synced for this frame
	Update(kb input.Keyboard)

	// Apply switches to a method, logs the change and updates every camera.
	//
	// Selecting Deferred removes the normal prepass and attaches the depth,
	// motion-vector and deferred prepasses. Selecting Forward removes the normal,
	// depth, motion-vector and deferred prepasses.
	//
	// Parameters:
	//   - m: the method to select
	Apply(m Method)
}

var _ Controller = &controller{}

// NewController creates a controller bound to keys 1 (Deferred) and 2 (Forward).
//
// Parameters:
//   - settings: the scene's renderer settings
//   - cameras: returns the cameras to update; called on every switch
//   - options: functional options to configure the controller
//
// Returns:
//   - Controller: the newly created controller
func NewController(settings Settings, cameras func() []camera.Camera, options ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:          &sync.Mutex{},
		settings:    settings,
		cameras:     cameras,
		logger:      log.Default(),
		deferredKey: common.Key1,
		forwardKey:  common.Key2,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *controller) Update(kb input.Keyboard) {
	c.mu.Lock()
	deferredKey, forwardKey := c.deferredKey, c.forwardKey
	c.mu.Unlock()

	if deferredKey != Unbound && kb.JustPressed(deferredKey) {
		c.Apply(Deferred)
	}
	if forwardKey != Unbound && kb.JustPressed(forwardKey) {
		c.Apply(Forward)
	}
}

func (c *controller) Apply(m Method) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.settings.SetMethod(m)
	c.logger.Printf("DefaultOpaqueRendererMethod: %s", m)

	var cams []camera.Camera
	if c.cameras != nil {
		cams = c.cameras()
	}
	for _, cam := range cams {
		switch m {
		case Deferred:
			cam.RemovePrepass(camera.PrepassNormal)
			cam.AddPrepass(deferredPrepasses...)
		case Forward:
			cam.RemovePrepass(camera.PrepassNormal)
			cam.RemovePrepass(deferredPrepasses...)
		}
	}
}

// ControllerBuilderOption configures a Controller.
type ControllerBuilderOption func(*controller)

// WithLogger sets the logger the switch line is written to.
//
// Parameters:
//   - l: the destination logger
//
// Returns:
//   - ControllerBuilderOption: a function that sets the logger
func WithLogger(l *log.Logger) ControllerBuilderOption {
	return func(c *controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDeferredKey binds the key selecting Deferred. Unbound disables it.
func WithDeferredKey(key int) ControllerBuilderOption {
	return func(c *controller) {
		c.deferredKey = key
	}
}

// WithForwardKey binds the key selecting Forward. Unbound disables it.
func WithForwardKey(key int) ControllerBuilderOption {
	return func(c *controller) {
		c.forwardKey = key
	}
}
