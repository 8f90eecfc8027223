package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	name string
	up   common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	hdr       bool
	fxaa      bool
	ev100     float32
	prepasses Prepass

	viewMatrix             [16]float32
	projectionMatrix       [16]float32
	viewProjectionMatrix   [16]float32
	inverseViewProjection  [16]float32
	previousViewProjection [16]float32

	controller CameraController
}

// Camera holds perspective settings, the view configuration used by the renderer
// (HDR output, FXAA and the prepass set) and matrices derived from an attached
// CameraController.
type Camera interface {
	// Name returns the camera's debug name.
	Name() string

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// HDR reports whether the camera renders into a floating point target that is tonemapped at the end of the frame.
	HDR() bool

	// Fxaa reports whether FXAA runs as the final pass.
	Fxaa() bool

	// Exposure returns the linear exposure multiplier derived from the camera's EV100.
	//
	// Returns:
	//   - float32: 1 / (1.2 * 2^EV100)
	Exposure() float32

	// Prepasses returns the current prepass set.
	//
	// Returns:
	//   - Prepass: the attached prepass markers
	Prepasses() Prepass

	// HasPrepass reports whether every given marker is attached.
	//
	// Parameters:
	//   - p: one or more prepass flags
	//
	// Returns:
	//   - bool: true when all flags in p are attached
	HasPrepass(p Prepass) bool

	// AddPrepass attaches markers. Attaching a marker that is already present is a no-op.
	//
	// Parameters:
	//   - p: the markers to attach
	AddPrepass(p ...Prepass)

	// RemovePrepass detaches markers. Removing an absent marker is a no-op.
	//
	// Parameters:
	//   - p: the markers to remove
	RemovePrepass(p ...Prepass)

	// Position returns the camera's world-space position as reported by its controller.
	Position() common.Vec3

	// ViewMatrix returns the current view matrix (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns projection * view (column-major).
	ViewProjectionMatrix() [16]float32

	// InverseViewProjectionMatrix returns the inverse of ViewProjectionMatrix. The deferred
	// lighting pass uses it to rebuild world positions from depth.
	InverseViewProjectionMatrix() [16]float32

	// PreviousViewProjectionMatrix returns the view-projection of the previous Update.
	// Before the second Update it equals ViewProjectionMatrix, so the first frame has no motion.
	PreviousViewProjectionMatrix() [16]float32

	// Controller returns the attached controller or nil.
	Controller() CameraController

	// Update recomputes the matrices from the controller. The previous view-projection
	// is captured first. Without a controller this does nothing.
	Update()

	// SetAspect sets the aspect ratio and recomputes the projection.
	//
	// Parameters:
	//   - aspect: width / height
	SetAspect(aspect float32)

	// SetHDR toggles the floating point render target.
	SetHDR(hdr bool)

	// SetFxaa toggles the FXAA pass.
	SetFxaa(fxaa bool)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// DefaultEV100 is the exposure value of an indoor scene lit by bright bulbs.
const DefaultEV100 float32 = 9.7

// ExposureFromEV100 converts an exposure value at ISO 100 to a linear multiplier.
func ExposureFromEV100(ev100 float32) float32 {
	return 1 / (1.2 * math32.Pow(2, ev100))
}

// NewCamera creates a camera with a 45 degree field of view and no prepasses.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		name:   "camera",
		up:     common.Vec3{0, 1, 0},
		fov:    math32.Pi / 4,
		aspect: 1,
		near:   0.1,
		far:    1000,
		ev100:  DefaultEV100,
	}
	common.Identity(c.viewMatrix[:])
	common.Identity(c.projectionMatrix[:])
	common.Identity(c.viewProjectionMatrix[:])
	common.Identity(c.inverseViewProjection[:])
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	c.previousViewProjection = c.viewProjectionMatrix
	return c
}

func (c *cameraImpl) Name() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) HDR() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hdr
}

func (c *cameraImpl) Fxaa() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fxaa
}

func (c *cameraImpl) Exposure() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ExposureFromEV100(c.ev100)
}

func (c *cameraImpl) Prepasses() Prepass {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepasses
}

func (c *cameraImpl) HasPrepass(p Prepass) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prepasses.Has(p)
}

func (c *cameraImpl) AddPrepass(p ...Prepass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prepasses = c.prepasses.With(combine(p))
}

func (c *cameraImpl) RemovePrepass(p ...Prepass) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prepasses = c.prepasses.Without(combine(p))
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	ctrl := c.controller
	c.mu.Unlock()
	if ctrl == nil {
		return common.Vec3{}
	}
	return ctrl.Position()
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inverseViewProjection
}

func (c *cameraImpl) PreviousViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previousViewProjection
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.previousViewProjection = c.viewProjectionMatrix
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetHDR(hdr bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hdr = hdr
}

func (c *cameraImpl) SetFxaa(fxaa bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fxaa = fxaa
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recomputes every derived matrix. The view matrix is left as is
// when no controller is attached. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		common.LookAt(c.viewMatrix[:], c.controller.Position(), c.controller.Target(), c.up)
	}
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseViewProjection[:], c.viewProjectionMatrix[:])
}
