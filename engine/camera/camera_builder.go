package camera

import "github.com/Carmen-Shannon/oxy-orbs/common"

type CameraBuilderOption func(*cameraImpl)

// WithName sets the camera's debug name.
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: world-space up direction
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the vertical field of view in radians.
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the aspect ratio (width / height).
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithHDR makes the camera render into an Rgba16Float target followed by a tonemap pass.
//
// Parameters:
//   - hdr: true to enable HDR output
//
// Returns:
//   - CameraBuilderOption: functional option to set HDR
func WithHDR(hdr bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.hdr = hdr
	}
}

// WithFxaa enables the FXAA post pass.
func WithFxaa(fxaa bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fxaa = fxaa
	}
}

// WithPrepasses attaches prepass markers at construction.
//
// Parameters:
//   - p: prepass markers to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the prepass set
func WithPrepasses(p ...Prepass) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.prepasses = c.prepasses.With(combine(p))
	}
}

// WithExposure sets the exposure value (EV100) used to scale physical light units.
func WithExposure(ev100 float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.ev100 = ev100
	}
}

// WithController attaches a controller. The camera derives its matrices from the
// controller once all options are applied.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
