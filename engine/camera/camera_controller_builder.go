package camera

import "github.com/Carmen-Shannon/oxy-orbs/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithOrbitMode selects orbit (true) or free-fly (false) control.
func WithOrbitMode(orbit bool) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitMode = orbit
	}
}

// WithOrbitFocus sets the point the camera orbits and looks at.
//
// Parameters:
//   - focus: world-space focus point
//
// Returns:
//   - CameraControllerOption: functional option to set the focus
func WithOrbitFocus(focus common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = focus
	}
}

// WithPosition places the camera at a world position; radius and angles are derived
// relative to the focus.
//
// Parameters:
//   - position: world-space camera position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(position common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		p := position
		cc.initialPosition = &p
	}
}

// WithRadius sets the distance from the focus.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the horizontal angle in radians (0 = +Z).
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the vertical angle in radians (0 = horizontal).
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - min: minimum distance to the focus
//   - max: maximum distance to the focus
//
// Returns:
//   - CameraControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the vertical angle limits in radians.
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithSensitivity sets the radians turned per pixel of mouse drag.
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// WithOrbitSpeed sets the keyboard orbit rate in radians per second.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the fraction of the radius removed per scroll unit.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithWalkSpeed sets the free-fly speed in units per second.
func WithWalkSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.walkSpeed = speed
	}
}

// WithRunSpeed sets the free-fly speed while shift is held.
func WithRunSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.runSpeed = speed
	}
}
