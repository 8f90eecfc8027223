package camera

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
)

// CameraController owns a camera's position and target and turns per-frame input
// into motion.
//
// In orbit mode the camera circles a focus point: dragging rotates around it, the
// wheel and W/S change the distance, A/D and Q/E orbit from the keyboard. In
// free-fly mode dragging turns the view in place and W/A/S/D/Q/E translate it,
// holding shift to run.
type CameraController interface {
	// Position returns the camera's world-space position.
	Position() common.Vec3

	// Target returns the look-at point. In orbit mode this is the orbit focus.
	Target() common.Vec3

	// SetTarget moves the focus and recomputes the position from the spherical coordinates.
	//
	// Parameters:
	//   - target: world-space focus point
	SetTarget(target common.Vec3)

	// OrbitMode reports whether the controller orbits its focus.
	OrbitMode() bool

	// SetOrbitMode switches between orbit and free-fly control.
	SetOrbitMode(orbit bool)

	// Update applies one frame of input.
	//
	// Parameters:
	//   - kb: keyboard snapshot for this frame
	//   - mouse: mouse snapshot for this frame
	//   - dt: seconds since the previous frame
	Update(kb input.Keyboard, mouse input.Mouse, dt float32)

	// Orbit rotates around the focus by the given angles; elevation is clamped.
	//
	// Parameters:
	//   - dAzimuth: change of the horizontal angle in radians
	//   - dElevation: change of the vertical angle in radians
	Orbit(dAzimuth, dElevation float32)

	// Look turns the view in place by the given angles, moving the target around the position.
	Look(dAzimuth, dElevation float32)

	// Zoom scales the distance to the focus. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Translate moves position and target together along the camera's right, world up and forward axes.
	Translate(right, up, forward float32)

	// Radius returns the distance from the focus.
	Radius() float32

	// Azimuth returns the horizontal angle in radians, 0 on +Z.
	Azimuth() float32

	// Elevation returns the vertical angle in radians from the horizontal plane.
	Elevation() float32

	// Sensitivity returns the radians turned per pixel of mouse motion.
	Sensitivity() float32
}
