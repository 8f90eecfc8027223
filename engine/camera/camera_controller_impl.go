package camera

import (
	"sync"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
)

type cameraControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	target   common.Vec3

	// spherical offset of position from target
	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitMode   bool
	sensitivity float32
	orbitSpeed  float32
	zoomSpeed   float32
	walkSpeed   float32
	runSpeed    float32

	initialPosition *common.Vec3
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller in orbit mode around the origin.
// When WithPosition is given the spherical coordinates are derived from it after
// every other option has been applied, so option order does not matter.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:        &sync.Mutex{},
		radius:    10,
		elevation: math32.Pi / 6,

		minRadius:    0.5,
		maxRadius:    200,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		orbitMode:   true,
		sensitivity: 0.005,
		orbitSpeed:  1.5,
		zoomSpeed:   0.1,
		walkSpeed:   5,
		runSpeed:    15,
	}
	for _, option := range options {
		option(cc)
	}
	if cc.initialPosition != nil {
		cc.setFromPosition(*cc.initialPosition)
		cc.initialPosition = nil
	}
	cc.clamp()
	cc.updatePosition()
	return cc
}

// setFromPosition derives radius, azimuth and elevation from a world position relative to target.
func (cc *cameraControllerImpl) setFromPosition(p common.Vec3) {
	off := p.Sub(cc.target)
	r := off.Length()
	if r == 0 {
		return
	}
	cc.radius = r
	cc.azimuth = math32.Atan2(off[0], off[2])
	cc.elevation = math32.Asin(off[1] / r)
}

func (cc *cameraControllerImpl) clamp() {
	cc.radius = min(max(cc.radius, cc.minRadius), cc.maxRadius)
	cc.elevation = min(max(cc.elevation, cc.minElevation), cc.maxElevation)
}

func (cc *cameraControllerImpl) offset() common.Vec3 {
	cosE, sinE := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosA, sinA := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	return common.Vec3{cc.radius * cosE * sinA, cc.radius * sinE, cc.radius * cosE * cosA}
}

// updatePosition places the camera on the sphere around target. Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cc.position = cc.target.Add(cc.offset())
}

// updateTarget places the target on the sphere around position. Caller must hold the mutex.
func (cc *cameraControllerImpl) updateTarget() {
	cc.target = cc.position.Sub(cc.offset())
}

// axes returns right and forward on the camera plane. Forward keeps its vertical
// component; right is always horizontal.
func (cc *cameraControllerImpl) axes() (right, forward common.Vec3) {
	forward = cc.target.Sub(cc.position).Normalize()
	right = forward.Cross(common.Vec3{0, 1, 0}).Normalize()
	return right, forward
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) SetTarget(target common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = target
	cc.updatePosition()
}

func (cc *cameraControllerImpl) OrbitMode() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.orbitMode
}

func (cc *cameraControllerImpl) SetOrbitMode(orbit bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.orbitMode = orbit
}

func (cc *cameraControllerImpl) Update(kb input.Keyboard, mouse input.Mouse, dt float32) {
	cc.mu.Lock()
	orbit := cc.orbitMode
	sens, orbitSpeed := cc.sensitivity, cc.orbitSpeed
	speed := cc.walkSpeed
	if kb != nil && (kb.Down(common.KeyLeftShift) || kb.Down(common.KeyRightShift)) {
		speed = cc.runSpeed
	}
	cc.mu.Unlock()

	axis := func(pos, neg int) float32 {
		if kb == nil {
			return 0
		}
		var v float32
		if kb.Down(pos) {
			v++
		}
		if kb.Down(neg) {
			v--
		}
		return v
	}

	if mouse != nil {
		if input.Dragging(mouse) {
			dx, dy := mouse.Delta()
			if orbit {
				cc.Orbit(-dx*sens, dy*sens)
			} else {
				cc.Look(-dx*sens, dy*sens)
			}
		}
		if s := mouse.ScrollDelta(); s != 0 {
			cc.Zoom(s)
		}
	}

	if orbit {
		cc.Orbit(axis(common.KeyD, common.KeyA)*orbitSpeed*dt, axis(common.KeyE, common.KeyQ)*orbitSpeed*dt)
		if z := axis(common.KeyW, common.KeyS); z != 0 {
			cc.Zoom(z * dt * speed)
		}
		return
	}
	cc.Translate(
		axis(common.KeyD, common.KeyA)*speed*dt,
		axis(common.KeyE, common.KeyQ)*speed*dt,
		axis(common.KeyW, common.KeyS)*speed*dt,
	)
}

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	if dAzimuth == 0 && dElevation == 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth
	cc.elevation += dElevation
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Look(dAzimuth, dElevation float32) {
	if dAzimuth == 0 && dElevation == 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth += dAzimuth
	cc.elevation += dElevation
	cc.clamp()
	cc.updateTarget()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius *= 1 - delta*cc.zoomSpeed
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Translate(right, up, forward float32) {
	if right == 0 && up == 0 && forward == 0 {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	r, f := cc.axes()
	move := r.Scale(right).Add(common.Vec3{0, up, 0}).Add(f.Scale(forward))
	cc.position = cc.position.Add(move)
	cc.target = cc.target.Add(move)
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) Sensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.sensitivity
}
