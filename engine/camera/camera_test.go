package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
)

func assertVecInDelta(t *testing.T, want, got common.Vec3, delta float64) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, "component %d", i)
	}
}

func TestPrepassSet(t *testing.T) {
	p := PrepassDepth.With(PrepassMotionVector)
	assert.True(t, p.Has(PrepassDepth))
	assert.True(t, p.Has(PrepassDepth|PrepassMotionVector))
	assert.False(t, p.Has(PrepassDeferred))
	assert.Equal(t, "Depth|MotionVector", p.String())
	assert.Equal(t, "None", p.Without(PrepassDepth|PrepassMotionVector).String())
}

func TestCameraPrepassAttachIsIdempotent(t *testing.T) {
	c := NewCamera(WithPrepasses(PrepassDepth))
	c.AddPrepass(PrepassDepth, PrepassDeferred)
	c.AddPrepass(PrepassDeferred)
	assert.Equal(t, PrepassDepth|PrepassDeferred, c.Prepasses())

	c.RemovePrepass(PrepassNormal)
	assert.Equal(t, PrepassDepth|PrepassDeferred, c.Prepasses())

	c.RemovePrepass(PrepassDepth, PrepassDeferred, PrepassMotionVector)
	assert.Equal(t, PrepassNone, c.Prepasses())
}

func TestControllerDerivesSphericalFromPosition(t *testing.T) {
	focus := common.Vec3{0, 0.5, 0}
	cc := NewCameraController(
		WithPosition(common.Vec3{8, 5, 8}),
		WithOrbitFocus(focus),
	)
	assertVecInDelta(t, common.Vec3{8, 5, 8}, cc.Position(), 1e-4)
	assert.Equal(t, focus, cc.Target())
	assert.InDelta(t, math.Sqrt(148.25), cc.Radius(), 1e-4)
	assert.InDelta(t, math.Pi/4, cc.Azimuth(), 1e-5)
	assert.True(t, cc.OrbitMode())
}

func TestOrbitDragKeepsDistanceToFocus(t *testing.T) {
	focus := common.Vec3{0, 0.5, 0}
	cc := NewCameraController(WithOrbitFocus(focus), WithPosition(common.Vec3{8, 5, 8}))
	r := cc.Radius()

	m := input.NewMouse()
	m.Move(100, 100)
	m.SetButton(common.MouseButtonLeft, true)
	m.Move(160, 90)
	m.Sync()

	cc.Update(input.NewKeyboard(), m, 1.0/60)
	assert.Equal(t, focus, cc.Target())
	assert.InDelta(t, r, cc.Position().Sub(focus).Length(), 1e-4)
	assert.NotEqual(t, float32(math.Pi/4), cc.Azimuth())
}

func TestZoomIsClamped(t *testing.T) {
	cc := NewCameraController(WithRadius(5), WithRadiusBounds(2, 6), WithZoomSpeed(0.5))
	cc.Zoom(1.9)
	assert.Equal(t, float32(2), cc.Radius())
	cc.Zoom(-10)
	assert.Equal(t, float32(6), cc.Radius())
}

func TestFreeFlyMovesPositionAndTarget(t *testing.T) {
	cc := NewCameraController(
		WithOrbitMode(false),
		WithOrbitFocus(common.Vec3{0, 0, 0}),
		WithPosition(common.Vec3{0, 0, 10}),
		WithWalkSpeed(2),
	)
	kb := input.NewKeyboard()
	kb.Press(common.KeyW)
	kb.Sync()

	cc.Update(kb, input.NewMouse(), 0.5)
	assertVecInDelta(t, common.Vec3{0, 0, 9}, cc.Position(), 1e-4)
	assertVecInDelta(t, common.Vec3{0, 0, -1}, cc.Target(), 1e-4)
}

func TestCameraMatricesFollowController(t *testing.T) {
	cc := NewCameraController(WithOrbitFocus(common.Vec3{0, 0.5, 0}), WithPosition(common.Vec3{8, 5, 8}))
	c := NewCamera(WithController(cc), WithHDR(true), WithFxaa(true), WithAspect(16.0/9.0))
	assert.True(t, c.HDR())
	assert.True(t, c.Fxaa())

	vp := c.ViewProjectionMatrix()
	assert.Equal(t, vp, c.PreviousViewProjectionMatrix())

	focus := common.TransformPoint(vp[:], common.Vec3{0, 0.5, 0})
	assert.InDelta(t, 0, focus[0], 1e-4)
	assert.InDelta(t, 0, focus[1], 1e-4)

	cc.Orbit(0.3, 0)
	c.Update()
	assert.Equal(t, vp, c.PreviousViewProjectionMatrix())
	assert.NotEqual(t, vp, c.ViewProjectionMatrix())
}

func TestGPUViewMarshal(t *testing.T) {
	cc := NewCameraController(WithOrbitFocus(common.Vec3{}), WithPosition(common.Vec3{0, 0, 5}))
	v := NewGPUView(NewCamera(WithController(cc)), 800, 600)
	buf := v.Marshal()
	require.Len(t, buf, GPUViewSize)
	assert.InDelta(t, 5, math.Float32frombits(binary.LittleEndian.Uint32(buf[200:])), 1e-5)
	assert.Equal(t, float32(800), math.Float32frombits(binary.LittleEndian.Uint32(buf[216:])))
}

func TestExposure(t *testing.T) {
	assert.InDelta(t, 1/1.2, ExposureFromEV100(0), 1e-6)
	assert.InDelta(t, 1.0/(1.2*1024), NewCamera(WithExposure(10)).Exposure(), 1e-9)

	v := NewGPUView(NewCamera(), 1, 1)
	assert.InDelta(t, ExposureFromEV100(DefaultEV100), v.Exposure, 1e-9)
}
