package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	Compose(m[:], Vec3{1, 2, 3}, Vec3{2, 2, 2})
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)
}

func TestInvert4(t *testing.T) {
	var m, inv, prod, id [16]float32
	Compose(m[:], Vec3{4, -1, 2}, Vec3{2, 3, 0.5})
	require.True(t, Invert4(inv[:], m[:]))
	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	for i := range id {
		assert.InDelta(t, id[i], prod[i], 1e-5)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestLookAtMapsTargetToNegativeZ(t *testing.T) {
	var view [16]float32
	eye, target := Vec3{8, 5, 8}, Vec3{0, 0.5, 0}
	LookAt(view[:], eye, target, Vec3{0, 1, 0})

	p := TransformPoint(view[:], target)
	assert.InDelta(t, 0, p[0], 1e-5)
	assert.InDelta(t, 0, p[1], 1e-5)
	assert.InDelta(t, -eye.Sub(target).Length(), p[2], 1e-4)

	origin := TransformPoint(view[:], eye)
	assert.InDelta(t, 0, origin.Length(), 1e-4)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], 0.8, 1.5, 0.1, 100)
	near := TransformPoint(proj[:], Vec3{0, 0, -0.1})
	far := TransformPoint(proj[:], Vec3{0, 0, -100})
	assert.InDelta(t, 0, near[2], 1e-5)
	assert.InDelta(t, 1, far[2], 1e-4)
}

func TestFrustumContainsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], Vec3{0, 0, 10}, Vec3{}, Vec3{0, 1, 0})
	Perspective(proj[:], 1.0, 1.0, 0.1, 50)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustum(vp[:])

	assert.True(t, f.ContainsSphere(Vec3{}, 1))
	assert.False(t, f.ContainsSphere(Vec3{0, 0, 20}, 1), "behind the camera")
	assert.False(t, f.ContainsSphere(Vec3{0, 0, -100}, 1), "past the far plane")
	assert.True(t, f.ContainsSphere(Vec3{0, 0, -40.5}, 1), "straddles the far plane")
}

func TestColorLinear(t *testing.T) {
	c := RGB(0.5, 0.1, 0.0).Linear()
	assert.InDelta(t, 0.2140, c[0], 1e-3)
	assert.InDelta(t, 0.0100, c[1], 1e-3)
	assert.Equal(t, float32(0), c[2])
	assert.Equal(t, float32(1), c[3])
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
