package common

// Plane is the half-space n·p + d >= 0.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum holds the six clip planes of a view-projection matrix, normals pointing inward.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// ExtractFrustum derives the clip planes of a column-major view-projection matrix
// that maps depth to [0, 1] (Gribb/Hartmann with the WebGPU near plane).
//
// Parameters:
//   - viewProj: 16 element view-projection matrix
//
// Returns:
//   - Frustum: normalized frustum planes
func ExtractFrustum(viewProj []float32) Frustum {
	row := func(i int) [4]float32 {
		return [4]float32{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	combine := func(a [4]float32, b [4]float32, sign float32) Plane {
		n := Vec3{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]}
		d := a[3] + sign*b[3]
		if l := n.Length(); l > 0 {
			n, d = n.Scale(1/l), d/l
		}
		return Plane{Normal: n, Distance: d}
	}

	var f Frustum
	f.Planes[0] = combine(r3, r0, 1)
	f.Planes[1] = combine(r3, r0, -1)
	f.Planes[2] = combine(r3, r1, 1)
	f.Planes[3] = combine(r3, r1, -1)
	f.Planes[4] = combine(r2, r2, 0)
	f.Planes[5] = combine(r3, r2, -1)
	return f
}

// ContainsSphere reports whether a sphere is at least partially inside the frustum.
func (f Frustum) ContainsSphere(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
