package model

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Shape generates mesh geometry. Front faces wind counter-clockwise.
type Shape interface {
	// Name describes the shape and its parameters.
	Name() string

	// Mesh generates vertices and triangle indices.
	//
	// Returns:
	//   - []GPUVertex: mesh vertices
	//   - []uint32: triangle list indices
	Mesh() ([]GPUVertex, []uint32)

	// BoundingRadius is the radius of a sphere around the origin containing the shape.
	BoundingRadius() float32
}

// Plane is a square on the XZ plane centred at the origin, facing +Y.
type Plane struct {
	Size         float32
	Subdivisions int
}

// UVSphere is a latitude/longitude sphere centred at the origin.
type UVSphere struct {
	Radius  float32
	Sectors int
	Stacks  int
}

// NewUVSphere returns a sphere with 36 sectors and 18 stacks.
func NewUVSphere(radius float32) UVSphere {
	return UVSphere{Radius: radius, Sectors: 36, Stacks: 18}
}

var (
	_ Shape = Plane{}
	_ Shape = UVSphere{}
)

func (p Plane) Name() string {
	return fmt.Sprintf("plane(%g,%d)", p.Size, max(p.Subdivisions, 0))
}

func (p Plane) Mesh() ([]GPUVertex, []uint32) {
	// Subdivisions counts interior cuts per side.
	n := max(p.Subdivisions, 0) + 1
	half := p.Size / 2

	vertices := make([]GPUVertex, 0, (n+1)*(n+1))
	for z := 0; z <= n; z++ {
		for x := 0; x <= n; x++ {
			u := float32(x) / float32(n)
			v := float32(z) / float32(n)
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{-half + u*p.Size, 0, -half + v*p.Size},
				Normal:   [3]float32{0, 1, 0},
				UV:       [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, n*n*6)
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			tl := uint32(z*(n+1) + x)
			tr := tl + 1
			bl := tl + uint32(n+1)
			br := bl + 1
			indices = append(indices, tl, bl, tr, tr, bl, br)
		}
	}
	return vertices, indices
}

func (p Plane) BoundingRadius() float32 {
	return p.Size / math32.Sqrt(2)
}

func (s UVSphere) Name() string {
	return fmt.Sprintf("uv_sphere(%g,%d,%d)", s.Radius, s.Sectors, s.Stacks)
}

func (s UVSphere) Mesh() ([]GPUVertex, []uint32) {
	sectors := max(s.Sectors, 3)
	stacks := max(s.Stacks, 2)

	vertices := make([]GPUVertex, 0, (stacks+1)*(sectors+1))
	for i := 0; i <= stacks; i++ {
		phi := float32(i) * math32.Pi / float32(stacks)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		for j := 0; j <= sectors; j++ {
			theta := float32(j) * 2 * math32.Pi / float32(sectors)
			sinTheta, cosTheta := math32.Sin(theta), math32.Cos(theta)
			n := [3]float32{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * s.Radius, n[1] * s.Radius, n[2] * s.Radius},
				Normal:   n,
				UV:       [2]float32{float32(j) / float32(sectors), float32(i) / float32(stacks)},
			})
		}
	}

	indices := make([]uint32, 0, stacks*sectors*6)
	for i := 0; i < stacks; i++ {
		for j := 0; j < sectors; j++ {
			cur := uint32(i*(sectors+1) + j)
			next := cur + uint32(sectors+1)
			if i != 0 {
				indices = append(indices, cur, cur+1, next)
			}
			if i != stacks-1 {
				indices = append(indices, cur+1, next+1, next)
			}
		}
	}
	return vertices, indices
}

func (s UVSphere) BoundingRadius() float32 {
	return s.Radius
}
