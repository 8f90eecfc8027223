package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// GPUMeshSize is the byte size of the per-object mesh uniform.
const GPUMeshSize = 128

// GPUMesh is the per-object uniform at group 1: the world matrix and the matrix
// that transforms normals (the inverse transpose of world).
type GPUMesh struct {
	World  [16]float32
	Normal [16]float32
}

// NewGPUMesh derives the normal matrix for a world matrix. A singular world
// matrix falls back to using world for normals.
func NewGPUMesh(world [16]float32) GPUMesh {
	g := GPUMesh{World: world}
	var inv [16]float32
	if !common.Invert4(inv[:], world[:]) {
		g.Normal = world
		return g
	}
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			g.Normal[c*4+r] = inv[r*4+c]
		}
	}
	return g
}

// Marshal serializes the uniform into little-endian bytes.
func (g *GPUMesh) Marshal() []byte {
	buf := make([]byte, GPUMeshSize)
	for i, v := range g.World {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Normal {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(v))
	}
	return buf
}
