package model

import "sync"

type model struct {
	mu *sync.Mutex

	name           string
	shape          Shape
	vertexData     []byte
	indexData      []byte
	vertexCount    int
	indexCount     int
	boundingRadius float32
}

// Model is CPU-side mesh data ready for upload. Several scene nodes may share one
// model; the renderer uploads each model once.
type Model interface {
	// Name returns the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Shape returns the generator the mesh was built from, or nil for raw data.
	Shape() Shape

	// VertexData returns interleaved GPUVertex bytes.
	VertexData() []byte

	// IndexData returns 32-bit index bytes.
	IndexData() []byte

	// VertexCount returns the number of vertices.
	VertexCount() int

	// IndexCount returns the number of indices.
	IndexCount() int

	// BoundingRadius returns the radius of a sphere around the model origin containing the mesh.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel builds a model. With WithShape the mesh is generated immediately.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{mu: &sync.Mutex{}}
	for _, option := range options {
		option(m)
	}
	if m.shape != nil && m.vertexData == nil {
		vs, is := m.shape.Mesh()
		m.vertexData = MarshalVertices(vs)
		m.indexData = MarshalIndices(is)
		m.vertexCount = len(vs)
		m.indexCount = len(is)
		m.boundingRadius = m.shape.BoundingRadius()
		if m.name == "" {
			m.name = m.shape.Name()
		}
	}
	return m
}

func (m *model) Name() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *model) Shape() Shape {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.shape
}

func (m *model) VertexData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vertexData
}

func (m *model) IndexData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexData
}

func (m *model) VertexCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vertexCount
}

func (m *model) IndexCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.boundingRadius
}
