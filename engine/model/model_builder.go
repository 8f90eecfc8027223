package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithShape generates the mesh from a shape.
//
// Parameters:
//   - shape: the geometry generator
//
// Returns:
//   - ModelBuilderOption: a function that applies the shape option to a model
func WithShape(shape Shape) ModelBuilderOption {
	return func(m *model) {
		m.shape = shape
	}
}

// WithMeshData sets raw mesh data directly.
func WithMeshData(vertices []GPUVertex, indices []uint32, boundingRadius float32) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(vertices)
		m.indexData = MarshalIndices(indices)
		m.vertexCount = len(vertices)
		m.indexCount = len(indices)
		m.boundingRadius = boundingRadius
	}
}
