package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// shader is the implementation of the Shader interface.
type shader struct {
	key          string
	source       string
	defs         Defs
	imports      []string
	vertexEntry  string
	fragEntry    string
	declarations []Declaration
	module       *wgpu.ShaderModuleDescriptor
}

// Shader is one specialization of a WGSL source: the pre-processed code, the
// entry points it exposes and the resources it declares.
type Shader interface {
	// Key retrieves the unique identifier for this specialization, used for labels and caching.
	//
	// Returns:
	//   - string: the shader's key
	Key() string

	// Source returns the pre-processed WGSL.
	//
	// Returns:
	//   - string: plain WGSL with every directive resolved
	Source() string

	// Defs returns the definitions the source was specialized with.
	Defs() Defs

	// Imports returns the engine modules spliced into the source.
	Imports() []string

	// VertexEntryPoint returns the @vertex function name, empty if there is none.
	VertexEntryPoint() string

	// FragmentEntryPoint returns the @fragment function name. An empty name means
	// the shader is used for depth-only rendering.
	//
	// Returns:
	//   - string: the entry point name or ""
	FragmentEntryPoint() string

	// Declarations lists the resource bindings the source declares.
	//
	// Returns:
	//   - []Declaration: bindings ordered by group then binding
	Declarations() []Declaration

	// BindGroupLayout builds the layout descriptor for one group from the declarations.
	//
	// Parameters:
	//   - group: the bind group index
	//   - visibility: the stages that see the resources
	//
	// Returns:
	//   - wgpu.BindGroupLayoutDescriptor: the descriptor, with no entries if the group is unused
	BindGroupLayout(group uint32, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutDescriptor

	// Module returns the wgpu.ShaderModuleDescriptor for this shader.
	//
	// Returns:
	//   - *wgpu.ShaderModuleDescriptor: the descriptor containing the WGSL code and label
	Module() *wgpu.ShaderModuleDescriptor
}

var _ Shader = &shader{}

// NewShader pre-processes source with defs and parses the result.
//
// Parameters:
//   - key: a unique label for this specialization
//   - source: WGSL with pre-processor directives
//   - defs: the definitions to specialize with
//   - pp: the pre-processor to use, nil for a fresh one with the engine modules
//
// Returns:
//   - Shader: the specialized shader
//   - error: a pre-processing error, or an error when the source has no @vertex entry point
func NewShader(key, source string, defs Defs, pp PreProcessor) (Shader, error) {
	if pp == nil {
		pp = NewPreProcessor()
	}
	processed, err := pp.Process(source, defs)
	if err != nil {
		return nil, fmt.Errorf("shader %s: %w", key, err)
	}
	vertex, fragment := EntryPoints(processed)
	if vertex == "" {
		return nil, fmt.Errorf("shader %s: no @vertex entry point", key)
	}
	return &shader{
		key:          key,
		source:       processed,
		defs:         defs.Clone(),
		imports:      pp.Imports(),
		vertexEntry:  vertex,
		fragEntry:    fragment,
		declarations: Declarations(processed),
		module: &wgpu.ShaderModuleDescriptor{
			Label: key,
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
				Code: processed,
			},
		},
	}, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) Defs() Defs {
	return s.defs
}

func (s *shader) Imports() []string {
	return s.imports
}

func (s *shader) VertexEntryPoint() string {
	return s.vertexEntry
}

func (s *shader) FragmentEntryPoint() string {
	return s.fragEntry
}

func (s *shader) Declarations() []Declaration {
	return s.declarations
}

func (s *shader) BindGroupLayout(group uint32, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutDescriptor {
	desc := wgpu.BindGroupLayoutDescriptor{Label: fmt.Sprintf("%s group %d", s.key, group)}
	for _, d := range s.declarations {
		if d.Group == group {
			desc.Entries = append(desc.Entries, LayoutEntry(d, visibility))
		}
	}
	return desc
}

func (s *shader) Module() *wgpu.ShaderModuleDescriptor {
	return s.module
}
