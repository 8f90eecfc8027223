package pipeline

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Kind distinguishes mesh pipelines from fullscreen post-process pipelines.
type Kind int

const (
	// KindMesh draws indexed meshes with the engine vertex layout.
	KindMesh Kind = iota

	// KindFullscreen draws a single generated triangle with no vertex buffers.
	KindFullscreen
)

// pipeline is the implementation of the Pipeline interface.
// It holds the specialized shader, fixed-function state and the GPU object once created.
type pipeline struct {
	mu *sync.Mutex

	key    Key
	kind   Kind
	shader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	// Fixed function state applied by the backend when the render pipeline is created
	depthTestEnabled  bool
	depthWriteEnabled bool
	depthCompare      wgpu.CompareFunction
	depthFormat       wgpu.TextureFormat
	colorFormats      []wgpu.TextureFormat
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline describes a render pipeline for one Key: its shader, colour and depth
// formats and fixed function state. The backend creates the GPU object and stores
// it back via SetRenderPipeline.
type Pipeline interface {
	// Key returns the specialization this pipeline was built for.
	//
	// Returns:
	//   - Key: the cache key
	Key() Key

	// Kind returns whether this is a mesh or fullscreen pipeline.
	Kind() Kind

	// Shader returns the specialized shader.
	//
	// Returns:
	//   - shader.Shader: the pre-processed shader with its entry points
	Shader() shader.Shader

	// RenderPipeline returns the GPU pipeline, nil until the backend created it.
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled reports whether fragments are depth tested.
	DepthTestEnabled() bool

	// DepthWriteEnabled reports whether fragments write depth.
	DepthWriteEnabled() bool

	// DepthCompare returns the depth comparison function.
	//
	// Returns:
	//   - wgpu.CompareFunction: Less by default, LessEqual after a depth prepass
	DepthCompare() wgpu.CompareFunction

	// DepthFormat returns the depth attachment format, TextureFormatUndefined when the pipeline has none.
	DepthFormat() wgpu.TextureFormat

	// ColorFormats returns the colour attachment formats in @location order.
	//
	// Returns:
	//   - []wgpu.TextureFormat: one format per colour output, empty for depth-only pipelines
	ColorFormats() []wgpu.TextureFormat

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding considered front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the colour write mask applied to every target.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state, nil for opaque output.
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the GPU pipeline created by the backend.
	//
	// Parameters:
	//   - rp: the created pipeline
	SetRenderPipeline(rp *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The descriptor stays usable and can be registered again.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a pipeline descriptor with opaque, depth tested, back-face culled defaults.
//
// Parameters:
//   - key: the specialization key
//   - kind: mesh or fullscreen
//   - s: the specialized shader
//   - opts: functional options to override the defaults
//
// Returns:
//   - Pipeline: the new pipeline descriptor
func NewPipeline(key Key, kind Kind, s shader.Shader, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		mu:                &sync.Mutex{},
		key:               key,
		kind:              kind,
		shader:            s,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		depthCompare:      wgpu.CompareFunctionLess,
		depthFormat:       wgpu.TextureFormatDepth32Float,
		cullMode:          wgpu.CullModeBack,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
	}
	if kind == KindFullscreen {
		p.depthTestEnabled = false
		p.depthWriteEnabled = false
		p.depthFormat = wgpu.TextureFormatUndefined
		p.cullMode = wgpu.CullModeNone
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) Key() Key {
	return p.key
}

func (p *pipeline) Kind() Kind {
	return p.kind
}

func (p *pipeline) Shader() shader.Shader {
	return p.shader
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) DepthCompare() wgpu.CompareFunction {
	if !p.depthTestEnabled {
		return wgpu.CompareFunctionAlways
	}
	return p.depthCompare
}

func (p *pipeline) DepthFormat() wgpu.TextureFormat {
	return p.depthFormat
}

func (p *pipeline) ColorFormats() []wgpu.TextureFormat {
	return p.colorFormats
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
