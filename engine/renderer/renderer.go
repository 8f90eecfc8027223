package renderer

import (
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-orbs/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Shader refs of the engine's built-in passes. They never collide with asset
// paths because asset paths cannot contain "::".
const (
	DepthPrepassShader     material.ShaderRef = "oxy::depth_prepass"
	DeferredLightingShader material.ShaderRef = "oxy::deferred_lighting"
	TonemapShader          material.ShaderRef = "oxy::tonemap"
	FxaaShader             material.ShaderRef = "oxy::fxaa"
)

var engineSources = map[material.ShaderRef]string{
	material.DefaultShader: shader.StandardSource,
	DepthPrepassShader:     shader.DepthPrepassSource,
	DeferredLightingShader: shader.DeferredLightingSource,
	TonemapShader:          shader.TonemapSource,
	FxaaShader:             shader.FxaaSource,
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	cache  pipeline.Cache
	pp     shader.PreProcessor
	assets asset.Server
	logger *log.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode

	width, height int

	targets  *renderTargets
	fallback bind_group_provider.BindGroupProvider
	view     bind_group_provider.BindGroupProvider
	gbuffer  bind_group_provider.BindGroupProvider
	tonemap  bind_group_provider.BindGroupProvider
	fxaa     bind_group_provider.BindGroupProvider

	meshes    map[model.Model]bind_group_provider.BindGroupProvider
	objects   map[uint64]bind_group_provider.BindGroupProvider
	materials map[material.Handle]bind_group_provider.BindGroupProvider

	// failed remembers pipelines that did not build so the error is logged once.
	failed map[pipeline.Key]bool
	// evictions are shader refs whose source changed, applied at the start of the next frame.
	evictions []material.ShaderRef
}

// Renderer turns extracted frames into GPU work.
//
// Each frame is planned into a render graph (prepass, deferred lighting, main
// opaque, tonemap, FXAA) and every draw is resolved to deferred or forward
// shading. Pipelines are specialized per shader, pass, prepass set and HDR
// flag and cached until the shader asset changes.
type Renderer interface {
	// Resize reconfigures the surface. Render targets follow on the next frame.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Render draws one frame and presents it.
	//
	// Parameters:
	//   - view: the extracted frame
	//
	// Returns:
	//   - error: an error if the frame could not be acquired or a GPU resource could not be created
	Render(view FrameView) error

	// EvictShader drops every pipeline built from a shader. The pipelines are
	// rebuilt from the current source the next time they are drawn.
	//
	// Parameters:
	//   - ref: the shader asset path
	EvictShader(ref material.ShaderRef)

	// Pipelines lists the keys of the cached pipelines.
	//
	// Returns:
	//   - []pipeline.Key: the cached specializations
	Pipelines() []pipeline.Key

	// Close releases every GPU resource.
	Close()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for a window's surface.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - window: the window providing the surface descriptor and initial size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, window window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		cache:       pipeline.NewCache(),
		logger:      log.Default(),
		meshes:      make(map[model.Model]bind_group_provider.BindGroupProvider),
		objects:     make(map[uint64]bind_group_provider.BindGroupProvider),
		materials:   make(map[material.Handle]bind_group_provider.BindGroupProvider),
		failed:      make(map[pipeline.Key]bool),
		view:        bind_group_provider.NewBindGroupProvider("View"),
		gbuffer:     bind_group_provider.NewBindGroupProvider("GBuffer"),
		tonemap:     bind_group_provider.NewBindGroupProvider("Tonemap Source"),
		fxaa:        bind_group_provider.NewBindGroupProvider("FXAA Source"),
		fallback:    bind_group_provider.NewBindGroupProvider("Fallback"),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}
	if r.pp == nil {
		r.pp = shader.NewPreProcessor()
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(window.SurfaceDescriptor(), r.forceFallbackAdapter)
	}

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}

	if r.assets != nil {
		r.assets.OnReload(func(h *asset.Handle) {
			if h.Kind() == asset.KindShader {
				r.EvictShader(material.ShaderRef(h.Path()))
			}
		})
	}

	r.width, r.height = window.Width(), window.Height()
	r.backend.ConfigureSurface(r.width, r.height)
	return r
}

func (r *renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	if width > 0 && height > 0 {
		r.backend.ConfigureSurface(width, height)
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) EvictShader(ref material.ShaderRef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.evictions = append(r.evictions, ref)
}

func (r *renderer) Pipelines() []pipeline.Key {
	return r.cache.Keys()
}

func (r *renderer) applyEvictions() {
	for _, ref := range r.evictions {
		if n := r.cache.Evict(ref); n > 0 {
			r.logger.Printf("renderer: %s changed, rebuilding %d pipelines", ref, n)
		}
		for k := range r.failed {
			if k.Shader == ref {
				delete(r.failed, k)
			}
		}
	}
	r.evictions = r.evictions[:0]
}

// preparedDraw is a draw item whose GPU resources are ready.
type preparedDraw struct {
	item     DrawItem
	deferred bool
	mesh     bind_group_provider.BindGroupProvider
	object   bind_group_provider.BindGroupProvider
	material bind_group_provider.BindGroupProvider
}

func (r *renderer) Render(view FrameView) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.applyEvictions()
	if r.width <= 0 || r.height <= 0 {
		return nil
	}

	g := Plan(view)
	if err := r.ensureTargets(g); err != nil {
		return err
	}
	if err := r.writeView(view); err != nil {
		return err
	}
	draws, err := r.prepareDraws(view, g)
	if err != nil {
		return err
	}

	surfaceView, err := r.backend.BeginFrame()
	if err != nil {
		return fmt.Errorf("renderer: acquire frame: %w", err)
	}
	clear := view.ClearColor.Linear()
	clearColor := wgpu.Color{R: float64(clear[0]), G: float64(clear[1]), B: float64(clear[2]), A: 1}

	for _, pass := range g.Passes {
		switch pass {
		case PassPrepass:
			r.prepass(g, draws)
		case PassDeferredLighting:
			r.deferredLighting(g, clearColor)
		case PassMainOpaque:
			r.mainOpaque(g, draws, clearColor)
		case PassTonemap:
			out := surfaceView
			if g.Fxaa {
				out = r.targets.ldr.view
			}
			r.fullscreen(pipeline.Key{Shader: TonemapShader, HDR: g.HDR}, r.backend.SurfaceFormat(), out, r.tonemap)
		case PassFxaa:
			r.fullscreen(pipeline.Key{Shader: FxaaShader}, r.backend.SurfaceFormat(), surfaceView, r.fxaa)
		}
	}

	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) ensureTargets(g Graph) error {
	cfg := targetConfig{
		width:         uint32(r.width),
		height:        uint32(r.height),
		hdr:           g.HDR,
		fxaa:          g.Fxaa,
		prepasses:     g.Prepasses,
		surfaceFormat: r.backend.SurfaceFormat(),
	}
	if r.targets != nil && r.targets.config == cfg {
		return nil
	}

	rt, err := newRenderTargets(r.backend, cfg)
	if err != nil {
		return err
	}
	r.targets.release()
	r.targets = rt

	r.gbuffer.SetTextureView(0, rt.prepassView(pipeline.TargetGBuffer0))
	r.gbuffer.SetTextureView(1, rt.prepassView(pipeline.TargetGBuffer1))
	r.gbuffer.SetTextureView(2, rt.prepassView(pipeline.TargetGBuffer2))
	r.gbuffer.SetTextureView(3, rt.depth.view)
	r.gbuffer.ResetBindGroup()

	r.tonemap.SetTextureView(0, rt.main.view)
	r.tonemap.ResetBindGroup()
	if rt.ldr != nil {
		r.fxaa.SetTextureView(0, rt.ldr.view)
	}
	r.fxaa.ResetBindGroup()

	clampSampler := common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
	}
	for _, p := range []bind_group_provider.BindGroupProvider{r.tonemap, r.fxaa} {
		if p.Sampler(1) == nil {
			if err := r.backend.InitSampler(p, 1, clampSampler); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) writeView(view FrameView) error {
	if r.view.BindGroup() == nil {
		if err := r.backend.InitBindGroup(r.view, ViewLayout()); err != nil {
			return err
		}
	}
	view.View.Viewport = [4]float32{0, 0, float32(r.width), float32(r.height)}
	lights, _ := light.MarshalLights(view.Ambient, view.Lights)
	r.backend.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: r.view, Binding: 0, Data: view.View.Marshal()},
		{Provider: r.view, Binding: 1, Data: lights},
	})
	return nil
}

func (r *renderer) prepareDraws(view FrameView, g Graph) ([]preparedDraw, error) {
	var writes []bind_group_provider.BufferWrite
	draws := make([]preparedDraw, 0, len(view.Draws))
	seen := make(map[uint64]bool, len(view.Draws))
	prepared := make(map[material.Handle]bool)

	for i, item := range view.Draws {
		if item.Model == nil || item.Material == nil {
			continue
		}
		mesh, err := r.meshProvider(item.Model)
		if err != nil {
			return nil, err
		}

		object, ok := r.objects[item.ObjectID]
		if !ok {
			object = bind_group_provider.NewBindGroupProvider(fmt.Sprintf("Object %d", item.ObjectID))
			if err := r.backend.InitBindGroup(object, MeshLayout()); err != nil {
				return nil, err
			}
			r.objects[item.ObjectID] = object
		}
		seen[item.ObjectID] = true
		gm := NewGPUMesh(item.World)
		writes = append(writes, bind_group_provider.BufferWrite{Provider: object, Binding: 0, Data: gm.Marshal()})

		mat, ok := r.materials[item.MaterialHandle]
		if !ok {
			mat = bind_group_provider.NewBindGroupProvider("Material " + item.Material.Name())
			r.materials[item.MaterialHandle] = mat
		}
		if !prepared[item.MaterialHandle] {
			w, err := r.prepareMaterial(mat, item.Material)
			if err != nil {
				return nil, err
			}
			writes = append(writes, w...)
			prepared[item.MaterialHandle] = true
		}

		draws = append(draws, preparedDraw{
			item:     item,
			deferred: g.Deferred[i],
			mesh:     mesh,
			object:   object,
			material: mat,
		})
	}

	for id, p := range r.objects {
		if !seen[id] {
			p.Release()
			delete(r.objects, id)
		}
	}

	r.backend.WriteBuffers(writes)
	return draws, nil
}

func (r *renderer) meshProvider(m model.Model) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := r.meshes[m]; ok {
		return p, nil
	}
	p := bind_group_provider.NewBindGroupProvider("Mesh " + m.Name())
	if err := r.backend.InitMeshBuffers(p, m.VertexData(), m.IndexData(), m.IndexCount()); err != nil {
		return nil, err
	}
	r.meshes[m] = p
	return p, nil
}

// prepareMaterial uploads textures that finished loading or changed, binds the
// fallback for textures still loading and returns the uniform writes.
func (r *renderer) prepareMaterial(p bind_group_provider.BindGroupProvider, m material.Material) ([]bind_group_provider.BufferWrite, error) {
	bindings := m.Bindings()
	var writes []bind_group_provider.BufferWrite
	for _, b := range bindings {
		idx := int(b.Index)
		switch b.Kind {
		case material.BindingUniform:
			writes = append(writes, bind_group_provider.BufferWrite{Provider: p, Binding: idx, Data: b.Data})
		case material.BindingTexture:
			var data common.TextureStagingData
			ok := false
			if b.Texture != nil {
				data, ok = b.Texture.Staging()
			}
			switch {
			case ok && data.Version != p.TextureVersion(idx):
				if err := r.backend.InitTexture(p, idx, data); err != nil {
					return nil, err
				}
				p.ResetBindGroup()
			case !ok && p.TextureView(idx) == nil:
				fallback, err := r.fallbackView()
				if err != nil {
					return nil, err
				}
				p.SetTextureView(idx, fallback)
				p.ResetBindGroup()
			}
		case material.BindingSampler:
			if p.Sampler(idx) == nil {
				if err := r.backend.InitSampler(p, idx, b.Sampler); err != nil {
					return nil, err
				}
			}
		}
	}
	if p.BindGroup() == nil {
		if err := r.backend.InitBindGroup(p, MaterialLayout(m.Name(), bindings)); err != nil {
			return nil, err
		}
	}
	return writes, nil
}

// fallbackView is the 1x1 black texture bound while a material texture loads.
func (r *renderer) fallbackView() (*wgpu.TextureView, error) {
	if v := r.fallback.TextureView(0); v != nil {
		return v, nil
	}
	err := r.backend.InitTexture(r.fallback, 0, common.TextureStagingData{
		Pixels: []byte{0, 0, 0, 255},
		Width:  1,
		Height: 1,
		Format: wgpu.TextureFormatRGBA8Unorm,
	})
	if err != nil {
		return nil, err
	}
	return r.fallback.TextureView(0), nil
}

func (r *renderer) fail(k pipeline.Key, err error) {
	if r.failed[k] {
		return
	}
	r.failed[k] = true
	r.logger.Printf("renderer: pipeline %s: %v", k, err)
}

func (r *renderer) shaderSource(ref material.ShaderRef) (string, bool) {
	if src, ok := engineSources[ref]; ok {
		return src, true
	}
	if r.assets == nil {
		return "", false
	}
	src, err := r.assets.Load(string(ref)).Text()
	if err != nil {
		return "", false
	}
	return src, true
}

// meshPipeline returns the pipeline for a mesh draw, building it on first use.
// It reports false while the shader is still loading or when it failed to build.
func (r *renderer) meshPipeline(k pipeline.Key, m material.Material, opts ...pipeline.PipelineBuilderOption) (pipeline.Pipeline, bool) {
	if p, ok := r.cache.Get(k); ok {
		return p, true
	}
	if r.failed[k] {
		return nil, false
	}
	src, ok := r.shaderSource(k.Shader)
	if !ok {
		return nil, false
	}
	s, err := shader.NewShader(k.String(), src, k.Defs(), r.pp)
	if err != nil {
		r.fail(k, err)
		return nil, false
	}

	layouts := []wgpu.BindGroupLayoutDescriptor{ViewLayout(), MeshLayout()}
	if k.Shader != DepthPrepassShader {
		if err := ValidateMaterialBindings(s, m.Bindings()); err != nil {
			r.fail(k, err)
			return nil, false
		}
		layouts = append(layouts, MaterialLayout(m.Name(), m.Bindings()))
	}

	p := pipeline.NewPipeline(k, pipeline.KindMesh, s, opts...)
	if err := r.backend.RegisterRenderPipeline(p, layouts); err != nil {
		r.fail(k, err)
		return nil, false
	}
	r.cache.Put(p)
	return p, true
}

func (r *renderer) prepass(g Graph, draws []preparedDraw) {
	targets := pipeline.PrepassTargets(g.Prepasses)
	formats := make([]wgpu.TextureFormat, len(targets))
	attachments := make([]wgpu.RenderPassColorAttachment, len(targets))
	for i, t := range targets {
		formats[i] = t.Format()
		attachments[i] = wgpu.RenderPassColorAttachment{
			View:    r.targets.prepassView(t),
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
		}
	}

	r.backend.BeginPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: attachments,
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.targets.depth.view,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	defer r.backend.EndPass()

	for _, d := range draws {
		k := pipeline.Key{
			Shader:   material.ShaderFor(d.item.Material, material.PassPrepass),
			Pass:     material.PassPrepass,
			Prepass:  g.Prepasses,
			Deferred: d.deferred,
		}
		groups := []bind_group_provider.BindGroupProvider{r.view, d.object, d.material}
		if len(targets) == 0 {
			k.Shader, k.Deferred = DepthPrepassShader, false
			groups = groups[:2]
		}
		p, ok := r.meshPipeline(k, d.item.Material, pipeline.WithColorFormats(formats...))
		if !ok {
			continue
		}
		r.backend.DrawCall(p, d.mesh, groups)
	}
}

func (r *renderer) deferredLighting(g Graph, clearColor wgpu.Color) {
	k := pipeline.Key{Shader: DeferredLightingShader, HDR: g.HDR}
	p, ok := r.fullscreenPipeline(k, MainFormat(g.HDR), []wgpu.BindGroupLayoutDescriptor{ViewLayout(), GBufferLayout()})
	if !ok {
		return
	}
	if r.gbuffer.BindGroup() == nil {
		if err := r.backend.InitBindGroup(r.gbuffer, GBufferLayout()); err != nil {
			r.fail(k, err)
			return
		}
	}

	r.backend.BeginPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       r.targets.main.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor,
		}},
	})
	r.backend.DrawFullscreen(p, []bind_group_provider.BindGroupProvider{r.view, r.gbuffer})
	r.backend.EndPass()
}

func (r *renderer) mainOpaque(g Graph, draws []preparedDraw, clearColor wgpu.Color) {
	colorLoad := wgpu.LoadOpClear
	if g.Has(PassDeferredLighting) {
		colorLoad = wgpu.LoadOpLoad
	}
	depthLoad := wgpu.LoadOpClear
	depthPrepass := g.Prepasses.Has(camera.PrepassDepth)
	if depthPrepass {
		depthLoad = wgpu.LoadOpLoad
	}

	r.backend.BeginPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       r.targets.main.view,
			LoadOp:     colorLoad,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.targets.depth.view,
			DepthLoadOp:     depthLoad,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	defer r.backend.EndPass()

	opts := []pipeline.PipelineBuilderOption{pipeline.WithColorFormats(MainFormat(g.HDR))}
	var prepass camera.Prepass
	if depthPrepass {
		prepass = camera.PrepassDepth
		opts = append(opts, pipeline.WithDepthCompare(wgpu.CompareFunctionLessEqual), pipeline.WithDepthWriteEnabled(false))
	}

	for _, d := range draws {
		if d.deferred {
			continue
		}
		k := pipeline.Key{
			Shader:  material.ShaderFor(d.item.Material, material.PassMain),
			Pass:    material.PassMain,
			Prepass: prepass,
			HDR:     g.HDR,
		}
		p, ok := r.meshPipeline(k, d.item.Material, opts...)
		if !ok {
			continue
		}
		r.backend.DrawCall(p, d.mesh, []bind_group_provider.BindGroupProvider{r.view, d.object, d.material})
	}
}

func (r *renderer) fullscreenPipeline(k pipeline.Key, format wgpu.TextureFormat, layouts []wgpu.BindGroupLayoutDescriptor) (pipeline.Pipeline, bool) {
	if p, ok := r.cache.Get(k); ok && p.ColorFormats()[0] == format {
		return p, true
	}
	if r.failed[k] {
		return nil, false
	}
	s, err := shader.NewShader(k.String(), engineSources[k.Shader], k.Defs(), r.pp)
	if err != nil {
		r.fail(k, err)
		return nil, false
	}
	p := pipeline.NewPipeline(k, pipeline.KindFullscreen, s, pipeline.WithColorFormats(format))
	if err := r.backend.RegisterRenderPipeline(p, layouts); err != nil {
		r.fail(k, err)
		return nil, false
	}
	r.cache.Put(p)
	return p, true
}

// fullscreen runs a single-input post-process pass into out.
func (r *renderer) fullscreen(k pipeline.Key, format wgpu.TextureFormat, out *wgpu.TextureView, source bind_group_provider.BindGroupProvider) {
	p, ok := r.fullscreenPipeline(k, format, []wgpu.BindGroupLayoutDescriptor{SourceLayout()})
	if !ok {
		return
	}
	if source.BindGroup() == nil {
		if err := r.backend.InitBindGroup(source, SourceLayout()); err != nil {
			r.fail(k, err)
			return
		}
	}

	r.backend.BeginPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:    out,
			LoadOp:  wgpu.LoadOpClear,
			StoreOp: wgpu.StoreOpStore,
		}},
	})
	r.backend.DrawFullscreen(p, []bind_group_provider.BindGroupProvider{source})
	r.backend.EndPass()
}

func (r *renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache.Clear()
	r.targets.release()
	r.targets = nil
	for _, p := range r.meshes {
		p.Release()
	}
	for _, p := range r.objects {
		p.Release()
	}
	for _, p := range r.materials {
		p.Release()
	}
	// Render target views are shared, so only the sampler and bind group are released here.
	for _, p := range []bind_group_provider.BindGroupProvider{r.view, r.gbuffer, r.tonemap, r.fxaa, r.fallback} {
		p.Release()
	}
	r.backend.Release()
}
