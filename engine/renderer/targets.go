package renderer

import (
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// DepthFormat is the depth attachment format of every mesh pass.
const DepthFormat = wgpu.TextureFormatDepth32Float

// MainFormat returns the colour target format opaque passes render into.
func MainFormat(hdr bool) wgpu.TextureFormat {
	if hdr {
		return wgpu.TextureFormatRGBA16Float
	}
	return wgpu.TextureFormatRGBA8Unorm
}

// targetConfig is everything the render target set depends on.
type targetConfig struct {
	width, height uint32
	hdr           bool
	fxaa          bool
	prepasses     camera.Prepass
	surfaceFormat wgpu.TextureFormat
}

type target struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
}

func (t *target) release() {
	if t == nil {
		return
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

// renderTargets holds the per-size textures of one camera: the main colour
// target, depth, the prepass outputs and the FXAA input.
type renderTargets struct {
	config  targetConfig
	main    *target
	depth   *target
	prepass map[pipeline.PrepassTarget]*target
	// ldr holds the tonemapped image when FXAA runs after tonemapping.
	ldr *target
}

func (r *renderTargets) release() {
	if r == nil {
		return
	}
	r.main.release()
	r.depth.release()
	for _, t := range r.prepass {
		t.release()
	}
	r.ldr.release()
}

// prepassView returns the view of a prepass target, nil if the target is not allocated.
func (r *renderTargets) prepassView(t pipeline.PrepassTarget) *wgpu.TextureView {
	if pt, ok := r.prepass[t]; ok {
		return pt.view
	}
	return nil
}

func createTarget(backend RendererBackend, label string, format wgpu.TextureFormat, w, h uint32) (*target, error) {
	tex, view, err := backend.CreateRenderTarget(label, format, w, h)
	if err != nil {
		return nil, err
	}
	return &target{texture: tex, view: view}, nil
}

// newRenderTargets allocates every target a configuration needs. On error the
// targets created so far are released.
func newRenderTargets(backend RendererBackend, cfg targetConfig) (*renderTargets, error) {
	rt := &renderTargets{config: cfg, prepass: make(map[pipeline.PrepassTarget]*target)}
	var err error
	if rt.main, err = createTarget(backend, "Main Colour Target", MainFormat(cfg.hdr), cfg.width, cfg.height); err != nil {
		rt.release()
		return nil, err
	}
	if rt.depth, err = createTarget(backend, "Depth Target", DepthFormat, cfg.width, cfg.height); err != nil {
		rt.release()
		return nil, err
	}
	for _, t := range pipeline.PrepassTargets(cfg.prepasses) {
		pt, err := createTarget(backend, "Prepass "+t.String()+" Target", t.Format(), cfg.width, cfg.height)
		if err != nil {
			rt.release()
			return nil, err
		}
		rt.prepass[t] = pt
	}
	if cfg.fxaa {
		if rt.ldr, err = createTarget(backend, "Tonemapped Target", cfg.surfaceFormat, cfg.width, cfg.height); err != nil {
			rt.release()
			return nil, err
		}
	}
	return rt, nil
}
