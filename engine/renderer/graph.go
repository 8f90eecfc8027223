package renderer

import (
	"strings"

	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

// PassKind is one node of the per-camera render graph.
type PassKind int

const (
	// PassPrepass writes depth and the camera's prepass targets for every opaque draw.
	PassPrepass PassKind = iota
	// PassDeferredLighting shades the G-buffer into the colour target.
	PassDeferredLighting
	// PassMainOpaque shades forward materials into the colour target.
	PassMainOpaque
	// PassTonemap maps the colour target into display range.
	PassTonemap
	// PassFxaa anti-aliases the tonemapped image onto the surface.
	PassFxaa
)

func (k PassKind) String() string {
	switch k {
	case PassPrepass:
		return "Prepass"
	case PassDeferredLighting:
		return "DeferredLighting"
	case PassMainOpaque:
		return "MainOpaque"
	case PassTonemap:
		return "Tonemap"
	case PassFxaa:
		return "Fxaa"
	default:
		return "Unknown"
	}
}

// Graph is the ordered pass list for one frame plus how each draw is lit.
type Graph struct {
	// Prepasses is the camera's prepass set, with depth added when the deferred prepass needs it.
	Prepasses camera.Prepass
	// Passes are the passes to run, in order.
	Passes []PassKind
	// Deferred holds, per draw item, whether it resolved to deferred shading.
	Deferred []bool
	HDR      bool
	Fxaa     bool
}

// Has reports whether the graph runs the given pass.
func (g Graph) Has(k PassKind) bool {
	for _, p := range g.Passes {
		if p == k {
			return true
		}
	}
	return false
}

// ForwardCount returns the number of draws shaded in the main pass.
func (g Graph) ForwardCount() int {
	n := 0
	for _, d := range g.Deferred {
		if !d {
			n++
		}
	}
	return n
}

func (g Graph) String() string {
	names := make([]string, len(g.Passes))
	for i, p := range g.Passes {
		names[i] = p.String()
	}
	return strings.Join(names, " -> ")
}

// NormalizePrepasses adds the depth prepass whenever the deferred prepass is attached.
func NormalizePrepasses(p camera.Prepass) camera.Prepass {
	if p.Has(camera.PrepassDeferred) {
		return p.With(camera.PrepassDepth)
	}
	return p
}

// ResolveMethod decides whether a material is shaded deferred for a camera. The
// material's own method wins over the renderer default, and deferred shading
// needs the camera's deferred prepass; everything else renders forward.
//
// Parameters:
//   - m: the material's opaque method
//   - def: the renderer's default method
//   - prepasses: the camera's prepass set
//
// Returns:
//   - bool: true for deferred shading
func ResolveMethod(m material.OpaqueMethod, def rendermode.Method, prepasses camera.Prepass) bool {
	if !prepasses.Has(camera.PrepassDeferred) {
		return false
	}
	switch m {
	case material.OpaqueDeferred:
		return true
	case material.OpaqueForward:
		return false
	default:
		return def == rendermode.Deferred
	}
}

// Plan builds the render graph for a frame.
//
// Parameters:
//   - view: the extracted frame
//
// Returns:
//   - Graph: the passes to run and the lighting path of every draw
func Plan(view FrameView) Graph {
	g := Graph{
		Prepasses: NormalizePrepasses(view.Prepasses),
		Deferred:  make([]bool, len(view.Draws)),
		HDR:       view.HDR,
		Fxaa:      view.Fxaa,
	}

	anyDeferred := false
	for i, d := range view.Draws {
		if d.Material == nil {
			continue
		}
		g.Deferred[i] = ResolveMethod(d.Material.OpaqueMethod(), view.Method, g.Prepasses)
		anyDeferred = anyDeferred || g.Deferred[i]
	}

	if g.Prepasses != camera.PrepassNone {
		g.Passes = append(g.Passes, PassPrepass)
	}
	if anyDeferred {
		g.Passes = append(g.Passes, PassDeferredLighting)
	}
	g.Passes = append(g.Passes, PassMainOpaque, PassTonemap)
	if view.Fxaa {
		g.Passes = append(g.Passes, PassFxaa)
	}
	return g
}
