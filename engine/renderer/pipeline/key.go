package pipeline

import (
	"fmt"
	"strconv"

	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Key identifies one pipeline specialization. Two draws with equal keys share a pipeline.
type Key struct {
	// Shader is the material shader, or the name of an engine fullscreen shader.
	Shader material.ShaderRef

	// Pass is the pass the pipeline renders in.
	Pass material.Pass

	// Prepass is the camera's prepass set. Main pass keys keep only the depth
	// flag, which switches the depth test to LessEqual against the prepass depth.
	Prepass camera.Prepass

	// HDR selects a floating point colour target.
	HDR bool

	// Deferred marks a material that resolved to deferred shading.
	Deferred bool
}

// String renders the key for labels and logs.
func (k Key) String() string {
	name := string(k.Shader)
	if k.Shader.IsDefault() {
		name = "standard"
	}
	s := fmt.Sprintf("%s/%s", name, k.Pass)
	if k.Prepass != camera.PrepassNone {
		s += "[" + k.Prepass.String() + "]"
	}
	if k.HDR {
		s += "/hdr"
	}
	if k.Deferred {
		s += "/deferred"
	}
	return s
}

// Defs derives the shader definitions for the key. Prepass keys get one def per
// attached prepass plus the @location of each colour output, in PrepassTargets order.
//
// Returns:
//   - shader.Defs: a fresh set the caller may extend
func (k Key) Defs() shader.Defs {
	defs := shader.Defs{}
	if k.HDR {
		defs.Set("HDR")
	}
	if k.Deferred {
		defs.Set("DEFERRED_MATERIAL")
	}
	if k.Pass != material.PassPrepass {
		return defs
	}

	defs.Set("PREPASS_PIPELINE")
	if k.Prepass.Has(camera.PrepassDepth) {
		defs.Set("DEPTH_PREPASS")
	}
	if k.Prepass.Has(camera.PrepassNormal) {
		defs.Set("NORMAL_PREPASS")
	}
	if k.Prepass.Has(camera.PrepassMotionVector) {
		defs.Set("MOTION_VECTOR_PREPASS")
	}
	if k.Prepass.Has(camera.PrepassDeferred) {
		defs.Set("DEFERRED_PREPASS")
	}
	targets := PrepassTargets(k.Prepass)
	if len(targets) > 0 {
		defs.Set("PREPASS_FRAGMENT")
	}
	for loc, t := range targets {
		defs[t.LocationDef()] = strconv.Itoa(loc)
	}
	return defs
}

// PrepassTarget is a colour output of the prepass.
type PrepassTarget int

const (
	// TargetNormal holds world normals encoded into [0, 1].
	TargetNormal PrepassTarget = iota
	// TargetMotionVector holds screen-space motion in uv units.
	TargetMotionVector
	// TargetGBuffer0 holds base colour and metallic.
	TargetGBuffer0
	// TargetGBuffer1 holds emissive and perceptual roughness.
	TargetGBuffer1
	// TargetGBuffer2 holds the encoded normal and the deferred-lit flag.
	TargetGBuffer2
)

func (t PrepassTarget) String() string {
	switch t {
	case TargetNormal:
		return "normal"
	case TargetMotionVector:
		return "motion vector"
	case TargetGBuffer0:
		return "gbuffer 0"
	case TargetGBuffer1:
		return "gbuffer 1"
	case TargetGBuffer2:
		return "gbuffer 2"
	default:
		return "unknown"
	}
}

// Format returns the texture format of the target.
func (t PrepassTarget) Format() wgpu.TextureFormat {
	if t == TargetMotionVector {
		return wgpu.TextureFormatRG16Float
	}
	return wgpu.TextureFormatRGBA16Float
}

// LocationDef is the shader def that carries the target's @location.
func (t PrepassTarget) LocationDef() string {
	switch t {
	case TargetNormal:
		return "NORMAL_LOCATION"
	case TargetMotionVector:
		return "MOTION_VECTOR_LOCATION"
	case TargetGBuffer0:
		return "DEFERRED_LOCATION_0"
	case TargetGBuffer1:
		return "DEFERRED_LOCATION_1"
	default:
		return "DEFERRED_LOCATION_2"
	}
}

// PrepassTargets lists the colour outputs of a prepass in attachment order.
//
// Parameters:
//   - p: the camera's prepass set
//
// Returns:
//   - []PrepassTarget: the outputs, empty for a depth-only prepass
func PrepassTargets(p camera.Prepass) []PrepassTarget {
	var out []PrepassTarget
	if p.Has(camera.PrepassNormal) {
		out = append(out, TargetNormal)
	}
	if p.Has(camera.PrepassMotionVector) {
		out = append(out, TargetMotionVector)
	}
	if p.Has(camera.PrepassDeferred) {
		out = append(out, TargetGBuffer0, TargetGBuffer1, TargetGBuffer2)
	}
	return out
}
