package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Bind group indices shared by every mesh and fullscreen shader.
const (
	GroupView     = 0
	GroupMesh     = 1
	GroupMaterial = 2
	// GroupGBuffer is the deferred lighting pass's G-buffer group.
	GroupGBuffer = 1
	// GroupSource is the sampled input of the tonemap and FXAA passes.
	GroupSource = 0
)

const stageAll = wgpu.ShaderStageVertex | wgpu.ShaderStageFragment

func uniformEntry(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: stageAll,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

func textureEntry(binding uint32, sample wgpu.TextureSampleType) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: stageAll,
		Texture: wgpu.TextureBindingLayout{
			SampleType:    sample,
			ViewDimension: wgpu.TextureViewDimension2D,
		},
	}
}

func samplerEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: stageAll,
		Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
	}
}

// ViewLayout is group 0 of mesh and deferred lighting pipelines: the view and lights uniforms.
func ViewLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "view",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(0, camera.GPUViewSize),
			uniformEntry(1, light.GPULightsSize),
		},
	}
}

// MeshLayout is group 1 of mesh pipelines: the per-object GPUMesh uniform.
func MeshLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label:   "mesh",
		Entries: []wgpu.BindGroupLayoutEntry{uniformEntry(0, GPUMeshSize)},
	}
}

// GBufferLayout is group 1 of the deferred lighting pipeline.
func GBufferLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "gbuffer",
		Entries: []wgpu.BindGroupLayoutEntry{
			textureEntry(0, wgpu.TextureSampleTypeUnfilterableFloat),
			textureEntry(1, wgpu.TextureSampleTypeUnfilterableFloat),
			textureEntry(2, wgpu.TextureSampleTypeUnfilterableFloat),
			textureEntry(3, wgpu.TextureSampleTypeDepth),
		},
	}
}

// SourceLayout is group 0 of the tonemap and FXAA pipelines.
func SourceLayout() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "source",
		Entries: []wgpu.BindGroupLayoutEntry{
			textureEntry(0, wgpu.TextureSampleTypeFloat),
			samplerEntry(1),
		},
	}
}

// MaterialLayout builds group 2 from a material's bindings.
//
// Parameters:
//   - name: the material name, used as the label
//   - bindings: the material's bindings
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: one entry per binding
func MaterialLayout(name string, bindings []material.Binding) wgpu.BindGroupLayoutDescriptor {
	desc := wgpu.BindGroupLayoutDescriptor{Label: "material " + name}
	for _, b := range bindings {
		switch b.Kind {
		case material.BindingUniform:
			desc.Entries = append(desc.Entries, uniformEntry(b.Index, uint64(len(b.Data))))
		case material.BindingTexture:
			desc.Entries = append(desc.Entries, textureEntry(b.Index, wgpu.TextureSampleTypeFloat))
		case material.BindingSampler:
			desc.Entries = append(desc.Entries, samplerEntry(b.Index))
		}
	}
	return desc
}

// ValidateMaterialBindings checks that every group 2 resource a shader declares is
// provided by the material with a matching kind.
//
// Parameters:
//   - s: the specialized shader
//   - bindings: the material's bindings
//
// Returns:
//   - error: a description of the first mismatch, nil when they agree
func ValidateMaterialBindings(s shader.Shader, bindings []material.Binding) error {
	byIndex := make(map[uint32]material.BindingKind, len(bindings))
	for _, b := range bindings {
		byIndex[b.Index] = b.Kind
	}
	for _, d := range s.Declarations() {
		if d.Group != GroupMaterial {
			continue
		}
		kind, ok := byIndex[d.Binding]
		if !ok {
			return fmt.Errorf("shader %s: %s at binding %d has no material binding", s.Key(), d.Name, d.Binding)
		}
		entry := shader.LayoutEntry(d, stageAll)
		var want material.BindingKind
		switch {
		case entry.Buffer.Type != wgpu.BufferBindingTypeUndefined:
			want = material.BindingUniform
		case entry.Texture.SampleType != wgpu.TextureSampleTypeUndefined:
			want = material.BindingTexture
		default:
			want = material.BindingSampler
		}
		if kind != want {
			return fmt.Errorf("shader %s: %s at binding %d does not match the material binding kind", s.Key(), d.Name, d.Binding)
		}
	}
	return nil
}
