package shader

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// bindingDeclRegex matches `@group(G) @binding(B) var<space> name: Type;` and the
// handle form without an address space.
var bindingDeclRegex = regexp.MustCompile(`@group\(\s*(\d+)\s*\)\s*@binding\(\s*(\d+)\s*\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+);`)

var entryPointRegex = regexp.MustCompile(`@(vertex|fragment)\s+fn\s+(\w+)`)

// Declaration is one resource binding declared in WGSL source.
type Declaration struct {
	Group        uint32
	Binding      uint32
	Name         string
	AddressSpace string // "uniform", "storage, read", empty for textures and samplers
	Type         string
}

// Declarations lists the resource bindings declared in source, ordered by group then binding.
func Declarations(source string) []Declaration {
	cleaned := stripLineComments(source)
	var out []Declaration
	for _, m := range bindingDeclRegex.FindAllStringSubmatch(cleaned, -1) {
		group, _ := strconv.ParseUint(m[1], 10, 32)
		binding, _ := strconv.ParseUint(m[2], 10, 32)
		out = append(out, Declaration{
			Group:        uint32(group),
			Binding:      uint32(binding),
			AddressSpace: strings.TrimSpace(m[3]),
			Name:         m[4],
			Type:         strings.TrimSpace(m[5]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Group != out[j].Group {
			return out[i].Group < out[j].Group
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}

// LayoutEntry derives the bind group layout entry for a declaration.
//
// Parameters:
//   - d: the declaration
//   - visibility: the stages that see the resource
//
// Returns:
//   - wgpu.BindGroupLayoutEntry: the populated entry
func LayoutEntry(d Declaration, visibility wgpu.ShaderStage) wgpu.BindGroupLayoutEntry {
	entry := wgpu.BindGroupLayoutEntry{
		Binding:    d.Binding,
		Visibility: visibility,
	}

	switch {
	case d.AddressSpace == "uniform":
		entry.Buffer.Type = wgpu.BufferBindingTypeUniform
	case strings.HasPrefix(d.AddressSpace, "storage"):
		if strings.Contains(d.AddressSpace, "read_write") {
			entry.Buffer.Type = wgpu.BufferBindingTypeStorage
		} else {
			entry.Buffer.Type = wgpu.BufferBindingTypeReadOnlyStorage
		}
	case d.Type == "sampler":
		entry.Sampler.Type = wgpu.SamplerBindingTypeFiltering
	case d.Type == "sampler_comparison":
		entry.Sampler.Type = wgpu.SamplerBindingTypeComparison
	case strings.HasPrefix(d.Type, "texture_depth_2d"):
		entry.Texture.SampleType = wgpu.TextureSampleTypeDepth
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
	case strings.HasPrefix(d.Type, "texture_2d"):
		entry.Texture.ViewDimension = wgpu.TextureViewDimension2D
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
		switch {
		case strings.Contains(d.Type, "<u32>"):
			entry.Texture.SampleType = wgpu.TextureSampleTypeUint
		case strings.Contains(d.Type, "<i32>"):
			entry.Texture.SampleType = wgpu.TextureSampleTypeSint
		}
	case strings.HasPrefix(d.Type, "texture_cube"):
		entry.Texture.ViewDimension = wgpu.TextureViewDimensionCube
		entry.Texture.SampleType = wgpu.TextureSampleTypeFloat
	}
	return entry
}

// BindGroupLayouts builds one layout descriptor per declared group.
//
// Parameters:
//   - source: plain (pre-processed) WGSL
//   - visibility: the stages that see every resource
//
// Returns:
//   - map[uint32]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
func BindGroupLayouts(source string, visibility wgpu.ShaderStage) map[uint32]wgpu.BindGroupLayoutDescriptor {
	out := make(map[uint32]wgpu.BindGroupLayoutDescriptor)
	for _, d := range Declarations(source) {
		desc := out[d.Group]
		desc.Entries = append(desc.Entries, LayoutEntry(d, visibility))
		out[d.Group] = desc
	}
	return out
}

// EntryPoints returns the names of the @vertex and @fragment functions in source.
// A missing stage yields an empty name.
func EntryPoints(source string) (vertex, fragment string) {
	for _, m := range entryPointRegex.FindAllStringSubmatch(stripLineComments(source), -1) {
		switch m[1] {
		case "vertex":
			if vertex == "" {
				vertex = m[2]
			}
		case "fragment":
			if fragment == "" {
				fragment = m[2]
			}
		}
	}
	return vertex, fragment
}

func stripLineComments(source string) string {
	lines := strings.Split(source, "\n")
	for i, line := range lines {
		if before, _, ok := strings.Cut(line, "//"); ok {
			lines[i] = before
		}
	}
	return strings.Join(lines, "\n")
}
