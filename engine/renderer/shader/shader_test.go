package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionals(t *testing.T) {
	src := strings.Join([]string{
		"a",
		"#ifdef FOO",
		"foo",
		"#ifndef BAR",
		"foo-not-bar",
		"#else",
		"foo-bar",
		"#endif",
		"#else",
		"not-foo",
		"#ifdef BAR",
		"hidden",
		"#endif",
		"#endif",
		"z",
	}, "\n")

	pp := NewPreProcessor()
	out, err := pp.Process(src, Defs{"FOO": ""})
	require.NoError(t, err)
	assert.Equal(t, "a\nfoo\nfoo-not-bar\nz\n", out)

	out, err = pp.Process(src, Defs{"FOO": "", "BAR": ""})
	require.NoError(t, err)
	assert.Equal(t, "a\nfoo\nfoo-bar\nz\n", out)
	// BAR is defined but its block sits in the inactive #else of FOO.
	assert.NotContains(t, out, "hidden")

	out, err = pp.Process(src, Defs{"BAR": ""})
	require.NoError(t, err)
	assert.Equal(t, "a\nnot-foo\nhidden\nz\n", out)

	out, err = pp.Process(src, Defs{})
	require.NoError(t, err)
	assert.Equal(t, "a\nnot-foo\nz\n", out)
}

func TestUnbalancedConditionals(t *testing.T) {
	for name, src := range map[string]string{
		"stray endif":  "a\n#endif",
		"stray else":   "#else",
		"double else":  "#ifdef A\n#else\n#else\n#endif",
		"unterminated": "#ifdef A\nx",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Compose(src, Defs{})
			assert.ErrorIs(t, err, ErrUnbalancedConditional)
		})
	}
}

func TestBadDirectives(t *testing.T) {
	_, err := Compose("#define X 1", Defs{})
	assert.ErrorIs(t, err, ErrBadDirective)

	_, err = Compose("#ifdef", Defs{})
	assert.ErrorIs(t, err, ErrBadDirective)

	_, err = Compose("@location(#{MISSING}) x", Defs{})
	assert.ErrorIs(t, err, ErrUndefinedValue)
}

func TestValueSubstitution(t *testing.T) {
	out, err := Compose("@location(#{LOC}) a: f32, @location(#{LOC2}) b: f32", Defs{"LOC": "1", "LOC2": "3"})
	require.NoError(t, err)
	assert.Equal(t, "@location(1) a: f32, @location(3) b: f32\n", out)
}

func TestImportsAreEmittedOnce(t *testing.T) {
	pp := NewPreProcessor(
		WithModule("game::a", "#import game::b\nfn a() {}"),
		WithModule("game::b", "#import game::a\nfn b() {}"),
	)
	out, err := pp.Process("#import game::a\n#import game::b\nfn main() {}", Defs{})
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "fn a()"))
	assert.Equal(t, 1, strings.Count(out, "fn b()"))
	assert.Less(t, strings.Index(out, "fn b()"), strings.Index(out, "fn a()"))
	assert.Equal(t, []string{"game::b", "game::a"}, pp.Imports())

	_, err = pp.Process("#import game::missing", Defs{})
	assert.ErrorIs(t, err, ErrUnknownImport)
}

func TestImportInsideInactiveBlockIsIgnored(t *testing.T) {
	out, err := Compose("#ifdef NOPE\n#import oxy::missing\n#endif\nok", Defs{})
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)
}

func TestStandardShaderMainPass(t *testing.T) {
	s, err := NewShader("standard main", StandardSource, Defs{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.NotContains(t, s.Source(), "#import")
	assert.NotContains(t, s.Source(), "#{")
	assert.Contains(t, s.Source(), "@location(0) color: vec4<f32>")
	assert.Contains(t, s.Imports(), ModuleView)
	assert.Contains(t, s.Imports(), ModuleLights)

	decls := s.Declarations()
	require.Len(t, decls, 4)
	assert.Equal(t, Declaration{Group: 0, Binding: 0, Name: "view", AddressSpace: "uniform", Type: "View"}, decls[0])
	assert.Equal(t, "lights", decls[1].Name)
	assert.Equal(t, "mesh", decls[2].Name)
	assert.Equal(t, Declaration{Group: 2, Binding: 0, Name: "material", AddressSpace: "uniform", Type: "StandardMaterial"}, decls[3])
}

func TestStandardShaderDeferredPrepass(t *testing.T) {
	defs := Defs{
		"PREPASS_PIPELINE":       "",
		"PREPASS_FRAGMENT":       "",
		"MOTION_VECTOR_PREPASS":  "",
		"MOTION_VECTOR_LOCATION": "0",
		"DEFERRED_PREPASS":       "",
		"DEFERRED_MATERIAL":      "",
		"DEFERRED_LOCATION_0":    "1",
		"DEFERRED_LOCATION_1":    "2",
		"DEFERRED_LOCATION_2":    "3",
	}
	s, err := NewShader("standard prepass", StandardSource, defs, nil)
	require.NoError(t, err)
	src := s.Source()
	assert.Contains(t, src, "@location(0) motion_vector: vec2<f32>")
	assert.Contains(t, src, "@location(3) gbuffer2: vec4<f32>")
	assert.Contains(t, src, "out.gbuffer2 = vec4<f32>(normalize(p.world_normal) * 0.5 + 0.5, 1.0);")
	assert.NotContains(t, src, "apply_lighting(p), p.base_color.a")
	assert.NotContains(t, src, "@location(0) color")
}

func TestDepthPrepassHasNoFragmentStage(t *testing.T) {
	s, err := NewShader("depth", DepthPrepassSource, Defs{"PREPASS_PIPELINE": ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Empty(t, s.FragmentEntryPoint())
	assert.NotContains(t, s.Source(), "struct FragmentOutput")
}

func TestFullscreenShaders(t *testing.T) {
	for name, src := range map[string]string{
		"deferred": DeferredLightingSource,
		"tonemap":  TonemapSource,
		"fxaa":     FxaaSource,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := NewShader(name, src, Defs{"HDR": ""}, nil)
			require.NoError(t, err)
			assert.Equal(t, "vs_fullscreen", s.VertexEntryPoint())
			assert.Equal(t, "fs_main", s.FragmentEntryPoint())
		})
	}
}

func TestBindGroupLayoutFromDeclarations(t *testing.T) {
	s, err := NewShader("deferred", DeferredLightingSource, Defs{}, nil)
	require.NoError(t, err)

	desc := s.BindGroupLayout(1, wgpu.ShaderStageFragment)
	require.Len(t, desc.Entries, 4)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.TextureViewDimension2D, desc.Entries[0].Texture.ViewDimension)
	assert.Equal(t, wgpu.TextureSampleTypeDepth, desc.Entries[3].Texture.SampleType)
	assert.Equal(t, wgpu.ShaderStageFragment, desc.Entries[3].Visibility)

	tonemap, err := NewShader("tonemap", TonemapSource, Defs{}, nil)
	require.NoError(t, err)
	layouts := BindGroupLayouts(tonemap.Source(), wgpu.ShaderStageFragment)
	require.Len(t, layouts[0].Entries, 2)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, layouts[0].Entries[1].Sampler.Type)
}

func TestShaderRequiresVertexStage(t *testing.T) {
	_, err := NewShader("frag only", "@fragment fn fs_main() {}", Defs{}, nil)
	assert.Error(t, err)
}

func TestDefsString(t *testing.T) {
	d := Defs{"B": "2"}.Set("A")
	assert.Equal(t, "A,B=2", d.String())
	c := d.Clone().Set("C")
	assert.False(t, d.Has("C"))
	assert.True(t, c.Has("C"))
}
