// pre_processor.go implements the Oxy WGSL pre-processor. Shader sources are
// specialized per pipeline with a set of Defs: #ifdef, #ifndef, #else and #endif
// select lines, #{NAME} substitutes a def's value, and #import oxy::<module>
// splices in an engine module. Each module is emitted at most once per Process
// call, so modules can import their own dependencies freely.
package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
)

var (
	// ErrUnknownImport is returned for an #import that names no registered module.
	ErrUnknownImport = errors.New("unknown shader import")

	// ErrUnbalancedConditional is returned for #else/#endif without an open #ifdef, or an #ifdef left open.
	ErrUnbalancedConditional = errors.New("unbalanced shader conditional")

	// ErrUndefinedValue is returned when #{NAME} references a def that is not set.
	ErrUndefinedValue = errors.New("undefined shader def value")

	// ErrBadDirective is returned for an unknown or malformed # directive.
	ErrBadDirective = errors.New("malformed shader directive")
)

// Engine module names available to #import.
const (
	ModuleView       = "oxy::view"
	ModuleLights     = "oxy::lights"
	ModuleVertex     = "oxy::vertex"
	ModuleMesh       = "oxy::mesh"
	ModulePbr        = "oxy::pbr"
	ModuleOutput     = "oxy::output"
	ModuleFullscreen = "oxy::fullscreen"
)

const (
	viewBinding   = "\n@group(0) @binding(0) var<uniform> view: View;\n"
	lightsBinding = "\n@group(0) @binding(1) var<uniform> lights: Lights;\n"
)

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// modules maps an import name to its WGSL source.
	modules map[string]string

	// imported lists the modules spliced in by the most recent Process call, in order.
	imported []string
}

// condFrame is one open #ifdef/#ifndef block.
type condFrame struct {
	cond    bool
	parent  bool
	active  bool
	sawElse bool
	line    int
}

// PreProcessor specializes WGSL source for a set of shader defs and resolves
// engine module imports.
type PreProcessor interface {
	// Process expands directives in source against defs.
	//
	// Parameters:
	//   - source: WGSL source containing pre-processor directives
	//   - defs: the definitions for this specialization
	//
	// Returns:
	//   - string: plain WGSL
	//   - error: ErrUnknownImport, ErrUnbalancedConditional, ErrUndefinedValue or
	//     ErrBadDirective wrapped with the module name and line number
	Process(source string, defs Defs) (string, error)

	// Imports returns the modules spliced in by the most recent Process call.
	//
	// Returns:
	//   - []string: module names, dependencies before their importers
	Imports() []string

	// Module returns the registered source of a module.
	Module(name string) (string, bool)
}

var _ PreProcessor = &preProcessor{}

// PreProcessorOption is a functional option for NewPreProcessor.
type PreProcessorOption func(*preProcessor)

// WithModule registers or replaces an importable module.
//
// Parameters:
//   - name: the import path, e.g. "game::noise"
//   - source: the module's WGSL
//
// Returns:
//   - PreProcessorOption: a function that registers the module
func WithModule(name, source string) PreProcessorOption {
	return func(p *preProcessor) {
		p.modules[name] = source
	}
}

// NewPreProcessor creates a PreProcessor with the engine modules registered. The
// view, lights and vertex modules are the WGSL twins of the GPU structs declared
// in the camera, light and model packages.
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor
func NewPreProcessor(options ...PreProcessorOption) PreProcessor {
	p := &preProcessor{
		modules: map[string]string{
			ModuleView:       camera.GPUViewSource + viewBinding,
			ModuleLights:     light.GPULightsSource + lightsBinding,
			ModuleVertex:     model.GPUVertexSource,
			ModuleMesh:       meshSource,
			ModulePbr:        pbrSource,
			ModuleOutput:     outputSource,
			ModuleFullscreen: fullscreenSource,
		},
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Compose specializes a source with the engine modules.
//
// Parameters:
//   - source: WGSL with directives
//   - defs: the definitions for this specialization
//
// Returns:
//   - string: plain WGSL
//   - error: a pre-processing error
func Compose(source string, defs Defs) (string, error) {
	return NewPreProcessor().Process(source, defs)
}

func (p *preProcessor) Process(source string, defs Defs) (string, error) {
	p.imported = p.imported[:0]
	var out strings.Builder
	if err := p.expand(&out, "source", source, defs, make(map[string]bool)); err != nil {
		return "", err
	}
	return out.String(), nil
}

func (p *preProcessor) Imports() []string {
	return append([]string(nil), p.imported...)
}

func (p *preProcessor) Module(name string) (string, bool) {
	src, ok := p.modules[name]
	return src, ok
}

func (p *preProcessor) expand(out *strings.Builder, name, source string, defs Defs, seen map[string]bool) error {
	var stack []condFrame
	active := func() bool {
		return len(stack) == 0 || stack[len(stack)-1].active
	}

	for i, line := range strings.Split(source, "\n") {
		n := i + 1
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "#{") {
			if !active() {
				continue
			}
			expanded, err := substitute(line, defs)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", name, n, err)
			}
			out.WriteString(expanded)
			out.WriteByte('\n')
			continue
		}

		fields := strings.Fields(trimmed)
		switch fields[0] {
		case "#ifdef", "#ifndef":
			if len(fields) != 2 {
				return fmt.Errorf("%s:%d: %s takes one name: %w", name, n, fields[0], ErrBadDirective)
			}
			cond := defs.Has(fields[1])
			if fields[0] == "#ifndef" {
				cond = !cond
			}
			parent := active()
			stack = append(stack, condFrame{cond: cond, parent: parent, active: parent && cond, line: n})
		case "#else":
			if len(stack) == 0 || stack[len(stack)-1].sawElse {
				return fmt.Errorf("%s:%d: stray #else: %w", name, n, ErrUnbalancedConditional)
			}
			top := &stack[len(stack)-1]
			top.sawElse = true
			top.active = top.parent && !top.cond
		case "#endif":
			if len(stack) == 0 {
				return fmt.Errorf("%s:%d: stray #endif: %w", name, n, ErrUnbalancedConditional)
			}
			stack = stack[:len(stack)-1]
		case "#import":
			if len(fields) != 2 {
				return fmt.Errorf("%s:%d: #import takes one module: %w", name, n, ErrBadDirective)
			}
			if !active() {
				continue
			}
			module := fields[1]
			src, ok := p.modules[module]
			if !ok {
				return fmt.Errorf("%s:%d: %w %q", name, n, ErrUnknownImport, module)
			}
			if seen[module] {
				continue
			}
			seen[module] = true
			if err := p.expand(out, module, src, defs, seen); err != nil {
				return err
			}
			p.imported = append(p.imported, module)
		default:
			return fmt.Errorf("%s:%d: %q: %w", name, n, fields[0], ErrBadDirective)
		}
	}

	if len(stack) > 0 {
		return fmt.Errorf("%s:%d: #ifdef without #endif: %w", name, stack[len(stack)-1].line, ErrUnbalancedConditional)
	}
	return nil
}

// substitute replaces every #{NAME} in line with the value of defs[NAME].
func substitute(line string, defs Defs) (string, error) {
	if !strings.Contains(line, "#{") {
		return line, nil
	}
	var b strings.Builder
	rest := line
	for {
		before, after, ok := strings.Cut(rest, "#{")
		b.WriteString(before)
		if !ok {
			return b.String(), nil
		}
		key, tail, ok := strings.Cut(after, "}")
		if !ok {
			return "", fmt.Errorf("unterminated #{: %w", ErrBadDirective)
		}
		value, defined := defs[key]
		if !defined {
			return "", fmt.Errorf("%w %q", ErrUndefinedValue, key)
		}
		b.WriteString(value)
		rest = tail
	}
}
