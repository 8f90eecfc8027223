// Package config loads the demo's settings from a TOML file layered over defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full demo configuration.
type Config struct {
	Window WindowConfig `toml:"window"`
	Assets AssetsConfig `toml:"assets"`
	Render RenderConfig `toml:"render"`
	Input  InputConfig  `toml:"input"`
}

// WindowConfig configures the OS window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// AssetsConfig configures the asset server.
type AssetsConfig struct {
	Root           string `toml:"root"`
	EnvironmentMap string `toml:"environment_map"`
	GlowShader     string `toml:"glow_shader"`
	HotReload      bool   `toml:"hot_reload"`
	WatchDelayMS   int    `toml:"watch_delay_ms"`
	LoadWorkers    int    `toml:"load_workers"`
}

// RenderConfig configures the renderer.
type RenderConfig struct {
	Method     string     `toml:"method"`
	Msaa       int        `toml:"msaa"`
	ClearColor [3]float32 `toml:"clear_color"`
	Ambient    [3]float32 `toml:"ambient"`
	FrameLimit int        `toml:"frame_limit"`
	Profiling  bool       `toml:"profiling"`
}

// InputConfig binds the render-mode keys. -1 leaves a key unbound.
type InputConfig struct {
	DeferredKey int `toml:"deferred_key"`
	ForwardKey  int `toml:"forward_key"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "deferred orbs",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Assets: AssetsConfig{
			Root:           "examples/assets",
			EnvironmentMap: "textures/stone_alley_02_1k.hdr",
			GlowShader:     "shaders/glowy.wgsl",
			HotReload:      true,
			WatchDelayMS:   100,
			LoadWorkers:    2,
		},
		Render: RenderConfig{
			Method:  rendermode.Deferred.String(),
			Msaa:    1,
			Ambient: [3]float32{0.02, 0.02, 0.02},
		},
		Input: InputConfig{
			DeferredKey: common.Key1,
			ForwardKey:  common.Key2,
		},
	}
}

// Parse overlays TOML data on the defaults and validates the result. Unknown keys are rejected.
//
// Parameters:
//   - data: TOML document
//
// Returns:
//   - Config: the merged configuration
//   - error: decode or validation failure
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a TOML file.
//
// Parameters:
//   - path: file path
//
// Returns:
//   - Config: the merged configuration
//   - error: read, decode or validation failure
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns the defaults when the file does not exist.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if _, err := rendermode.ParseMethod(c.Render.Method); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Render.Msaa != 1 {
		return fmt.Errorf("%w: msaa %d, only 1 sample is supported with deferred rendering", ErrInvalid, c.Render.Msaa)
	}
	if c.Assets.WatchDelayMS < 0 {
		return fmt.Errorf("%w: negative watch delay", ErrInvalid)
	}
	if c.Assets.Root == "" {
		return fmt.Errorf("%w: empty asset root", ErrInvalid)
	}
	for _, k := range []int{c.Input.DeferredKey, c.Input.ForwardKey} {
		if k != rendermode.Unbound && (k < 0 || k >= common.MaxKeyCode) {
			return fmt.Errorf("%w: key code %d", ErrInvalid, k)
		}
	}
	return nil
}

// Method returns the parsed initial opaque method. Call only on a validated config.
func (c Config) Method() rendermode.Method {
	m, _ := rendermode.ParseMethod(c.Render.Method)
	return m
}

// WatchDelay returns the hot reload debounce interval.
func (c Config) WatchDelay() time.Duration {
	return time.Duration(c.Assets.WatchDelayMS) * time.Millisecond
}

// ClearColor returns the clear colour as an opaque sRGB colour.
func (c Config) ClearColor() common.Color {
	cc := c.Render.ClearColor
	return common.RGB(cc[0], cc[1], cc[2])
}
