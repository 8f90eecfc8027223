package engine

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
	"github.com/Carmen-Shannon/oxy-orbs/engine/profiler"
	"github.com/Carmen-Shannon/oxy-orbs/engine/scene"
	"github.com/Carmen-Shannon/oxy-orbs/engine/window"
)

// StartupHook runs once before the first frame.
type StartupHook func(e Engine) error

// UpdateHook runs every frame after input is synced and before scenes update.
type UpdateHook func(e Engine, deltaTime float32)

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	keyboard input.Keyboard
	mouse    input.Mouse
	logger   *log.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	startupHooks []StartupHook
	updateHooks  []UpdateHook

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	lastFrame        time.Time
	renderErrors     map[string]bool
}

// Engine is the main entry point for the engine. It owns the frame loop: each
// iteration of the window's message loop syncs input, runs the update hooks,
// updates and renders every active scene, then ticks the profiler.
// Everything runs on the thread that created the window.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Keyboard returns the keyboard fed by the window's key callbacks.
	Keyboard() input.Keyboard

	// Mouse returns the mouse fed by the window's cursor, button and scroll callbacks.
	Mouse() input.Mouse

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// AddStartupHook registers a function run once before the first frame.
	// Hooks run in registration order; an error stops Run.
	//
	// Parameters:
	//   - hook: the function to run
	AddStartupHook(hook StartupHook)

	// AddUpdateHook registers a function run every frame.
	//
	// Parameters:
	//   - hook: the function to run, receiving the delta time in seconds
	AddUpdateHook(hook UpdateHook)

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated and rendered in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Run runs the startup hooks then the frame loop. Blocks until the window
	// closes or Quit is called.
	//
	// Returns:
	//   - error: the first startup hook error
	Run() error

	// Quit stops the frame loop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// When a window is set its input and resize callbacks are wired to the engine.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame limit, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:           &sync.Mutex{},
		quitChannel:  make(chan struct{}),
		keyboard:     input.NewKeyboard(),
		mouse:        input.NewMouse(),
		logger:       log.Default(),
		scenes:       make(map[int]scene.Scene),
		renderErrors: make(map[string]bool),
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.wireWindow()
	}
	return e
}

// wireWindow connects the window callbacks to input and resize handling.
func (e *engine) wireWindow() {
	e.window.SetKeyDownCallback(e.keyboard.Press)
	e.window.SetKeyUpCallback(e.keyboard.Release)
	e.window.SetMouseButtonCallback(e.mouse.SetButton)
	e.window.SetMouseMoveCallback(e.mouse.Move)
	e.window.SetScrollCallback(func(delta float32) {
		e.mouse.Scroll(float64(delta))
	})
	e.window.SetResizeCallback(e.resize)
}

func (e *engine) resize(width, height int) {
	for _, s := range e.sortedScenes() {
		if r := s.Renderer(); r != nil {
			r.Resize(width, height)
		}
		if height > 0 {
			for _, c := range s.Cameras() {
				c.SetAspect(float32(width) / float32(height))
			}
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Keyboard() input.Keyboard {
	return e.keyboard
}

func (e *engine) Mouse() input.Mouse {
	return e.mouse
}

func (e *engine) Run() error {
	if e.window == nil {
		return fmt.Errorf("engine: no window")
	}

	e.mu.Lock()
	hooks := append([]StartupHook(nil), e.startupHooks...)
	e.mu.Unlock()
	for _, hook := range hooks {
		if err := hook(e); err != nil {
			return fmt.Errorf("engine: startup: %w", err)
		}
	}

	// The surface size is only known once the window exists.
	e.resize(e.window.Width(), e.window.Height())

	e.lastFrame = time.Now()
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.window.RequestClose()
			return
		default:
		}
		e.frame()
	})
	e.window.ProcessMessages()

	// Renderers hold the window's surface, so they go first.
	for _, s := range e.sortedScenes() {
		if r := s.Renderer(); r != nil {
			r.Close()
		}
	}
	if err := e.window.Close(); err != nil {
		return fmt.Errorf("engine: close window: %w", err)
	}
	return nil
}

// frame runs one iteration of the loop.
func (e *engine) frame() {
	now := time.Now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now

	e.keyboard.Sync()
	e.mouse.Sync()

	e.mu.Lock()
	hooks := append([]UpdateHook(nil), e.updateHooks...)
	profiling := e.profilingEnabled
	limit := e.renderFrameLimit
	e.mu.Unlock()

	for _, hook := range hooks {
		hook(e, dt)
	}

	width, height := e.window.Width(), e.window.Height()
	for _, s := range e.sortedScenes() {
		if !s.Active() {
			continue
		}
		s.Update(e.keyboard, e.mouse, dt)
		if err := s.Render(width, height); err != nil {
			e.reportRenderError(s, err)
		}
	}

	if profiling {
		e.profiler.Tick()
	}

	// Frame rate limiting
	if limit > 0 {
		if remaining := limit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}
}

// reportRenderError logs each distinct error once so a persistent failure does not flood the log.
func (e *engine) reportRenderError(s scene.Scene, err error) {
	msg := err.Error()
	if e.renderErrors[msg] {
		return
	}
	e.renderErrors[msg] = true
	e.logger.Printf("engine: render scene %s: %v", s.Name(), err)
}

func (e *engine) sortedScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]scene.Scene, len(keys))
	for i, k := range keys {
		out[i] = e.scenes[k]
	}
	return out
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) AddStartupHook(hook StartupHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.startupHooks = append(e.startupHooks, hook)
}

func (e *engine) AddUpdateHook(hook UpdateHook) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.updateHooks = append(e.updateHooks, hook)
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.renderFrameLimit = frameDuration(fps)
}

// frameDuration converts a frame rate cap to a minimum frame duration, 0 when uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}
