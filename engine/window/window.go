package window

import (
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is the OS window the engine renders into and reads input from.
//
// Every callback runs on the goroutine that called ProcessMessages, between two
// update callbacks, so handlers may touch engine state without locking.
type Window interface {
	// SetUpdateCallback sets the function run once per message loop iteration,
	// after pending events have been dispatched.
	//
	// Parameters:
	//   - callback: the per-iteration function, nil to disable
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function run when the framebuffer changes size.
	//
	// Parameters:
	//   - callback: receives the framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the function run on vertical scroll.
	//
	// Parameters:
	//   - callback: receives the scroll offset, positive away from the user
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the function run when a key goes down. OS key
	// repeat is not reported.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode int))

	// SetKeyUpCallback sets the function run when a key is released.
	//
	// Parameters:
	//   - callback: receives the key code (see common.Key*)
	SetKeyUpCallback(callback func(keyCode int))

	// SetMouseButtonCallback sets the function run when a mouse button changes state.
	//
	// Parameters:
	//   - callback: receives the button index and whether it is now held
	SetMouseButtonCallback(callback func(button int, down bool))

	// SetMouseMoveCallback sets the function run when the cursor moves.
	//
	// Parameters:
	//   - callback: receives the cursor position in window coordinates
	SetMouseMoveCallback(callback func(x, y float64))

	// SetTitle replaces the title bar text.
	SetTitle(title string)

	// SurfaceDescriptor describes the native surface for the WebGPU instance.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform surface, nil once the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is still open.
	IsRunning() bool

	// RequestClose makes ProcessMessages return after the current iteration.
	// The window stays valid until Close.
	RequestClose()

	// Close destroys the window. Closing twice is an error.
	//
	// Returns:
	//   - error: an error if the window is already closed
	Close() error

	// ProcessMessages polls events and runs the update callback until the window
	// closes. Must be called from the goroutine that created the window.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

// sizeLimits bounds interactive resizing. glfw.DontCare leaves a side unbounded.
type sizeLimits struct {
	minWidth, minHeight int
	maxWidth, maxHeight int
}

type callbacks struct {
	update func()
	resize func(width, height int)
	scroll func(delta float32)
	down   func(keyCode int)
	up     func(keyCode int)
	button func(button int, down bool)
	move   func(x, y float64)
}

// glfwWindow is the GLFW implementation of Window.
type glfwWindow struct {
	handle *glfw.Window

	title         string
	width, height int
	limits        sizeLimits
	closeOnEscape bool

	on callbacks
}

var _ Window = &glfwWindow{}

// NewWindow opens a window. The calling goroutine is locked to its OS thread,
// which GLFW requires for every later call.
//
// Parameters:
//   - options: functional options applied over the defaults
//
// Returns:
//   - Window: the open window
//   - error: an error if GLFW could not be initialized or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &glfwWindow{
		title:         "oxy",
		width:         1280,
		height:        720,
		limits:        sizeLimits{minWidth: 320, minHeight: 240, maxWidth: glfw.DontCare, maxHeight: glfw.DontCare},
		closeOnEscape: true,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *glfwWindow) SetUpdateCallback(callback func()) { w.on.update = callback }

func (w *glfwWindow) SetResizeCallback(callback func(width, height int)) { w.on.resize = callback }

func (w *glfwWindow) SetScrollCallback(callback func(delta float32)) { w.on.scroll = callback }

func (w *glfwWindow) SetKeyDownCallback(callback func(keyCode int)) { w.on.down = callback }

func (w *glfwWindow) SetKeyUpCallback(callback func(keyCode int)) { w.on.up = callback }

func (w *glfwWindow) SetMouseButtonCallback(callback func(button int, down bool)) {
	w.on.button = callback
}

func (w *glfwWindow) SetMouseMoveCallback(callback func(x, y float64)) { w.on.move = callback }

func (w *glfwWindow) SetTitle(title string) {
	if title == w.title {
		return
	}
	w.title = title
	if w.handle != nil {
		w.handle.SetTitle(title)
	}
}

func (w *glfwWindow) IsRunning() bool {
	return w.handle != nil && !w.handle.ShouldClose()
}

func (w *glfwWindow) RequestClose() {
	if w.handle != nil {
		w.handle.SetShouldClose(true)
	}
}

func (w *glfwWindow) ProcessMessages() {
	for w.IsRunning() {
		glfw.PollEvents()
		if !w.IsRunning() {
			break
		}
		if w.on.update != nil {
			w.on.update()
		}
		runtime.Gosched()
	}
}

func (w *glfwWindow) Width() int { return w.width }

func (w *glfwWindow) Height() int { return w.height }
