package window

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// open initializes GLFW and creates the native window without a client API,
// since WebGPU owns the swap chain.
//
// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
func (w *glfwWindow) open() error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("window: init glfw: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("window: create %dx%d: %w", w.width, w.height, err)
	}
	handle.SetSizeLimits(w.limits.minWidth, w.limits.minHeight, w.limits.maxWidth, w.limits.maxHeight)
	w.handle = handle

	handle.SetKeyCallback(w.onKey)
	handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if w.on.button != nil && action != glfw.Repeat {
			w.on.button(int(button), action == glfw.Press)
		}
	})
	handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.on.move != nil {
			w.on.move(x, y)
		}
	})
	handle.SetScrollCallback(func(_ *glfw.Window, _, dy float64) {
		if w.on.scroll != nil {
			w.on.scroll(float32(dy))
		}
	})

	// Framebuffer size, not window size: they differ on high-DPI displays and the
	// surface is configured in pixels.
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.on.resize != nil {
			w.on.resize(width, height)
		}
	})
	w.width, w.height = handle.GetFramebufferSize()
	return nil
}

func (w *glfwWindow) onKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press && w.closeOnEscape {
		w.handle.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press:
		if w.on.down != nil {
			w.on.down(int(key))
		}
	case glfw.Release:
		if w.on.up != nil {
			w.on.up(int(key))
		}
	}
}

// SurfaceDescriptor uses the wgpuglfw bridge, which picks the HWND, Xlib,
// Wayland or Metal layer source for the running platform.
func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.handle == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(w.handle)
}

func (w *glfwWindow) Close() error {
	if w.handle == nil {
		return errors.New("window: already closed")
	}
	w.handle.SetShouldClose(true)
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
	return nil
}
