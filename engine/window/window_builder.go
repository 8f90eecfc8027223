package window

import "github.com/go-gl/glfw/v3.3/glfw"

// WindowBuilderOption configures a window before it opens.
type WindowBuilderOption func(w *glfwWindow)

// WithTitle sets the initial title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *glfwWindow) {
		w.title = title
	}
}

// WithSize sets the requested client area size. The framebuffer may end up
// larger on high-DPI displays; Width and Height report the framebuffer.
//
// Parameters:
//   - width: requested width in screen coordinates
//   - height: requested height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *glfwWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithMinSize bounds how small the user can resize the window.
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *glfwWindow) {
		w.limits.minWidth, w.limits.minHeight = width, height
	}
}

// WithMaxSize bounds how large the user can resize the window. Zero or a
// negative value leaves that side unbounded.
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *glfwWindow) {
		w.limits.maxWidth, w.limits.maxHeight = orDontCare(width), orDontCare(height)
	}
}

// WithCloseOnEscape controls whether Escape closes the window. Enabled by default.
func WithCloseOnEscape(enabled bool) WindowBuilderOption {
	return func(w *glfwWindow) {
		w.closeOnEscape = enabled
	}
}

func orDontCare(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}
