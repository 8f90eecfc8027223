package renderer

// RendererBackendType selects the GPU API behind a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU renders through WebGPU (wgpu-native).
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode is the swapchain pacing.
type PresentMode int

const (
	// PresentModeVSync presents on vertical blank (Fifo). Never tears.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents as soon as a frame is ready (Immediate). May tear.
	PresentModeUncapped
)

// PresentModeFor maps a vsync setting to a present mode.
func PresentModeFor(vsync bool) PresentMode {
	if vsync {
		return PresentModeVSync
	}
	return PresentModeUncapped
}

// RendererBackend is the device-level interface of the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
