// Package common holds plain value types and helpers shared across the engine packages.
package common

import "github.com/cogentcore/webgpu/wgpu"

// TextureStagingData holds pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the tightly packed pixel data, Height rows of Width*BytesPerPixel bytes.
	Pixels []byte
	// Width of the texture in pixels.
	Width uint32
	// Height of the texture in pixels.
	Height uint32
	// Format is the GPU texture format of Pixels. Zero means RGBA8UnormSrgb.
	Format wgpu.TextureFormat
	// Version increments whenever the source asset is reloaded.
	Version uint64
}

// BytesPerPixel returns the texel size for the staging format.
func (t TextureStagingData) BytesPerPixel() uint32 {
	switch t.Format {
	case wgpu.TextureFormatRGBA16Float:
		return 8
	case wgpu.TextureFormatRGBA32Float:
		return 16
	default:
		return 4
	}
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	MaxAnisotropy                            uint16
}

// LinearRepeatSampler is the sampler used for environment and surface textures.
func LinearRepeatSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeLinear,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}
