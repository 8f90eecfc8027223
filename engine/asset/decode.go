package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// kindFor maps a file extension to its asset kind.
func kindFor(path string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hdr", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return KindTexture, nil
	case ".wgsl":
		return KindShader, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// decodeTexture turns file bytes into staging data. Radiance files become
// Rgba16Float; everything else is expanded to Rgba8UnormSrgb.
func decodeTexture(path string, data []byte) (common.TextureStagingData, error) {
	if strings.EqualFold(filepath.Ext(path), ".hdr") {
		img, err := DecodeHDR(bytes.NewReader(data))
		if err != nil {
			return common.TextureStagingData{}, err
		}
		return common.TextureStagingData{
			Pixels: img.RGBA16F(),
			Width:  uint32(img.Width),
			Height: uint32(img.Height),
			Format: wgpu.TextureFormatRGBA16Float,
		}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return common.TextureStagingData{}, fmt.Errorf("decode %s: %w", path, err)
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	return common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
	}, nil
}
