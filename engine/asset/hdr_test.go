package asset

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHDRFlatRoundTrip(t *testing.T) {
	src := &HDRImage{Width: 2, Height: 2, Pix: []float32{
		1, 0.5, 0.25, 1, 0, 0, 0, 1,
		4, 2, 1, 1, 0.5, 0.5, 0.5, 1,
	}}
	var buf bytes.Buffer
	require.NoError(t, EncodeHDR(&buf, src))

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	require.Equal(t, 2, img.Width)
	require.Equal(t, 2, img.Height)
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, img.At(0, 0))
	assert.Equal(t, [3]float32{0, 0, 0}, img.At(1, 0))
	assert.Equal(t, [3]float32{4, 2, 1}, img.At(0, 1))
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, img.At(1, 1))
}

func TestHDRNewStyleRLE(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\nEXPOSURE=1.0\n\n-Y 1 +X 8\n")
	buf.Write([]byte{2, 2, 0, 8})
	// R, B and E are runs, G is a literal span
	buf.Write([]byte{128 + 8, 128})
	buf.Write([]byte{8, 0, 16, 32, 48, 64, 80, 96, 112})
	buf.Write([]byte{128 + 8, 0})
	buf.Write([]byte{128 + 8, 129})

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		assert.Equal(t, [3]float32{1, float32(x) / 8, 0}, img.At(x, 0), "pixel %d", x)
	}
}

func TestHDRBottomUpOrientation(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RGBE\n\n+Y 2 +X 1\n")
	buf.Write([]byte{128, 0, 0, 129})
	buf.Write([]byte{0, 128, 0, 129})

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{0, 1, 0}, img.At(0, 0))
	assert.Equal(t, [3]float32{1, 0, 0}, img.At(0, 1))
}

func TestHDROldStyleRepeat(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\n\n-Y 1 +X 4\n")
	buf.Write([]byte{128, 0, 0, 129})
	buf.Write([]byte{1, 1, 1, 3})

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	for x := 0; x < 4; x++ {
		assert.Equal(t, [3]float32{1, 0, 0}, img.At(x, 0))
	}
}

func TestHDRMalformed(t *testing.T) {
	cases := map[string][]byte{
		"no signature": []byte("P6\n\n-Y 1 +X 1\n\x80\x80\x80\x81"),
		"bad format":   []byte("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n\x80\x80\x80\x81"),
		"bad res":      []byte("#?RADIANCE\n\n-X 1 +Y 1\n\x80\x80\x80\x81"),
		"truncated":    []byte("#?RADIANCE\n\n-Y 2 +X 1\n\x80\x80\x80\x81"),
		"bad run": append([]byte("#?RADIANCE\n\n-Y 1 +X 8\n"),
			2, 2, 0, 8, 128+9, 1),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeHDR(bytes.NewReader(data))
			assert.ErrorIs(t, err, ErrBadHDR)
		})
	}
}

func TestHDRToHalfFloat(t *testing.T) {
	img := &HDRImage{Width: 1, Height: 1, Pix: []float32{1, 0, -2, 0.5}}
	assert.Equal(t, []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0xC0, 0x00, 0x38}, img.RGBA16F())
}
