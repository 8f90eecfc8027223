package asset

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o644))
}

func waitIdle(t *testing.T, s Server) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.WaitIdle(ctx))
}

func TestLoadShaderText(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders/glowy.wgsl", []byte("// v1"))

	s := NewServer(root)
	var reloads atomic.Int32
	s.OnReload(func(*Handle) { reloads.Add(1) })

	h := s.Load("shaders/glowy.wgsl")
	assert.Same(t, h, s.Load("shaders/glowy.wgsl"))
	waitIdle(t, s)

	require.Equal(t, StateLoaded, h.State())
	src, err := h.Text()
	require.NoError(t, err)
	assert.Equal(t, "// v1", src)
	assert.Equal(t, uint64(1), h.Version())
	assert.Equal(t, int32(1), reloads.Load())

	_, ok := h.Staging()
	assert.False(t, ok)
}

func TestLoadFailureIsReportedOnHandle(t *testing.T) {
	var out bytes.Buffer
	s := NewServer(t.TempDir(), WithLogger(log.New(&out, "", 0)))

	h := s.Load("textures/missing.hdr")
	waitIdle(t, s)
	assert.Equal(t, StateFailed, h.State())
	assert.ErrorIs(t, h.Err(), os.ErrNotExist)
	assert.Contains(t, out.String(), "failed to load textures/missing.hdr")

	_, err := h.Text()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestUnsupportedExtension(t *testing.T) {
	s := NewServer(t.TempDir(), WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	h := s.Load("model.fbx")
	assert.Equal(t, StateFailed, h.State())
	assert.ErrorIs(t, h.Err(), ErrUnsupportedFormat)
}

func TestReloadKeepsDataOnFailure(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.wgsl", []byte("one"))
	s := NewServer(root, WithLogger(log.New(&bytes.Buffer{}, "", 0)))
	h := s.Load("a.wgsl")
	waitIdle(t, s)

	writeFile(t, root, "a.wgsl", []byte("two"))
	s.Reload("a.wgsl")
	waitIdle(t, s)
	src, _ := h.Text()
	assert.Equal(t, "two", src)
	assert.Equal(t, uint64(2), h.Version())

	require.NoError(t, os.Remove(filepath.Join(root, "a.wgsl")))
	s.Reload("a.wgsl")
	waitIdle(t, s)
	assert.Equal(t, StateLoaded, h.State())
	assert.Error(t, h.Err())
	src, _ = h.Text()
	assert.Equal(t, "two", src)
}

func TestLoadTextures(t *testing.T) {
	root := t.TempDir()

	var hdr bytes.Buffer
	require.NoError(t, EncodeHDR(&hdr, &HDRImage{Width: 2, Height: 1, Pix: []float32{1, 1, 1, 1, 2, 2, 2, 1}}))
	writeFile(t, root, "textures/env.hdr", hdr.Bytes())

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))
	writeFile(t, root, "textures/red.png", pngBuf.Bytes())

	s := NewServer(root)
	env := s.Load("textures/env.hdr")
	red := s.Load("textures/red.png")
	waitIdle(t, s)

	st, ok := env.Staging()
	require.True(t, ok)
	assert.Equal(t, wgpu.TextureFormatRGBA16Float, st.Format)
	assert.Equal(t, uint32(2), st.Width)
	assert.Len(t, st.Pixels, 2*8)
	assert.Equal(t, uint64(1), st.Version)

	st, ok = red.Staging()
	require.True(t, ok)
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, st.Format)
	assert.Equal(t, []byte{255, 0, 0, 255}, st.Pixels[:4])
	assert.Len(t, st.Pixels, 3*2*4)
}

func TestWatchReloadsChangedFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "shaders/glowy.wgsl", []byte("v1"))
	s := NewServer(root, WithWatchDelay(10*time.Millisecond))
	h := s.Load("shaders/glowy.wgsl")
	waitIdle(t, s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	assert.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(root, "shaders", "glowy.wgsl"), []byte("v2"), 0o644)
		src, _ := h.Text()
		return src == "v2"
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
