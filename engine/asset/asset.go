// Package asset loads files from an asset root in the background and keeps them
// fresh while they change on disk.
package asset

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
)

var (
	// ErrNotLoaded is returned by accessors while a handle has no data.
	ErrNotLoaded = errors.New("asset not loaded")
	// ErrUnsupportedFormat is recorded on handles whose extension has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported asset format")
)

// Kind is the payload type of an asset.
type Kind int

const (
	KindTexture Kind = iota
	KindShader
)

// State is the load state of a handle.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle is a reference to an asset that may still be loading. Handles are shared:
// loading the same path twice returns the same handle.
type Handle struct {
	mu *sync.Mutex

	path    string
	kind    Kind
	state   State
	version uint64
	err     error

	texture common.TextureStagingData
	text    string
}

var _ material.TextureSource = &Handle{}

func newHandle(path string, kind Kind) *Handle {
	return &Handle{mu: &sync.Mutex{}, path: path, kind: kind}
}

// Path returns the path relative to the asset root.
func (h *Handle) Path() string { return h.path }

// Kind returns the payload type.
func (h *Handle) Kind() Kind { return h.kind }

// State returns the current load state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the last load error. A failed reload keeps the previous data and sets Err.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Version increments on every successful load, starting at 1.
func (h *Handle) Version() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.version
}

// Staging returns the decoded texture.
func (h *Handle) Staging() (common.TextureStagingData, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.version == 0 || h.kind != KindTexture {
		return common.TextureStagingData{}, false
	}
	return h.texture, true
}

// Text returns the shader source.
//
// Returns:
//   - string: WGSL source
//   - error: ErrNotLoaded when no version has loaded yet
func (h *Handle) Text() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.version == 0 || h.kind != KindShader {
		return "", ErrNotLoaded
	}
	return h.text, nil
}

func (h *Handle) setTexture(t common.TextureStagingData) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version++
	t.Version = h.version
	h.texture = t
	h.state = StateLoaded
	h.err = nil
}

func (h *Handle) setText(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.version++
	h.text = s
	h.state = StateLoaded
	h.err = nil
}

func (h *Handle) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.err = err
	if h.version == 0 {
		h.state = StateFailed
	}
}
