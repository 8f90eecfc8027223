package rendermode

import (
	"fmt"
	"strings"
	"sync"
)

// Method is the renderer's default way of lighting opaque surfaces.
type Method int

const (
	// Deferred writes a G-buffer in the prepass and lights it in a fullscreen pass.
	Deferred Method = iota
	// Forward shades every light per fragment in the main pass.
	Forward
)

func (m Method) String() string {
	switch m {
	case Deferred:
		return "Deferred"
	case Forward:
		return "Forward"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod parses "deferred" or "forward", ignoring case.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deferred":
		return Deferred, nil
	case "forward":
		return Forward, nil
	default:
		return 0, fmt.Errorf("unknown opaque renderer method %q", s)
	}
}

type settings struct {
	mu     *sync.Mutex
	method Method
}

// Settings holds the default opaque renderer method for a scene. It is created
// once and handed to the systems that read or change it.
type Settings interface {
	// Method returns the current default opaque method.
	//
	// Returns:
	//   - Method: Deferred or Forward
	Method() Method

	// SetMethod replaces the default opaque method.
	//
	// Parameters:
	//   - m: the new method
	SetMethod(m Method)
}

var _ Settings = &settings{}

// NewSettings creates settings starting at the given method.
func NewSettings(initial Method) Settings {
	return &settings{mu: &sync.Mutex{}, method: initial}
}

func (s *settings) Method() Method {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.method
}

func (s *settings) SetMethod(m Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = m
}
