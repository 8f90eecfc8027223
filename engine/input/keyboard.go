package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// Keyboard tracks key state written by window callbacks and exposes per-frame
// snapshots so callers can detect press and release edges.
//
// Window callbacks call Press and Release at any time. The frame loop calls Sync
// exactly once per frame before any system reads the keyboard; all queries answer
// against the snapshot taken by the last Sync.
type Keyboard interface {
	// Press records that a key went down.
	//
	// Parameters:
	//   - key: the GLFW key code
	Press(key int)

	// Release records that a key went up.
	//
	// Parameters:
	//   - key: the GLFW key code
	Release(key int)

	// Sync advances the frame: the current snapshot becomes the previous one and
	// the raw state becomes current. A key pressed and released between two
	// Syncs still reads as down for exactly one frame.
	Sync()

	// Down reports whether the key is held in the current snapshot.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true when held
	Down(key int) bool

	// JustPressed reports whether the key went from up to down between the last two snapshots.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true on the press edge only
	JustPressed(key int) bool

	// JustReleased reports whether the key went from down to up between the last two snapshots.
	//
	// Parameters:
	//   - key: the GLFW key code
	//
	// Returns:
	//   - bool: true on the release edge only
	JustReleased(key int) bool
}

type keyboard struct {
	mu *sync.Mutex

	raw   [common.MaxKeyCode]bool
	latch [common.MaxKeyCode]bool

	keys     [common.MaxKeyCode]bool
	keysPrev [common.MaxKeyCode]bool
}

var _ Keyboard = &keyboard{}

// NewKeyboard creates an empty keyboard with no keys held.
func NewKeyboard() Keyboard {
	return &keyboard{mu: &sync.Mutex{}}
}

func validKey(key int) bool {
	return key >= 0 && key < common.MaxKeyCode
}

func (k *keyboard) Press(key int) {
	if !validKey(key) {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if !k.raw[key] {
		k.latch[key] = true
	}
	k.raw[key] = true
}

func (k *keyboard) Release(key int) {
	if !validKey(key) {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.raw[key] = false
}

func (k *keyboard) Sync() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keysPrev = k.keys
	for i := range k.keys {
		k.keys[i] = k.raw[i] || k.latch[i]
	}
	clear(k.latch[:])
}

func (k *keyboard) Down(key int) bool {
	if !validKey(key) {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key]
}

func (k *keyboard) JustPressed(key int) bool {
	if !validKey(key) {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key] && !k.keysPrev[key]
}

func (k *keyboard) JustReleased(key int) bool {
	if !validKey(key) {
		return false
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return !k.keys[key] && k.keysPrev[key]
}
