package input

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

// Mouse accumulates cursor motion, scroll and button state between frames.
type Mouse interface {
	// Move records an absolute cursor position in window pixels.
	Move(x, y float64)

	// Scroll records a wheel offset; offsets accumulate until the next Sync.
	Scroll(dy float64)

	// SetButton records a button transition.
	SetButton(button int, down bool)

	// Sync publishes the motion and scroll gathered since the previous Sync and resets the accumulators.
	Sync()

	// Delta returns the cursor motion of the current frame.
	Delta() (dx, dy float32)

	// ScrollDelta returns the wheel offset of the current frame.
	ScrollDelta() float32

	// ButtonDown reports whether a button is held.
	ButtonDown(button int) bool
}

type mouse struct {
	mu *sync.Mutex

	x, y       float64
	lastX      float64
	lastY      float64
	hasLast    bool
	pendingDX  float64
	pendingDY  float64
	pendingScr float64

	dx, dy  float32
	scroll  float32
	buttons [8]bool
}

var _ Mouse = &mouse{}

// NewMouse creates a mouse with no motion recorded.
func NewMouse() Mouse {
	return &mouse{mu: &sync.Mutex{}}
}

func (m *mouse) Move(x, y float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.hasLast {
		m.pendingDX += x - m.lastX
		m.pendingDY += y - m.lastY
	}
	m.lastX, m.lastY, m.hasLast = x, y, true
	m.x, m.y = x, y
}

func (m *mouse) Scroll(dy float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pendingScr += dy
}

func (m *mouse) SetButton(button int, down bool) {
	if button < 0 || button >= len(m.buttons) {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[button] = down
}

func (m *mouse) Sync() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dx, m.dy = float32(m.pendingDX), float32(m.pendingDY)
	m.scroll = float32(m.pendingScr)
	m.pendingDX, m.pendingDY, m.pendingScr = 0, 0, 0
}

func (m *mouse) Delta() (float32, float32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dx, m.dy
}

func (m *mouse) ScrollDelta() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scroll
}

func (m *mouse) ButtonDown(button int) bool {
	if button < 0 || button >= len(m.buttons) {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buttons[button]
}

// Dragging reports whether the orbit drag button is held.
func Dragging(m Mouse) bool {
	return m.ButtonDown(common.MouseButtonLeft) || m.ButtonDown(common.MouseButtonMiddle)
}
