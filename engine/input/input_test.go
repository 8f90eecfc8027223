package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-orbs/common"
)

func TestKeyboardPressEdgeFiresOnce(t *testing.T) {
	kb := NewKeyboard()
	kb.Press(common.Key1)

	kb.Sync()
	assert.True(t, kb.JustPressed(common.Key1))
	assert.True(t, kb.Down(common.Key1))

	// held across frames: no new edge
	for range 5 {
		kb.Sync()
		assert.False(t, kb.JustPressed(common.Key1))
		assert.True(t, kb.Down(common.Key1))
	}

	kb.Release(common.Key1)
	kb.Sync()
	assert.True(t, kb.JustReleased(common.Key1))
	assert.False(t, kb.Down(common.Key1))

	kb.Sync()
	assert.False(t, kb.JustReleased(common.Key1))
}

func TestKeyboardRepeatDoesNotRetrigger(t *testing.T) {
	kb := NewKeyboard()
	kb.Press(common.Key2)
	kb.Sync()
	assert.True(t, kb.JustPressed(common.Key2))

	kb.Press(common.Key2) // OS key repeat while held
	kb.Sync()
	assert.False(t, kb.JustPressed(common.Key2))
}

func TestKeyboardTapWithinOneFrame(t *testing.T) {
	kb := NewKeyboard()
	kb.Press(common.Key2)
	kb.Release(common.Key2)

	kb.Sync()
	assert.True(t, kb.JustPressed(common.Key2))

	kb.Sync()
	assert.False(t, kb.Down(common.Key2))
	assert.True(t, kb.JustReleased(common.Key2))
}

func TestKeyboardIgnoresOutOfRangeKeys(t *testing.T) {
	kb := NewKeyboard()
	kb.Press(-1)
	kb.Press(common.MaxKeyCode)
	kb.Sync()
	assert.False(t, kb.JustPressed(-1))
	assert.False(t, kb.Down(common.MaxKeyCode))
}

func TestMouseAccumulatesBetweenSyncs(t *testing.T) {
	m := NewMouse()
	m.Move(10, 10)
	m.Move(15, 12)
	m.Move(20, 8)
	m.Scroll(1)
	m.Scroll(0.5)
	m.SetButton(common.MouseButtonLeft, true)

	m.Sync()
	dx, dy := m.Delta()
	assert.Equal(t, float32(10), dx)
	assert.Equal(t, float32(-2), dy)
	assert.Equal(t, float32(1.5), m.ScrollDelta())
	assert.True(t, Dragging(m))

	m.Sync()
	dx, dy = m.Delta()
	assert.Zero(t, dx)
	assert.Zero(t, dy)
	assert.Zero(t, m.ScrollDelta())
}
