package engine

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-orbs/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs a fixed number of message loop iterations.
type fakeWindow struct {
	frames   int
	update   func()
	resize   func(width, height int)
	keyDown  func(int)
	keyUp    func(int)
	button   func(int, bool)
	move     func(x, y float64)
	scroll   func(float32)
	stopped  bool
	closed   bool
	closes   int
	ran      int
	onUpdate func(n int)
	events   *[]string
}

func (w *fakeWindow) SetUpdateCallback(cb func())                  { w.update = cb }
func (w *fakeWindow) SetResizeCallback(cb func(width, height int)) { w.resize = cb }
func (w *fakeWindow) SetScrollCallback(cb func(delta float32))     { w.scroll = cb }
func (w *fakeWindow) SetKeyDownCallback(cb func(keyCode int))      { w.keyDown = cb }
func (w *fakeWindow) SetKeyUpCallback(cb func(keyCode int))        { w.keyUp = cb }
func (w *fakeWindow) SetMouseButtonCallback(cb func(int, bool))    { w.button = cb }
func (w *fakeWindow) SetMouseMoveCallback(cb func(x, y float64))   { w.move = cb }
func (w *fakeWindow) SetTitle(string)                              {}
func (w *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor   { return nil }
func (w *fakeWindow) RequestClose()                                { w.stopped = true }
func (w *fakeWindow) IsRunning() bool {
	return !w.stopped && !w.closed && w.ran < w.frames
}

func (w *fakeWindow) Close() error {
	if w.closed {
		return errors.New("already closed")
	}
	w.closed = true
	w.closes++
	if w.events != nil {
		*w.events = append(*w.events, "window")
	}
	return nil
}
func (w *fakeWindow) Width() int  { return 800 }
func (w *fakeWindow) Height() int { return 600 }

func (w *fakeWindow) ProcessMessages() {
	for w.IsRunning() {
		if w.onUpdate != nil {
			w.onUpdate(w.ran)
		}
		if w.update != nil {
			w.update()
		}
		w.ran++
	}
}

// fakeRenderer records when it is closed.
type fakeRenderer struct {
	events *[]string
}

func (r *fakeRenderer) Resize(int, int)                     {}
func (r *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (r *fakeRenderer) Render(renderer.FrameView) error     { return nil }
func (r *fakeRenderer) EvictShader(material.ShaderRef)      {}
func (r *fakeRenderer) Pipelines() []pipeline.Key           { return nil }
func (r *fakeRenderer) Close()                              { *r.events = append(*r.events, "renderer") }

func TestRunWithoutWindow(t *testing.T) {
	assert.Error(t, NewEngine().Run())
}

func TestStartupErrorStopsRun(t *testing.T) {
	w := &fakeWindow{frames: 3}
	e := NewEngine(WithWindow(w), WithStartupHook(func(Engine) error { return errors.New("boom") }))

	err := e.Run()
	assert.ErrorContains(t, err, "boom")
	assert.Zero(t, w.ran)
}

func TestFrameLoopFeedsInputToHooks(t *testing.T) {
	w := &fakeWindow{frames: 3}
	w.onUpdate = func(n int) {
		if n == 1 {
			w.keyDown(common.Key1)
		}
	}

	var started int
	var edges []bool
	e := NewEngine(
		WithWindow(w),
		WithStartupHook(func(Engine) error { started++; return nil }),
		WithUpdateHook(func(e Engine, dt float32) {
			edges = append(edges, e.Keyboard().JustPressed(common.Key1))
		}),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, started)
	assert.Equal(t, []bool{false, true, false}, edges)
}

func TestRenderErrorsAreLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	w := &fakeWindow{frames: 4}
	e := NewEngine(
		WithWindow(w),
		WithLogger(log.New(&buf, "", 0)),
		WithScene(0, scene.NewScene("orbs")),
	)

	require.NoError(t, e.Run())
	assert.Equal(t, 1, strings.Count(buf.String(), "no renderer"))
}

func TestInactiveScenesAreSkipped(t *testing.T) {
	var buf bytes.Buffer
	w := &fakeWindow{frames: 2}
	e := NewEngine(
		WithWindow(w),
		WithLogger(log.New(&buf, "", 0)),
		WithScene(0, scene.NewScene("hidden", scene.WithActive(false))),
	)

	require.NoError(t, e.Run())
	assert.Empty(t, buf.String())
}

func TestQuitClosesWindow(t *testing.T) {
	w := &fakeWindow{frames: 100}
	e := NewEngine(WithWindow(w))
	e.AddUpdateHook(func(e Engine, _ float32) { e.Quit() })
	e.Quit()

	require.NoError(t, e.Run())
	assert.True(t, w.closed)
	assert.Equal(t, 1, w.closes)
	assert.Equal(t, 1, w.ran)
}

func TestShutdownClosesRenderersBeforeWindow(t *testing.T) {
	for name, quit := range map[string]bool{"quit": true, "window closed by user": false} {
		t.Run(name, func(t *testing.T) {
			var events []string
			w := &fakeWindow{frames: 3, events: &events}
			e := NewEngine(
				WithWindow(w),
				WithLogger(log.New(&bytes.Buffer{}, "", 0)),
				WithScene(0, scene.NewScene("orbs", scene.WithRenderer(&fakeRenderer{events: &events}))),
			)
			if quit {
				e.AddUpdateHook(func(e Engine, _ float32) { e.Quit() })
			}

			require.NoError(t, e.Run())
			assert.Equal(t, []string{"renderer", "window"}, events)
			assert.Equal(t, 1, w.closes)
		})
	}
}

func TestScenesAreCopied(t *testing.T) {
	e := NewEngine()
	e.AddScene(2, scene.NewScene("b"))
	e.AddScene(1, scene.NewScene("a"))

	scenes := e.Scenes()
	delete(scenes, 1)
	assert.NotNil(t, e.Scene(1))

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Zero(t, frameDuration(-5))
	assert.Equal(t, 16*time.Millisecond+666666*time.Nanosecond, frameDuration(60))
}
