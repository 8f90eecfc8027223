package rendermode

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/input"
)

type harness struct {
	settings Settings
	cameras  []camera.Camera
	out      *bytes.Buffer
	kb       input.Keyboard
	ctrl     Controller
}

func newHarness(opts ...ControllerBuilderOption) *harness {
	h := &harness{
		settings: NewSettings(Deferred),
		cameras: []camera.Camera{
			camera.NewCamera(camera.WithPrepasses(camera.PrepassDepth, camera.PrepassMotionVector, camera.PrepassDeferred)),
			camera.NewCamera(camera.WithPrepasses(camera.PrepassNormal)),
		},
		out: &bytes.Buffer{},
		kb:  input.NewKeyboard(),
	}
	opts = append([]ControllerBuilderOption{WithLogger(log.New(h.out, "", 0))}, opts...)
	h.ctrl = NewController(h.settings, func() []camera.Camera { return h.cameras }, opts...)
	return h
}

// frame simulates one frame: the given keys go down, the keyboard syncs and the controller runs.
func (h *harness) frame(pressed ...int) {
	for _, k := range pressed {
		h.kb.Press(k)
	}
	h.kb.Sync()
	h.ctrl.Update(h.kb)
}

func (h *harness) releaseAll(keys ...int) {
	for _, k := range keys {
		h.kb.Release(k)
	}
}

func (h *harness) lines() []string {
	s := strings.TrimSuffix(h.out.String(), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

const deferredSet = camera.PrepassDepth | camera.PrepassMotionVector | camera.PrepassDeferred

func TestInitialMethodIsDeferred(t *testing.T) {
	h := newHarness()
	h.frame()
	assert.Equal(t, Deferred, h.settings.Method())
	assert.Empty(t, h.lines())
}

func TestSelectDeferred(t *testing.T) {
	h := newHarness()
	h.settings.SetMethod(Forward)

	h.frame(common.Key1)

	assert.Equal(t, Deferred, h.settings.Method())
	assert.Equal(t, []string{"DefaultOpaqueRendererMethod: Deferred"}, h.lines())
	for _, c := range h.cameras {
		assert.Equal(t, deferredSet, c.Prepasses(), c.Name())
		assert.False(t, c.HasPrepass(camera.PrepassNormal))
	}
}

func TestSelectForward(t *testing.T) {
	h := newHarness()

	h.frame(common.Key2)

	assert.Equal(t, Forward, h.settings.Method())
	assert.Equal(t, []string{"DefaultOpaqueRendererMethod: Forward"}, h.lines())
	for _, c := range h.cameras {
		assert.Equal(t, camera.PrepassNone, c.Prepasses())
	}
}

func TestHeldKeyFiresOnce(t *testing.T) {
	h := newHarness()
	for range 10 {
		h.frame(common.Key2)
	}
	assert.Len(t, h.lines(), 1)

	h.releaseAll(common.Key2)
	h.frame()
	h.frame(common.Key2)
	assert.Len(t, h.lines(), 2)
}

func TestReselectingIsIdempotent(t *testing.T) {
	h := newHarness()
	h.frame(common.Key1)
	first := make([]camera.Prepass, len(h.cameras))
	for i, c := range h.cameras {
		first[i] = c.Prepasses()
	}

	h.releaseAll(common.Key1)
	h.frame()
	h.frame(common.Key1)

	assert.Equal(t, Deferred, h.settings.Method())
	assert.Len(t, h.lines(), 2)
	for i, c := range h.cameras {
		assert.Equal(t, first[i], c.Prepasses())
	}
}

func TestReselectingForwardIsIdempotent(t *testing.T) {
	h := newHarness()
	h.frame(common.Key2)
	h.releaseAll(common.Key2)
	h.frame()
	h.frame(common.Key2)

	assert.Equal(t, Forward, h.settings.Method())
	assert.Equal(t, []string{
		"DefaultOpaqueRendererMethod: Forward",
		"DefaultOpaqueRendererMethod: Forward",
	}, h.lines())
	for _, c := range h.cameras {
		assert.Equal(t, camera.PrepassNone, c.Prepasses(), c.Name())
	}
}

func TestBothKeysSameFrameForwardWins(t *testing.T) {
	h := newHarness()
	h.frame(common.Key1, common.Key2)

	assert.Equal(t, Forward, h.settings.Method())
	assert.Equal(t, []string{
		"DefaultOpaqueRendererMethod: Deferred",
		"DefaultOpaqueRendererMethod: Forward",
	}, h.lines())
	for _, c := range h.cameras {
		assert.Equal(t, camera.PrepassNone, c.Prepasses())
	}
}

func TestUnboundKeyDoesNothing(t *testing.T) {
	h := newHarness()
	before := h.cameras[1].Prepasses()

	h.frame(common.KeySpace, common.KeyW)

	assert.Equal(t, Deferred, h.settings.Method())
	assert.Empty(t, h.lines())
	assert.Equal(t, before, h.cameras[1].Prepasses())
}

func TestDisabledBinding(t *testing.T) {
	h := newHarness(WithForwardKey(Unbound))
	h.frame(common.Key2)
	assert.Equal(t, Deferred, h.settings.Method())
	assert.Empty(t, h.lines())
}

func TestCustomBindings(t *testing.T) {
	h := newHarness(WithDeferredKey(common.KeyE), WithForwardKey(common.KeyQ))
	h.frame(common.KeyQ)
	assert.Equal(t, Forward, h.settings.Method())
	h.frame(common.KeyE)
	assert.Equal(t, Deferred, h.settings.Method())
}

func TestCamerasAddedLaterAreUpdated(t *testing.T) {
	h := newHarness()
	h.cameras = append(h.cameras, camera.NewCamera())
	h.frame(common.Key1)
	assert.Equal(t, deferredSet, h.cameras[2].Prepasses())
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Forward ")
	require.NoError(t, err)
	assert.Equal(t, Forward, m)
	m, err = ParseMethod("deferred")
	require.NoError(t, err)
	assert.Equal(t, Deferred, m)
	_, err = ParseMethod("clustered")
	assert.Error(t, err)
	assert.Equal(t, "Method(7)", Method(7).String())
}
