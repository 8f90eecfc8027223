package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/game_object"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCamera() camera.Camera {
	ctrl := camera.NewCameraController(
		camera.WithOrbitMode(true),
		camera.WithOrbitFocus(common.Vec3{0, 0.5, 0}),
		camera.WithPosition(common.Vec3{8, 5, 8}),
	)
	return camera.NewCamera(
		camera.WithHDR(true),
		camera.WithFxaa(true),
		camera.WithPrepasses(camera.PrepassDepth, camera.PrepassMotionVector, camera.PrepassDeferred),
		camera.WithController(ctrl),
	)
}

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene("test")
	a := game_object.NewGameObject(game_object.WithName("a"))
	b := game_object.NewGameObject(game_object.WithName("b"))

	assert.Equal(t, uint64(1), s.Add(a))
	assert.Equal(t, uint64(2), s.Add(b))
	assert.Equal(t, 2, s.Count())
	assert.Same(t, b, s.Get(2))

	s.Remove(1)
	assert.Nil(t, s.Get(1))
	assert.Equal(t, 1, s.Count())

	s.Clear()
	assert.Zero(t, s.Count())
}

func TestUpdateMovesAttachedLights(t *testing.T) {
	s := NewScene("test", WithCamera(newTestCamera()))
	l := light.NewPointLight()
	orb := game_object.NewGameObject(
		game_object.WithPosition(common.Vec3{1.7, 1.07, -0.61}),
		game_object.WithLight(l),
	)
	s.Add(orb)
	s.AddLight(light.NewPointLight())

	require.Len(t, s.Lights(), 2)
	s.Update(nil, nil, 0.016)
	assert.Equal(t, common.Vec3{1.7, 1.07, -0.61}, l.Position())
}

func TestExtractWithoutCamera(t *testing.T) {
	_, err := NewScene("empty").Extract(800, 600)
	assert.Error(t, err)
}

func TestExtract(t *testing.T) {
	settings := rendermode.NewSettings(rendermode.Forward)
	s := NewScene("test", WithCamera(newTestCamera()), WithSettings(settings))

	sphere := model.NewModel(model.WithShape(model.NewUVSphere(1)))
	glow := material.NewStandardMaterial(material.WithName("glow"))
	h := s.Materials().Add(glow)

	visible := game_object.NewGameObject(game_object.WithModel(sphere), game_object.WithMaterial(h), game_object.WithLight(light.NewPointLight()))
	behind := game_object.NewGameObject(game_object.WithModel(sphere), game_object.WithMaterial(h), game_object.WithPosition(common.Vec3{30, 5, 30}))
	disabled := game_object.NewGameObject(game_object.WithModel(sphere), game_object.WithMaterial(h), game_object.WithEnabled(false))
	noMaterial := game_object.NewGameObject(game_object.WithModel(sphere))
	for _, obj := range []game_object.GameObject{visible, behind, disabled, noMaterial} {
		s.Add(obj)
	}

	view, err := s.Extract(1280, 720)
	require.NoError(t, err)
	assert.Equal(t, rendermode.Forward, view.Method)
	assert.True(t, view.HDR)
	assert.True(t, view.Fxaa)
	assert.True(t, view.Prepasses.Has(camera.PrepassDeferred))
	assert.Equal(t, float32(1280), view.View.Viewport[2])
	assert.Len(t, view.Lights, 1)
	require.Len(t, view.Draws, 1)
	assert.Equal(t, visible.ID(), view.Draws[0].ObjectID)
	assert.Same(t, glow, view.Draws[0].Material)

	s.SetCullingDisabled(true)
	view, err = s.Extract(1280, 720)
	require.NoError(t, err)
	require.Len(t, view.Draws, 2)
	assert.Same(t, view.Draws[0].Material, view.Draws[1].Material)
}

func TestRenderWithoutRenderer(t *testing.T) {
	s := NewScene("test", WithCamera(newTestCamera()))
	assert.Error(t, s.Render(800, 600))
}
