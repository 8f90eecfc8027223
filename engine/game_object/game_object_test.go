package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/stretchr/testify/assert"
)

func TestGameObjectDefaults(t *testing.T) {
	g := NewGameObject()
	assert.True(t, g.Enabled())
	assert.Equal(t, common.Vec3{1, 1, 1}, g.Scale())
	assert.Equal(t, common.Vec3{}, g.Position())
	assert.Nil(t, g.Model())
	assert.Nil(t, g.Light())
	assert.False(t, g.Material().IsValid())
	assert.Zero(t, g.ID())
}

func TestGameObjectWorldMatrix(t *testing.T) {
	g := NewGameObject(
		WithPosition(common.Vec3{1, 2, 3}),
		WithScale(common.Vec3{2, 2, 2}),
	)
	m := g.WorldMatrix()
	assert.Equal(t, common.Vec3{3, 4, 5}, common.TransformPoint(m[:], common.Vec3{1, 1, 1}))
}

func TestGameObjectLightFollowsNode(t *testing.T) {
	l := light.NewPointLight()
	g := NewGameObject(WithPosition(common.Vec3{2, 1.5, 0}), WithLight(l))
	assert.Same(t, l, g.Light())
	assert.Equal(t, common.Vec3{2, 1.5, 0}, g.LightWorldPosition())

	g.SetPosition(common.Vec3{-2, 0.5, 1})
	assert.Equal(t, common.Vec3{-2, 0.5, 1}, g.LightWorldPosition())

	g.SetLight(l, common.Vec3{0, 1, 0})
	assert.Equal(t, common.Vec3{-2, 1.5, 1}, g.LightWorldPosition())

	g.SetLight(nil, common.Vec3{})
	assert.Nil(t, g.Light())
}

func TestGameObjectMaterialAndModel(t *testing.T) {
	reg := material.NewRegistry()
	h := reg.Add(material.NewStandardMaterial())
	mdl := model.NewModel(model.WithShape(model.NewUVSphere(1)))

	g := NewGameObject(WithName("orb"), WithModel(mdl), WithMaterial(h), WithEnabled(false))
	assert.Equal(t, "orb", g.Name())
	assert.Same(t, mdl, g.Model())
	assert.Equal(t, h, g.Material())
	assert.False(t, g.Enabled())

	g.SetEnabled(true)
	g.SetID(7)
	assert.True(t, g.Enabled())
	assert.Equal(t, uint64(7), g.ID())
}
