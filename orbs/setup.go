package orbs

import (
	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/camera"
	"github.com/Carmen-Shannon/oxy-orbs/engine/game_object"
	"github.com/Carmen-Shannon/oxy-orbs/engine/light"
	"github.com/Carmen-Shannon/oxy-orbs/engine/model"
	"github.com/Carmen-Shannon/oxy-orbs/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-orbs/engine/scene"
)

// Orb light parameters.
const (
	LightIntensity = 10000
	LightRadius    = 1.0
	GroundSize     = 100
)

var (
	// LightColor is the sRGB colour of every orb light.
	LightColor = common.RGB(0.5, 0.1, 0.0)
	// GroundColor is the sRGB base colour of the ground plane.
	GroundColor = common.RGB(0.1, 0.1, 0.1)

	// CameraPosition and CameraFocus frame the orbs from above.
	CameraPosition = common.Vec3{8, 5, 8}
	CameraFocus    = common.Vec3{0, 0.5, 0}
)

// DefaultEnvironmentMap is the asset path of the environment texture.
const DefaultEnvironmentMap = "textures/stone_alley_02_1k.hdr"

// Handles are the nodes Setup created.
type Handles struct {
	Ground   game_object.GameObject
	Orbs     []game_object.GameObject
	Camera   camera.Camera
	Material material.Handle
	Glowy    *GlowyMaterial
}

type setupConfig struct {
	envMap string
	shader material.ShaderRef
}

// SetupOption configures Setup.
type SetupOption func(*setupConfig)

// WithEnvironmentMap sets the asset path of the environment texture.
func WithEnvironmentMap(path string) SetupOption {
	return func(c *setupConfig) {
		c.envMap = path
	}
}

// WithGlowShader sets the asset path of the glow shader.
func WithGlowShader(path string) SetupOption {
	return func(c *setupConfig) {
		c.shader = material.ShaderRef(path)
	}
}

// Setup populates a scene with the ground plane, the twelve orbs with their
// lights and the orbit camera. It runs once before the first frame.
//
// The environment texture is requested from assets without waiting for it; a
// failed load is logged by the asset server and the orbs render with a black
// environment. A nil asset server skips the texture entirely.
//
// Parameters:
//   - sc: the scene to populate
//   - assets: the asset server, may be nil
//   - options: functional options to configure the content
//
// Returns:
//   - Handles: the created nodes and the shared material
func Setup(sc scene.Scene, assets asset.Server, options ...SetupOption) Handles {
	cfg := setupConfig{envMap: DefaultEnvironmentMap, shader: DefaultGlowShader}
	for _, opt := range options {
		opt(&cfg)
	}

	var h Handles

	ground := material.NewStandardMaterial(
		material.WithName("ground"),
		material.WithBaseColor(GroundColor),
		material.WithMetallic(0),
	)
	h.Ground = game_object.NewGameObject(
		game_object.WithName("ground"),
		game_object.WithModel(model.NewModel(model.WithShape(model.Plane{Size: GroundSize}))),
		game_object.WithMaterial(sc.Materials().Add(ground)),
	)
	sc.Add(h.Ground)

	var env material.TextureSource
	if assets != nil && cfg.envMap != "" {
		env = assets.Load(cfg.envMap)
	}
	h.Glowy = NewGlowyMaterial(cfg.shader, env)
	h.Material = sc.Materials().Add(h.Glowy)

	sphere := model.NewModel(model.WithShape(model.NewUVSphere(1)))
	for i, pos := range Locations {
		l := light.NewPointLight(
			light.WithPosition(pos),
			light.WithIntensity(LightIntensity),
			light.WithRadius(LightRadius),
			light.WithColor(LightColor),
		)
		orb := game_object.NewGameObject(
			game_object.WithName(orbName(i)),
			game_object.WithModel(sphere),
			game_object.WithMaterial(h.Material),
			game_object.WithPosition(pos),
			game_object.WithLight(l),
		)
		sc.Add(orb)
		h.Orbs = append(h.Orbs, orb)
	}

	ctrl := camera.NewCameraController(
		camera.WithOrbitMode(true),
		camera.WithOrbitFocus(CameraFocus),
		camera.WithPosition(CameraPosition),
	)
	h.Camera = camera.NewCamera(
		camera.WithName("orbit"),
		camera.WithHDR(true),
		camera.WithFxaa(true),
		camera.WithPrepasses(camera.PrepassDepth, camera.PrepassMotionVector, camera.PrepassDeferred),
		camera.WithController(ctrl),
	)
	sc.AddCamera(h.Camera)
	return h
}

func orbName(i int) string {
	return "orb " + string(rune('a'+i))
}
