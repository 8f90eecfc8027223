package orbs

import (
	"log"

	"github.com/Carmen-Shannon/oxy-orbs/config"
	"github.com/Carmen-Shannon/oxy-orbs/engine"
	"github.com/Carmen-Shannon/oxy-orbs/engine/asset"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
	"github.com/Carmen-Shannon/oxy-orbs/engine/scene"
)

// Bindings creates the render-mode controller for a scene, bound to the configured keys.
//
// Parameters:
//   - sc: the scene whose settings and cameras the controller drives
//   - keys: the deferred and forward key bindings
//   - logger: where the switch line is written, log.Default() when nil
//
// Returns:
//   - rendermode.Controller: the controller
func Bindings(sc scene.Scene, keys config.InputConfig, logger *log.Logger) rendermode.Controller {
	return rendermode.NewController(sc.Settings(), sc.Cameras,
		rendermode.WithDeferredKey(keys.DeferredKey),
		rendermode.WithForwardKey(keys.ForwardKey),
		rendermode.WithLogger(logger),
	)
}

// Install registers the demo with an engine: a startup hook running Setup and
// selecting the configured method, and an update hook running the render-mode
// controller every frame.
//
// Parameters:
//   - e: the engine
//   - sc: the scene to populate
//   - assets: the asset server, may be nil
//   - cfg: the validated configuration
//   - logger: where the switch line is written, log.Default() when nil
//
// Returns:
//   - rendermode.Controller: the controller driven by the update hook
func Install(e engine.Engine, sc scene.Scene, assets asset.Server, cfg config.Config, logger *log.Logger) rendermode.Controller {
	ctrl := Bindings(sc, cfg.Input, logger)
	e.AddStartupHook(func(engine.Engine) error {
		Setup(sc, assets,
			WithEnvironmentMap(cfg.Assets.EnvironmentMap),
			WithGlowShader(cfg.Assets.GlowShader),
		)
		if m := cfg.Method(); m != rendermode.Deferred {
			ctrl.Apply(m)
		}
		return nil
	})
	e.AddUpdateHook(func(e engine.Engine, _ float32) {
		ctrl.Update(e.Keyboard())
	})
	return ctrl
}
