package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-orbs/common"
	"github.com/Carmen-Shannon/oxy-orbs/engine/rendermode"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, rendermode.Deferred, cfg.Method())
	assert.Equal(t, 100*time.Millisecond, cfg.WatchDelay())
	assert.Equal(t, common.Black, cfg.ClearColor())
	assert.Equal(t, common.Key1, cfg.Input.DeferredKey)
	assert.Equal(t, common.Key2, cfg.Input.ForwardKey)
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
[window]
width = 800

[render]
method = "forward"

[input]
forward_key = -1
`))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, rendermode.Forward, cfg.Method())
	assert.Equal(t, rendermode.Unbound, cfg.Input.ForwardKey)
	assert.Equal(t, "shaders/glowy.wgsl", cfg.Assets.GlowShader)
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":  "[window]\nfullscreen = true\n",
		"bad method":   "[render]\nmethod = \"clustered\"\n",
		"msaa":         "[render]\nmsaa = 4\n",
		"negative":     "[assets]\nwatch_delay_ms = -5\n",
		"bad key":      "[input]\ndeferred_key = 9000\n",
		"zero height":  "[window]\nheight = 0\n",
		"syntax error": "[window\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}

	_, err := Parse([]byte("[render]\nmsaa = 4\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadOrDefault(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "orbs.toml")
	require.NoError(t, os.WriteFile(path, []byte("[assets]\nhot_reload = false\n"), 0o644))
	cfg, err = LoadOrDefault(path)
	require.NoError(t, err)
	assert.False(t, cfg.Assets.HotReload)
}
