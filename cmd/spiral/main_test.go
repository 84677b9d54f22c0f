package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-spiral/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags(t *testing.T) {
	cmd := newRootCommand()
	require.NoError(t, cmd.ParseFlags([]string{"--config", "scene.yaml", "-m", "box.glb", "--profile", "--watch", "--log-level", "debug"}))

	for name, want := range map[string]string{
		"config":    "scene.yaml",
		"model":     "box.glb",
		"profile":   "true",
		"watch":     "true",
		"log-level": "debug",
	} {
		got, err := cmd.Flags().GetString(name)
		if err != nil {
			b, berr := cmd.Flags().GetBool(name)
			require.NoError(t, berr, name)
			assert.Equal(t, want == "true", b, name)
			continue
		}
		assert.Equal(t, want, got, name)
	}
	assert.True(t, cmd.Flags().Changed("log-level"))
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(&options{logLevel: "info"}, false)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\nlayout:\n  total: 9\n"), 0o644))

	cfg, err := loadConfig(&options{configPath: path, logLevel: "info"}, false)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level, "unset flag keeps the file value")
	assert.Equal(t, 9, cfg.Layout.Total)

	cfg, err = loadConfig(&options{configPath: path, modelPath: "other.glb", logLevel: "debug"}, true)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "other.glb", cfg.Model.Path)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(&options{watch: true}, false)
	assert.Error(t, err)

	_, err = loadConfig(&options{configPath: filepath.Join(t.TempDir(), "scene.json")}, false)
	assert.ErrorIs(t, err, config.ErrUnsupportedFormat)
}
