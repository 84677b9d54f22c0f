package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/input"
	"github.com/Carmen-Shannon/oxy-spiral/engine/rotator"
	"github.com/Carmen-Shannon/oxy-spiral/engine/spawner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
window:
  width: 800
  height: 600
rig:
  distance: 20
  override: [45, 25, 45]
layout:
  total: 12
rotator:
  speed_deg: 90
  positive_key: right
  negative_key: left
log:
  level: debug
`

const sampleTOML = `
[window]
title = "toml"

[camera]
fov_deg = 75.0
up_key = "up"
down_key = "down"

[layout]
total = 8
y_step = 1.5

[model]
path = "models/box.glb"
`

func TestParseYAML(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "oxy-spiral", cfg.Window.Title, "missing fields keep defaults")
	assert.Equal(t, float32(20), cfg.Rig.Distance)
	assert.Equal(t, float32(4), cfg.Rig.MinDistance)
	require.NotNil(t, cfg.Rig.Override)
	assert.Equal(t, [3]float32{45, 25, 45}, *cfg.Rig.Override)
	assert.Equal(t, 12, cfg.Layout.Total)
	assert.Equal(t, float32(4), cfg.Layout.YStep)
	assert.Equal(t, float32(90), cfg.Rotator.SpeedDeg)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseTOML(t *testing.T) {
	cfg, err := Parse([]byte(sampleTOML), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "toml", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, float32(75), cfg.Camera.FovDeg)
	assert.Equal(t, 8, cfg.Layout.Total)
	assert.Equal(t, float32(1.5), cfg.Layout.YStep)
	assert.Equal(t, "models/box.glb", cfg.Model.Path)
	assert.Nil(t, cfg.Rig.Override)
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, spawner.LayoutConfig{Total: 104, YStep: 4, AngleStepDeg: 45, RingSize: 8}, cfg.Layout)
	assert.Equal(t, camera.DefaultRigConfig(), cfg.Rig)
	assert.Equal(t, DefaultModelPath, cfg.Model.Path)

	empty, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, cfg, empty)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"negative total", "layout:\n  total: -1\n"},
		{"unknown key", "camera:\n  up_key: banana\n"},
		{"zero width", "window:\n  width: 0\n"},
		{"far before near", "camera:\n  near: 10\n  far: 5\n"},
		{"fov too wide", "camera:\n  fov_deg: 180\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), FormatYAML)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Parse([]byte("layout:\n  total: -3\n"), FormatYAML)
	assert.ErrorIs(t, err, spawner.ErrInvalidLayout)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("scene.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("dir/scene.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)

	_, err = FormatFor("scene.json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Layout.Total)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("window: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "decode yaml")
}

func TestOptionsTranslateKeys(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML+"camera:\n  up_key: up\n  down_key: down\n"), FormatYAML)
	require.NoError(t, err)

	rig := camera.NewVerticalZoomRig(cfg.RigOptions()...)
	assert.Equal(t, float32(20), rig.TargetDistance())
	rig.HandleInput(input.KeyDownEvent(common.KeyUp))
	assert.Equal(t, 1, rig.KeyDirection())

	rot := rotator.NewYawRotator(cfg.RotatorOptions()...)
	assert.InDelta(t, 90, rot.SpeedDegrees(), 1e-4)
	rot.HandleInput(input.KeyDownEvent(common.KeyLeft))
	assert.Equal(t, -1, rot.KeyDirection())
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("layout:\n  total: 1\n"), 0o644))

	w, err := NewWatcher(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("layout:\n  total: 7\n"), 0o644))
	select {
	case cfg := <-w.Updates:
		assert.Equal(t, 7, cfg.Layout.Total)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}

	require.NoError(t, os.WriteFile(path, []byte("layout:\n  total: -7\n"), 0o644))
	select {
	case err := <-w.Errors:
		assert.ErrorIs(t, err, ErrInvalidConfig)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload error")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0o644))
	time.Sleep(3 * debounce)
	cfg, err := w.Poll()
	assert.Nil(t, cfg, "other files are ignored")
	assert.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestNewWatcherRejectsUnknownFormat(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "scene.ini"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
