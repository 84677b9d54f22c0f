package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-spiral/common"
	"github.com/Carmen-Shannon/oxy-spiral/engine/camera"
	"github.com/Carmen-Shannon/oxy-spiral/engine/rotator"
	"github.com/Carmen-Shannon/oxy-spiral/engine/spawner"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultModelPath is the asset loaded when no model is configured.
const DefaultModelPath = "./models/CakeNew.glb"

var (
	// ErrUnsupportedFormat is returned for files that are neither YAML nor TOML.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrInvalidConfig wraps every validation failure.
	ErrInvalidConfig = errors.New("config: invalid")
)

// Format selects the decoder used by Parse.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// WindowConfig sizes the main window.
type WindowConfig struct {
	Title  string `yaml:"title" toml:"title"`
	Width  int    `yaml:"width" toml:"width"`
	Height int    `yaml:"height" toml:"height"`
	VSync  bool   `yaml:"vsync" toml:"vsync"`
}

// CameraConfig holds the perspective parameters and the keys that drive the rig.
type CameraConfig struct {
	FovDeg  float32 `yaml:"fov_deg" toml:"fov_deg"`
	Near    float32 `yaml:"near" toml:"near"`
	Far     float32 `yaml:"far" toml:"far"`
	UpKey   string  `yaml:"up_key" toml:"up_key"`
	DownKey string  `yaml:"down_key" toml:"down_key"`
}

// RotatorConfig tunes the stack rotator.
type RotatorConfig struct {
	SpeedDeg    float32 `yaml:"speed_deg" toml:"speed_deg"`
	PositiveKey string  `yaml:"positive_key" toml:"positive_key"`
	NegativeKey string  `yaml:"negative_key" toml:"negative_key"`
}

// ModelConfig names the template asset.
type ModelConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// LogConfig sets the diagnostics level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}

// Config is the full scene file.
type Config struct {
	Window  WindowConfig         `yaml:"window" toml:"window"`
	Camera  CameraConfig         `yaml:"camera" toml:"camera"`
	Rig     camera.RigConfig     `yaml:"rig" toml:"rig"`
	Layout  spawner.LayoutConfig `yaml:"layout" toml:"layout"`
	Rotator RotatorConfig        `yaml:"rotator" toml:"rotator"`
	Model   ModelConfig          `yaml:"model" toml:"model"`
	Log     LogConfig            `yaml:"log" toml:"log"`
}

// Default returns the demo configuration: 104 pieces, 4 units per ring at 45
// degrees, a 60 degree camera and a rotator turning 120 degrees per second.
func Default() *Config {
	return &Config{
		Window: WindowConfig{Title: "oxy-spiral", Width: 1280, Height: 720, VSync: true},
		Camera: CameraConfig{FovDeg: 60, Near: 0.1, Far: 1000, UpKey: "w", DownKey: "s"},
		Rig:    camera.DefaultRigConfig(),
		Layout: spawner.LayoutConfig{
			Total:        104,
			YStep:        4,
			AngleStepDeg: 45,
			RingSize:     spawner.DefaultRingSize,
		},
		Rotator: RotatorConfig{SpeedDeg: 120, PositiveKey: "d", NegativeKey: "a"},
		Model:   ModelConfig{Path: DefaultModelPath},
		Log:     LogConfig{Level: "info"},
	}
}

// FormatFor picks the decoder from a file extension.
//
// Parameters:
//   - path: the file name
//
// Returns:
//   - Format: the matching format
//   - error: ErrUnsupportedFormat for unknown extensions
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads and parses a scene file. Fields absent from the file keep their defaults.
//
// Parameters:
//   - path: a .yaml, .yml or .toml file
//
// Returns:
//   - *Config: the validated configuration
//   - error: read, decode or validation failures
func Load(path string) (*Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and key names.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180 {
		return fmt.Errorf("%w: fov %v out of (0, 180)", ErrInvalidConfig, c.Camera.FovDeg)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes %v..%v", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, name := range []string{c.Camera.UpKey, c.Camera.DownKey, c.Rotator.PositiveKey, c.Rotator.NegativeKey} {
		if _, ok := common.KeyByName(name); !ok {
			return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, name)
		}
	}
	return nil
}

// RigOptions translates the rig section and movement keys into rig options.
func (c *Config) RigOptions() []camera.RigBuilderOption {
	up, _ := common.KeyByName(c.Camera.UpKey)
	down, _ := common.KeyByName(c.Camera.DownKey)
	return []camera.RigBuilderOption{
		camera.WithRigConfig(c.Rig),
		camera.WithVerticalKeys(up, down),
	}
}

// RotatorOptions translates the rotator section into rotator options.
func (c *Config) RotatorOptions() []rotator.RotatorBuilderOption {
	pos, _ := common.KeyByName(c.Rotator.PositiveKey)
	neg, _ := common.KeyByName(c.Rotator.NegativeKey)
	return []rotator.RotatorBuilderOption{
		rotator.WithSpeedDegrees(c.Rotator.SpeedDeg),
		rotator.WithKeys(pos, neg),
	}
}

// Clone returns a copy that shares no pointers with c.
func (c *Config) Clone() *Config {
	out := *c
	if c.Rig.Override != nil {
		o := *c.Rig.Override
		out.Rig.Override = &o
	}
	return &out
}
