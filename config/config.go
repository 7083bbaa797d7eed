// Package config provides configuration loading and access for the snake.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/gridsnake/geom"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Snake     SnakeConfig     `yaml:"snake"`
	Head      HeadConfig      `yaml:"head"`
	Skin      SkinConfig      `yaml:"skin"`
	Camera    CameraConfig    `yaml:"camera"`
	Autopilot AutopilotConfig `yaml:"autopilot"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// GridConfig holds the lattice the snake moves on.
type GridConfig struct {
	Type    string  `yaml:"type"`    // square | hexagonal
	Spacing float64 `yaml:"spacing"` // distance between grid points; one move-cycle covers half
}

// SnakeConfig holds chain and locomotion parameters.
type SnakeConfig struct {
	InitialLength int     `yaml:"initial_length"` // follower segments behind the head
	MoveSpeed     float64 `yaml:"move_speed"`     // world units per second
	MinSpeed      float64 `yaml:"min_speed"`
	MaxSpeed      float64 `yaml:"max_speed"`
	BodyRadius    float64 `yaml:"body_radius"`     // default cross-section radius
	HeadTurnRate  float64 `yaml:"head_turn_rate"` // head orientation smoothing, scaled by speed
}

// HeadConfig holds the decorative end caps and eye offsets.
type HeadConfig struct {
	Tip    CapConfig `yaml:"tip"`    // nose tip, ahead of the head
	Middle CapConfig `yaml:"middle"` // widened head section, ahead of the head
	Tail   CapConfig `yaml:"tail"`   // tail tip, behind the last follower
	Eyes   EyeConfig `yaml:"eyes"`
}

// CapConfig places one extra cross-section along a segment's forward axis.
type CapConfig struct {
	Offset  float64 `yaml:"offset"`
	RadiusX float64 `yaml:"radius_x"`
	RadiusY float64 `yaml:"radius_y"`
}

// EyeConfig places the eyes relative to the head middle section.
type EyeConfig struct {
	Forward float64 `yaml:"forward"`
	Right   float64 `yaml:"right"` // mirrored for the left eye
	Up      float64 `yaml:"up"`
	Radius  float64 `yaml:"radius"`
}

// SkinConfig holds mesh building parameters.
type SkinConfig struct {
	HeadSpans int `yaml:"head_spans"` // leading spans drawn with the head material
}

// CameraConfig holds chase camera parameters.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`
	Height    float64 `yaml:"height"`
	Stiffness float64 `yaml:"stiffness"` // fraction of the gap closed per second
	Fovy      float64 `yaml:"fovy"`
}

// AutopilotConfig holds the headless turn generator parameters.
type AutopilotConfig struct {
	TurnChance  float64 `yaml:"turn_chance"`  // probability of a turn request per cycle
	SpeedChance float64 `yaml:"speed_chance"` // probability of a speed change per cycle
}

// TelemetryConfig holds logging cadence.
type TelemetryConfig struct {
	LogEveryCycles int `yaml:"log_every_cycles"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Lattice geom.Lattice
	Step    float64 // Lattice.Step()
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Validate reports configuration errors.
func (c *Config) Validate() error {
	gridType, err := geom.ParseGridType(c.Grid.Type)
	if err != nil {
		return fmt.Errorf("%w: grid.type: %v", ErrInvalid, err)
	}
	if _, err := geom.NewLattice(gridType, c.Grid.Spacing); err != nil {
		return fmt.Errorf("%w: grid: %v", ErrInvalid, err)
	}
	if c.Snake.InitialLength < 1 {
		return fmt.Errorf("%w: snake.initial_length must be at least 1, got %d", ErrInvalid, c.Snake.InitialLength)
	}
	if c.Snake.MinSpeed <= 0 || c.Snake.MaxSpeed < c.Snake.MinSpeed {
		return fmt.Errorf("%w: snake speed range [%v, %v]", ErrInvalid, c.Snake.MinSpeed, c.Snake.MaxSpeed)
	}
	if c.Snake.BodyRadius < 0 || math.IsNaN(c.Snake.BodyRadius) {
		return fmt.Errorf("%w: snake.body_radius %v", ErrInvalid, c.Snake.BodyRadius)
	}
	if c.Skin.HeadSpans < 0 {
		return fmt.Errorf("%w: skin.head_spans %d", ErrInvalid, c.Skin.HeadSpans)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Validate has already accepted both values.
	gridType, _ := geom.ParseGridType(c.Grid.Type)
	c.Derived.Lattice, _ = geom.NewLattice(gridType, c.Grid.Spacing)
	c.Derived.Step = c.Derived.Lattice.Step()

	// Clamp the initial speed into range.
	if c.Snake.MoveSpeed < c.Snake.MinSpeed {
		c.Snake.MoveSpeed = c.Snake.MinSpeed
	}
	if c.Snake.MoveSpeed > c.Snake.MaxSpeed {
		c.Snake.MoveSpeed = c.Snake.MaxSpeed
	}
	if c.Telemetry.LogEveryCycles <= 0 {
		c.Telemetry.LogEveryCycles = 50
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
