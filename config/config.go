// Package config provides configuration loading and access for the race.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/neonring/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all race configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Vehicle   VehicleConfig   `yaml:"vehicle"`
	Track     TrackConfig     `yaml:"track"`
	Race      RaceConfig      `yaml:"race"`
	Camera    CameraConfig    `yaml:"camera"`
	Sim       SimConfig       `yaml:"sim"`
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

// VehicleConfig holds the vehicle's handling constants.
type VehicleConfig struct {
	MaxSpeedKMH  float64 `yaml:"max_speed_kmh"` // Top speed in km/h, converted to units/s
	Acceleration float64 `yaml:"acceleration"`  // units/s²
	Braking      float64 `yaml:"braking"`       // units/s², applied while moving forward
	TurnSpeed    float64 `yaml:"turn_speed"`    // rad/s at full speed
}

// TrackConfig holds the annulus geometry.
type TrackConfig struct {
	InnerRadius float64 `yaml:"inner_radius"`
	OuterRadius float64 `yaml:"outer_radius"`
}

// RaceConfig holds race rules.
type RaceConfig struct {
	TotalLaps int `yaml:"total_laps"`
}

// CameraConfig holds chase camera parameters.
type CameraConfig struct {
	Distance  float64 `yaml:"distance"`  // Horizontal offset behind the vehicle
	Height    float64 `yaml:"height"`    // Vertical offset above the vehicle
	Smoothing float64 `yaml:"smoothing"` // Per-frame lerp factor
	LookLift  float64 `yaml:"look_lift"` // Look-at target height above the vehicle
	Fovy      float64 `yaml:"fovy"`
}

// SimConfig holds tick driver parameters.
type SimConfig struct {
	MaxDT   float64 `yaml:"max_dt"`   // Upper bound on a single frame's dt
	FixedDT float64 `yaml:"fixed_dt"` // dt used by headless runs
}

// AutopilotConfig holds the centreline-following controller gains.
type AutopilotConfig struct {
	SteerGain  float64 `yaml:"steer_gain"`  // Heading correction per unit of radial error
	MaxCorrect float64 `yaml:"max_correct"` // Cap on heading correction (rad)
	Deadband   float64 `yaml:"deadband"`    // Heading error ignored (rad)
	LineOffset float64 `yaml:"line_offset"` // Racing line offset from the centreline (units, + = outward)

	// Turning around at the start
	AlignThreshold float64 `yaml:"align_threshold"` // Heading error above which the car K-turns (rad)
	CreepSpeed     float64 `yaml:"creep_speed"`     // Speed cap while turning or before clearing the start seam
	GearRoom       float64 `yaml:"gear_room"`       // Distance from a wall at which a K-turn changes direction
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	TraceEvery          int `yaml:"trace_every"`           // Write a trace row every N ticks
	PerfCollectorWindow int `yaml:"perf_collector_window"` // Ticks averaged by the perf collector
	PerfLogInterval     int `yaml:"perf_log_interval"`     // Ticks between perf log lines (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MaxSpeed  float64 // Vehicle.MaxSpeedKMH in units/s
	ScreenW32 float32
	ScreenH32 float32
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

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
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

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the simulation cannot run with.
func (c *Config) validate() error {
	if c.Vehicle.MaxSpeedKMH <= 0 {
		return fmt.Errorf("vehicle.max_speed_kmh must be positive, got %v", c.Vehicle.MaxSpeedKMH)
	}
	if c.Vehicle.Acceleration <= 0 {
		return fmt.Errorf("vehicle.acceleration must be positive, got %v", c.Vehicle.Acceleration)
	}
	if c.Vehicle.Braking <= 0 {
		return fmt.Errorf("vehicle.braking must be positive, got %v", c.Vehicle.Braking)
	}
	if c.Vehicle.TurnSpeed <= 0 {
		return fmt.Errorf("vehicle.turn_speed must be positive, got %v", c.Vehicle.TurnSpeed)
	}
	if c.Track.InnerRadius <= 0 || c.Track.OuterRadius <= c.Track.InnerRadius {
		return fmt.Errorf("track radii must satisfy 0 < inner < outer, got inner=%v outer=%v",
			c.Track.InnerRadius, c.Track.OuterRadius)
	}
	// The walls stop the car short of each edge; the band between them must be open
	track := components.Track{InnerRadius: c.Track.InnerRadius, OuterRadius: c.Track.OuterRadius}
	if track.MinRadius() >= track.MaxRadius() {
		return fmt.Errorf("track too narrow: usable band [%v, %v] is empty, need outer - inner > %v",
			track.MinRadius(), track.MaxRadius(), components.InnerWallMargin+components.OuterWallMargin)
	}
	// The grid slot sits four units inside the outer edge
	if start := -track.StartPosition().Z; start < track.MinRadius() || start > track.MaxRadius() {
		return fmt.Errorf("track too narrow: start radius %v outside usable band [%v, %v]",
			start, track.MinRadius(), track.MaxRadius())
	}
	if c.Race.TotalLaps < 1 {
		return fmt.Errorf("race.total_laps must be at least 1, got %d", c.Race.TotalLaps)
	}
	if c.Sim.MaxDT <= 0 || c.Sim.FixedDT <= 0 {
		return fmt.Errorf("sim.max_dt and sim.fixed_dt must be positive")
	}
	if c.Autopilot.CreepSpeed <= 0 {
		return fmt.Errorf("autopilot.creep_speed must be positive, got %v", c.Autopilot.CreepSpeed)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MaxSpeed = c.Vehicle.MaxSpeedKMH / 3.6
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
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
