// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/nebula/shapes"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Force     ForceConfig     `yaml:"force"`
	Color     ColorConfig     `yaml:"color"`
	Gesture   GestureConfig   `yaml:"gesture"`
	Tracking  TrackingConfig  `yaml:"tracking"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display and camera settings.
type ScreenConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	TargetFPS      int     `yaml:"target_fps"`
	FOV            float64 `yaml:"fov"` // vertical, degrees
	Near           float64 `yaml:"near"`
	Far            float64 `yaml:"far"`
	CameraDistance float64 `yaml:"camera_distance"`
	PointerScale   float64 `yaml:"pointer_scale"` // world units spanned by the window
	PointSize      float64 `yaml:"point_size"`
}

// ParticlesConfig holds cloud and morph parameters.
type ParticlesConfig struct {
	Count             int     `yaml:"count"`
	LerpSpeed         float64 `yaml:"lerp_speed"`     // fraction of remaining distance per tick
	RotationSpeed     float64 `yaml:"rotation_speed"` // radians per tick about y
	InitialShape      string  `yaml:"initial_shape"`
	Seed              int64   `yaml:"seed"` // 0 = time-based
	ParallelThreshold int     `yaml:"parallel_threshold"`
	Workers           int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// ForceConfig holds interaction field parameters.
type ForceConfig struct {
	Radius  float64 `yaml:"radius"`
	Attract float64 `yaml:"attract"` // factor while active
	Repel   float64 `yaml:"repel"`   // factor while idle, negative
}

// ColorConfig holds particle colouring parameters.
type ColorConfig struct {
	HueDistanceScale float64 `yaml:"hue_distance_scale"`
	HueTimeScale     float64 `yaml:"hue_time_scale"` // hue turns per second
	Saturation       float64 `yaml:"saturation"`
	Lightness        float64 `yaml:"lightness"`
}

// GestureConfig holds classifier and smoother thresholds.
type GestureConfig struct {
	PinchThreshold float64 `yaml:"pinch_threshold"`
	ThumbThreshold float64 `yaml:"thumb_threshold"`
	Window         int     `yaml:"window"`
	Majority       float64 `yaml:"majority"` // strict fraction of the window
}

// TrackingConfig holds webcam and landmark model settings.
type TrackingConfig struct {
	Enabled           bool    `yaml:"enabled"`
	Device            int     `yaml:"device"`
	Width             int     `yaml:"width"`
	Height            int     `yaml:"height"`
	ModelPath         string  `yaml:"model_path"`
	InputSize         int     `yaml:"input_size"`
	LandmarkOutput    string  `yaml:"landmark_output"`
	PresenceOutput    string  `yaml:"presence_output"`
	PresenceThreshold float64 `yaml:"presence_threshold"`
	ReplayFPS         float64 `yaml:"replay_fps"`
	ReplayLoop        bool    `yaml:"replay_loop"`
}

// AudioConfig holds the sound design.
type AudioConfig struct {
	Enabled            bool    `yaml:"enabled"`
	SampleRate         int     `yaml:"sample_rate"`
	BufferMS           int     `yaml:"buffer_ms"`
	DroneFrequency     float64 `yaml:"drone_frequency"`
	DroneQ             float64 `yaml:"drone_q"`
	CutoffBase         float64 `yaml:"cutoff_base"`
	CutoffRange        float64 `yaml:"cutoff_range"`
	GainBase           float64 `yaml:"gain_base"`
	GainRange          float64 `yaml:"gain_range"`
	SpringFrequency    float64 `yaml:"spring_frequency"`
	TransitionDuration float64 `yaml:"transition_duration"` // seconds
	TransitionAttack   float64 `yaml:"transition_attack"`   // seconds
	TransitionPeak     float64 `yaml:"transition_peak"`
	TransitionFloor    float64 `yaml:"transition_floor"`
	TransitionCenter   float64 `yaml:"transition_center"`
	TransitionQ        float64 `yaml:"transition_q"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	PerfLogInterval     int     `yaml:"perf_log_interval"` // ticks between perf records
	StatsWindow         float64 `yaml:"stats_window"`      // seconds per session stats row
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32           float32          // 1/TargetFPS
	ScreenW32      float32          // Screen.Width as float32
	ScreenH32      float32          // Screen.Height as float32
	InitialShape   shapes.Archetype // parsed Particles.InitialShape
	ReplayInterval time.Duration    // 1/Tracking.ReplayFPS
	AudioBuffer    time.Duration
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config and rejects
// values the simulation cannot run with.
func (c *Config) computeDerived() error {
	if c.Particles.Count < 0 {
		return fmt.Errorf("particles.count must not be negative, got %d", c.Particles.Count)
	}
	if c.Gesture.Window < 1 {
		return fmt.Errorf("gesture.window must be positive, got %d", c.Gesture.Window)
	}
	if c.Gesture.Majority <= 0 || c.Gesture.Majority >= 1 {
		return fmt.Errorf("gesture.majority must be in (0,1), got %v", c.Gesture.Majority)
	}
	if c.Screen.Near <= 0 || c.Screen.Far <= c.Screen.Near {
		return fmt.Errorf("screen clip planes need 0 < near < far, got near=%v far=%v", c.Screen.Near, c.Screen.Far)
	}
	shape, err := shapes.ParseArchetype(c.Particles.InitialShape)
	if err != nil {
		return fmt.Errorf("particles.initial_shape: %w", err)
	}
	c.Derived.InitialShape = shape

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT32 = 1 / float32(fps)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Tracking.ReplayFPS > 0 {
		c.Derived.ReplayInterval = time.Duration(float64(time.Second) / c.Tracking.ReplayFPS)
	}
	c.Derived.AudioBuffer = time.Duration(c.Audio.BufferMS) * time.Millisecond
	return nil
}

// ErrNoConfig is returned by WriteYAML on a nil receiver.
var ErrNoConfig = errors.New("config: nil config")

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	if c == nil {
		return ErrNoConfig
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
