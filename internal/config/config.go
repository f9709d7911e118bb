package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gridflow/internal/engine"
)

const (
	DefaultWidth             = 80
	DefaultHeight            = 40
	DefaultGravity           = 0.8
	DefaultFlowSpeed         = 0.5
	DefaultVorticityStrength = 0.15
	DefaultSpatialFreq       = 0.1
	DefaultVelocityDamping   = 0.98

	MinFlowSpeed = 0.1
	MaxFlowSpeed = 1.0
)

type Config struct {
	GridWidth         int     `yaml:"grid_width"`
	GridHeight        int     `yaml:"grid_height"`
	Gravity           float64 `yaml:"gravity"`
	FlowSpeed         float64 `yaml:"flow_speed"`
	Evaporation       float64 `yaml:"evaporation"`
	VorticityStrength float64 `yaml:"vorticity_strength"`
	SpatialFreq       float64 `yaml:"spatial_freq"`
	VelocityDamping   float64 `yaml:"velocity_damping"`
}

func DefaultConfig() *Config {
	return &Config{
		GridWidth:         DefaultWidth,
		GridHeight:        DefaultHeight,
		Gravity:           DefaultGravity,
		FlowSpeed:         DefaultFlowSpeed,
		Evaporation:       0,
		VorticityStrength: DefaultVorticityStrength,
		SpatialFreq:       DefaultSpatialFreq,
		VelocityDamping:   DefaultVelocityDamping,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations the engine cannot run. Dimension
// errors are fatal; out-of-range tunables are reported here rather
// than silently clamped.
func (c *Config) Validate() error {
	if c.GridWidth < 3 || c.GridHeight < 3 {
		return fmt.Errorf("config: grid must be at least 3x3, got %dx%d", c.GridWidth, c.GridHeight)
	}
	if c.FlowSpeed < MinFlowSpeed || c.FlowSpeed > MaxFlowSpeed {
		return fmt.Errorf("config: flow_speed %.3f outside [%.1f, %.1f]", c.FlowSpeed, MinFlowSpeed, MaxFlowSpeed)
	}
	if c.Evaporation < 0 {
		return fmt.Errorf("config: evaporation must be non-negative, got %.3f", c.Evaporation)
	}
	if c.VelocityDamping <= 0 || c.VelocityDamping > 1 {
		return fmt.Errorf("config: velocity_damping %.3f outside (0, 1]", c.VelocityDamping)
	}
	return nil
}

// Engine converts to the engine's internal configuration.
func (c *Config) Engine() engine.Config {
	return engine.Config{
		Width:             c.GridWidth,
		Height:            c.GridHeight,
		Gravity:           c.Gravity,
		FlowSpeed:         c.FlowSpeed,
		Evaporation:       c.Evaporation,
		VorticityStrength: c.VorticityStrength,
		SpatialFreq:       c.SpatialFreq,
		VelocityDamping:   c.VelocityDamping,
	}
}
