package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Process model names accepted in config files.
const (
	ModelFirstOrder  = "first_order"
	ModelSecondOrder = "second_order"
)

const (
	DefaultKp       = 0.1
	DefaultKi       = 0.005
	DefaultKd       = 0.02
	DefaultSetpoint = 200.0
	DefaultTau      = 1.0
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultOutMin   = 0.0
	DefaultOutMax   = 400.0
)

// Config is the immutable snapshot a simulation run starts from. A new
// run takes a new snapshot; nothing mutates it mid-run.
type Config struct {
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	Setpoint float64 `yaml:"setpoint"`

	ProcessModel string `yaml:"process_model"`
	// first_order
	TimeConstant float64 `yaml:"time_constant,omitempty"`
	// second_order
	NaturalFrequency float64 `yaml:"natural_frequency,omitempty"`
	DampingRatio     float64 `yaml:"damping_ratio,omitempty"`

	Disturbance float64 `yaml:"disturbance"`
	NoiseStdDev float64 `yaml:"noise_std_dev"`
	Dt          float64 `yaml:"dt"`

	// Output saturation limits for the controller. Both zero means
	// unconstrained.
	OutputMin float64 `yaml:"output_min"`
	OutputMax float64 `yaml:"output_max"`

	Duration float64 `yaml:"duration"`
	Seed     int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Kp:           DefaultKp,
		Ki:           DefaultKi,
		Kd:           DefaultKd,
		Setpoint:     DefaultSetpoint,
		ProcessModel: ModelFirstOrder,
		TimeConstant: DefaultTau,
		Dt:           DefaultDt,
		OutputMin:    DefaultOutMin,
		OutputMax:    DefaultOutMax,
		Duration:     DefaultDuration,
	}
}

// Limited reports whether output saturation limits are configured.
func (c *Config) Limited() bool {
	return c.OutputMin != 0 || c.OutputMax != 0
}

// Validate checks every field a run depends on. It runs at load time and
// again when a run starts, so invalid values never reach the stepping
// loop.
func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %g", c.Dt)
	}
	if c.NoiseStdDev < 0 {
		return fmt.Errorf("noise_std_dev must be non-negative, got %g", c.NoiseStdDev)
	}
	switch c.ProcessModel {
	case ModelFirstOrder:
		if c.TimeConstant <= 0 {
			return fmt.Errorf("time_constant must be positive for %s, got %g", ModelFirstOrder, c.TimeConstant)
		}
	case ModelSecondOrder:
		if c.NaturalFrequency <= 0 {
			return fmt.Errorf("natural_frequency must be positive for %s, got %g", ModelSecondOrder, c.NaturalFrequency)
		}
		if c.DampingRatio < 0 {
			return fmt.Errorf("damping_ratio must be non-negative, got %g", c.DampingRatio)
		}
	default:
		return fmt.Errorf("unknown process_model: %q (want %s or %s)", c.ProcessModel, ModelFirstOrder, ModelSecondOrder)
	}
	if c.Limited() && c.OutputMin >= c.OutputMax {
		return fmt.Errorf("output_min %g must be below output_max %g", c.OutputMin, c.OutputMax)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must be non-negative, got %g", c.Duration)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
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
