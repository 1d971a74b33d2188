// Package config provides configuration loading and validation for the
// simulation. Defaults are embedded; a user file merges over them.
// Range checks happen here, at load time, never inside the step loop.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Processes ProcessesConfig `yaml:"processes"`
	Drift     DriftConfig     `yaml:"drift"`
	Spill     SpillConfig     `yaml:"spill"`
	Run       RunConfig       `yaml:"run"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProcessesConfig switches individual processes on or off.
type ProcessesConfig struct {
	Dispersion     bool `yaml:"dispersion"`
	Diffusion      bool `yaml:"diffusion"`
	Evaporation    bool `yaml:"evaporation"`
	Emulsification bool `yaml:"emulsification"`
}

// DriftConfig holds transport parameters.
type DriftConfig struct {
	WindDriftFactor    float64 `yaml:"wind_drift_factor"`   // fraction of wind speed, [0,1]
	CurrentUncertainty float64 `yaml:"current_uncertainty"` // m/s std-dev, [0,5]
	WindUncertainty    float64 `yaml:"wind_uncertainty"`    // m/s std-dev, [0,5]
}

// SpillConfig describes the release used by SeedSpill.
type SpillConfig struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Radius    float64 `yaml:"radius"` // m, Gaussian scatter around the release point
	Number    int     `yaml:"number"`
	MassOil   float64 `yaml:"mass_oil"` // kg per particle
	OilType   string  `yaml:"oil_type"`
}

// RunConfig holds stepping parameters.
type RunConfig struct {
	DTSeconds float64 `yaml:"dt_seconds"`
	Seed      int64   `yaml:"seed"`
}

// TelemetryConfig holds stats aggregation and output settings.
type TelemetryConfig struct {
	WindowSeconds float64 `yaml:"window_seconds"`
	OutputDir     string  `yaml:"output_dir"` // empty disables CSV output
}

// Load loads configuration from a YAML file, merging with embedded
// defaults and validating the result. If path is empty, only embedded
// defaults are used.
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
		// Unmarshal into the same struct: only fields present in the
		// file overwrite the defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is like Load but panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
	return cfg
}

// Validate rejects out-of-range values.
func (c *Config) Validate() error {
	d := c.Drift
	if d.WindDriftFactor < 0 || d.WindDriftFactor > 1 {
		return fmt.Errorf("config: drift.wind_drift_factor %g outside [0,1]", d.WindDriftFactor)
	}
	if d.CurrentUncertainty < 0 || d.CurrentUncertainty > 5 {
		return fmt.Errorf("config: drift.current_uncertainty %g outside [0,5]", d.CurrentUncertainty)
	}
	if d.WindUncertainty < 0 || d.WindUncertainty > 5 {
		return fmt.Errorf("config: drift.wind_uncertainty %g outside [0,5]", d.WindUncertainty)
	}

	s := c.Spill
	if s.Longitude < -360 || s.Longitude > 360 {
		return fmt.Errorf("config: spill.longitude %g outside [-360,360]", s.Longitude)
	}
	if s.Latitude < -90 || s.Latitude > 90 {
		return fmt.Errorf("config: spill.latitude %g outside [-90,90]", s.Latitude)
	}
	if s.Radius < 0 {
		return fmt.Errorf("config: spill.radius %g must be non-negative", s.Radius)
	}
	if s.Number < 1 {
		return fmt.Errorf("config: spill.number %d must be at least 1", s.Number)
	}
	if s.MassOil <= 0 {
		return fmt.Errorf("config: spill.mass_oil %g must be positive", s.MassOil)
	}

	if c.Run.DTSeconds <= 0 {
		return fmt.Errorf("config: run.dt_seconds %g must be positive", c.Run.DTSeconds)
	}
	if c.Telemetry.WindowSeconds < 0 {
		return fmt.Errorf("config: telemetry.window_seconds %g must be non-negative", c.Telemetry.WindowSeconds)
	}
	return nil
}

// WriteYAML saves the configuration, so a run directory records the
// exact parameters it was produced with.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
