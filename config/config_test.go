package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if !cfg.Processes.Evaporation || !cfg.Processes.Emulsification ||
		!cfg.Processes.Dispersion || !cfg.Processes.Diffusion {
		t.Error("all processes should default on")
	}
	if cfg.Drift.WindDriftFactor != 0.02 {
		t.Errorf("wind_drift_factor = %v, want 0.02", cfg.Drift.WindDriftFactor)
	}
	if cfg.Run.DTSeconds != 3600 {
		t.Errorf("dt_seconds = %v, want 3600", cfg.Run.DTSeconds)
	}
	if cfg.Spill.Number != 1000 {
		t.Errorf("spill.number = %v, want 1000", cfg.Spill.Number)
	}
	if cfg.Spill.OilType != "GULLFAKS CRUDE" {
		t.Errorf("spill.oil_type = %q, want GULLFAKS CRUDE", cfg.Spill.OilType)
	}
	if cfg.Telemetry.OutputDir != "" {
		t.Errorf("output_dir = %q, want disabled by default", cfg.Telemetry.OutputDir)
	}
}

func TestLoadFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	content := `
drift:
  wind_drift_factor: 0.04
run:
  seed: 99
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Drift.WindDriftFactor != 0.04 {
		t.Errorf("wind_drift_factor = %v, want overridden 0.04", cfg.Drift.WindDriftFactor)
	}
	if cfg.Run.Seed != 99 {
		t.Errorf("seed = %v, want overridden 99", cfg.Run.Seed)
	}
	// Untouched fields keep their defaults.
	if cfg.Drift.CurrentUncertainty != 0.1 {
		t.Errorf("current_uncertainty = %v, want default 0.1", cfg.Drift.CurrentUncertainty)
	}
	if cfg.Run.DTSeconds != 3600 {
		t.Errorf("dt_seconds = %v, want default 3600", cfg.Run.DTSeconds)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"wdf negative", func(c *Config) { c.Drift.WindDriftFactor = -0.1 }, "wind_drift_factor"},
		{"wdf above one", func(c *Config) { c.Drift.WindDriftFactor = 1.5 }, "wind_drift_factor"},
		{"current uncertainty", func(c *Config) { c.Drift.CurrentUncertainty = 6 }, "current_uncertainty"},
		{"wind uncertainty", func(c *Config) { c.Drift.WindUncertainty = -1 }, "wind_uncertainty"},
		{"longitude", func(c *Config) { c.Spill.Longitude = 400 }, "longitude"},
		{"latitude", func(c *Config) { c.Spill.Latitude = 95 }, "latitude"},
		{"radius", func(c *Config) { c.Spill.Radius = -1 }, "radius"},
		{"number", func(c *Config) { c.Spill.Number = 0 }, "number"},
		{"mass", func(c *Config) { c.Spill.MassOil = 0 }, "mass_oil"},
		{"dt", func(c *Config) { c.Run.DTSeconds = 0 }, "dt_seconds"},
		{"window", func(c *Config) { c.Telemetry.WindowSeconds = -1 }, "window_seconds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Run.Seed = 123

	path := filepath.Join(t.TempDir(), "saved.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load saved config: %v", err)
	}
	if back.Run.Seed != 123 {
		t.Errorf("seed = %v after round trip, want 123", back.Run.Seed)
	}
}
