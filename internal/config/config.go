package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
	Log     LogConfig     `yaml:"log"`
	Sim     SimConfig     `yaml:"sim"`
}

type InputConfig struct {
	// Path is a raw ADF capture when mode is "capture", or a timestamped
	// frame log (as written by adfdump -record) when mode is "log".
	Path  string        `yaml:"path"`
	Mode  string        `yaml:"mode"`
	Delay time.Duration `yaml:"delay"`
	Speed float64       `yaml:"speed"`
	Loop  bool          `yaml:"loop"`
}

type OutputConfig struct {
	// Dest is host:port for UDP output; empty writes raw frames to stdout.
	Dest string `yaml:"dest"`
}

type MetricsConfig struct {
	// Listen exposes /metrics over HTTP when non-empty, e.g. ":9110".
	Listen string `yaml:"listen"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SimConfig struct {
	CenterLatDeg float64       `yaml:"center_lat_deg"`
	CenterLonDeg float64       `yaml:"center_lon_deg"`
	AltFeet      int           `yaml:"alt_feet"`
	GroundKt     int           `yaml:"ground_kt"`
	RadiusNm     float64       `yaml:"radius_nm"`
	Period       time.Duration `yaml:"period"`
	Waypoint     string        `yaml:"waypoint"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Input.Path == "" {
		return Config{}, fmt.Errorf("input.path is required")
	}
	if cfg.Input.Mode == "" {
		cfg.Input.Mode = "capture"
	}
	if cfg.Input.Mode != "capture" && cfg.Input.Mode != "log" {
		return Config{}, fmt.Errorf("input.mode must be \"capture\" or \"log\", got %q", cfg.Input.Mode)
	}
	if cfg.Input.Delay <= 0 {
		cfg.Input.Delay = 1 * time.Second
	}
	if cfg.Input.Speed == 0 {
		cfg.Input.Speed = 1
	}
	if cfg.Input.Speed < 0 {
		return Config{}, fmt.Errorf("input.speed must be > 0")
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Format != "console" && cfg.Log.Format != "json" {
		return Config{}, fmt.Errorf("log.format must be \"console\" or \"json\", got %q", cfg.Log.Format)
	}

	// Scenario generator defaults (only used by adfgen).
	if cfg.Sim.Period <= 0 {
		cfg.Sim.Period = 120 * time.Second
	}
	if cfg.Sim.RadiusNm <= 0 {
		cfg.Sim.RadiusNm = 0.5
	}
	if cfg.Sim.GroundKt <= 0 {
		cfg.Sim.GroundKt = 90
	}
	if cfg.Sim.AltFeet == 0 {
		cfg.Sim.AltFeet = 3000
	}
	if cfg.Sim.Waypoint == "" {
		cfg.Sim.Waypoint = "KPDX"
	}

	return cfg, nil
}
