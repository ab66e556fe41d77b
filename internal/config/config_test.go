package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp := t.TempDir()
	path := filepath.Join(tmp, "cfg.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func requireErrEq(t *testing.T, err error, want string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error %q, got nil", want)
	}
	if err.Error() != want {
		t.Fatalf("error=%q want %q", err.Error(), want)
	}
}

func TestLoad_RequiresInputPath(t *testing.T) {
	path := writeTempConfig(t, "input: {}\n")
	_, err := Load(path)
	requireErrEq(t, err, "input.path is required")
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: './capture.adf'\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Input.Mode != "capture" {
		t.Fatalf("mode=%q want capture", cfg.Input.Mode)
	}
	if cfg.Input.Delay != 1*time.Second {
		t.Fatalf("delay=%s want 1s", cfg.Input.Delay)
	}
	if cfg.Input.Speed != 1 {
		t.Fatalf("speed=%v want 1", cfg.Input.Speed)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "console" {
		t.Fatalf("log defaults=%q/%q want info/console", cfg.Log.Level, cfg.Log.Format)
	}

	// Scenario generator defaults should be populated even if sim is absent.
	if cfg.Sim.Period <= 0 || cfg.Sim.RadiusNm <= 0 || cfg.Sim.GroundKt <= 0 || cfg.Sim.AltFeet == 0 {
		t.Fatalf("expected sim defaults applied")
	}
	if cfg.Sim.Waypoint == "" {
		t.Fatalf("expected sim.waypoint default applied")
	}
}

func TestLoad_ModeValidation(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: './capture.adf'\n  mode: serial\n")
	_, err := Load(path)
	requireErrEq(t, err, "input.mode must be \"capture\" or \"log\", got \"serial\"")
}

func TestLoad_SpeedDefaultsToOne(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: './x.log'\n  mode: log\n  speed: 0\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Input.Speed != 1 {
		t.Fatalf("speed=%v want 1", cfg.Input.Speed)
	}
}

func TestLoad_NegativeSpeedRejected(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: './x.log'\n  mode: log\n  speed: -1\n")
	_, err := Load(path)
	requireErrEq(t, err, "input.speed must be > 0")
}

func TestLoad_LogFormatValidation(t *testing.T) {
	path := writeTempConfig(t, "input:\n  path: './x.adf'\nlog:\n  format: xml\n")
	_, err := Load(path)
	requireErrEq(t, err, "log.format must be \"console\" or \"json\", got \"xml\"")
}

func TestLoad_FullConfig(t *testing.T) {
	body := "input:\n" +
		"  path: './flight.log'\n" +
		"  mode: log\n" +
		"  speed: 2.0\n" +
		"  loop: true\n" +
		"output:\n" +
		"  dest: '127.0.0.1:4000'\n" +
		"metrics:\n" +
		"  listen: ':9110'\n" +
		"log:\n" +
		"  level: debug\n" +
		"  format: json\n"
	path := writeTempConfig(t, body)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Output.Dest != "127.0.0.1:4000" {
		t.Fatalf("dest=%q", cfg.Output.Dest)
	}
	if cfg.Metrics.Listen != ":9110" {
		t.Fatalf("listen=%q", cfg.Metrics.Listen)
	}
	if !cfg.Input.Loop || cfg.Input.Speed != 2.0 {
		t.Fatalf("input=%+v", cfg.Input)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Fatalf("log=%+v", cfg.Log)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
