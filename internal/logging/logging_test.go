package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "json", &buf)
	logger.Info().Str("k", "v").Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"message":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Fatalf("unexpected json output: %q", out)
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", "json", &buf)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Fatalf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestNew_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger := New("nonsense", "json", &bytes.Buffer{})
	if logger.GetLevel() != zerolog.InfoLevel {
		t.Fatalf("level=%s want info", logger.GetLevel())
	}
}

func TestNew_ConsoleFormatIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	logger := New("info", "console", &buf)
	logger.Info().Msg("hello")

	out := buf.String()
	if strings.Contains(out, `"message"`) {
		t.Fatalf("console output should not be json: %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("message missing: %q", out)
	}
}
