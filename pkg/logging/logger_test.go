package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   Level
		want zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{Level("warning"), zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{Level("WARN"), zerolog.WarnLevel},
		{Level("bogus"), zerolog.InfoLevel},
		{Level(""), zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelInfo, Output: &buf})

	logger.Info().Str("key", "story:1").Msg("Cache hit")

	out := buf.String()
	if !strings.Contains(out, `"key":"story:1"`) {
		t.Errorf("log output missing field: %s", out)
	}
	if !strings.Contains(out, `"message":"Cache hit"`) {
		t.Errorf("log output missing message: %s", out)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: LevelWarn, Output: &buf})

	logger.Debug().Msg("dropped")
	logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("debug line emitted at warn level: %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestNewLogger_TagsComponent(t *testing.T) {
	var buf bytes.Buffer
	Setup(Config{Level: LevelInfo, Output: &buf})

	logger := NewLogger("hn-client")
	logger.Info().Msg("ready")

	if !strings.Contains(buf.String(), `"component":"hn-client"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}
