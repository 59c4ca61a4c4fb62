package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"

	"biliredirect/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"shouting", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parseLevel(tt.raw); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDebugOverridesLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "error"
	cfg.Debug = true

	if got := newWithWriter(cfg, &bytes.Buffer{}).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", got)
	}
}

func TestProductionWritesJSON(t *testing.T) {
	cfg := config.Default()
	cfg.Environment = "production"

	var buf bytes.Buffer
	log := newWithWriter(cfg, &buf)
	log.Info().Str("bvid", "BV1xx411c7mD").Msg("resolving")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("production output is not JSON: %v (%q)", err, buf.String())
	}
	if line["service"] != "biliredirect" {
		t.Errorf("service field = %v", line["service"])
	}
	if line["bvid"] != "BV1xx411c7mD" {
		t.Errorf("bvid field = %v", line["bvid"])
	}
}
