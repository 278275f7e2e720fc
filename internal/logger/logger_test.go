package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{"", DefaultLevel, false},
		{"debug", zerolog.DebugLevel, false},
		{"INFO", zerolog.InfoLevel, false},
		{"warn", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, false},
		{"trace", zerolog.NoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := ParseLevel(tt.level)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := New("warn", "", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer closer.Close()

	log.Info().Msg("hidden message")
	log.Warn().Msg("visible message")

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Errorf("info line should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "visible message") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	var buf bytes.Buffer
	log, closer, err := New("debug", path, &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	log.Debug().Str("run", "abc").Msg("scan started")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &line); err != nil {
		t.Fatalf("log file line is not JSON: %v (%s)", err, data)
	}
	if line["message"] != "scan started" || line["run"] != "abc" {
		t.Errorf("unexpected log line: %v", line)
	}
	if !strings.Contains(buf.String(), "scan started") {
		t.Errorf("console output missing message: %s", buf.String())
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, _, err := New("loud", "", &bytes.Buffer{}); err == nil {
		t.Error("expected error for unknown level")
	}

	missingDir := filepath.Join(t.TempDir(), "missing", "run.log")
	if _, _, err := New("info", missingDir, &bytes.Buffer{}); err == nil {
		t.Error("expected error for unwritable log file")
	}
}
