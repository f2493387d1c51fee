package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	thinglog "github.com/msto63/thing/foundation/core/log"
)

func TestNew(t *testing.T) {
	logger := New("test-service")

	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if logger.Name() != "test-service" {
		t.Errorf("name = %v, want test-service", logger.Name())
	}
}

func TestLogger_WithLevel(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
		warnOn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := New("test").WithLevel(tt.level)
			if result.IsLevelEnabled(thinglog.LevelDebug) != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", !tt.debugOn, tt.debugOn)
			}
			if result.IsLevelEnabled(thinglog.LevelWarn) != tt.warnOn {
				t.Errorf("warn enabled = %v, want %v", !tt.warnOn, tt.warnOn)
			}
			if result.Name() != "test" {
				t.Errorf("name should be preserved: got %v", result.Name())
			}
		})
	}
}

func TestLogger_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := Wrap(NewLogger(LoggerConfig{ServiceName: "thing", Level: "debug", Format: "json", Output: &buf}), "thing")

	logger.With("request_id", "r1").Info("parsed", "nodes", 7, "orphan")

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["nodes"] != float64(7) {
		t.Errorf("nodes = %v, want 7", entry["nodes"])
	}
	if entry["request_id"] != "r1" {
		t.Errorf("request_id = %v, want r1", entry["request_id"])
	}
	if _, ok := entry["orphan"]; ok {
		t.Error("an odd trailing key must be dropped")
	}
	if entry["logger"] != "thing" {
		t.Errorf("logger = %v, want thing", entry["logger"])
	}
}

func TestNewLogger_LevelAndFormat(t *testing.T) {
	tests := []struct {
		level   string
		debugOn bool
	}{
		{"debug", true},
		{"trace", true},
		{"info", false},
		{"warning", false},
		{"invalid", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := NewLogger(LoggerConfig{Level: tt.level, Output: &bytes.Buffer{}})
			if logger.IsLevelEnabled(thinglog.LevelDebug) != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", !tt.debugOn, tt.debugOn)
			}
		})
	}

	var buf bytes.Buffer
	NewLogger(LoggerConfig{ServiceName: "cli", Level: "info", Format: "text", Output: &buf}).Info("hello")
	if !strings.Contains(buf.String(), "[INF] {cli} hello") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNewLogger_AdditionalOutputs(t *testing.T) {
	var primary, secondary bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:             "info",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&secondary},
	})
	logger.Info("twice")

	if !strings.Contains(primary.String(), "twice") || !strings.Contains(secondary.String(), "twice") {
		t.Errorf("outputs = %q / %q", primary.String(), secondary.String())
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("my-service")

	if cfg.ServiceName != "my-service" {
		t.Errorf("ServiceName = %v, want my-service", cfg.ServiceName)
	}
	if cfg.Level != "info" {
		t.Errorf("Level = %v, want info", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %v, want json", cfg.Format)
	}
}

func TestToFields(t *testing.T) {
	if fields := toFields(); fields != nil {
		t.Error("toFields() with no args should return nil")
	}

	fields := toFields("key1", "value1", "key2", 42)
	if fields["key1"] != "value1" {
		t.Errorf("fields[key1] = %v, want value1", fields["key1"])
	}
	if fields["key2"] != 42 {
		t.Errorf("fields[key2] = %v, want 42", fields["key2"])
	}

	fields = toFields(123, "value")
	if len(fields) != 0 {
		t.Errorf("Non-string key should be skipped, got %v fields", len(fields))
	}
}
