package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smileynet/addressbook/internal/config"
)

func TestNew_ConsoleToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := New(config.Log{Level: "info", Format: "console"}, &buf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("contact added")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "contact added") {
		t.Errorf("output = %q, want info message", out)
	}
	if !strings.Contains(out, "INFO") {
		t.Errorf("output = %q, want capital level", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message should be filtered at info level: %q", out)
	}
}

func TestNew_JSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addressbook.log")
	logger, cleanup, err := New(config.Log{Level: "debug", Format: "json", File: path}, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("phone changed")
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, data)
	}
	if entry["msg"] != "phone changed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "phone changed")
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v, want %q", entry["level"], "debug")
	}
}

func TestNew_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Log
	}{
		{name: "unknown level", cfg: config.Log{Level: "loud", Format: "console"}},
		{name: "unknown format", cfg: config.Log{Level: "info", Format: "xml"}},
		{name: "unwritable file", cfg: config.Log{Level: "info", File: filepath.Join(t.TempDir(), "missing", "x.log")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := New(tt.cfg, &bytes.Buffer{}); err == nil {
				t.Error("New() should return error")
			}
		})
	}
}
