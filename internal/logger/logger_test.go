package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")
	t.Cleanup(Close)

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	want := filepath.Join(configDir, "logs", "pactly.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("dropped at warn level")
	Warn("store write failed", "key", "pactly_pacts")

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "store write failed") || !strings.Contains(string(data), "pactly_pacts") {
		t.Errorf("log file missing warning, got %q", string(data))
	}
	if strings.Contains(string(data), "dropped at warn level") {
		t.Error("debug line written without debug mode")
	}
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	t.Cleanup(Close)

	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Debug("seed skipped")

	if !strings.Contains(stderr.String(), "seed skipped") {
		t.Errorf("stderr = %q, want the debug line", stderr.String())
	}
	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "seed skipped") {
		t.Errorf("log file = %q, want the debug line", string(data))
	}
}

func TestInitWriterLevels(t *testing.T) {
	tests := []struct {
		name      string
		debug     bool
		wantDebug bool
	}{
		{name: "warn level drops debug", debug: false, wantDebug: false},
		{name: "debug level keeps debug", debug: true, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			InitWriter(&buf, tt.debug)
			t.Cleanup(Close)

			Debug("debug line")
			Warn("warn line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v", got, tt.wantDebug)
			}
			if !strings.Contains(out, "warn line") {
				t.Errorf("warn line missing from %q", out)
			}
			if Path() != "" {
				t.Errorf("Path() = %q for a writer logger", Path())
			}
		})
	}
}

func TestCloseSilencesHelpers(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, true)
	Close()

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	if buf.Len() != 0 {
		t.Errorf("wrote %q after Close", buf.String())
	}
}
