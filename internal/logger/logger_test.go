package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"nonsense", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_FileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "primer.log")

	opts := DefaultOptions("debug")
	opts.Console = false
	opts.File = logFile
	opts.Compress = false

	if err := Setup(opts); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	defer Sync()

	Info("hello from the test")
	Debug("debug entry")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "hello from the test") {
		t.Errorf("log file missing info entry: %q", out)
	}
	if !strings.Contains(out, "debug entry") {
		t.Errorf("log file missing debug entry: %q", out)
	}
}

func TestSetup_LevelFilters(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "primer.log")

	opts := DefaultOptions("warn")
	opts.Console = false
	opts.File = logFile
	opts.Compress = false

	if err := Setup(opts); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	Info("should be filtered")
	Warn("should appear")
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "should be filtered") {
		t.Error("info entry written despite warn level")
	}
	if !strings.Contains(out, "should appear") {
		t.Error("warn entry missing")
	}
}
