package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	// Test with DEBUG=true
	t.Setenv("DEBUG", "true")
	logger := New()
	if !logger.debugEnabled {
		t.Errorf("Expected debugEnabled to be true when DEBUG=true")
	}

	// Test with DEBUG=false
	t.Setenv("DEBUG", "false")
	logger = New()
	if logger.debugEnabled {
		t.Errorf("Expected debugEnabled to be false when DEBUG=false")
	}
}

func TestSetDebug(t *testing.T) {
	logger := New()

	logger.SetDebug(true)
	if !logger.DebugEnabled() {
		t.Errorf("Expected debugEnabled to be true after SetDebug(true)")
	}

	logger.SetDebug(false)
	if logger.DebugEnabled() {
		t.Errorf("Expected debugEnabled to be false after SetDebug(false)")
	}
}

func TestDebugf(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf)

	logger.SetDebug(false)
	logger.Debugf("Test debug message")
	if buf.Len() != 0 {
		t.Errorf("Expected no output with debug disabled, got %q", buf.String())
	}

	logger.SetDebug(true)
	logger.Debugf("Test debug message")
	if !strings.Contains(buf.String(), "level=debug") || !strings.Contains(buf.String(), "Test debug message") {
		t.Errorf("Expected debug line, got %q", buf.String())
	}
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *Logger)
		level string
		msg   string
	}{
		{"info", func(l *Logger) { l.Infof("Loaded %d domains", 2) }, "level=info", "Loaded 2 domains"},
		{"warn", func(l *Logger) { l.Warnf("No domains to process.") }, "level=warning", "No domains to process."},
		{"error", func(l *Logger) { l.Errorf("Failed to fetch details for %s", "example.com") }, "level=error", "Failed to fetch details for example.com"},
	}

	for _, tc := range tests {
		var buf bytes.Buffer
		logger := NewWithWriter(&buf)
		tc.log(logger)

		out := buf.String()
		if !strings.Contains(out, tc.level) {
			t.Errorf("%s: expected %q in %q", tc.name, tc.level, out)
		}
		if !strings.Contains(out, tc.msg) {
			t.Errorf("%s: expected %q in %q", tc.name, tc.msg, out)
		}
		if !strings.Contains(out, "time=") {
			t.Errorf("%s: expected timestamp in %q", tc.name, out)
		}
	}
}

func TestOpenFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domain_check.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, err := OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile failed: %v", err)
		}
		logger.Infof("%s", msg)
		if err := logger.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "first run") || !strings.Contains(string(data), "second run") {
		t.Errorf("Expected both runs in log file, got %q", string(data))
	}
}

func TestOpenFileError(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing", "x.log")); err == nil {
		t.Errorf("Expected error opening log in missing directory")
	}
}

func TestCloseWithoutFile(t *testing.T) {
	if err := New().Close(); err != nil {
		t.Errorf("Expected nil from Close on stderr logger, got %v", err)
	}
}
