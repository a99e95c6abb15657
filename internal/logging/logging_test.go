package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDebugLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "debug.log")

	logger, err := NewDebugLogger(logPath)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log("plan computed for %s", "graph-1")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "plan computed for graph-1") {
		t.Errorf("log file missing message, got:\n%s", content)
	}
	if !strings.Contains(content, "debug log started") {
		t.Errorf("log file missing header, got:\n%s", content)
	}
}

func TestNewDebugLogger_EmptyPathIsNop(t *testing.T) {
	logger, err := NewDebugLogger("")
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}

	// Must not panic
	logger.Log("dropped message")
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NopLogger()
	logger.Log("dropped")
	if err := logger.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *DebugLogger
	logger.Log("dropped")
	if err := logger.Close(); err != nil {
		t.Errorf("Close on nil logger failed: %v", err)
	}
}

func TestPackageLogger(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "debug.log")

	logger, err := NewDebugLogger(logPath)
	if err != nil {
		t.Fatalf("NewDebugLogger failed: %v", err)
	}
	SetPackageLogger(logger)
	t.Cleanup(func() {
		SetPackageLogger(nil)
		logger.Close()
	})

	Debugf("handoff %s -> %s", "a", "b")

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "handoff a -> b") {
		t.Errorf("log file missing package-level message, got:\n%s", string(data))
	}
}

func TestDebugf_NoLoggerIsSafe(t *testing.T) {
	SetPackageLogger(nil)
	Debugf("dropped %d", 1)
}
