package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndLog(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	Info("hello %s", "world")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	if err := Init(filepath.Join(t.TempDir(), "other.log")); err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	if logPath != path {
		t.Errorf("expected logPath %q, got %q", path, logPath)
	}
}

func TestDebugLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	// Default level is Info; Debug messages should be dropped
	Debug("should not appear")
	Info("should appear")

	SetDebug(true)
	Debug("now visible")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "should not appear") {
		t.Error("debug message logged at info level")
	}
	if !strings.Contains(content, "should appear") {
		t.Error("info message missing")
	}
	if !strings.Contains(content, "now visible") {
		t.Error("debug message missing after SetDebug(true)")
	}
}

func TestWithComponent(t *testing.T) {
	Reset()
	defer Reset()

	path := filepath.Join(t.TempDir(), "test.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	log := WithComponent("store")
	log.Info("created", "conversationID", "abc-123")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "component=store") {
		t.Errorf("component attribute missing, got: %s", content)
	}
	if !strings.Contains(content, "conversationID=abc-123") {
		t.Errorf("conversationID attribute missing, got: %s", content)
	}
}
