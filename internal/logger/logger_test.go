package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cardash/internal/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cardash.log")
	log, err := New(config.LogConfig{Level: "debug", Encoding: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	log.Debug("table loaded")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	line := string(b)
	if !strings.Contains(line, `"msg":"table loaded"`) || !strings.Contains(line, `"service":"cardash"`) {
		t.Fatalf("log line=%s", line)
	}
}

func TestNewUnknownLevelFallsBackToInfo(t *testing.T) {
	log, err := New(config.LogConfig{Level: "loud", Encoding: "console"})
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if log.Core().Enabled(-1) {
		t.Fatalf("debug should be disabled at info level")
	}
}
