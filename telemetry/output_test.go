package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/brood/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir must disable output")
	}

	// All operations on the nil manager are no-ops
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("nil WriteWindow returned %v", err)
	}
	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Errorf("nil WriteConfig returned %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := om.WriteWindow(WindowStats{WindowEndTick: 600, Generation: 1, Foragers: 20}); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := om.WriteWindow(WindowStats{WindowEndTick: 1200, Generation: 1, Foragers: 17}); err != nil {
		t.Fatalf("second write failed: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("reading telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 records, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end") {
		t.Errorf("expected header once at the top, got %q", lines[0])
	}
	if strings.HasPrefix(lines[2], "window_end") {
		t.Error("header must not repeat on later records")
	}
}

func TestOutputManagerWritesConfigSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(config.Cfg()); err != nil {
		t.Fatalf("writing config snapshot: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("reading config snapshot: %v", err)
	}
	if !strings.Contains(string(data), "max_health") {
		t.Error("config snapshot missing expected keys")
	}
}
