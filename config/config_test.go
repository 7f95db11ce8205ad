package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	if cfg.World.Width <= 0 || cfg.World.Height <= 0 || cfg.World.Depth <= 0 {
		t.Errorf("invalid world dimensions: %dx%dx%d",
			cfg.World.Width, cfg.World.Height, cfg.World.Depth)
	}
	if cfg.Agent.MaxHealth <= 0 {
		t.Error("max_health must be positive")
	}
	if cfg.Forager.Count <= cfg.Forager.EliteCount {
		t.Errorf("forager count %d must exceed elite count %d",
			cfg.Forager.Count, cfg.Forager.EliteCount)
	}
	if cfg.Evolution.MutationRate <= 0 || cfg.Evolution.MutationRate >= 1 {
		t.Errorf("mutation rate %f outside (0,1)", cfg.Evolution.MutationRate)
	}
	if cfg.Pheromone.Floor <= 0 {
		t.Error("pheromone floor must be positive")
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading embedded defaults: %v", err)
	}

	d := cfg.Derived
	if d.NestCost != int(float64(cfg.Agent.MaxHealth)*cfg.Breeder.NestCostFraction) {
		t.Errorf("wrong nest cost %d", d.NestCost)
	}
	if d.MulchHeal != int(float64(cfg.Agent.MaxHealth)*cfg.Forager.MulchHealFraction) {
		t.Errorf("wrong mulch heal %d", d.MulchHeal)
	}
	if d.BreederThresholdMin >= d.BreederThresholdMax {
		t.Errorf("breeder threshold bounds inverted: [%d,%d]",
			d.BreederThresholdMin, d.BreederThresholdMax)
	}
	if d.ForagerThresholdMin >= d.ForagerThresholdMax {
		t.Errorf("forager threshold bounds inverted: [%d,%d]",
			d.ForagerThresholdMin, d.ForagerThresholdMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	override := []byte("agent:\n  max_health: 200\nforager:\n  count: 40\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override config: %v", err)
	}
	if cfg.Agent.MaxHealth != 200 {
		t.Errorf("expected max_health override 200, got %d", cfg.Agent.MaxHealth)
	}
	if cfg.Forager.Count != 40 {
		t.Errorf("expected forager count override 40, got %d", cfg.Forager.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Breeder.MoveInterval == 0 {
		t.Error("defaults must survive a partial override")
	}
	// Derived values follow the overridden base
	if cfg.Derived.NestCost != int(200*cfg.Breeder.NestCostFraction) {
		t.Errorf("derived nest cost not recomputed, got %d", cfg.Derived.NestCost)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if back.Agent.MaxHealth != cfg.Agent.MaxHealth || back.World.Width != cfg.World.Width {
		t.Error("snapshot roundtrip changed values")
	}
}
