package main

import (
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/sim"
	"github.com/pthm-cable/brood/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	logEvery := flag.Int("log-every", 0, "Log a progress line every N ticks (0 = window-only logging)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.World.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	cfg.World.Seed = rngSeed

	if *statsWindow > 0 {
		cfg.Telemetry.WindowTicks = *statsWindow
	}

	var output *telemetry.OutputManager
	if *outputDir != "" {
		var err error
		output, err = telemetry.NewOutputManager(*outputDir)
		if err != nil {
			slog.Error("failed to create output directory", "error", err, "dir", *outputDir)
			os.Exit(1)
		}
		defer output.Close()
		if err := output.WriteConfig(cfg); err != nil {
			slog.Error("failed to write config snapshot", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("run_start",
		"seed", rngSeed,
		"world", []int{cfg.World.Width, cfg.World.Height, cfg.World.Depth},
		"foragers", cfg.Forager.Count,
		"max_ticks", *maxTicks,
		"max_generations", *maxGenerations,
	)

	s := sim.New(cfg, rand.New(rand.NewSource(rngSeed)), output)

	for {
		if s.SpawnFailed() {
			slog.Error("run_aborted", "reason", "spawn_failure", "tick", s.Tick())
			os.Exit(1)
		}
		if *maxTicks > 0 && s.Tick() >= *maxTicks {
			break
		}
		if *maxGenerations > 0 && s.Generation() > *maxGenerations {
			break
		}

		s.Step()

		if *logEvery > 0 && s.Tick()%*logEvery == 0 {
			slog.Info("progress",
				"tick", s.Tick(),
				"generation", s.Generation(),
				"agents", s.LivingAgentCount(),
				"nest_blocks", s.CountNestBlocks(),
				"best_nests", s.BestNestCount(),
			)
		}
	}

	slog.Info("run_complete",
		"tick", s.Tick(),
		"generation", s.Generation(),
		"best_nests", s.BestNestCount(),
	)
}
