// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Agent     AgentConfig     `yaml:"agent"`
	Forager   ForagerConfig   `yaml:"forager"`
	Breeder   BreederConfig   `yaml:"breeder"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Evolution EvolutionConfig `yaml:"evolution"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds voxel grid dimensions and terrain generation parameters.
type WorldConfig struct {
	Width  int   `yaml:"width"`  // X extent in voxels
	Height int   `yaml:"height"` // Y extent in voxels
	Depth  int   `yaml:"depth"`  // Z extent in voxels
	Seed   int64 `yaml:"seed"`   // base terrain seed (generation index is mixed in)

	NoiseScale    float64 `yaml:"noise_scale"`    // heightmap noise frequency
	BaseLevel     int     `yaml:"base_level"`     // minimum terrain height
	Relief        int     `yaml:"relief"`         // height variation above base level
	MulchChance   float64 `yaml:"mulch_chance"`   // per-column surface mulch probability
	AcidicChance  float64 `yaml:"acidic_chance"`  // per-column surface acid probability
	SpawnAttempts int     `yaml:"spawn_attempts"` // random column probes before spawn search fails
}

// AgentConfig holds parameters shared by both agent roles.
type AgentConfig struct {
	MaxHealth       int     `yaml:"max_health"`
	DecayPerTick    int     `yaml:"decay_per_tick"`
	AcidicDecayMult int     `yaml:"acidic_decay_mult"` // decay multiplier while standing on acid
	ClimbLimit      int     `yaml:"climb_limit"`       // max levels up per step
	DropLimit       int     `yaml:"drop_limit"`        // max levels down per step
	TurnEnvelope    float64 `yaml:"turn_envelope"`     // max heading change per wander step (radians)
}

// ForagerConfig holds forager behavior parameters.
type ForagerConfig struct {
	Count             int     `yaml:"count"`               // population size per generation
	EliteCount        int     `yaml:"elite_count"`         // unmutated clones per generation
	MulchHealFraction float64 `yaml:"mulch_heal_fraction"` // health restored by eating mulch, as fraction of max
	FoodFitnessWeight float64 `yaml:"food_fitness_weight"` // fitness = energy_given + weight * food_eaten
	RandomMoveChance  float64 `yaml:"random_move_chance"`  // feeding-state chance of a plain wander step
	GradientTolerance float64 `yaml:"gradient_tolerance"`  // neighbors within this fraction of the best tie for selection
	WorkerDeposit     float64 `yaml:"worker_deposit"`      // pheromone laid per feeding-state move
}

// BreederConfig holds breeder behavior parameters.
type BreederConfig struct {
	MoveInterval     int     `yaml:"move_interval"`      // ticks between movement attempts
	NestCostFraction float64 `yaml:"nest_cost_fraction"` // health paid per nest, as fraction of max
	QueenDeposit     float64 `yaml:"queen_deposit"`      // pheromone laid above the breeder each tick
	ThresholdMin     float64 `yaml:"threshold_min"`      // place threshold clamp, fraction of max health
	ThresholdMax     float64 `yaml:"threshold_max"`
}

// PheromoneConfig holds the two-channel scalar field parameters.
type PheromoneConfig struct {
	QueenEvaporation  float64 `yaml:"queen_evaporation"` // per-tick fractional decay
	WorkerEvaporation float64 `yaml:"worker_evaporation"`
	QueenDiffusion    float64 `yaml:"queen_diffusion"` // per-neighbor share of concentration
	WorkerDiffusion   float64 `yaml:"worker_diffusion"`
	Floor             float64 `yaml:"floor"` // channel magnitudes below this are zeroed
}

// EvolutionConfig holds genetic algorithm parameters.
type EvolutionConfig struct {
	BreederPoolSize     int     `yaml:"breeder_pool_size"`  // top-N breeder genomes retained
	ForagerPoolSize     int     `yaml:"forager_pool_size"`  // top-N all-time forager genomes retained
	GenerationSample    int     `yaml:"generation_sample"`  // genomes sampled from the finished generation
	TournamentSize      int     `yaml:"tournament_size"`
	MutationRate        float64 `yaml:"mutation_rate"`      // per-key ruleset mutation probability
	ThresholdJitter     float64 `yaml:"threshold_jitter"`   // child threshold offset bound, fraction of max health
	ForagerThresholdMin float64 `yaml:"forager_threshold_min"` // feed threshold clamp, fraction of max health
	ForagerThresholdMax float64 `yaml:"forager_threshold_max"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"` // ticks per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	NestCost            int // absolute health paid per nest placement
	MulchHeal           int // absolute health restored per mulch eaten
	BreederThresholdMin int // absolute clamp bounds for place threshold
	BreederThresholdMax int
	ForagerThresholdMin int // absolute clamp bounds for feed threshold
	ForagerThresholdMax int
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	maxHealth := float64(c.Agent.MaxHealth)

	c.Derived.NestCost = int(maxHealth * c.Breeder.NestCostFraction)
	c.Derived.MulchHeal = int(maxHealth * c.Forager.MulchHealFraction)
	c.Derived.BreederThresholdMin = int(maxHealth * c.Breeder.ThresholdMin)
	c.Derived.BreederThresholdMax = int(maxHealth * c.Breeder.ThresholdMax)
	c.Derived.ForagerThresholdMin = int(maxHealth * c.Evolution.ForagerThresholdMin)
	c.Derived.ForagerThresholdMax = int(maxHealth * c.Evolution.ForagerThresholdMax)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
