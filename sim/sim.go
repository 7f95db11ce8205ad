// Package sim wires the voxel grid, pheromone field, agent behaviors, and
// evolution engine into one explicitly constructed simulation instance.
package sim

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/evolution"
	"github.com/pthm-cable/brood/genome"
	"github.com/pthm-cable/brood/systems"
	"github.com/pthm-cable/brood/telemetry"
	"github.com/pthm-cable/brood/world"
)

// Sim owns one independent simulation. Multiple instances can coexist;
// nothing here is process-global. An external loop drives it by calling
// Step; the core schedules nothing itself.
type Sim struct {
	cfg *config.Config
	rng *rand.Rand

	ecsWorld *ecs.World
	mapper   *ecs.Map3[components.Position, components.Health, components.Meta]
	filter   *ecs.Filter3[components.Position, components.Health, components.Meta]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	healthMap *ecs.Map1[components.Health]
	metaMap   *ecs.Map1[components.Meta]

	grid      *world.Grid
	field     *systems.PheromoneField
	engine    *evolution.Engine
	tracker   *telemetry.Tracker
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	env *systems.Env

	// Genome storage per agent ID, outside the ECS
	foragerGenomes map[uint32]*genome.Forager
	breederGenome  *genome.Breeder
	breederEntity  ecs.Entity
	breederAlive   bool

	// Body cells of live agents, kept current through the tick
	occupied map[world.Pos]uint32

	tick        int
	nextID      uint32
	aliveCount  int
	spawnFailed bool
}

// New creates a simulation, generates terrain, and spawns the first
// generation with random genomes. output may be nil.
func New(cfg *config.Config, rng *rand.Rand, output *telemetry.OutputManager) *Sim {
	w := ecs.NewWorld()

	s := &Sim{
		cfg:      cfg,
		rng:      rng,
		ecsWorld: w,
		mapper: ecs.NewMap3[
			components.Position,
			components.Health,
			components.Meta,
		](w),
		filter: ecs.NewFilter3[
			components.Position,
			components.Health,
			components.Meta,
		](w),
		posMap:    ecs.NewMap1[components.Position](w),
		healthMap: ecs.NewMap1[components.Health](w),
		metaMap:   ecs.NewMap1[components.Meta](w),

		grid:      world.NewGrid(cfg.World),
		field:     systems.NewPheromoneField(cfg.Pheromone),
		engine:    evolution.NewEngine(cfg, rng),
		tracker:   telemetry.NewTracker(),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowTicks),
		output:    output,

		foragerGenomes: make(map[uint32]*genome.Forager),
		occupied:       make(map[world.Pos]uint32),
	}

	s.env = &systems.Env{
		Cfg:      cfg,
		Rng:      rng,
		Grid:     s.grid,
		Field:    s.field,
		Recorder: s,
		Occupied: func(p world.Pos) bool {
			_, ok := s.occupied[p]
			return ok
		},
		Breeder: s.breeder,
	}

	s.spawnInitialPopulation()
	return s
}

// breeder returns the live breeder's position and health, if any.
func (s *Sim) breeder() (world.Pos, *components.Health, bool) {
	if !s.breederAlive {
		return world.Pos{}, nil, false
	}
	pos := s.posMap.Get(s.breederEntity)
	h := s.healthMap.Get(s.breederEntity)
	if pos == nil || h == nil || !h.Alive {
		return world.Pos{}, nil, false
	}
	return world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z}, h, true
}

// Step advances the simulation by one tick: one decision per live agent,
// then exactly one pheromone field tick, then death processing.
func (s *Sim) Step() {
	s.tick++
	s.stepAgents()
	s.field.Tick(s.grid)
	s.cleanupDead()
	s.flushTelemetry()
}

// stepAgents runs one behavior step and the post-action health decay for
// every live agent.
func (s *Sim) stepAgents() {
	query := s.filter.Query()
	for query.Next() {
		pos, h, meta := query.Get()
		if !h.Alive {
			continue
		}
		meta.Ticks++

		before := world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z}

		switch meta.Role {
		case components.RoleBreeder:
			systems.BreederStep(s.env, pos, h, meta, s.breederGenome)
		default:
			systems.ForagerStep(s.env, pos, h, meta, s.foragerGenomes[meta.ID])
		}

		after := world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z}
		if after != before {
			delete(s.occupied, before)
			s.occupied[after] = meta.ID
		}

		systems.DecayHealth(s.env, after, h)
	}
}

// Generation returns the current generation number.
func (s *Sim) Generation() int {
	return s.engine.Generation()
}

// BestNestCount returns the highest nest count any breeder achieved.
func (s *Sim) BestNestCount() int {
	return s.engine.BestNestCount()
}

// CountNestBlocks returns the number of Nest blocks in the current world.
func (s *Sim) CountNestBlocks() int {
	return s.grid.Count(world.Nest)
}

// LivingAgentCount returns the number of live agents, breeder included.
func (s *Sim) LivingAgentCount() int {
	return s.aliveCount
}

// Tick returns the current simulation tick.
func (s *Sim) Tick() int {
	return s.tick
}

// SpawnFailed reports that a respawn found no valid anchor; the simulation
// is stalled with an empty population.
func (s *Sim) SpawnFailed() bool {
	return s.spawnFailed
}

// RecordFood implements systems.Recorder, fanning out to the fitness
// tracker and the window collector.
func (s *Sim) RecordFood(id uint32) {
	s.tracker.RecordFood(id)
	s.collector.RecordFood()
}

// RecordEnergyGiven implements systems.Recorder.
func (s *Sim) RecordEnergyGiven(id uint32, amount int) {
	s.tracker.RecordEnergyGiven(id, amount)
	s.collector.RecordEnergyGiven(amount)
}

// RecordNest implements systems.Recorder.
func (s *Sim) RecordNest(id uint32) {
	s.tracker.RecordNest(id)
	s.collector.RecordNest()
	slog.Info("nest_record",
		"agent", id,
		"tick", s.tick,
		"generation", s.engine.Generation(),
		"nest_blocks", s.grid.Count(world.Nest),
	)
}

// flushTelemetry emits a window record when the current window completes.
func (s *Sim) flushTelemetry() {
	if !s.collector.ShouldFlush(s.tick) {
		return
	}
	ws := s.collector.Flush(s.tick)
	ws.Generation = s.engine.Generation()
	ws.ActivePheromoneCells = s.field.ActiveCells()
	ws.NestBlocks = s.grid.Count(world.Nest)
	ws.BestNests = s.engine.BestNestCount()

	var fitness []float64
	query := s.filter.Query()
	for query.Next() {
		_, h, meta := query.Get()
		if !h.Alive {
			continue
		}
		if meta.Role == components.RoleBreeder {
			ws.BreederAlive = 1
			continue
		}
		ws.Foragers++
		if st := s.tracker.Get(meta.ID); st != nil {
			fitness = append(fitness, st.ForagerFitness(s.cfg.Forager.FoodFitnessWeight))
		}
	}
	ws.FitnessDistribution(fitness)

	if err := s.output.WriteWindow(ws); err != nil {
		slog.Warn("telemetry_write_failed", "error", err)
	}
	slog.Info("window_stats",
		"tick", ws.WindowEndTick,
		"generation", ws.Generation,
		"foragers", ws.Foragers,
		"nest_blocks", ws.NestBlocks,
		"best_nests", ws.BestNests,
		"fitness_mean", ws.FitnessMean,
	)
}
