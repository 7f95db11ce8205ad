package sim

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/genome"
	"github.com/pthm-cable/brood/world"
)

// cleanupDead removes agents whose health reached zero this tick. Forager
// deaths are finalized into the evolution engine first so that a breeder
// death in the same tick snapshots a complete generation.
func (s *Sim) cleanupDead() {
	var deadForagers []ecs.Entity
	breederDied := false

	query := s.filter.Query()
	for query.Next() {
		_, h, meta := query.Get()
		if h.Alive {
			continue
		}
		if meta.Role == components.RoleBreeder {
			breederDied = true
			continue
		}
		deadForagers = append(deadForagers, query.Entity())
	}

	for _, e := range deadForagers {
		s.removeForager(e)
	}
	if breederDied {
		s.onBreederDeath()
	}
}

// removeForager finalizes the forager's fitness and deletes it from every
// index it appears in.
func (s *Sim) removeForager(e ecs.Entity) {
	pos := s.posMap.Get(e)
	id := s.metaMap.Get(e).ID

	st := s.tracker.Remove(id)
	if st != nil {
		s.engine.RecordForager(
			s.foragerGenomes[id],
			st.ForagerFitness(s.cfg.Forager.FoodFitnessWeight),
		)
	}
	s.collector.RecordDeath()

	delete(s.occupied, world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z})
	delete(s.foragerGenomes, id)
	s.mapper.Remove(e)
	s.aliveCount--
}

// onBreederDeath ends the generation: surviving foragers are snapshotted at
// their current fitness, the world regenerates, and a bred population spawns.
func (s *Sim) onBreederDeath() {
	nests := 0
	if st := s.tracker.Remove(s.breederID()); st != nil {
		nests = st.NestsPlaced
	}
	if !s.engine.BeginTransition(s.breederGenome, nests) {
		return
	}
	s.breederAlive = false
	s.collector.RecordDeath()

	slog.Info("generation_end",
		"generation", s.engine.Generation(),
		"tick", s.tick,
		"nests_placed", nests,
		"best_nests", s.engine.BestNestCount(),
	)

	// Survivors contribute their fitness-so-far to the breeding stock.
	query := s.filter.Query()
	for query.Next() {
		_, h, meta := query.Get()
		if !h.Alive || meta.Role == components.RoleBreeder {
			continue
		}
		if st := s.tracker.Get(meta.ID); st != nil {
			s.engine.RecordForager(
				s.foragerGenomes[meta.ID],
				st.ForagerFitness(s.cfg.Forager.FoodFitnessWeight),
			)
		}
	}

	s.engine.AdvanceGeneration()
	s.respawn()
	s.engine.EndTransition()
}

// respawn clears the population, rebuilds the terrain, and places the next
// generation around a fresh anchor.
func (s *Sim) respawn() {
	s.removeAllAgents()
	s.tracker.Clear()
	s.grid.Regenerate(s.engine.Generation())
	s.field.Reset()

	anchor, ok := s.grid.FindSpawn(s.rng)
	if !ok {
		slog.Error("spawn_failure", "generation", s.engine.Generation())
		s.spawnFailed = true
		return
	}

	s.spawnBreeder(s.engine.NextBreeder(), anchor)
	for _, g := range s.engine.NextForagers() {
		s.spawnForager(g, s.scatterNear(anchor))
	}

	slog.Info("generation_transition",
		"generation", s.engine.Generation(),
		"tick", s.tick,
		"foragers", s.aliveCount-1,
	)
}

// spawnInitialPopulation places generation 1 with random genomes.
func (s *Sim) spawnInitialPopulation() {
	s.grid.Regenerate(s.engine.Generation())

	anchor, ok := s.grid.FindSpawn(s.rng)
	if !ok {
		slog.Error("spawn_failure", "generation", s.engine.Generation())
		s.spawnFailed = true
		return
	}

	d := s.cfg.Derived
	s.spawnBreeder(
		genome.NewRandomBreeder(s.rng, d.BreederThresholdMin, d.BreederThresholdMax),
		anchor,
	)
	for i := 0; i < s.cfg.Forager.Count; i++ {
		s.spawnForager(
			genome.NewRandomForager(s.rng, d.ForagerThresholdMin, d.ForagerThresholdMax),
			s.scatterNear(anchor),
		)
	}
}

// scatterNear picks a standable cell within a few blocks of the anchor,
// falling back to the anchor itself.
func (s *Sim) scatterNear(anchor world.Pos) world.Pos {
	const radius = 4
	for attempt := 0; attempt < 10; attempt++ {
		x := anchor.X + s.rng.Intn(2*radius+1) - radius
		z := anchor.Z + s.rng.Intn(2*radius+1) - radius
		y, ok := s.grid.SurfaceLevel(x, z)
		if !ok {
			continue
		}
		p := world.Pos{X: x, Y: y, Z: z}
		if s.grid.Get(p.Below()) == world.Acidic {
			continue
		}
		if _, taken := s.occupied[p]; taken {
			continue
		}
		return p
	}
	return anchor
}

func (s *Sim) spawnBreeder(g *genome.Breeder, p world.Pos) {
	id := s.allocID()
	e := s.mapper.NewEntity(
		&components.Position{X: p.X, Y: p.Y, Z: p.Z},
		&components.Health{Value: s.cfg.Agent.MaxHealth, Max: s.cfg.Agent.MaxHealth, Alive: true},
		&components.Meta{ID: id, Role: components.RoleBreeder, Heading: s.randomHeading()},
	)
	s.breederGenome = g
	s.breederEntity = e
	s.breederAlive = true
	s.occupied[p] = id
	s.tracker.Register(id, s.tick)
	s.aliveCount++
}

func (s *Sim) spawnForager(g *genome.Forager, p world.Pos) {
	id := s.allocID()
	s.mapper.NewEntity(
		&components.Position{X: p.X, Y: p.Y, Z: p.Z},
		&components.Health{Value: s.cfg.Agent.MaxHealth, Max: s.cfg.Agent.MaxHealth, Alive: true},
		&components.Meta{
			ID:      id,
			Role:    components.RoleForager,
			State:   components.StateForaging,
			Heading: s.randomHeading(),
		},
	)
	s.foragerGenomes[id] = g
	s.occupied[p] = id
	s.tracker.Register(id, s.tick)
	s.aliveCount++
}

// removeAllAgents clears the ECS and every agent-keyed index.
func (s *Sim) removeAllAgents() {
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.mapper.Remove(e)
	}

	s.foragerGenomes = make(map[uint32]*genome.Forager)
	s.occupied = make(map[world.Pos]uint32)
	s.breederAlive = false
	s.aliveCount = 0
}

func (s *Sim) breederID() uint32 {
	return s.metaMap.Get(s.breederEntity).ID
}

func (s *Sim) allocID() uint32 {
	s.nextID++
	return s.nextID
}

func (s *Sim) randomHeading() float64 {
	return s.rng.Float64() * 2 * math.Pi
}
