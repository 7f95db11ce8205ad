package systems

import (
	"math/rand"

	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/world"
)

// Recorder receives fitness-relevant events as behavior executes.
type Recorder interface {
	RecordFood(id uint32)
	RecordEnergyGiven(id uint32, amount int)
	RecordNest(id uint32)
}

// Env bundles the shared state one behavior step reads and mutates. It is
// built once by the owning simulation and passed by reference; there are no
// process-wide singletons behind it.
type Env struct {
	Cfg      *config.Config
	Rng      *rand.Rand
	Grid     *world.Grid
	Field    *PheromoneField
	Recorder Recorder

	// Occupied reports whether a live agent's body occupies the cell.
	Occupied func(p world.Pos) bool

	// Breeder returns the live breeder's position and health, if any.
	Breeder func() (world.Pos, *components.Health, bool)
}

// DecayHealth applies the per-tick health drain, doubled while standing on
// acid, and clamps at zero. Returns true if the agent died this tick.
func DecayHealth(env *Env, p world.Pos, h *components.Health) bool {
	d := env.Cfg.Agent.DecayPerTick
	if env.Grid.Get(p.Below()) == world.Acidic {
		d *= env.Cfg.Agent.AcidicDecayMult
	}
	h.Value -= d
	if h.Value <= 0 {
		h.Value = 0
		h.Alive = false
		return true
	}
	return false
}
