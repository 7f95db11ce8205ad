package systems

import (
	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/genome"
	"github.com/pthm-cable/brood/world"
)

// BreederStep executes one decision for the breeding agent. The breeder
// moves on a fixed cadence, places nests when its health clears the
// threshold, and lays queen pheromone above itself every tick.
func BreederStep(env *Env, pos *components.Position, h *components.Health, meta *components.Meta, gen *genome.Breeder) {
	ag := env.Cfg.Agent
	br := env.Cfg.Breeder

	p := world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z}

	if meta.Ticks%br.MoveInterval == 0 {
		np, heading, _ := Wander(env.Rng, env.Grid, p, meta.Heading, ag.TurnEnvelope, ag.ClimbLimit, ag.DropLimit)
		meta.Heading = heading
		p = np
	}

	if h.Value >= gen.PlaceThreshold {
		placeNest(env, p, h, meta)
	}

	if above := p.Above(); env.Grid.Get(above) == world.Air {
		env.Field.AddQueen(above, br.QueenDeposit)
	}

	pos.X, pos.Y, pos.Z = p.X, p.Y, p.Z
}

// placeNest fills the first Air cell among the four cardinal neighbors at
// the breeder's ground level, paying the nest cost.
func placeNest(env *Env, p world.Pos, h *components.Health, meta *components.Meta) {
	for _, d := range world.CardinalOffsets {
		c := p.Offset(d[0], 0, d[1])
		if !env.Grid.InBounds(c) || env.Grid.Get(c) != world.Air {
			continue
		}
		env.Grid.Set(c, world.Nest)
		h.Value -= env.Cfg.Derived.NestCost
		env.Recorder.RecordNest(meta.ID)
		return
	}
}
