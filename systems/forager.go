package systems

import (
	"github.com/pthm-cable/brood/components"
	"github.com/pthm-cable/brood/genome"
	"github.com/pthm-cable/brood/world"
)

// ForagerStep executes one decision for a live forager: update the state
// machine, move, and act. Health decay is applied separately, after all
// actions, by the owning simulation.
func ForagerStep(env *Env, pos *components.Position, h *components.Health, meta *components.Meta, gen *genome.Forager) {
	if h.Value >= gen.FeedThreshold {
		meta.State = components.StateFeeding
	} else {
		meta.State = components.StateForaging
	}

	p := world.Pos{X: pos.X, Y: pos.Y, Z: pos.Z}
	if meta.State == components.StateFeeding {
		p = feedingStep(env, p, h, meta, gen)
	} else {
		p = foragingStep(env, p, h, meta, gen)
	}
	pos.X, pos.Y, pos.Z = p.X, p.Y, p.Z
}

// foragingStep wanders, then consults the ruleset against the local
// neighborhood and digs when it says to.
func foragingStep(env *Env, p world.Pos, h *components.Health, meta *components.Meta, gen *genome.Forager) world.Pos {
	ag := env.Cfg.Agent
	np, heading, _ := Wander(env.Rng, env.Grid, p, meta.Heading, ag.TurnEnvelope, ag.ClimbLimit, ag.DropLimit)
	meta.Heading = heading
	p = np

	key := EncodeNeighborhood(env.Grid, p)
	if gen.Rules[key].Digs() {
		digBelow(env, p, h, meta)
	}
	return p
}

// digBelow converts the cell under the agent to Air. Air, Container, and
// Nest are never diggable, nor is a cell another agent occupies. Mulch
// heals and counts as food before it disappears.
func digBelow(env *Env, p world.Pos, h *components.Health, meta *components.Meta) {
	target := p.Below()
	b := env.Grid.Get(target)
	if !b.Diggable() {
		return
	}
	if env.Occupied != nil && env.Occupied(target) {
		return
	}
	if b == world.Mulch {
		h.Value += env.Cfg.Derived.MulchHeal
		if h.Value > h.Max {
			h.Value = h.Max
		}
		env.Recorder.RecordFood(meta.ID)
	}
	env.Grid.Set(target, world.Air)
}

// feedingStep carries surplus health toward the breeder: mostly gradient
// following with a fixed chance of a plain wander step, laying worker
// pheromone along the way, and transferring health on contact.
func feedingStep(env *Env, p world.Pos, h *components.Health, meta *components.Meta, gen *genome.Forager) world.Pos {
	ag := env.Cfg.Agent
	fo := env.Cfg.Forager
	start := p

	if env.Rng.Float64() < fo.RandomMoveChance {
		p, meta.Heading, _ = Wander(env.Rng, env.Grid, p, meta.Heading, ag.TurnEnvelope, ag.ClimbLimit, ag.DropLimit)
	} else if np, ok := GradientStep(env.Rng, env.Grid, env.Field, p, fo.GradientTolerance, ag.ClimbLimit, ag.DropLimit); ok {
		p = np
	} else if bp, _, ok := env.Breeder(); ok {
		p, _ = StepToward(env.Grid, p, bp, ag.ClimbLimit, ag.DropLimit)
	} else {
		p, meta.Heading, _ = Wander(env.Rng, env.Grid, p, meta.Heading, ag.TurnEnvelope, ag.ClimbLimit, ag.DropLimit)
	}

	if p != start {
		env.Field.AddWorker(p, fo.WorkerDeposit)
	}

	if bp, bh, ok := env.Breeder(); ok && p == bp {
		transferHealth(env, h, bh, meta, gen)
	}
	return p
}

// transferHealth moves surplus health from a forager to the breeder, capped
// by the breeder's remaining capacity, and credits the forager's
// energy-given fitness term.
func transferHealth(env *Env, h, bh *components.Health, meta *components.Meta, gen *genome.Forager) {
	transferable := h.Value - gen.FeedThreshold
	if transferable <= 0 {
		return
	}
	if capacity := bh.Max - bh.Value; transferable > capacity {
		transferable = capacity
	}
	if transferable <= 0 {
		return
	}
	h.Value -= transferable
	bh.Value += transferable
	env.Recorder.RecordEnergyGiven(meta.ID, transferable)
}
