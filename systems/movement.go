package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/brood/world"
)

// TryStep attempts one step from p in the heading direction. The rounded
// heading picks one of eight horizontal neighbors; the destination is
// ground-adjusted within the climb and drop limits. A step fails when no
// standable level exists there.
func TryStep(g *world.Grid, p world.Pos, heading float64, climb, drop int) (world.Pos, bool) {
	dx := int(math.Round(math.Cos(heading)))
	dz := int(math.Round(math.Sin(heading)))
	if dx == 0 && dz == 0 {
		return p, false
	}
	y, ok := g.GroundLevel(p.X+dx, p.Z+dz, p.Y, climb, drop)
	if !ok {
		return p, false
	}
	return world.Pos{X: p.X + dx, Y: y, Z: p.Z + dz}, true
}

// Wander turns the heading within the envelope and tries to step. A blocked
// step keeps the agent in place and picks a wholly new random heading for
// the next attempt.
func Wander(rng *rand.Rand, g *world.Grid, p world.Pos, heading, envelope float64, climb, drop int) (world.Pos, float64, bool) {
	heading += (rng.Float64()*2 - 1) * envelope
	if np, ok := TryStep(g, p, heading, climb, drop); ok {
		return np, heading, true
	}
	return p, rng.Float64() * 2 * math.Pi, false
}

// StepToward moves one step in the direction of target, ground-adjusted.
func StepToward(g *world.Grid, p, target world.Pos, climb, drop int) (world.Pos, bool) {
	if p.X == target.X && p.Z == target.Z {
		return p, false
	}
	heading := math.Atan2(float64(target.Z-p.Z), float64(target.X-p.X))
	return TryStep(g, p, heading, climb, drop)
}

// GradientStep follows the combined pheromone gradient. The agent's own cell
// is the baseline; a move happens only if some horizontal neighbor strictly
// exceeds it. All neighbors within tolerance of the best value tie, and one
// is chosen uniformly by reservoir sampling so followers spread instead of
// converging on a single cell.
func GradientStep(rng *rand.Rand, g *world.Grid, f *PheromoneField, p world.Pos, tolerance float64, climb, drop int) (world.Pos, bool) {
	base := f.Combined(p)

	best := base
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			if v := f.Combined(p.Offset(dx, 0, dz)); v > best {
				best = v
			}
		}
	}
	if best <= base {
		return p, false
	}

	cutoff := best * (1 - tolerance)
	var chosen world.Pos
	count := 0
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}
			n := p.Offset(dx, 0, dz)
			v := f.Combined(n)
			if v <= base || v < cutoff {
				continue
			}
			count++
			if rng.Intn(count) == 0 {
				chosen = n
			}
		}
	}
	if count == 0 {
		return p, false
	}

	y, ok := g.GroundLevel(chosen.X, chosen.Z, p.Y, climb, drop)
	if !ok {
		return p, false
	}
	return world.Pos{X: chosen.X, Y: y, Z: chosen.Z}, true
}
