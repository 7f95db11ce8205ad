package world

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/brood/config"
)

// Pos is an integer voxel coordinate.
type Pos struct {
	X, Y, Z int
}

// Offset returns p translated by (dx, dy, dz).
func (p Pos) Offset(dx, dy, dz int) Pos {
	return Pos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Above returns the cell directly above p.
func (p Pos) Above() Pos { return Pos{p.X, p.Y + 1, p.Z} }

// Below returns the cell directly below p.
func (p Pos) Below() Pos { return Pos{p.X, p.Y - 1, p.Z} }

// AxisNeighbors are the six face-adjacent offsets, used by pheromone diffusion.
var AxisNeighbors = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// CardinalOffsets are the four horizontal face-adjacent offsets, in the fixed
// order nest placement probes them.
var CardinalOffsets = [4][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Grid is a bounded dense voxel grid. Out-of-range reads resolve to
// Container, giving the world an impassable boundary.
type Grid struct {
	width, height, depth int
	blocks               []BlockType

	baseSeed int64
	cfg      config.WorldConfig
}

// NewGrid creates a grid from config and generates initial terrain.
func NewGrid(cfg config.WorldConfig) *Grid {
	g := &Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		depth:    cfg.Depth,
		blocks:   make([]BlockType, cfg.Width*cfg.Height*cfg.Depth),
		baseSeed: cfg.Seed,
		cfg:      cfg,
	}
	g.Regenerate(0)
	return g
}

// Size returns the grid extents.
func (g *Grid) Size() (w, h, d int) {
	return g.width, g.height, g.depth
}

// InBounds reports whether p lies inside the grid.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width &&
		p.Y >= 0 && p.Y < g.height &&
		p.Z >= 0 && p.Z < g.depth
}

func (g *Grid) index(p Pos) int {
	return (p.Y*g.depth+p.Z)*g.width + p.X
}

// Get returns the block at p. Out-of-range reads return Container.
func (g *Grid) Get(p Pos) BlockType {
	if !g.InBounds(p) {
		return Container
	}
	return g.blocks[g.index(p)]
}

// Set writes the block at p. Out-of-range writes are dropped.
func (g *Grid) Set(p Pos, b BlockType) {
	if !g.InBounds(p) {
		return
	}
	g.blocks[g.index(p)] = b
}

// Regenerate rebuilds terrain from a heightmap seeded by the base seed and
// the generation index, so each generation starts on a fresh deterministic
// world.
func (g *Grid) Regenerate(generation int) {
	seed := g.baseSeed + int64(generation)*0x9e3779b9
	noise := opensimplex.NewNormalized(seed)
	veins := opensimplex.NewNormalized(seed + 1)
	rng := rand.New(rand.NewSource(seed))

	for i := range g.blocks {
		g.blocks[i] = Air
	}

	for x := 0; x < g.width; x++ {
		for z := 0; z < g.depth; z++ {
			nx := float64(x) * g.cfg.NoiseScale
			nz := float64(z) * g.cfg.NoiseScale
			h := g.cfg.BaseLevel + int(noise.Eval2(nx, nz)*float64(g.cfg.Relief))
			if h < 1 {
				h = 1
			}
			if h >= g.height {
				h = g.height - 1
			}

			for y := 0; y < h-1; y++ {
				b := Stone
				// Mulch veins inside the stone body
				if veins.Eval2(nx*3+float64(y)*0.2, nz*3) > 0.78 {
					b = Mulch
				}
				g.blocks[g.index(Pos{x, y, z})] = b
			}

			surface := Grass
			r := rng.Float64()
			if r < g.cfg.MulchChance {
				surface = Mulch
			} else if r < g.cfg.MulchChance+g.cfg.AcidicChance {
				surface = Acidic
			}
			g.blocks[g.index(Pos{x, h - 1, z})] = surface
		}
	}
}

// SurfaceLevel returns the Y of the first Air cell above the highest solid
// block in column (x, z). ok is false for empty or full columns.
func (g *Grid) SurfaceLevel(x, z int) (int, bool) {
	for y := g.height - 1; y >= 0; y-- {
		if g.Get(Pos{x, y, z}).Solid() {
			if y+1 < g.height {
				return y + 1, true
			}
			return 0, false
		}
	}
	return 0, false
}

// GroundLevel finds a standable Y near yHint in column (x, z): the body cell
// is Air and the cell below is solid. Candidates are probed nearest-first,
// climbing at most climbLimit and dropping at most dropLimit levels.
func (g *Grid) GroundLevel(x, z, yHint, climbLimit, dropLimit int) (int, bool) {
	for delta := 0; delta <= climbLimit || delta <= dropLimit; delta++ {
		if delta <= climbLimit {
			if y := yHint + delta; g.standable(x, y, z) {
				return y, true
			}
		}
		if delta > 0 && delta <= dropLimit {
			if y := yHint - delta; g.standable(x, y, z) {
				return y, true
			}
		}
	}
	return 0, false
}

func (g *Grid) standable(x, y, z int) bool {
	p := Pos{x, y, z}
	return g.Get(p) == Air && g.Get(p.Below()).Solid()
}

// FindSpawn probes random columns for a standable surface cell that is not
// on acid. ok is false when no valid anchor was found within the configured
// attempt budget.
func (g *Grid) FindSpawn(rng *rand.Rand) (Pos, bool) {
	for i := 0; i < g.cfg.SpawnAttempts; i++ {
		x := rng.Intn(g.width)
		z := rng.Intn(g.depth)
		y, ok := g.SurfaceLevel(x, z)
		if !ok {
			continue
		}
		p := Pos{x, y, z}
		if g.Get(p.Below()) == Acidic {
			continue
		}
		return p, true
	}
	return Pos{}, false
}

// Count returns the number of blocks of the given type.
func (g *Grid) Count(b BlockType) int {
	n := 0
	for _, blk := range g.blocks {
		if blk == b {
			n++
		}
	}
	return n
}
