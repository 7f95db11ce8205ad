// Package systems implements the per-tick simulation systems: the pheromone
// field, agent movement, and the forager and breeder behavior loops.
package systems

import (
	"math"

	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/world"
)

// BlockSource is the grid view diffusion needs: only Air cells receive
// pheromone shares.
type BlockSource interface {
	Get(p world.Pos) world.BlockType
}

// PheromoneCell holds the two concentration channels of one tracked cell.
// Channel values are never negative.
type PheromoneCell struct {
	Queen  float64
	Worker float64
}

func (c *PheromoneCell) active() bool {
	return c.Queen > 0 || c.Worker > 0
}

// PheromoneField owns the sparse set of active cells. A cell is tracked
// while either channel is positive and lazily re-activated by any writer.
// The field is scoped to one world instance so it can be reset per
// generation and constructed independently in tests.
type PheromoneField struct {
	cfg   config.PheromoneConfig
	cells map[world.Pos]*PheromoneCell

	// Reused snapshot buffer for the tick pass
	snapshot []world.Pos
}

// NewPheromoneField creates an empty field.
func NewPheromoneField(cfg config.PheromoneConfig) *PheromoneField {
	return &PheromoneField{
		cfg:   cfg,
		cells: make(map[world.Pos]*PheromoneCell),
	}
}

func (f *PheromoneField) cell(p world.Pos) *PheromoneCell {
	c := f.cells[p]
	if c == nil {
		c = &PheromoneCell{}
		f.cells[p] = c
	}
	return c
}

// AddQueen deposits queen pheromone at p, activating the cell.
func (f *PheromoneField) AddQueen(p world.Pos, amount float64) {
	if amount <= 0 {
		return
	}
	f.cell(p).Queen += amount
}

// AddWorker deposits worker pheromone at p, activating the cell.
func (f *PheromoneField) AddWorker(p world.Pos, amount float64) {
	if amount <= 0 {
		return
	}
	f.cell(p).Worker += amount
}

// Read returns both channel concentrations at p.
func (f *PheromoneField) Read(p world.Pos) (queen, worker float64) {
	c := f.cells[p]
	if c == nil {
		return 0, 0
	}
	return c.Queen, c.Worker
}

// Combined returns the summed concentration at p, the value gradient
// following navigates on.
func (f *PheromoneField) Combined(p world.Pos) float64 {
	q, w := f.Read(p)
	return q + w
}

// ActiveCells returns the number of tracked cells.
func (f *PheromoneField) ActiveCells() int {
	return len(f.cells)
}

// Reset drops all tracking, invalidating the field after a world
// regeneration.
func (f *PheromoneField) Reset() {
	clear(f.cells)
}

// Tick advances the field by one step: evaporate, then diffuse, over a
// snapshot of the active set. Evaporation runs first so a diffusing cell
// shares its already-decayed value rather than its pre-decay one. Cells
// activated mid-tick by diffusion inflow join the next tick's snapshot.
func (f *PheromoneField) Tick(blocks BlockSource) {
	f.snapshot = f.snapshot[:0]
	for p := range f.cells {
		f.snapshot = append(f.snapshot, p)
	}

	// Evaporate
	for _, p := range f.snapshot {
		c := f.cells[p]
		c.Queen = decay(c.Queen, f.cfg.QueenEvaporation, f.cfg.Floor)
		c.Worker = decay(c.Worker, f.cfg.WorkerEvaporation, f.cfg.Floor)
	}

	// Diffuse
	for _, p := range f.snapshot {
		c := f.cells[p]
		if c.Queen > 0 {
			c.Queen -= f.diffuse(blocks, p, c.Queen*f.cfg.QueenDiffusion, queenChannel)
		}
		if c.Worker > 0 {
			c.Worker -= f.diffuse(blocks, p, c.Worker*f.cfg.WorkerDiffusion, workerChannel)
		}
	}

	// Untrack cells that fully decayed
	for _, p := range f.snapshot {
		if !f.cells[p].active() {
			delete(f.cells, p)
		}
	}
}

type channel uint8

const (
	queenChannel channel = iota
	workerChannel
)

// diffuse adds share to each Air neighbor of p and returns the total amount
// distributed. Non-Air neighbors receive nothing and do not count toward
// the total.
func (f *PheromoneField) diffuse(blocks BlockSource, p world.Pos, share float64, ch channel) float64 {
	total := 0.0
	for _, d := range world.AxisNeighbors {
		n := p.Offset(d[0], d[1], d[2])
		if blocks.Get(n) != world.Air {
			continue
		}
		c := f.cell(n)
		if ch == queenChannel {
			c.Queen += share
		} else {
			c.Worker += share
		}
		total += share
	}
	return total
}

// decay applies fractional evaporation and zeroes magnitudes below the floor.
func decay(v, rate, floor float64) float64 {
	v *= 1 - rate
	if math.Abs(v) < floor {
		return 0
	}
	return v
}
