package evolution

import (
	"math/rand"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/pthm-cable/brood/config"
	"github.com/pthm-cable/brood/genome"
)

// Engine owns the generation lifecycle state: the all-time breeding pools,
// the per-generation list, the generation counter, and the transition
// guard. It produces genomes; the owning simulation performs world resets
// and spawning.
type Engine struct {
	cfg *config.Config
	rng *rand.Rand

	breederPool *Pool[*genome.Breeder]
	foragerPool *Pool[*genome.Forager]

	// Unbounded per-generation list, cleared on every transition
	generationList []Entry[*genome.Forager]

	generation    int
	bestNests     int
	transitioning bool
}

// NewEngine creates an engine at generation 1 with empty pools.
func NewEngine(cfg *config.Config, rng *rand.Rand) *Engine {
	return &Engine{
		cfg:         cfg,
		rng:         rng,
		breederPool: NewPool[*genome.Breeder](cfg.Evolution.BreederPoolSize),
		foragerPool: NewPool[*genome.Forager](cfg.Evolution.ForagerPoolSize),
		generation:  1,
	}
}

// Generation returns the current generation number. It increases by exactly
// one per breeder death and never decreases.
func (e *Engine) Generation() int {
	return e.generation
}

// BestNestCount returns the highest nest count any breeder achieved.
func (e *Engine) BestNestCount() int {
	return e.bestNests
}

// Transitioning reports whether a generation transition is in progress.
// Death reports arriving while true must be ignored.
func (e *Engine) Transitioning() bool {
	return e.transitioning
}

// RecordForager finalizes a forager's fitness into the all-time pool and
// the current generation's list. Callers must not report deaths while a
// transition is in progress; the transition itself uses this to snapshot
// still-alive foragers.
func (e *Engine) RecordForager(g *genome.Forager, fitness float64) {
	e.foragerPool.Add(g, fitness)
	e.generationList = append(e.generationList, Entry[*genome.Forager]{Genome: g, Fitness: fitness})
}

// BeginTransition enters the non-reentrant transition, finalizing the dead
// breeder's fitness. Returns false if a transition is already running.
func (e *Engine) BeginTransition(g *genome.Breeder, nests int) bool {
	if e.transitioning {
		return false
	}
	e.transitioning = true
	e.breederPool.Add(g, float64(nests))
	if nests > e.bestNests {
		e.bestNests = nests
	}
	return true
}

// AdvanceGeneration increments the generation counter. Called exactly once
// per transition, after all fitness snapshots are recorded.
func (e *Engine) AdvanceGeneration() {
	e.generation++
}

// EndTransition clears the per-generation list and leaves the guarded
// section.
func (e *Engine) EndTransition() {
	e.generationList = e.generationList[:0]
	e.transitioning = false
}

// NextBreeder produces the next breeder genome: tournament-bred from two
// distinct pool parents when at least two are available, otherwise fresh
// random.
func (e *Engine) NextBreeder() *genome.Breeder {
	d := e.cfg.Derived
	if e.breederPool.Len() < 2 {
		return genome.NewRandomBreeder(e.rng, d.BreederThresholdMin, d.BreederThresholdMax)
	}
	i, j := SelectParents(e.rng, e.breederPool, e.cfg.Evolution.TournamentSize)
	return genome.BreedBreeders(e.rng,
		e.breederPool.Entry(i).Genome, e.breederPool.Entry(j).Genome,
		e.cfg.Evolution.MutationRate, e.thresholdJitter(),
		d.BreederThresholdMin, d.BreederThresholdMax)
}

// NextForagers produces the full next forager population: exact clones of
// the all-time elite first, the rest bred from the union of the all-time
// pool and a sample of the finished generation.
func (e *Engine) NextForagers() []*genome.Forager {
	d := e.cfg.Derived
	count := e.cfg.Forager.Count
	elite := e.cfg.Forager.EliteCount

	out := make([]*genome.Forager, 0, count)
	for i := 0; i < elite && i < e.foragerPool.Len(); i++ {
		out = append(out, e.foragerPool.Entry(i).Genome.Clone())
	}

	pool := e.breedingPool()
	for len(out) < count {
		if pool.Len() < 2 {
			out = append(out, genome.NewRandomForager(e.rng, d.ForagerThresholdMin, d.ForagerThresholdMax))
			continue
		}
		i, j := SelectParents(e.rng, pool, e.cfg.Evolution.TournamentSize)
		out = append(out, genome.BreedForagers(e.rng,
			pool.Entry(i).Genome, pool.Entry(j).Genome,
			e.cfg.Evolution.MutationRate, e.thresholdJitter(),
			d.ForagerThresholdMin, d.ForagerThresholdMax))
	}
	return out
}

// breedingPool unions the all-time forager pool with up to
// generation_sample genomes drawn uniformly without replacement from the
// just-finished generation.
func (e *Engine) breedingPool() *Pool[*genome.Forager] {
	sample := e.cfg.Evolution.GenerationSample
	pool := NewPool[*genome.Forager](e.foragerPool.Len() + sample)
	for i := 0; i < e.foragerPool.Len(); i++ {
		entry := e.foragerPool.Entry(i)
		pool.Add(entry.Genome, entry.Fitness)
	}

	n := len(e.generationList)
	k := sample
	if k > n {
		k = n
	}
	if k > 0 {
		idxs := make([]int, k)
		sampleuv.WithoutReplacement(idxs, n, exprand.NewSource(e.rng.Uint64()))
		for _, idx := range idxs {
			entry := e.generationList[idx]
			pool.Add(entry.Genome, entry.Fitness)
		}
	}
	return pool
}

func (e *Engine) thresholdJitter() int {
	return int(float64(e.cfg.Agent.MaxHealth) * e.cfg.Evolution.ThresholdJitter)
}
