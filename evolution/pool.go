// Package evolution implements the generational genetic algorithm: bounded
// breeding pools, tournament selection, and the generation lifecycle.
package evolution

import "sort"

// Entry pairs a genome with its finalized fitness.
type Entry[G any] struct {
	Genome  G
	Fitness float64
}

// Pool is a bounded list of scored genomes kept sorted descending by
// fitness. Insertion below a full pool's floor is dropped.
type Pool[G any] struct {
	entries []Entry[G]
	maxSize int
}

// NewPool creates a pool holding at most maxSize entries.
func NewPool[G any](maxSize int) *Pool[G] {
	return &Pool[G]{
		entries: make([]Entry[G], 0, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts a scored genome, maintaining sorted order. If the pool is
// full the lowest-fitness entry is evicted.
func (p *Pool[G]) Add(g G, fitness float64) {
	idx := sort.Search(len(p.entries), func(i int) bool {
		return p.entries[i].Fitness < fitness
	})
	if len(p.entries) >= p.maxSize && idx >= p.maxSize {
		return
	}

	p.entries = append(p.entries, Entry[G]{})
	copy(p.entries[idx+1:], p.entries[idx:])
	p.entries[idx] = Entry[G]{Genome: g, Fitness: fitness}

	if len(p.entries) > p.maxSize {
		p.entries = p.entries[:p.maxSize]
	}
}

// Len returns the number of entries.
func (p *Pool[G]) Len() int {
	return len(p.entries)
}

// Entry returns the i-th entry, best first.
func (p *Pool[G]) Entry(i int) Entry[G] {
	return p.entries[i]
}

// Best returns the top entry, ok false when the pool is empty.
func (p *Pool[G]) Best() (Entry[G], bool) {
	if len(p.entries) == 0 {
		var zero Entry[G]
		return zero, false
	}
	return p.entries[0], true
}
