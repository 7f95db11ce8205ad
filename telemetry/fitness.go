// Package telemetry tracks per-agent fitness and aggregates windowed
// simulation statistics for CSV output.
package telemetry

// Stats tracks a single agent's fitness-relevant counters over its
// lifetime. All counters only ever increase, so accumulated fitness never
// decreases.
type Stats struct {
	BirthTick   int
	EnergyGiven int
	FoodEaten   int
	NestsPlaced int
}

// ForagerFitness returns energyGiven + weight * foodEaten.
func (s *Stats) ForagerFitness(weight float64) float64 {
	return float64(s.EnergyGiven) + weight*float64(s.FoodEaten)
}

// Tracker manages per-agent fitness statistics, keyed by agent ID.
type Tracker struct {
	stats map[uint32]*Stats
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{stats: make(map[uint32]*Stats)}
}

// Register creates stats for a newly spawned agent.
func (t *Tracker) Register(id uint32, birthTick int) {
	t.stats[id] = &Stats{BirthTick: birthTick}
}

// Get returns the stats for an agent, or nil if unknown.
func (t *Tracker) Get(id uint32) *Stats {
	return t.stats[id]
}

// Remove deletes an agent's stats and returns them for finalization.
func (t *Tracker) Remove(id uint32) *Stats {
	s := t.stats[id]
	delete(t.stats, id)
	return s
}

// Clear drops all stats, used when a generation transition replaces the
// whole population.
func (t *Tracker) Clear() {
	clear(t.stats)
}

// RecordFood increments an agent's food-eaten counter.
func (t *Tracker) RecordFood(id uint32) {
	if s := t.stats[id]; s != nil {
		s.FoodEaten++
	}
}

// RecordEnergyGiven adds to an agent's energy-given counter.
func (t *Tracker) RecordEnergyGiven(id uint32, amount int) {
	if s := t.stats[id]; s != nil {
		s.EnergyGiven += amount
	}
}

// RecordNest increments an agent's nests-placed counter.
func (t *Tracker) RecordNest(id uint32) {
	if s := t.stats[id]; s != nil {
		s.NestsPlaced++
	}
}
