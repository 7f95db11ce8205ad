// Package genome defines the evolvable agent parameters and the genetic
// operators that produce them.
package genome

import "math/rand"

const (
	// PatternCells is the number of neighborhood cells a forager observes.
	PatternCells = 5
	// RulesetSize is 6^PatternCells: one entry per base-6 neighborhood key.
	RulesetSize = 7776
)

// Action is a forager's response to a neighborhood pattern. DigA and DigB
// both resolve to digging the cell below; the two variants are kept as
// distinct alleles.
type Action uint8

const (
	ActionNone Action = iota
	ActionDigA
	ActionDigB
)

// NumActions is the action alphabet size used by mutation.
const NumActions = 3

// Digs reports whether the action digs the cell below the agent.
func (a Action) Digs() bool {
	return a == ActionDigA || a == ActionDigB
}

// Ruleset is a total mapping from encoded neighborhood pattern to action.
type Ruleset [RulesetSize]Action

// NewRandomRuleset fills every key with a uniformly random action.
func NewRandomRuleset(rng *rand.Rand) Ruleset {
	var rs Ruleset
	for i := range rs {
		rs[i] = Action(rng.Intn(NumActions))
	}
	return rs
}

// Forager is the evolvable parameter set of a foraging agent. Genomes are
// immutable for the agent's lifetime; new ones are produced only at spawn.
type Forager struct {
	FeedThreshold int
	Rules         Ruleset
}

// Breeder is the evolvable parameter set of the breeding agent. Rules is
// generated and bred alongside the threshold but never consulted by breeder
// behavior; it is carried as genetic bookkeeping.
type Breeder struct {
	PlaceThreshold int
	Rules          Ruleset
}

// NewRandomForager creates a forager genome with a uniform threshold in
// [minThreshold, maxThreshold] and a random ruleset.
func NewRandomForager(rng *rand.Rand, minThreshold, maxThreshold int) *Forager {
	return &Forager{
		FeedThreshold: minThreshold + rng.Intn(maxThreshold-minThreshold+1),
		Rules:         NewRandomRuleset(rng),
	}
}

// NewRandomBreeder creates a breeder genome with a uniform threshold in
// [minThreshold, maxThreshold] and a random ruleset.
func NewRandomBreeder(rng *rand.Rand, minThreshold, maxThreshold int) *Breeder {
	return &Breeder{
		PlaceThreshold: minThreshold + rng.Intn(maxThreshold-minThreshold+1),
		Rules:          NewRandomRuleset(rng),
	}
}

// Clone returns an exact copy. Elite clones must be byte-identical to their
// source genome.
func (f *Forager) Clone() *Forager {
	c := *f
	return &c
}

// Clone returns an exact copy.
func (b *Breeder) Clone() *Breeder {
	c := *b
	return &c
}
