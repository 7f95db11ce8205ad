package genome

import "math/rand"

// CrossRulesets performs uniform crossover: each key is inherited from one
// parent with probability 1/2, then mutated to a uniformly random action
// with probability mutationRate.
func CrossRulesets(rng *rand.Rand, a, b *Ruleset, mutationRate float64) Ruleset {
	var child Ruleset
	for i := range child {
		if rng.Float64() < 0.5 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
		if rng.Float64() < mutationRate {
			child[i] = Action(rng.Intn(NumActions))
		}
	}
	return child
}

// CrossThresholds combines two threshold genes: floor of the parent mean
// plus a uniform offset in ±jitter, clamped to [lo, hi].
func CrossThresholds(rng *rand.Rand, a, b, jitter, lo, hi int) int {
	mean := (a + b) / 2
	offset := 0
	if jitter > 0 {
		offset = rng.Intn(2*jitter+1) - jitter
	}
	return clampInt(mean+offset, lo, hi)
}

// BreedForagers produces a child forager genome from two parents.
func BreedForagers(rng *rand.Rand, a, b *Forager, mutationRate float64, jitter, lo, hi int) *Forager {
	return &Forager{
		FeedThreshold: CrossThresholds(rng, a.FeedThreshold, b.FeedThreshold, jitter, lo, hi),
		Rules:         CrossRulesets(rng, &a.Rules, &b.Rules, mutationRate),
	}
}

// BreedBreeders produces a child breeder genome from two parents. The
// ruleset gene is bred even though behavior never reads it.
func BreedBreeders(rng *rand.Rand, a, b *Breeder, mutationRate float64, jitter, lo, hi int) *Breeder {
	return &Breeder{
		PlaceThreshold: CrossThresholds(rng, a.PlaceThreshold, b.PlaceThreshold, jitter, lo, hi),
		Rules:          CrossRulesets(rng, &a.Rules, &b.Rules, mutationRate),
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
