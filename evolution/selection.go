package evolution

import "math/rand"

// Tournament selects a parent index: the best of k uniform with-replacement
// samples. When the pool holds at most k entries the whole pool is scanned,
// so the maximum is always seen.
func Tournament[G any](rng *rand.Rand, p *Pool[G], k int) int {
	n := p.Len()
	if n == 0 {
		return -1
	}
	if n <= k {
		best := 0
		for i := 1; i < n; i++ {
			if p.entries[i].Fitness > p.entries[best].Fitness {
				best = i
			}
		}
		return best
	}

	best := rng.Intn(n)
	for i := 1; i < k; i++ {
		idx := rng.Intn(n)
		if p.entries[idx].Fitness > p.entries[best].Fitness {
			best = idx
		}
	}
	return best
}

// SelectParents picks two distinct parent indices for one child. A second
// draw colliding with the first is retried once, then advanced to the next
// index, which guarantees distinctness whenever the pool holds more than
// one genome.
func SelectParents[G any](rng *rand.Rand, p *Pool[G], k int) (int, int) {
	a := Tournament(rng, p, k)
	b := Tournament(rng, p, k)
	if b == a {
		b = Tournament(rng, p, k)
	}
	if b == a {
		b = (a + 1) % p.Len()
	}
	return a, b
}
