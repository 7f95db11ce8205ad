package systems

import (
	"github.com/pthm-cable/brood/world"
)

// neighborhoodCells lists the five touching cells in encoding order:
// below, -x, +x, -z, +z.
var neighborhoodCells = [5][3]int{
	{0, -1, 0},
	{-1, 0, 0},
	{1, 0, 0},
	{0, 0, -1},
	{0, 0, 1},
}

// EncodeNeighborhood packs the agent's five touching cells into a base-6
// key: key = sum of symbol_i * 6^(4-i). The result indexes a genome
// ruleset directly, so the hottest per-tick lookup is a plain array read.
func EncodeNeighborhood(g BlockSource, p world.Pos) int {
	key := 0
	for _, d := range neighborhoodCells {
		key = key*world.NumSymbols + g.Get(p.Offset(d[0], d[1], d[2])).Symbol()
	}
	return key
}
