package systems

import (
	"testing"

	"github.com/pthm-cable/brood/genome"
	"github.com/pthm-cable/brood/world"
)

func TestEncodeNeighborhoodAllAir(t *testing.T) {
	key := EncodeNeighborhood(openAir{}, world.Pos{X: 5, Y: 5, Z: 5})
	if key != 0 {
		t.Errorf("all-Air neighborhood must encode to 0, got %d", key)
	}
}

func TestEncodeNeighborhoodKnownPattern(t *testing.T) {
	p := world.Pos{X: 0, Y: 10, Z: 0}
	blocks := walledAir{solid: map[world.Pos]world.BlockType{
		p.Below():         world.Stone, // symbol 1, weight 6^4
		p.Offset(1, 0, 0): world.Mulch, // symbol 3, weight 6^2
		p.Offset(0, 0, 1): world.Nest,  // reads as Container, weight 6^0
	}}

	want := world.Stone.Symbol()*1296 + world.Mulch.Symbol()*36 + world.Container.Symbol()
	if key := EncodeNeighborhood(blocks, p); key != want {
		t.Errorf("expected key %d, got %d", want, key)
	}
}

func TestEncodeNeighborhoodRange(t *testing.T) {
	// The densest pattern still indexes the ruleset
	blocks := walledAir{solid: map[world.Pos]world.BlockType{}}
	p := world.Pos{X: 0, Y: 10, Z: 0}
	for _, d := range neighborhoodCells {
		blocks.solid[p.Offset(d[0], d[1], d[2])] = world.Container
	}

	key := EncodeNeighborhood(blocks, p)
	if key != genome.RulesetSize-1 {
		t.Errorf("expected max key %d, got %d", genome.RulesetSize-1, key)
	}
}
