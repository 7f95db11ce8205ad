package world

import "testing"

func TestBlockSymbols(t *testing.T) {
	// Every block maps to a symbol below the alphabet size; Nest is
	// indistinguishable from Container in a neighborhood pattern.
	for _, b := range []BlockType{Air, Stone, Grass, Mulch, Acidic, Container, Nest} {
		if s := b.Symbol(); s < 0 || s >= NumSymbols {
			t.Errorf("%v symbol %d outside [0,%d)", b, s, NumSymbols)
		}
	}
	if Nest.Symbol() != Container.Symbol() {
		t.Errorf("expected Nest and Container to share a symbol, got %d and %d",
			Nest.Symbol(), Container.Symbol())
	}
}

func TestBlockSolidity(t *testing.T) {
	if Air.Solid() {
		t.Error("Air must not be solid")
	}
	for _, b := range []BlockType{Stone, Grass, Mulch, Acidic, Container, Nest} {
		if !b.Solid() {
			t.Errorf("%v must be solid", b)
		}
	}
}

func TestBlockDiggability(t *testing.T) {
	for _, b := range []BlockType{Stone, Grass, Mulch, Acidic} {
		if !b.Diggable() {
			t.Errorf("%v must be diggable", b)
		}
	}
	for _, b := range []BlockType{Air, Container, Nest} {
		if b.Diggable() {
			t.Errorf("%v must not be diggable", b)
		}
	}
}
