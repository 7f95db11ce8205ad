package genome

import (
	"math/rand"
	"testing"
)

func TestRulesetIsTotal(t *testing.T) {
	if RulesetSize != 6*6*6*6*6 {
		t.Fatalf("expected 6^5 keys, got %d", RulesetSize)
	}
	rs := NewRandomRuleset(rand.New(rand.NewSource(42)))
	for i, a := range rs {
		if a >= NumActions {
			t.Fatalf("key %d holds invalid action %d", i, a)
		}
	}
}

func TestActionDigs(t *testing.T) {
	if ActionNone.Digs() {
		t.Error("ActionNone must not dig")
	}
	if !ActionDigA.Digs() || !ActionDigB.Digs() {
		t.Error("both dig variants must dig")
	}
}

func TestRandomThresholdsInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		f := NewRandomForager(rng, 20, 95)
		if f.FeedThreshold < 20 || f.FeedThreshold > 95 {
			t.Fatalf("forager threshold %d outside [20,95]", f.FeedThreshold)
		}
		b := NewRandomBreeder(rng, 50, 90)
		if b.PlaceThreshold < 50 || b.PlaceThreshold > 90 {
			t.Fatalf("breeder threshold %d outside [50,90]", b.PlaceThreshold)
		}
	}
}

func TestCloneIsExactAndIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	f := NewRandomForager(rng, 20, 95)
	c := f.Clone()

	if c.FeedThreshold != f.FeedThreshold || c.Rules != f.Rules {
		t.Fatal("clone must be byte-identical to its source")
	}

	c.Rules[0] = ActionDigA
	c.Rules[1] = ActionDigA
	f.Rules[0] = ActionNone
	f.Rules[1] = ActionNone
	if c.Rules[0] != ActionDigA || c.Rules[1] != ActionDigA {
		t.Error("mutating the source must not touch the clone")
	}
}
