package world

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/brood/config"
)

func init() {
	// Initialize config for tests
	config.MustInit("")
}

func testGrid() *Grid {
	g := NewGrid(config.Cfg().World)
	g.Regenerate(1)
	return g
}

func TestGridBounds(t *testing.T) {
	g := testGrid()
	w, h, d := g.Size()
	cfg := config.Cfg().World
	if w != cfg.Width || h != cfg.Height || d != cfg.Depth {
		t.Fatalf("expected %dx%dx%d grid, got %dx%dx%d", cfg.Width, cfg.Height, cfg.Depth, w, h, d)
	}

	// Out-of-range reads behave like an impassable boundary
	for _, p := range []Pos{
		{X: -1, Y: 0, Z: 0},
		{X: w, Y: 0, Z: 0},
		{X: 0, Y: -1, Z: 0},
		{X: 0, Y: h, Z: 0},
		{X: 0, Y: 0, Z: d},
	} {
		if got := g.Get(p); got != Container {
			t.Errorf("expected Container at out-of-range %v, got %v", p, got)
		}
	}
}

func TestGridSetOutOfRangeIsDropped(t *testing.T) {
	g := testGrid()
	p := Pos{X: -1, Y: 0, Z: 0}
	g.Set(p, Nest)
	if got := g.Get(p); got != Container {
		t.Errorf("out-of-range write should be dropped, read back %v", got)
	}
}

func TestGridSetGetRoundtrip(t *testing.T) {
	g := testGrid()
	p := Pos{X: 3, Y: 5, Z: 7}
	g.Set(p, Mulch)
	if got := g.Get(p); got != Mulch {
		t.Errorf("expected Mulch after Set, got %v", got)
	}
}

func TestRegenerateDeterministic(t *testing.T) {
	a := NewGrid(config.Cfg().World)
	b := NewGrid(config.Cfg().World)
	a.Regenerate(3)
	b.Regenerate(3)

	w, h, d := a.Size()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < d; z++ {
				p := Pos{X: x, Y: y, Z: z}
				if a.Get(p) != b.Get(p) {
					t.Fatalf("same seed and generation produced different terrain at %v", p)
				}
			}
		}
	}
}

func TestRegenerateVariesByGeneration(t *testing.T) {
	a := NewGrid(config.Cfg().World)
	b := NewGrid(config.Cfg().World)
	a.Regenerate(1)
	b.Regenerate(2)

	w, h, d := a.Size()
	diff := 0
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < d; z++ {
				p := Pos{X: x, Y: y, Z: z}
				if a.Get(p) != b.Get(p) {
					diff++
				}
			}
		}
	}
	if diff == 0 {
		t.Error("expected different generations to produce different terrain")
	}
}

func TestSurfaceLevel(t *testing.T) {
	g := testGrid()
	w, _, d := g.Size()

	found := 0
	for x := 0; x < w; x++ {
		for z := 0; z < d; z++ {
			y, ok := g.SurfaceLevel(x, z)
			if !ok {
				continue
			}
			found++
			if g.Get(Pos{X: x, Y: y, Z: z}).Solid() {
				t.Fatalf("surface cell at (%d,%d,%d) is solid", x, y, z)
			}
			if !g.Get(Pos{X: x, Y: y - 1, Z: z}).Solid() {
				t.Fatalf("cell under surface at (%d,%d,%d) is not solid", x, y, z)
			}
		}
	}
	if found == 0 {
		t.Fatal("expected at least one standable column")
	}
}

func TestGroundLevelRespectsLimits(t *testing.T) {
	g := testGrid()
	cfg := config.Cfg().Agent

	// Find two adjacent columns and check the step between them honors the
	// climb/drop envelope whenever GroundLevel accepts the move.
	w, _, d := g.Size()
	for x := 0; x < w-1; x++ {
		for z := 0; z < d; z++ {
			y0, ok0 := g.SurfaceLevel(x, z)
			if !ok0 {
				continue
			}
			y1, ok := g.GroundLevel(x+1, z, y0, cfg.ClimbLimit, cfg.DropLimit)
			if !ok {
				continue
			}
			dy := y1 - y0
			if dy > cfg.ClimbLimit || dy < -cfg.DropLimit {
				t.Fatalf("GroundLevel returned dy=%d outside [%d,%d]", dy, -cfg.DropLimit, cfg.ClimbLimit)
			}
		}
	}
}

func TestFindSpawn(t *testing.T) {
	g := testGrid()
	rng := rand.New(rand.NewSource(42))

	p, ok := g.FindSpawn(rng)
	if !ok {
		t.Fatal("expected FindSpawn to succeed on generated terrain")
	}
	if g.Get(p).Solid() {
		t.Errorf("spawn cell %v is solid", p)
	}
	if !g.Get(p.Below()).Solid() {
		t.Errorf("spawn cell %v has no floor", p)
	}
	if g.Get(p.Below()) == Acidic {
		t.Errorf("spawn cell %v stands on acid", p)
	}
}

func TestCount(t *testing.T) {
	g := testGrid()
	before := g.Count(Nest)
	g.Set(Pos{X: 1, Y: 10, Z: 1}, Nest)
	g.Set(Pos{X: 2, Y: 10, Z: 2}, Nest)
	if got := g.Count(Nest); got != before+2 {
		t.Errorf("expected %d nest blocks, got %d", before+2, got)
	}
}
