// Package world implements the bounded voxel grid the simulation runs on.
package world

// BlockType is the closed set of voxel tags.
type BlockType uint8

const (
	Air BlockType = iota
	Stone
	Grass
	Mulch
	Acidic
	Container
	Nest
)

// NumSymbols is the neighborhood alphabet size. Container and Nest share
// one symbol: both are permanent, undiggable obstacles.
const NumSymbols = 6

// String returns the block name.
func (b BlockType) String() string {
	switch b {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Grass:
		return "grass"
	case Mulch:
		return "mulch"
	case Acidic:
		return "acidic"
	case Container:
		return "container"
	case Nest:
		return "nest"
	}
	return "unknown"
}

// Solid reports whether the block carries mass an agent can stand on.
func (b BlockType) Solid() bool {
	return b != Air
}

// Diggable reports whether a forager may convert the block to Air.
func (b BlockType) Diggable() bool {
	return b != Air && b != Container && b != Nest
}

// Symbol returns the block's position in the 6-symbol neighborhood alphabet.
func (b BlockType) Symbol() int {
	if b == Nest {
		return int(Container)
	}
	return int(b)
}
