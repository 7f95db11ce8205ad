// Package components defines the ECS component structs for simulation agents.
package components

// Position is an agent's voxel coordinate.
type Position struct {
	X, Y, Z int
}

// Health tracks an agent's vitality. Value stays within [0, Max] at every
// observation point; death is checked after decay each tick.
type Health struct {
	Value int
	Max   int
	Alive bool
}

// Role identifies the agent's behavior loop.
type Role uint8

const (
	RoleForager Role = iota
	RoleBreeder
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleBreeder {
		return "breeder"
	}
	return "forager"
}

// ForagerState is the forager's behavior mode.
type ForagerState uint8

const (
	StateForaging ForagerState = iota
	StateFeeding
)

// Meta bundles agent identity and per-tick behavior state.
type Meta struct {
	ID      uint32
	Role    Role
	State   ForagerState
	Heading float64 // wander direction, radians
	Ticks   int     // ticks alive; drives the breeder move cadence
}
