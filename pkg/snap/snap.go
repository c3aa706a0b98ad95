// Package snap generates radial candidate grids around placed structures and
// resolves the cursor to the nearest candidate point that is legal for the
// structure being placed.
//
// The host game is reached only through the interfaces below. An Overlay owns
// all caches for one placement session; it is not safe for concurrent use.
package snap

import (
	"errors"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
)

var (
	// ErrInvalidConfiguration is returned for degenerate grid parameters.
	ErrInvalidConfiguration = validation.ErrInvalidConfiguration
	// ErrMissingDependency is returned when the host cannot supply something a
	// query needs, such as the structure being placed.
	ErrMissingDependency = errors.New("missing external dependency")
)

// Structure is a placed (or being placed) structure in the host game.
// ID must be stable for the structure's lifetime.
type Structure interface {
	ID() string
	Position() geo.Vec3
	Forward() geo.Vec3
}

// Registry lists the host's structures.
type Registry interface {
	Structures(include func(Structure) bool) []Structure
}

// Rules are the host's legality predicates.
type Rules interface {
	// CanLink reports whether the active structure, if placed at point, could
	// connect to candidate.
	CanLink(active, candidate Structure, point, candidatePos geo.Vec3) bool
	// CanPlace reports whether a structure of sizeIndex fits at point.
	CanPlace(candidate Structure, point, up geo.Vec3, sizeIndex int) bool
}

// Environment is per-frame state read from the host.
type Environment interface {
	FloorHeight() float64
	ActiveStructure() (Structure, bool)
	ActiveSizeIndex() int
}

// Host is everything an Overlay consumes from the game.
type Host interface {
	Registry
	Rules
	Environment
}
