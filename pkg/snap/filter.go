package snap

import "github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"

// Filter applies the host's link and placement predicates to candidate points.
type Filter struct {
	rules Rules
	env   Environment
}

// NewFilter creates a filter over the host predicates.
func NewFilter(rules Rules, env Environment) *Filter {
	return &Filter{rules: rules, env: env}
}

// Accepted reports whether point, dropped to the floor, passes both the link
// and the placement predicate for the active structure next to candidate.
func (f *Filter) Accepted(point geo.Vec3, active, candidate Structure, sizeIndex int) bool {
	return f.accepts(point.WithY(f.env.FloorHeight()), active, candidate, sizeIndex)
}

// accepts expects a point already on the floor.
func (f *Filter) accepts(onFloor geo.Vec3, active, candidate Structure, sizeIndex int) bool {
	return f.rules.CanLink(active, candidate, onFloor, candidate.Position()) &&
		f.rules.CanPlace(candidate, onFloor, geo.Up, sizeIndex)
}
