package snap

import (
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

type fakeStructure struct {
	id  string
	pos geo.Vec3
	fwd geo.Vec3
}

func (s *fakeStructure) ID() string         { return s.id }
func (s *fakeStructure) Position() geo.Vec3 { return s.pos }
func (s *fakeStructure) Forward() geo.Vec3  { return s.fwd }

func structure(id string, x, z float64) *fakeStructure {
	return &fakeStructure{id: id, pos: geo.V(x, 0, z), fwd: geo.Forward}
}

type fakeHost struct {
	structures []Structure
	floor      float64
	active     Structure
	size       int

	canLink  func(active, candidate Structure, point, candidatePos geo.Vec3) bool
	canPlace func(candidate Structure, point, up geo.Vec3, size int) bool

	registryCalls int
	linkCalls     int
	placeCalls    int
}

func newFakeHost(active Structure, others ...Structure) *fakeHost {
	h := &fakeHost{active: active}
	if active != nil {
		h.structures = append(h.structures, active)
	}
	h.structures = append(h.structures, others...)
	return h
}

func (h *fakeHost) Structures(include func(Structure) bool) []Structure {
	h.registryCalls++
	var out []Structure
	for _, s := range h.structures {
		if include(s) {
			out = append(out, s)
		}
	}
	return out
}

func (h *fakeHost) CanLink(active, candidate Structure, point, candidatePos geo.Vec3) bool {
	h.linkCalls++
	if h.canLink == nil {
		return true
	}
	return h.canLink(active, candidate, point, candidatePos)
}

func (h *fakeHost) CanPlace(candidate Structure, point, up geo.Vec3, size int) bool {
	h.placeCalls++
	if h.canPlace == nil {
		return true
	}
	return h.canPlace(candidate, point, up, size)
}

func (h *fakeHost) FloorHeight() float64 { return h.floor }

func (h *fakeHost) ActiveStructure() (Structure, bool) {
	return h.active, h.active != nil
}

func (h *fakeHost) ActiveSizeIndex() int { return h.size }

// countingGenerator wraps a generator and counts invocations.
type countingGenerator struct {
	calls int
	gen   GeneratorFunc
}

func (c *countingGenerator) generate(anchor, forward geo.Vec3, cfg config.Grid) (Grid, error) {
	c.calls++
	if c.gen == nil {
		return GenerateGrid(anchor, forward, cfg)
	}
	return c.gen(anchor, forward, cfg)
}

// fixedGrids serves hand-built grids keyed by anchor position.
func fixedGrids(grids map[geo.Vec3]Grid) GeneratorFunc {
	return func(anchor, _ geo.Vec3, _ config.Grid) (Grid, error) {
		return grids[anchor], nil
	}
}

func line(points ...geo.Vec3) Line {
	l := Line{Points: make([]Point, len(points))}
	for i, p := range points {
		l.Points[i] = Point{Pos: p, Index: i}
	}
	return l
}

func testConfig() config.Config {
	return config.Default()
}
