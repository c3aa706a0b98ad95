package snap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
)

func newTestResolver(h *fakeHost, gen GeneratorFunc, r render.Renderer) *Resolver {
	cfg := testConfig()
	cache := NewGeometryCache(cfg.Grid, config.StaleKeep, gen)
	return NewResolver(cfg, cache, NewFilter(h, h), h, r)
}

func TestResolvePicksClosestAcceptedPoint(t *testing.T) {
	active := structure("active", 0, 0)
	a, b := structure("a", 100, 0), structure("b", 200, 0)
	grids := map[geo.Vec3]Grid{
		a.pos: {line(geo.V(10, 0, 0), geo.V(6, 0, 0)), line(geo.V(3, 0, 4))},
		b.pos: {line(geo.V(0, 0, 4.5), geo.V(-9, 0, 0))},
	}
	h := newFakeHost(active, a, b)
	res, err := newTestResolver(h, fixedGrids(grids), nil).ResolveDetailed(geo.Vec3{}, []Structure{a, b}, active)
	require.NoError(t, err)

	assert.True(t, res.Snapped)
	assert.Equal(t, geo.V(0, 0, 4.5), res.Point)
	assert.Equal(t, "b", res.StructureID)
	assert.Equal(t, 0, res.Line)
	assert.Equal(t, 0, res.Index)
	assert.InDelta(t, 4.5, res.Distance, 1e-9)
	assert.Equal(t, 5, res.Dots)
	assert.Equal(t, 3, res.Lines)
}

func TestResolveTieKeepsFirstFound(t *testing.T) {
	active := structure("active", 0, 0)
	a, b := structure("a", 100, 0), structure("b", 200, 0)
	grids := map[geo.Vec3]Grid{
		a.pos: {line(geo.V(0, 0, 5), geo.V(5, 0, 0))},
		b.pos: {line(geo.V(-5, 0, 0))},
	}
	h := newFakeHost(active, a, b)
	r := newTestResolver(h, fixedGrids(grids), nil)

	res, err := r.ResolveDetailed(geo.Vec3{}, []Structure{a, b}, active)
	require.NoError(t, err)
	assert.Equal(t, geo.V(0, 0, 5), res.Point)
	assert.Equal(t, "a", res.StructureID)
	assert.Equal(t, 0, res.Index)

	// Reversing structure order flips the winner.
	res, err = r.ResolveDetailed(geo.Vec3{}, []Structure{b, a}, active)
	require.NoError(t, err)
	assert.Equal(t, geo.V(-5, 0, 0), res.Point)
	assert.Equal(t, "b", res.StructureID)
}

func TestResolveRejectedPointsDoNotCount(t *testing.T) {
	active := structure("active", 0, 0)
	a := structure("a", 100, 0)
	near, far := geo.V(1, 0, 0), geo.V(8, 0, 0)
	grids := map[geo.Vec3]Grid{a.pos: {line(near, far)}}

	cases := []struct {
		name        string
		link, place func(geo.Vec3) bool
	}{
		{"link fails", func(p geo.Vec3) bool { return p != near }, func(geo.Vec3) bool { return true }},
		{"place fails", func(geo.Vec3) bool { return true }, func(p geo.Vec3) bool { return p != near }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newFakeHost(active, a)
			h.canLink = func(_, _ Structure, p, _ geo.Vec3) bool { return tc.link(p) }
			h.canPlace = func(_ Structure, p, _ geo.Vec3, _ int) bool { return tc.place(p) }
			counter := &render.Counter{}

			got, err := newTestResolver(h, fixedGrids(grids), counter).Resolve(geo.Vec3{}, []Structure{a}, active)
			require.NoError(t, err)
			assert.Equal(t, far, got)
			assert.Equal(t, 1, counter.Points, "only the accepted point is drawn")
			assert.Equal(t, 1, counter.Lines)
		})
	}
}

func TestResolveNoCandidates(t *testing.T) {
	active := structure("active", 0, 0)
	query := geo.V(3, 0, -2)

	t.Run("no structures", func(t *testing.T) {
		h := newFakeHost(active)
		counter := &render.Counter{}
		res, err := newTestResolver(h, nil, counter).ResolveDetailed(query, nil, active)
		require.NoError(t, err)
		assert.Equal(t, query, res.Point)
		assert.False(t, res.Snapped)
		assert.Zero(t, counter.Calls())
	})

	t.Run("everything rejected", func(t *testing.T) {
		a := structure("a", 10, 10)
		h := newFakeHost(active, a)
		h.canPlace = func(Structure, geo.Vec3, geo.Vec3, int) bool { return false }
		counter := &render.Counter{}
		got, err := newTestResolver(h, nil, counter).Resolve(query, []Structure{a}, active)
		require.NoError(t, err)
		assert.Equal(t, query, got)
		assert.Zero(t, counter.Calls())
	})
}

func TestResolveSkipsActiveStructure(t *testing.T) {
	active := structure("active", 0, 0)
	h := newFakeHost(active)
	gen := &countingGenerator{}

	got, err := newTestResolver(h, gen.generate, nil).Resolve(geo.V(1, 0, 1), []Structure{active}, active)
	require.NoError(t, err)
	assert.Equal(t, geo.V(1, 0, 1), got)
	assert.Zero(t, gen.calls)
}

func TestResolveWithoutActiveStructure(t *testing.T) {
	h := newFakeHost(nil, structure("a", 0, 0))
	got, err := newTestResolver(h, nil, nil).Resolve(geo.V(1, 0, 1), h.structures, nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Equal(t, geo.V(1, 0, 1), got)
}

func TestResolveDrawsOnFloorWithHover(t *testing.T) {
	active := structure("active", 0, 0)
	a := &fakeStructure{id: "a", pos: geo.V(0, 5, 0), fwd: geo.Forward}
	h := newFakeHost(active, a)
	h.floor = 1
	rec := render.NewRecorder()

	res, err := newTestResolver(h, nil, rec).ResolveDetailed(geo.V(0, 1, 11), []Structure{a}, active)
	require.NoError(t, err)

	assert.Equal(t, geo.V(0, 1, 12), res.Point, "snap point sits on the floor")
	cmds := rec.Commands("Connections")
	require.NotEmpty(t, cmds)
	for _, c := range cmds {
		assert.InDelta(t, 3, c.Start.Y, 1e-9, "drawn at floor + hover")
	}
	assert.Equal(t, 24*12, rec.Count("Connections", render.KindPoint))
	assert.Equal(t, 24, rec.Count("Connections", render.KindLine))
}

func TestResolveDotStyleAndLineAlternation(t *testing.T) {
	active := structure("active", 0, 0)
	a := structure("a", 0, 0)
	h := newFakeHost(active, a)
	// Reject every point of the second line (direction rotated 15 degrees).
	h.canLink = func(_, _ Structure, p, _ geo.Vec3) bool {
		yaw := p.Yaw()
		return yaw < 10 || yaw > 20
	}
	rec := render.NewRecorder()
	_, err := newTestResolver(h, nil, rec).Resolve(geo.V(0, 0, 12), []Structure{a}, active)
	require.NoError(t, err)

	var lines, points []render.Command
	for _, c := range rec.Commands("Connections") {
		if c.Kind == render.KindLine {
			lines = append(lines, c)
		} else {
			points = append(points, c)
		}
	}
	require.Len(t, lines, 23)
	// Line 0 blue, line 1 skipped but still toggles, line 2 blue, line 3 green.
	assert.Equal(t, render.Blue, lines[0].Color)
	assert.Equal(t, render.Blue, lines[1].Color)
	assert.Equal(t, render.Green, lines[2].Color)
	assert.InDelta(t, 0.25, lines[0].Size, 1e-9)
	require.NotNil(t, lines[0].End)
	assert.InDelta(t, 12, lines[0].Start.Z, 1e-9)
	assert.InDelta(t, 31, lines[0].End.Z, 1e-9)

	// First line's dots: indices 3, 7, 11 are significant.
	for i, p := range points[:12] {
		if i == 3 || i == 7 || i == 11 {
			assert.Equal(t, render.Blue, p.Color, "dot %d", i)
			assert.InDelta(t, 0.75, p.Size, 1e-9, "dot %d", i)
		} else {
			assert.Equal(t, render.Red, p.Color, "dot %d", i)
			assert.InDelta(t, 0.25, p.Size, 1e-9, "dot %d", i)
		}
	}
}

func TestResolveFlipResetsPerStructure(t *testing.T) {
	active := structure("active", 0, 0)
	a, b := structure("a", 100, 0), structure("b", 200, 0)
	grids := map[geo.Vec3]Grid{
		a.pos: {line(geo.V(1, 0, 0))},
		b.pos: {line(geo.V(2, 0, 0))},
	}
	h := newFakeHost(active, a, b)
	rec := render.NewRecorder()
	_, err := newTestResolver(h, fixedGrids(grids), rec).Resolve(geo.Vec3{}, []Structure{a, b}, active)
	require.NoError(t, err)

	var colors []render.Color
	for _, c := range rec.Commands("Connections") {
		if c.Kind == render.KindLine {
			colors = append(colors, c.Color)
		}
	}
	assert.Equal(t, []render.Color{render.Blue, render.Blue}, colors)
}
