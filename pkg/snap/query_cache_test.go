package snap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
)

type queryFixture struct {
	host    *fakeHost
	counter *render.Counter
	gen     *countingGenerator
	cache   *QueryCache
}

func newQueryFixture(active Structure, others ...Structure) *queryFixture {
	cfg := testConfig()
	f := &queryFixture{
		host:    newFakeHost(active, others...),
		counter: &render.Counter{},
		gen:     &countingGenerator{},
	}
	geometry := NewGeometryCache(cfg.Grid, config.StaleKeep, f.gen.generate)
	resolver := NewResolver(cfg, geometry, NewFilter(f.host, f.host), f.host, f.counter)
	f.cache = NewQueryCache(DefaultEpsilon, cfg.Grid.SearchRadius(), cfg.Overlay.Group,
		f.host, resolver, f.counter.ClearGroup)
	return f
}

func TestQueryCacheHitWithinEpsilon(t *testing.T) {
	active := structure("active", 0, 0)
	f := newQueryFixture(active, structure("hub", 20, 0))

	first, err := f.cache.Query(geo.V(20, 0, 13), active)
	require.NoError(t, err)
	require.True(t, first.Snapped)
	calls := f.counter.Calls()
	require.Equal(t, 1, f.counter.Clears)

	second, err := f.cache.Query(geo.V(20.05, 0, 13.05), active)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, f.counter.Calls(), "a hit draws and clears nothing")
	assert.Equal(t, 1, f.host.registryCalls)
	assert.Equal(t, 1, f.gen.calls)
	assert.Equal(t, 1, f.cache.Hits())
	assert.Equal(t, 1, f.cache.Misses())
}

func TestQueryCacheMissOnMove(t *testing.T) {
	active := structure("active", 0, 0)
	f := newQueryFixture(active, structure("hub", 20, 0))

	_, err := f.cache.Query(geo.V(20, 0, 13), active)
	require.NoError(t, err)
	_, err = f.cache.Query(geo.V(20.1, 0, 13), active)
	require.NoError(t, err)

	assert.Equal(t, 0, f.cache.Hits(), "moving exactly epsilon is a miss")
	assert.Equal(t, 2, f.cache.Misses())
	assert.Equal(t, 2, f.counter.Clears)
	assert.Equal(t, 2, f.host.registryCalls)
	assert.Equal(t, 1, f.gen.calls, "grids survive query misses")
}

func TestQueryCacheMissOnDifferentActive(t *testing.T) {
	a, b := structure("a", 0, 0), structure("b", 0, 0)
	f := newQueryFixture(a, structure("hub", 20, 0))

	_, err := f.cache.Query(geo.V(20, 0, 13), a)
	require.NoError(t, err)
	_, err = f.cache.Query(geo.V(20, 0, 13), b)
	require.NoError(t, err)

	assert.Equal(t, 0, f.cache.Hits())
	last, ok := f.cache.Last()
	require.True(t, ok)
	assert.Equal(t, "b", last.ActiveID)
}

func TestQueryCacheReset(t *testing.T) {
	active := structure("active", 0, 0)
	f := newQueryFixture(active, structure("hub", 20, 0))

	_, err := f.cache.Query(geo.V(20, 0, 13), active)
	require.NoError(t, err)
	f.cache.Reset()
	_, ok := f.cache.Last()
	assert.False(t, ok)

	_, err = f.cache.Query(geo.V(20, 0, 13), active)
	require.NoError(t, err)
	assert.Equal(t, 2, f.cache.Misses())
}

func TestQueryCacheNearbyGate(t *testing.T) {
	active := structure("active", 0, 0)
	near := structure("near", 30, 0)
	edge := structure("edge", 62, 0)
	far := structure("far", 100, 0)
	f := newQueryFixture(active, near, edge, far)

	_, err := f.cache.Query(geo.Vec3{}, active)
	require.NoError(t, err)

	last, ok := f.cache.Last()
	require.True(t, ok)
	var ids []string
	for _, s := range last.Nearby {
		ids = append(ids, s.ID())
	}
	assert.Equal(t, []string{"near"}, ids, "active excluded, radius strictly below 2x max distance")
}

func TestQueryCacheNoActive(t *testing.T) {
	f := newQueryFixture(nil, structure("hub", 20, 0))

	res, err := f.cache.Query(geo.V(1, 0, 1), nil)
	assert.ErrorIs(t, err, ErrMissingDependency)
	assert.Equal(t, geo.V(1, 0, 1), res.Point)
	_, ok := f.cache.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, f.host.registryCalls)
}

func TestQueryCacheErrorClearsPartialOverlay(t *testing.T) {
	cfg := testConfig()
	active := structure("active", 0, 0)
	good, bad := structure("good", 20, 0), structure("bad", -20, 0)
	host := newFakeHost(active, good, bad)
	rec := render.NewRecorder()

	gen := func(anchor, forward geo.Vec3, g config.Grid) (Grid, error) {
		if anchor == bad.pos {
			return nil, errors.New("no grid")
		}
		return GenerateGrid(anchor, forward, g)
	}
	geometry := NewGeometryCache(cfg.Grid, config.StaleKeep, gen)
	resolver := NewResolver(cfg, geometry, NewFilter(host, host), host, rec)
	cache := NewQueryCache(DefaultEpsilon, cfg.Grid.SearchRadius(), cfg.Overlay.Group,
		host, resolver, rec.ClearGroup)

	res, err := cache.Query(geo.V(0, 0, 5), active)
	require.Error(t, err)
	assert.False(t, res.Snapped)
	assert.Empty(t, rec.Commands(cfg.Overlay.Group), "dots of the good structure are cleared")
	_, ok := cache.Last()
	assert.False(t, ok)
}
