package snap

import (
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

type geometryEntry struct {
	grid     Grid
	position geo.Vec3
	forward  geo.Vec3
}

// GeometryCache memoizes grids by structure ID.
type GeometryCache struct {
	cfg       config.Grid
	policy    config.Staleness
	generate  GeneratorFunc
	entries   map[string]geometryEntry
	generated int
}

// NewGeometryCache creates an empty cache. A nil generator means GenerateGrid.
func NewGeometryCache(cfg config.Grid, policy config.Staleness, generate GeneratorFunc) *GeometryCache {
	if generate == nil {
		generate = GenerateGrid
	}
	if policy == "" {
		policy = config.StaleKeep
	}
	return &GeometryCache{
		cfg:      cfg,
		policy:   policy,
		generate: generate,
		entries:  make(map[string]geometryEntry),
	}
}

// GetOrCompute returns the cached grid for s, generating it on first use.
// Under StaleRecompute a structure whose pose changed is regenerated; under
// StaleKeep the first grid is served for as long as the entry lives.
// Failed generations are not cached.
func (c *GeometryCache) GetOrCompute(s Structure) (Grid, error) {
	pos, fwd := s.Position(), s.Forward()
	if e, ok := c.entries[s.ID()]; ok {
		if c.policy != config.StaleRecompute || (e.position == pos && e.forward == fwd) {
			return e.grid, nil
		}
	}

	grid, err := c.generate(pos, fwd, c.cfg)
	if err != nil {
		return nil, err
	}
	c.generated++
	c.entries[s.ID()] = geometryEntry{grid: grid, position: pos, forward: fwd}
	return grid, nil
}

// Invalidate drops the entry for one structure.
func (c *GeometryCache) Invalidate(id string) {
	delete(c.entries, id)
}

// Reset drops every entry.
func (c *GeometryCache) Reset() {
	clear(c.entries)
}

// Len returns the number of cached grids.
func (c *GeometryCache) Len() int {
	return len(c.entries)
}

// Generated returns how many times the generator ran.
func (c *GeometryCache) Generated() int {
	return c.generated
}
