package snap

import (
	"fmt"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

// DefaultEpsilon is the cursor movement below which a query reuses the last result.
const DefaultEpsilon = 0.1

// Snapshot is the single remembered query.
type Snapshot struct {
	Location geo.Vec3
	ActiveID string
	Nearby   []Structure
	Result   Result
}

// QueryCache skips the whole scan while the cursor stays within epsilon of
// the last query. A hit leaves the drawn overlay untouched.
type QueryCache struct {
	epsilon    float64
	group      string
	search     float64
	registry   Registry
	resolver   *Resolver
	clearGroup func(group string)

	last   *Snapshot
	hits   int
	misses int
}

// NewQueryCache wraps resolver. search is the radius within which structures
// are scanned; clearGroup wipes the overlay group before a fresh resolution.
func NewQueryCache(epsilon, search float64, group string, registry Registry, resolver *Resolver, clearGroup func(string)) *QueryCache {
	if clearGroup == nil {
		clearGroup = func(string) {}
	}
	return &QueryCache{
		epsilon:    epsilon,
		group:      group,
		search:     search,
		registry:   registry,
		resolver:   resolver,
		clearGroup: clearGroup,
	}
}

// Query returns the snap result for location. The cache only hits for the
// same active structure.
func (q *QueryCache) Query(location geo.Vec3, active Structure) (Result, error) {
	if q.last != nil && active != nil && q.last.ActiveID == active.ID() &&
		location.Distance(q.last.Location) < q.epsilon {
		q.hits++
		return q.last.Result, nil
	}
	q.misses++

	q.clearGroup(q.group)
	if active == nil {
		q.last = nil
		return Result{Point: location}, fmt.Errorf("%w: no active structure", ErrMissingDependency)
	}

	activeID := active.ID()
	nearby := q.registry.Structures(func(s Structure) bool {
		return s.ID() != activeID && s.Position().Distance(location) < q.search
	})

	res, err := q.resolver.ResolveDetailed(location, nearby, active)
	if err != nil {
		q.clearGroup(q.group)
		q.last = nil
		return Result{Point: location}, err
	}
	q.last = &Snapshot{Location: location, ActiveID: activeID, Nearby: nearby, Result: res}
	return res, nil
}

// Last returns the remembered query, if any.
func (q *QueryCache) Last() (Snapshot, bool) {
	if q.last == nil {
		return Snapshot{}, false
	}
	return *q.last, true
}

// Reset forgets the remembered query.
func (q *QueryCache) Reset() {
	q.last = nil
}

// Hits returns the number of queries answered from the cache.
func (q *QueryCache) Hits() int { return q.hits }

// Misses returns the number of queries that ran a full scan.
func (q *QueryCache) Misses() int { return q.misses }
