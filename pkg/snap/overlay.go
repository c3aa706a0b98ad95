package snap

import (
	"fmt"
	"log"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
)

// Stats counts cache activity over a session.
type Stats struct {
	QueryHits      int `json:"query_hits"`
	QueryMisses    int `json:"query_misses"`
	GridsCached    int `json:"grids_cached"`
	GridsGenerated int `json:"grids_generated"`
}

// Overlay is one placement-assist session. The host feeds it mode changes and
// per-frame cursor locations; it answers with snapped positions and keeps the
// overlay group drawn.
type Overlay struct {
	cfg      config.Config
	host     Host
	renderer render.Renderer
	logger   *log.Logger
	generate GeneratorFunc

	geometry *GeometryCache
	resolver *Resolver
	queries  *QueryCache

	placing  bool
	modifier bool
	closed   bool
	degraded bool
}

// Option configures an Overlay.
type Option func(*Overlay)

// WithLogger sets the logger used for degraded frames.
func WithLogger(l *log.Logger) Option {
	return func(o *Overlay) { o.logger = l }
}

// WithGenerator replaces the grid generator.
func WithGenerator(g GeneratorFunc) Option {
	return func(o *Overlay) { o.generate = g }
}

// NewOverlay validates cfg and creates a session. The overlay starts outside
// placement mode. A nil renderer draws nothing.
func NewOverlay(cfg config.Config, host Host, r render.Renderer, opts ...Option) (*Overlay, error) {
	if err := validation.ValidateConfig(&cfg).Err(); err != nil {
		return nil, err
	}
	if host == nil {
		return nil, fmt.Errorf("%w: nil host", ErrMissingDependency)
	}
	if r == nil {
		r = render.Discard
	}

	o := &Overlay{cfg: cfg, host: host, renderer: r, logger: log.Default()}
	for _, opt := range opts {
		opt(o)
	}

	o.geometry = NewGeometryCache(cfg.Grid, cfg.Overlay.Staleness, o.generate)
	o.resolver = NewResolver(cfg, o.geometry, NewFilter(host, host), host, r)
	o.queries = NewQueryCache(cfg.Overlay.QueryEpsilon, cfg.Grid.SearchRadius(),
		cfg.Overlay.Group, host, o.resolver, r.ClearGroup)
	return o, nil
}

// OnModeChanged tells the overlay whether the player is placing a structure.
// Leaving placement mode clears the overlay and stops resolution.
func (o *Overlay) OnModeChanged(isPlacing bool) {
	if o.closed {
		return
	}
	if !isPlacing {
		o.Reset()
	}
	o.placing = isPlacing
}

// OnModifierChanged reports the align modifier key state. Only matters when
// the config requires the modifier; releasing it clears the overlay.
func (o *Overlay) OnModifierChanged(held bool) {
	if o.closed {
		return
	}
	o.modifier = held
	if !held && o.cfg.Overlay.RequireModifier {
		o.Reset()
	}
}

// OnFrameTick is the per-frame trigger. It returns the position the
// structure being placed should move to.
func (o *Overlay) OnFrameTick(location geo.Vec3) geo.Vec3 {
	return o.ResolveSnapPoint(location)
}

// ResolveSnapPoint returns the nearest legal candidate to query. Outside an
// active session, and on any failure, query comes back unchanged.
func (o *Overlay) ResolveSnapPoint(query geo.Vec3) geo.Vec3 {
	res, err := o.ResolveDetailed(query)
	if err != nil {
		return query
	}
	return res.Point
}

// ResolveDetailed is ResolveSnapPoint with the full result and the error
// that caused a degraded frame.
func (o *Overlay) ResolveDetailed(query geo.Vec3) (Result, error) {
	if !o.Active() {
		return Result{Point: query}, nil
	}

	active, ok := o.host.ActiveStructure()
	if !ok || active == nil {
		return o.degrade(query, fmt.Errorf("%w: placing without an active structure", ErrMissingDependency))
	}
	res, err := o.queries.Query(query, active)
	if err != nil {
		return o.degrade(query, err)
	}
	if o.degraded {
		o.logger.Printf("snap overlay recovered")
		o.degraded = false
	}
	return res, nil
}

func (o *Overlay) degrade(query geo.Vec3, err error) (Result, error) {
	o.renderer.ClearGroup(o.cfg.Overlay.Group)
	o.queries.Reset()
	if !o.degraded {
		o.logger.Printf("snap overlay degraded: %v", err)
		o.degraded = true
	}
	return Result{Point: query}, err
}

// Active reports whether frame ticks currently resolve.
func (o *Overlay) Active() bool {
	if o.closed || !o.placing {
		return false
	}
	return o.modifier || !o.cfg.Overlay.RequireModifier
}

// Placing reports the last mode seen.
func (o *Overlay) Placing() bool {
	return o.placing
}

// Reset clears the overlay group and forgets the last query. Cached grids
// are kept.
func (o *Overlay) Reset() {
	o.renderer.ClearGroup(o.cfg.Overlay.Group)
	o.queries.Reset()
}

// InvalidateStructure drops the cached grid of one structure, for hosts that
// know it moved.
func (o *Overlay) InvalidateStructure(id string) {
	o.geometry.Invalidate(id)
	o.queries.Reset()
}

// Close ends the session. Later calls are no-ops.
func (o *Overlay) Close() {
	if o.closed {
		return
	}
	o.Reset()
	o.geometry.Reset()
	o.placing = false
	o.closed = true
}

// Stats returns cache counters.
func (o *Overlay) Stats() Stats {
	return Stats{
		QueryHits:      o.queries.Hits(),
		QueryMisses:    o.queries.Misses(),
		GridsCached:    o.geometry.Len(),
		GridsGenerated: o.geometry.Generated(),
	}
}
