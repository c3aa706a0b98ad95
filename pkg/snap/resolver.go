package snap

import (
	"fmt"
	"math"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
)

// Style is the resolved look of the overlay.
type Style struct {
	Group            string
	HoverHeight      float64
	SignificantColor render.Color
	MinorColor       render.Color
	LineColorA       render.Color
	LineColorB       render.Color
	SignificantSize  float64
	MinorSize        float64
	LineWidth        float64
}

// StyleFromConfig parses the overlay colors. Unknown colors render white.
func StyleFromConfig(o config.Overlay) Style {
	return Style{
		Group:            o.Group,
		HoverHeight:      o.HoverHeight,
		SignificantColor: render.ColorOr(o.SignificantColor, render.White),
		MinorColor:       render.ColorOr(o.MinorColor, render.White),
		LineColorA:       render.ColorOr(o.LineColorA, render.White),
		LineColorB:       render.ColorOr(o.LineColorB, render.White),
		SignificantSize:  o.SignificantSize,
		MinorSize:        o.MinorSize,
		LineWidth:        o.LineWidth,
	}
}

// Result describes one resolution.
type Result struct {
	Point       geo.Vec3 `json:"point"`
	Snapped     bool     `json:"snapped"`
	StructureID string   `json:"structure_id,omitempty"`
	Line        int      `json:"line"`
	Index       int      `json:"index"`
	Distance    float64  `json:"distance"`
	Dots        int      `json:"dots"`
	Lines       int      `json:"lines"`
}

// Resolver scans candidate grids for the legal point nearest a query and
// draws every legal point it sees.
type Resolver struct {
	grid     config.Grid
	style    Style
	geometry *GeometryCache
	filter   *Filter
	env      Environment
	renderer render.Renderer
}

// NewResolver wires a resolver. A nil renderer draws nothing.
func NewResolver(cfg config.Config, geometry *GeometryCache, filter *Filter, env Environment, r render.Renderer) *Resolver {
	if r == nil {
		r = render.Discard
	}
	return &Resolver{
		grid:     cfg.Grid,
		style:    StyleFromConfig(cfg.Overlay),
		geometry: geometry,
		filter:   filter,
		env:      env,
		renderer: r,
	}
}

// Resolve returns the legal candidate nearest query, or query itself when
// nothing is legal.
func (r *Resolver) Resolve(query geo.Vec3, nearby []Structure, active Structure) (geo.Vec3, error) {
	res, err := r.ResolveDetailed(query, nearby, active)
	return res.Point, err
}

// ResolveDetailed is Resolve with bookkeeping about the winning point and
// the amount drawn. Ties keep the first point found in structure, line,
// point order.
func (r *Resolver) ResolveDetailed(query geo.Vec3, nearby []Structure, active Structure) (Result, error) {
	res := Result{Point: query}
	if active == nil {
		return res, fmt.Errorf("%w: no active structure", ErrMissingDependency)
	}

	floor := r.env.FloorHeight()
	size := r.env.ActiveSizeIndex()
	hover := geo.Vec3{Y: r.style.HoverHeight}
	closest := math.Inf(1)

	for _, s := range nearby {
		if s.ID() == active.ID() {
			continue
		}
		grid, err := r.geometry.GetOrCompute(s)
		if err != nil {
			return Result{Point: query}, fmt.Errorf("grid for structure %s: %w", s.ID(), err)
		}

		flip := true
		for li, line := range grid {
			drawn := false
			for _, p := range line.Points {
				onFloor := p.Pos.WithY(floor)
				if !r.filter.accepts(onFloor, active, s, size) {
					continue
				}
				drawn = true
				r.drawDot(onFloor.Add(hover), Significant(p.Index, r.grid))
				res.Dots++

				if d := onFloor.Distance(query); d < closest {
					closest = d
					res.Point = onFloor
					res.Snapped = true
					res.StructureID = s.ID()
					res.Line = li
					res.Index = p.Index
					res.Distance = d
				}
			}

			if drawn {
				c := r.style.LineColorB
				if flip {
					c = r.style.LineColorA
				}
				start := line.First().Pos.WithY(floor).Add(hover)
				end := line.Last().Pos.WithY(floor).Add(hover)
				r.renderer.DrawLine(r.style.Group, start, end, c, r.style.LineWidth)
				res.Lines++
			}
			flip = !flip
		}
	}
	return res, nil
}

func (r *Resolver) drawDot(pos geo.Vec3, significant bool) {
	if significant {
		r.renderer.DrawPoint(r.style.Group, pos, r.style.SignificantColor, r.style.SignificantSize)
		return
	}
	r.renderer.DrawPoint(r.style.Group, pos, r.style.MinorColor, r.style.MinorSize)
}
