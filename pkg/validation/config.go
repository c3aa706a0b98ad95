package validation

import (
	"fmt"
	"math"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
)

// ValidateConfig checks a config before any grid is generated.
func ValidateConfig(c *config.Config) *Report {
	r := NewReport()

	validateGrid(c.Grid, r)
	validateOverlay(c, r)
	validateWorld(c.World, r)

	return r
}

func validateGrid(g config.Grid, r *Report) {
	if g.NumRotationalSegments <= 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "rotational_segments must be greater than 0",
			Path:        "grid.rotational_segments",
			ActualValue: g.NumRotationalSegments,
			Expected:    "> 0",
		})
	}
	if g.NumSteps < 2 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "steps must be at least 2",
			Path:        "grid.steps",
			ActualValue: g.NumSteps,
			Expected:    ">= 2",
		})
	}
	finite := true
	for _, d := range []struct {
		path string
		v    float64
	}{
		{"grid.min_distance", g.MinDistToCheck},
		{"grid.max_distance", g.MaxDistToCheck},
	} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			finite = false
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     "distance must be a finite number",
				Path:        d.path,
				ActualValue: fmt.Sprint(d.v),
				Expected:    "finite",
			})
		}
	}
	if g.MinDistToCheck < 0 && !math.IsInf(g.MinDistToCheck, -1) {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "min_distance must be non-negative",
			Path:        "grid.min_distance",
			ActualValue: g.MinDistToCheck,
			Expected:    ">= 0",
		})
	}
	if finite && !(g.MaxDistToCheck > g.MinDistToCheck) {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("max_distance (%.2f) must be greater than min_distance (%.2f)", g.MaxDistToCheck, g.MinDistToCheck),
			Path:        "grid.max_distance",
			ActualValue: g.MaxDistToCheck,
			Expected:    fmt.Sprintf("> %.2f", g.MinDistToCheck),
		})
	}

	if g.NumSigDots <= 0 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "significant_dots is not positive; every point will be significant",
			Path:        "grid.significant_dots",
			ActualValue: g.NumSigDots,
		})
	} else if g.NumSteps >= 2 && g.NumSteps%g.NumSigDots != 0 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("significant_dots (%d) does not divide steps (%d); spacing rounds to every %d points", g.NumSigDots, g.NumSteps, g.SigSplit()),
			Path:        "grid.significant_dots",
			ActualValue: g.NumSigDots,
			Suggestions: []string{"Pick a divisor of grid.steps"},
		})
	}
}

func validateOverlay(c *config.Config, r *Report) {
	o := c.Overlay
	if o.Group == "" {
		r.AddError(Result{
			Level:    LevelConfig,
			Message:  "overlay group name must not be empty",
			Path:     "overlay.group",
			Expected: "non-empty string",
		})
	}
	if o.QueryEpsilon < 0 {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     "query_epsilon must be non-negative",
			Path:        "overlay.query_epsilon",
			ActualValue: o.QueryEpsilon,
			Expected:    ">= 0",
		})
	} else if step := c.Grid.StepSize(); step > 0 && o.QueryEpsilon >= step {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("query_epsilon (%.2f) is not smaller than the grid step (%.2f); the snap point will lag the cursor by whole steps", o.QueryEpsilon, step),
			Path:        "overlay.query_epsilon",
			ActualValue: o.QueryEpsilon,
		})
	}
	switch o.Staleness {
	case config.StaleKeep, config.StaleRecompute, "":
	default:
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("unknown staleness policy %q", o.Staleness),
			Path:        "overlay.staleness",
			ActualValue: string(o.Staleness),
			Expected:    "keep or recompute",
		})
	}
	if o.Staleness == config.StaleKeep || o.Staleness == "" {
		r.AddInfo(Result{
			Level:   LevelConfig,
			Message: "cached grids are never regenerated; structures moved after their first scan keep their old grid",
			Path:    "overlay.staleness",
		})
	}
	for path, name := range map[string]string{
		"overlay.significant_color": o.SignificantColor,
		"overlay.minor_color":       o.MinorColor,
		"overlay.line_color_a":      o.LineColorA,
		"overlay.line_color_b":      o.LineColorB,
	} {
		if name == "" {
			r.AddWarning(Result{
				Level:   LevelConfig,
				Message: "color is empty; white is used",
				Path:    path,
			})
		}
	}
}

func validateWorld(w config.World, r *Report) {
	for i, radius := range w.SizeRadii {
		if radius <= 0 {
			r.AddError(Result{
				Level:       LevelConfig,
				Message:     fmt.Sprintf("size_radii[%d] must be greater than 0", i),
				Path:        fmt.Sprintf("world.size_radii[%d]", i),
				ActualValue: radius,
				Expected:    "> 0",
			})
		}
	}
	if w.LinkMax < w.LinkMin {
		r.AddError(Result{
			Level:       LevelConfig,
			Message:     fmt.Sprintf("link_max (%.2f) must not be below link_min (%.2f)", w.LinkMax, w.LinkMin),
			Path:        "world.link_max",
			ActualValue: w.LinkMax,
		})
	}
	if w.RayLength <= 0 {
		r.AddWarning(Result{
			Level:       LevelConfig,
			Message:     "ray_length is not positive; cursor rays never reach the floor",
			Path:        "world.ray_length",
			ActualValue: w.RayLength,
		})
	}
}
