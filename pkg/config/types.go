package config

// Config is the complete tuning for one overlay session.
type Config struct {
	Grid    Grid    `yaml:"grid" json:"grid"`
	Overlay Overlay `yaml:"overlay" json:"overlay"`
	World   World   `yaml:"world" json:"world"`
}

// Grid controls the radial candidate grid generated around each structure.
type Grid struct {
	NumRotationalSegments int     `yaml:"rotational_segments" json:"rotational_segments"`
	NumSteps              int     `yaml:"steps" json:"steps"`
	NumSigDots            int     `yaml:"significant_dots" json:"significant_dots"` // should divide NumSteps; rounds up otherwise
	MinDistToCheck        float64 `yaml:"min_distance" json:"min_distance"`
	MaxDistToCheck        float64 `yaml:"max_distance" json:"max_distance"`
}

// StepSize returns the radial spacing between consecutive points of a line.
func (g Grid) StepSize() float64 {
	if g.NumSteps < 2 {
		return 0
	}
	return (g.MaxDistToCheck - g.MinDistToCheck) / float64(g.NumSteps-1)
}

// RotationDegrees returns the angle between consecutive lines.
func (g Grid) RotationDegrees() float64 {
	if g.NumRotationalSegments <= 0 {
		return 0
	}
	return 360 / float64(g.NumRotationalSegments)
}

// SigSplit returns the index spacing of significant points. Never less than 1.
func (g Grid) SigSplit() int {
	if g.NumSigDots <= 0 {
		return 1
	}
	if split := g.NumSteps / g.NumSigDots; split > 1 {
		return split
	}
	return 1
}

// SearchRadius is the distance within which a structure is scanned for a query.
func (g Grid) SearchRadius() float64 {
	return g.MaxDistToCheck * 2
}

// Staleness selects how cached grids react to structures that moved.
type Staleness string

const (
	// StaleKeep never regenerates a cached grid.
	StaleKeep Staleness = "keep"
	// StaleRecompute regenerates when the structure's pose changed.
	StaleRecompute Staleness = "recompute"
)

// Overlay controls rendering and query memoization.
type Overlay struct {
	Group            string    `yaml:"group" json:"group"`
	HoverHeight      float64   `yaml:"hover_height" json:"hover_height"`
	SignificantSize  float64   `yaml:"significant_size" json:"significant_size"`
	MinorSize        float64   `yaml:"minor_size" json:"minor_size"`
	LineWidth        float64   `yaml:"line_width" json:"line_width"`
	SignificantColor string    `yaml:"significant_color" json:"significant_color"`
	MinorColor       string    `yaml:"minor_color" json:"minor_color"`
	LineColorA       string    `yaml:"line_color_a" json:"line_color_a"`
	LineColorB       string    `yaml:"line_color_b" json:"line_color_b"`
	QueryEpsilon     float64   `yaml:"query_epsilon" json:"query_epsilon"`
	RequireModifier  bool      `yaml:"require_modifier" json:"require_modifier"`
	Staleness        Staleness `yaml:"staleness" json:"staleness"`
}

// World tunes the in-memory host used by the CLI and dev server.
type World struct {
	FloorHeight  float64   `yaml:"floor_height" json:"floor_height"`
	RayLength    float64   `yaml:"ray_length" json:"ray_length"`
	LayerMask    int       `yaml:"layer_mask" json:"layer_mask"`
	LinkMin      float64   `yaml:"link_min" json:"link_min"`
	LinkMax      float64   `yaml:"link_max" json:"link_max"`
	SizeRadii    []float64 `yaml:"size_radii" json:"size_radii"` // footprint radius per size index
	LinkableKind []string  `yaml:"linkable_kinds" json:"linkable_kinds"`
}

// SizeRadius returns the footprint radius for a size index, clamped to the table.
func (w World) SizeRadius(index int) float64 {
	if len(w.SizeRadii) == 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= len(w.SizeRadii) {
		index = len(w.SizeRadii) - 1
	}
	return w.SizeRadii[index]
}
