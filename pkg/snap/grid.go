package snap

import (
	"fmt"
	"math"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
)

// Point is a candidate position together with its index in its line.
type Point struct {
	Pos   geo.Vec3 `json:"pos"`
	Index int      `json:"index"`
}

// Line is the run of candidate points along one direction from an anchor,
// nearest first.
type Line struct {
	Direction geo.Vec3 `json:"direction"`
	Points    []Point  `json:"points"`
}

// First returns the point nearest the anchor.
func (l Line) First() Point { return l.Points[0] }

// Last returns the point farthest from the anchor.
func (l Line) Last() Point { return l.Points[len(l.Points)-1] }

// Grid holds one line per rotational segment, in rotation order.
type Grid []Line

// Size returns the total number of candidate points.
func (g Grid) Size() int {
	n := 0
	for _, l := range g {
		n += len(l.Points)
	}
	return n
}

// GeneratorFunc builds the grid for an anchor pose.
type GeneratorFunc func(anchor, forward geo.Vec3, cfg config.Grid) (Grid, error)

// GenerateGrid fans NumRotationalSegments lines out from anchor, starting at
// forward and turning about the vertical axis. Each line holds NumSteps points
// evenly spaced from MinDistToCheck to MaxDistToCheck.
//
// Only the horizontal part of forward is used; a forward with none falls back
// to geo.Forward.
func GenerateGrid(anchor, forward geo.Vec3, cfg config.Grid) (Grid, error) {
	if err := checkGrid(cfg); err != nil {
		return nil, err
	}

	step := cfg.StepSize()
	rotation := geo.NewYawRotation(cfg.RotationDegrees())
	direction := forward.Horizontal()
	if direction == (geo.Vec3{}) {
		direction = geo.Forward
	}

	grid := make(Grid, 0, cfg.NumRotationalSegments)
	for rot := 0; rot < cfg.NumRotationalSegments; rot++ {
		line := Line{Direction: direction, Points: make([]Point, cfg.NumSteps)}
		for i := range line.Points {
			radius := cfg.MinDistToCheck + step*float64(i)
			line.Points[i] = Point{Pos: anchor.Add(direction.Scale(radius)), Index: i}
		}
		grid = append(grid, line)
		direction = rotation.Rotate(direction)
	}
	return grid, nil
}

func checkGrid(cfg config.Grid) error {
	switch {
	case cfg.NumRotationalSegments <= 0:
		return fmt.Errorf("%w: rotational segments must be > 0, got %d", ErrInvalidConfiguration, cfg.NumRotationalSegments)
	case cfg.NumSteps < 2:
		return fmt.Errorf("%w: steps must be >= 2, got %d", ErrInvalidConfiguration, cfg.NumSteps)
	case !finite(cfg.MinDistToCheck) || !finite(cfg.MaxDistToCheck):
		return fmt.Errorf("%w: distances must be finite, got %v..%v", ErrInvalidConfiguration, cfg.MinDistToCheck, cfg.MaxDistToCheck)
	case cfg.MinDistToCheck < 0:
		return fmt.Errorf("%w: min distance must be >= 0, got %.2f", ErrInvalidConfiguration, cfg.MinDistToCheck)
	case !(cfg.MaxDistToCheck > cfg.MinDistToCheck):
		return fmt.Errorf("%w: max distance %.2f must exceed min distance %.2f", ErrInvalidConfiguration, cfg.MaxDistToCheck, cfg.MinDistToCheck)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Significant reports whether the point at index is one of the regularly
// spaced checkpoints drawn with extra weight.
func Significant(index int, cfg config.Grid) bool {
	split := cfg.SigSplit()
	return index%split == split-1
}
