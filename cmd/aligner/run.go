package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/render"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/world"
)

var errInvalidProject = errors.New("project has validation errors")

type project struct {
	cfg   *config.Config
	scene *scene.Scene
}

// loadAndValidate loads config and scene and validates both.
func loadAndValidate(projectPath string) (*project, *validation.Report, error) {
	cfg, err := config.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	sc, err := scene.LoadProject(projectPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading scene: %w", err)
	}
	report := validation.ValidateConfig(cfg)
	report.Merge(scene.ValidateScene(sc, cfg))
	return &project{cfg: cfg, scene: sc}, report, nil
}

// loadValid is loadAndValidate for commands that cannot run on a broken project.
func loadValid(out io.Writer, projectPath string) (*project, error) {
	p, report, err := loadAndValidate(projectPath)
	if err != nil {
		return nil, err
	}
	if !report.Valid {
		printValidationReport(out, report)
		return nil, errInvalidProject
	}
	return p, nil
}

func runValidate(out io.Writer, projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}
	printValidationReport(out, report)
	if !report.Valid {
		return errInvalidProject
	}
	return nil
}

type structureGrid struct {
	Structure scene.Structure `json:"structure"`
	Grid      snap.Grid       `json:"grid"`
}

func runGrid(out io.Writer, projectPath, structureID string) error {
	p, err := loadValid(out, projectPath)
	if err != nil {
		return err
	}

	var grids []structureGrid
	for _, st := range p.scene.Structures {
		if structureID != "" && st.ID != structureID {
			continue
		}
		grid, err := snap.GenerateGrid(st.Position, st.Forward(), p.cfg.Grid)
		if err != nil {
			return fmt.Errorf("grid for %s: %w", st.ID, err)
		}
		grids = append(grids, structureGrid{Structure: st, Grid: grid})
	}
	if structureID != "" && len(grids) == 0 {
		return fmt.Errorf("%w: %q", world.ErrNotFound, structureID)
	}
	return writeJSON(out, grids)
}

type resolveOptions struct {
	X, Z float64
	Size int
	Kind string
}

type resolveOutput struct {
	Result   snap.Result      `json:"result"`
	Commands []render.Command `json:"commands"`
	Stats    snap.Stats       `json:"stats"`
	Error    string           `json:"error,omitempty"`
}

func runResolve(out io.Writer, projectPath string, opts resolveOptions) error {
	p, err := loadValid(out, projectPath)
	if err != nil {
		return err
	}

	w, err := world.FromScene(p.scene, p.cfg.World)
	if err != nil {
		return err
	}
	placement := scene.Placement{Kind: scene.KindModule}
	if p.scene.Placing != nil {
		placement = *p.scene.Placing
	}
	if opts.Kind != "" {
		placement.Kind = scene.Kind(opts.Kind)
	}
	if opts.Size >= 0 {
		placement.Size = opts.Size
	}
	w.StartPlacing(placement)

	rec := render.NewRecorder()
	overlay, err := snap.NewOverlay(*p.cfg, w, rec)
	if err != nil {
		return err
	}
	defer overlay.Close()
	overlay.OnModeChanged(true)
	overlay.OnModifierChanged(true)

	res, err := overlay.ResolveDetailed(geo.V(opts.X, p.cfg.World.FloorHeight, opts.Z))
	output := resolveOutput{
		Result:   res,
		Commands: rec.Commands(p.cfg.Overlay.Group),
		Stats:    overlay.Stats(),
	}
	if err != nil {
		output.Error = err.Error()
	}
	return writeJSON(out, output)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
