package scene

import (
	"fmt"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/validation"
)

// ValidateScene checks a scene against the world settings in cfg.
// Broken identity is an error; layouts the game would not allow are warnings.
//
// Parse gives every structure without an ID a generated one, so the empty-ID
// check only fires for scenes assembled in code.
func ValidateScene(s *Scene, cfg *config.Config) *validation.Report {
	r := validation.NewReport()

	if s == nil {
		r.AddError(validation.Result{
			Level:   validation.LevelScene,
			Message: "scene is nil",
		})
		return r
	}

	validateIDs(s, r)
	validateKinds(s, r)
	validateSizes(s, cfg.World, r)
	validateArea(s, cfg.World, r)
	validateOverlaps(s, cfg.World, r)
	validatePlacing(s, cfg.World, r)

	return r
}

func validateIDs(s *Scene, r *validation.Report) {
	seen := make(map[string]int, len(s.Structures))

	for i, st := range s.Structures {
		if st.ID == "" {
			r.AddError(validation.Result{
				Level:    validation.LevelScene,
				Message:  fmt.Sprintf("structure at index %d has empty ID", i),
				Path:     fmt.Sprintf("structures[%d].id", i),
				Expected: "non-empty string",
			})
			continue
		}
		if prev, exists := seen[st.ID]; exists {
			r.AddError(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("duplicate structure ID %q at indices %d and %d", st.ID, prev, i),
				Path:        fmt.Sprintf("structures[%d].id", i),
				ActualValue: st.ID,
			})
		}
		seen[st.ID] = i
	}
}

func validateKinds(s *Scene, r *validation.Report) {
	for i, st := range s.Structures {
		switch {
		case st.Kind == "":
			r.AddError(validation.Result{
				Level:   validation.LevelScene,
				Message: fmt.Sprintf("structure %q has no kind", st.ID),
				Path:    fmt.Sprintf("structures[%d].kind", i),
			})
		case !KnownKind(st.Kind):
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("structure %q has unknown kind %q", st.ID, st.Kind),
				Path:        fmt.Sprintf("structures[%d].kind", i),
				ActualValue: string(st.Kind),
				Suggestions: kindNames(),
			})
		}
	}
}

func validateSizes(s *Scene, w config.World, r *validation.Report) {
	for i, st := range s.Structures {
		if st.Size < 0 || st.Size >= len(w.SizeRadii) {
			r.AddWarning(validation.Result{
				Level:       validation.LevelScene,
				Message:     fmt.Sprintf("structure %q size %d is outside the size table, clamped to %.1f radius", st.ID, st.Size, w.SizeRadius(st.Size)),
				Path:        fmt.Sprintf("structures[%d].size", i),
				ActualValue: st.Size,
				Expected:    fmt.Sprintf("0..%d", len(w.SizeRadii)-1),
			})
		}
	}
}

// minArea is the smallest buildable area accepted, in square units.
const minArea = 1e-6

func validateArea(s *Scene, w config.World, r *validation.Report) {
	if len(s.Area.Vertices) == 0 {
		return
	}
	if s.Area.IsEmpty() {
		r.AddError(validation.Result{
			Level:       validation.LevelScene,
			Message:     "buildable area needs at least 3 vertices",
			Path:        "area.vertices",
			ActualValue: len(s.Area.Vertices),
		})
		return
	}
	if s.Area.Area() < minArea {
		r.AddError(validation.Result{
			Level:       validation.LevelScene,
			Message:     "buildable area has no extent; vertices are collinear or repeated",
			Path:        "area.vertices",
			ActualValue: s.Area.Area(),
			Expected:    fmt.Sprintf(">= %g", minArea),
		})
		return
	}

	for i, st := range s.Structures {
		if !s.Area.ContainsCircle(st.Footprint(w)) {
			r.AddWarning(validation.Result{
				Level:   validation.LevelScene,
				Message: fmt.Sprintf("structure %q footprint leaves the buildable area", st.ID),
				Path:    fmt.Sprintf("structures[%d].position", i),
			})
		}
	}
}

func validateOverlaps(s *Scene, w config.World, r *validation.Report) {
	for i := range s.Structures {
		a := s.Structures[i].Footprint(w)
		for j := i + 1; j < len(s.Structures); j++ {
			if a.Overlaps(s.Structures[j].Footprint(w)) {
				r.AddWarning(validation.Result{
					Level:   validation.LevelScene,
					Message: fmt.Sprintf("structures %q and %q overlap", s.Structures[i].ID, s.Structures[j].ID),
					Path:    fmt.Sprintf("structures[%d]", j),
				})
			}
		}
	}
}

func validatePlacing(s *Scene, w config.World, r *validation.Report) {
	if s.Placing == nil {
		r.AddInfo(validation.Result{
			Level:   validation.LevelScene,
			Message: "no structure being placed; snapping needs one",
			Path:    "placing",
		})
		return
	}
	if s.Placing.Size < 0 || s.Placing.Size >= len(w.SizeRadii) {
		r.AddWarning(validation.Result{
			Level:       validation.LevelScene,
			Message:     fmt.Sprintf("placing size %d is outside the size table", s.Placing.Size),
			Path:        "placing.size",
			ActualValue: s.Placing.Size,
		})
	}
	if s.Placing.Kind != "" && !KnownKind(s.Placing.Kind) {
		r.AddWarning(validation.Result{
			Level:       validation.LevelScene,
			Message:     fmt.Sprintf("placing unknown kind %q", s.Placing.Kind),
			Path:        "placing.kind",
			ActualValue: string(s.Placing.Kind),
			Suggestions: kindNames(),
		})
	}
}

func kindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return names
}
