// Package world is an in-memory stand-in for the game: it holds the placed
// structures of a scene, answers the link and placement questions the snap
// overlay asks, and tracks the structure being placed.
package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/config"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
)

var (
	// ErrDuplicateID is returned when a structure ID is already registered.
	ErrDuplicateID = errors.New("duplicate structure ID")
	// ErrNotFound is returned when no structure has the requested ID.
	ErrNotFound = errors.New("structure not found")
)

// Structure is a placed structure as seen by the snap package.
type Structure struct {
	data scene.Structure
}

// ID returns the structure's unique ID.
func (s *Structure) ID() string { return s.data.ID }

// Position returns the anchor position.
func (s *Structure) Position() geo.Vec3 { return s.data.Position }

// Forward returns the unit facing direction derived from the yaw.
func (s *Structure) Forward() geo.Vec3 { return s.data.Forward() }

// Kind returns the structure kind, used by the link rules.
func (s *Structure) Kind() scene.Kind { return s.data.Kind }

// Size returns the index into the size radius table.
func (s *Structure) Size() int { return s.data.Size }

// Scene returns a copy of the underlying scene entry.
func (s *Structure) Scene() scene.Structure { return s.data }

// World implements snap.Host over an in-memory structure list.
// It is not safe for concurrent use.
type World struct {
	cfg        config.World
	area       geo.Polygon
	structures []*Structure
	byID       map[string]*Structure
	active     *Structure
}

var _ snap.Host = (*World)(nil)

// New creates an empty world.
func New(cfg config.World) *World {
	return &World{cfg: cfg, byID: make(map[string]*Structure)}
}

// FromScene builds a world holding every structure of s. When the scene
// names a structure being placed, placement starts at the origin.
func FromScene(s *scene.Scene, cfg config.World) (*World, error) {
	w := New(cfg)
	w.area = s.Area
	for _, st := range s.Structures {
		if _, err := w.Add(st); err != nil {
			return nil, err
		}
	}
	if s.Placing != nil {
		w.StartPlacing(*s.Placing)
	}
	return w, nil
}

// Add places a structure. An empty ID is replaced with a random one.
func (w *World) Add(st scene.Structure) (*Structure, error) {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	if _, exists := w.byID[st.ID]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, st.ID)
	}
	s := &Structure{data: st}
	w.structures = append(w.structures, s)
	w.byID[st.ID] = s
	return s, nil
}

// Remove deletes a structure.
func (w *World) Remove(id string) error {
	if _, ok := w.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(w.byID, id)
	for i, s := range w.structures {
		if s.ID() == id {
			w.structures = append(w.structures[:i], w.structures[i+1:]...)
			break
		}
	}
	return nil
}

// Move repositions a placed structure.
func (w *World) Move(id string, pos geo.Vec3, yaw float64) error {
	s, ok := w.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	s.data.Position = pos
	s.data.Yaw = yaw
	return nil
}

// Get returns a placed structure by ID.
func (w *World) Get(id string) (*Structure, bool) {
	s, ok := w.byID[id]
	return s, ok
}

// Len returns the number of placed structures.
func (w *World) Len() int {
	return len(w.structures)
}

// Area returns the buildable area; empty means unbounded.
func (w *World) Area() geo.Polygon {
	return w.area
}

// Scene snapshots the world back into a scene.
func (w *World) Scene(name string) scene.Scene {
	out := scene.Scene{Name: name, Area: w.area, Structures: make([]scene.Structure, len(w.structures))}
	for i, s := range w.structures {
		out.Structures[i] = s.data
	}
	if w.active != nil {
		out.Placing = &scene.Placement{Kind: w.active.data.Kind, Size: w.active.data.Size, Yaw: w.active.data.Yaw}
	}
	return out
}

// StartPlacing begins positioning a new structure. The structure is not
// part of the registry until Commit.
func (w *World) StartPlacing(p scene.Placement) *Structure {
	w.active = &Structure{data: scene.Structure{
		ID:   "placing-" + uuid.NewString(),
		Kind: p.Kind,
		Yaw:  p.Yaw,
		Size: p.Size,
	}}
	return w.active
}

// StopPlacing abandons the structure being placed.
func (w *World) StopPlacing() {
	w.active = nil
}

// MoveActive moves the structure being placed.
func (w *World) MoveActive(pos geo.Vec3) {
	if w.active != nil {
		w.active.data.Position = pos
	}
}

// Commit places the active structure at pos if the world allows it there.
func (w *World) Commit(pos geo.Vec3) (*Structure, error) {
	if w.active == nil {
		return nil, fmt.Errorf("%w: nothing is being placed", snap.ErrMissingDependency)
	}
	pos = pos.WithY(w.cfg.FloorHeight)
	if !w.fits(pos, w.active.data.Size) {
		return nil, fmt.Errorf("cannot place %s at (%.2f, %.2f)", w.active.data.Kind, pos.X, pos.Z)
	}
	st := w.active.data
	st.ID = uuid.NewString()
	st.Position = pos
	w.active = nil
	return w.Add(st)
}

// Structures lists placed structures in insertion order, followed by the
// structure being placed.
func (w *World) Structures(include func(snap.Structure) bool) []snap.Structure {
	var out []snap.Structure
	for _, s := range w.structures {
		if include == nil || include(s) {
			out = append(out, s)
		}
	}
	if w.active != nil && (include == nil || include(w.active)) {
		out = append(out, w.active)
	}
	return out
}

// FloorHeight returns the configured ground level.
func (w *World) FloorHeight() float64 { return w.cfg.FloorHeight }

// ActiveStructure returns the structure being placed, if any.
func (w *World) ActiveStructure() (snap.Structure, bool) {
	if w.active == nil {
		return nil, false
	}
	return w.active, true
}

// ActiveSizeIndex returns the size of the structure being placed, or 0.
func (w *World) ActiveSizeIndex() int {
	if w.active == nil {
		return 0
	}
	return w.active.data.Size
}
