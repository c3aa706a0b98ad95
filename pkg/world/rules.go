package world

import (
	"math"
	"slices"

	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/geo"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/scene"
	"github.com/Tahvohck/Planetbase-BuildingAligner/pkg/snap"
)

// FloorLayer is the layer bit the ground sits on.
const FloorLayer = 1 << 8

type kinded interface {
	Kind() scene.Kind
}

// CanLink reports whether a structure dropped at point could be connected to
// candidate: both kinds must be linkable, the gap must be within the
// configured link range and the connection may not run through another
// structure.
func (w *World) CanLink(active, candidate snap.Structure, point, candidatePos geo.Vec3) bool {
	if !w.linkable(active) || !w.linkable(candidate) {
		return false
	}
	from, to := point.Flat(), candidatePos.Flat()
	if d := from.Distance(to); d < w.cfg.LinkMin || d > w.cfg.LinkMax {
		return false
	}
	for _, s := range w.structures {
		if s.ID() == candidate.ID() {
			continue
		}
		if s.data.Footprint(w.cfg).CrossedBy(from, to) {
			return false
		}
	}
	return true
}

func (w *World) linkable(s snap.Structure) bool {
	k, ok := s.(kinded)
	if !ok {
		return true
	}
	return slices.Contains(w.cfg.LinkableKind, string(k.Kind()))
}

// CanPlace reports whether a structure of sizeIndex fits at point: the
// ground must be level, the footprint must stay inside the buildable area
// and clear every other placed footprint.
func (w *World) CanPlace(_ snap.Structure, point, up geo.Vec3, sizeIndex int) bool {
	if up.Horizontal() != (geo.Vec3{}) || up.Y <= 0 {
		return false
	}
	return w.fits(point, sizeIndex)
}

func (w *World) fits(point geo.Vec3, sizeIndex int) bool {
	footprint := geo.Circle{Center: point.Flat(), Radius: w.cfg.SizeRadius(sizeIndex)}
	if !w.area.IsEmpty() && !w.area.ContainsCircle(footprint) {
		return false
	}
	for _, s := range w.structures {
		if footprint.Overlaps(s.data.Footprint(w.cfg)) {
			return false
		}
	}
	return true
}

// CursorHit intersects a view ray with the floor. It misses when the floor
// layer is masked out, the ray points away from the floor, or the hit is
// farther than the configured ray length.
func (w *World) CursorHit(origin, dir geo.Vec3) (geo.Vec3, bool) {
	if w.cfg.LayerMask&FloorLayer == 0 {
		return geo.Vec3{}, false
	}
	dir = dir.Normalize()
	if math.Abs(dir.Y) < 1e-9 {
		return geo.Vec3{}, false
	}
	t := (w.cfg.FloorHeight - origin.Y) / dir.Y
	if t < 0 || t > w.cfg.RayLength {
		return geo.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)).WithY(w.cfg.FloorHeight), true
}
