package geo

import "math"

// Circle is a round footprint on the ground plane.
type Circle struct {
	Center Point2D `json:"center"`
	Radius float64 `json:"radius"`
}

// Overlaps reports whether two footprints intersect. Touching edges do not count.
func (c Circle) Overlaps(o Circle) bool {
	return c.Center.Distance(o.Center) < c.Radius+o.Radius
}

// Contains reports whether pt lies inside the footprint.
func (c Circle) Contains(pt Point2D) bool {
	return c.Center.Distance(pt) <= c.Radius
}

// Outline approximates the circle with segments vertices in CCW order.
func (c Circle) Outline(segments int) Polygon {
	if segments < 3 {
		segments = 3
	}
	pts := make([]Point2D, segments)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = Point2D{
			X: c.Center.X + c.Radius*math.Cos(angle),
			Z: c.Center.Z + c.Radius*math.Sin(angle),
		}
	}
	return Polygon{Vertices: pts}
}

// CrossedBy reports whether the segment from a to b passes through the
// interior of the circle. Grazing the edge does not count.
func (c Circle) CrossedBy(a, b Point2D) bool {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq < 1e-12 {
		return a.Distance(c.Center) < c.Radius
	}
	t := math.Max(0, math.Min(1, c.Center.Sub(a).Dot(d)/lenSq))
	return a.Lerp(b, t).Distance(c.Center) < c.Radius-0.01
}
