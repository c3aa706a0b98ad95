package geo

import "math"

// Polygon is a closed polygon on the ground plane, vertices in order.
type Polygon struct {
	Vertices []Point2D `json:"vertices" yaml:"vertices"`
}

// NewPolygon creates a polygon from a list of vertices.
func NewPolygon(pts ...Point2D) Polygon {
	return Polygon{Vertices: pts}
}

// IsEmpty returns true if the polygon has fewer than 3 vertices.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// Edge returns the i-th edge as (start, end). Wraps around.
func (p Polygon) Edge(i int) (Point2D, Point2D) {
	n := len(p.Vertices)
	return p.Vertices[i%n], p.Vertices[(i+1)%n]
}

// Area returns the unsigned shoelace area.
func (p Polygon) Area() float64 {
	n := len(p.Vertices)
	if n < 3 {
		return 0
	}
	area := 0.0
	for i := 0; i < n; i++ {
		a, b := p.Edge(i)
		area += a.X*b.Z - b.X*a.Z
	}
	return math.Abs(area / 2)
}

// BoundingBox returns the axis-aligned bounding box as (min, max).
func (p Polygon) BoundingBox() (Point2D, Point2D) {
	if len(p.Vertices) == 0 {
		return Point2D{}, Point2D{}
	}
	minP, maxP := p.Vertices[0], p.Vertices[0]
	for _, v := range p.Vertices[1:] {
		minP.X = math.Min(minP.X, v.X)
		minP.Z = math.Min(minP.Z, v.Z)
		maxP.X = math.Max(maxP.X, v.X)
		maxP.Z = math.Max(maxP.Z, v.Z)
	}
	return minP, maxP
}

// Contains returns true if the point is inside the polygon using ray casting.
func (p Polygon) Contains(pt Point2D) bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		vi, vj := p.Vertices[i], p.Vertices[j]
		if (vi.Z > pt.Z) != (vj.Z > pt.Z) &&
			pt.X < (vj.X-vi.X)*(pt.Z-vi.Z)/(vj.Z-vi.Z)+vi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// EdgeDistance returns the distance from pt to the nearest polygon edge.
func (p Polygon) EdgeDistance(pt Point2D) float64 {
	best := math.Inf(1)
	for i := range p.Vertices {
		a, b := p.Edge(i)
		best = math.Min(best, pt.DistanceToSegment(a, b))
	}
	return best
}

// ContainsCircle reports whether a circle lies fully inside the polygon.
func (p Polygon) ContainsCircle(c Circle) bool {
	return p.Contains(c.Center) && p.EdgeDistance(c.Center) >= c.Radius
}
