package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a world-space position or direction. Y is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Up is the world vertical axis.
var Up = Vec3{Y: 1}

// Forward is the default facing of an unrotated structure.
var Forward = Vec3{Z: 1}

// V is a shorthand constructor for Vec3.
func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) vec() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

func fromVec(v r3.Vec) Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return fromVec(r3.Add(v.vec(), u.vec()))
}

// Sub returns v - u.
func (v Vec3) Sub(u Vec3) Vec3 {
	return fromVec(r3.Sub(v.vec(), u.vec()))
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return fromVec(r3.Scale(s, v.vec()))
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float64 {
	return r3.Norm(v.vec())
}

// Distance returns the Euclidean distance between v and u.
func (v Vec3) Distance(u Vec3) float64 {
	return r3.Norm(r3.Sub(v.vec(), u.vec()))
}

// Normalize returns the unit vector in the same direction.
// Returns the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	if v.Length() < 1e-12 {
		return Vec3{}
	}
	return fromVec(r3.Unit(v.vec()))
}

// WithY returns v with its height replaced.
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

// Flat projects v onto the ground plane.
func (v Vec3) Flat() Point2D {
	return Point2D{X: v.X, Z: v.Z}
}

// Horizontal returns v with the vertical component removed, normalized.
// Returns the zero vector when v is vertical.
func (v Vec3) Horizontal() Vec3 {
	return v.WithY(0).Normalize()
}

// Yaw returns the heading of v in degrees, measured from +Z towards +X.
func (v Vec3) Yaw() float64 {
	return math.Atan2(v.X, v.Z) * 180 / math.Pi
}

// YawRotation is a rotation about the world up axis.
type YawRotation struct {
	r r3.Rotation
}

// NewYawRotation returns a rotation of degrees about Up. Positive angles
// turn +Z towards +X.
func NewYawRotation(degrees float64) YawRotation {
	return YawRotation{r: r3.NewRotation(degrees*math.Pi/180, Up.vec())}
}

// Rotate applies the rotation to v.
func (y YawRotation) Rotate(v Vec3) Vec3 {
	return fromVec(y.r.Rotate(v.vec()))
}

// DirectionFromYaw returns the horizontal unit vector for a heading in degrees.
func DirectionFromYaw(degrees float64) Vec3 {
	rad := degrees * math.Pi / 180
	return Vec3{X: math.Sin(rad), Z: math.Cos(rad)}
}
