package core

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Epsilon is the tolerance used for parallelism tests and for rejecting
// intersections at (or numerically indistinguishable from) a ray origin.
const Epsilon = 1e-9

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// String returns the axis name
func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	default:
		return "?"
	}
}

// Vec3 represents a 3D point or direction.
//
// The algebra is delegated to r3.Vector; Vec3 only adds the operations the
// intersection code needs on top of it.
type Vec3 r3.Vector

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// NewDirection creates a unit direction vector. The zero vector has no
// direction and is rejected with ErrDegenerateVector.
func NewDirection(x, y, z float64) (Vec3, error) {
	return DirectionOf(NewVec3(x, y, z))
}

// DirectionOf normalizes v, failing for the zero vector and for vectors
// with infinite or NaN components. v is first divided by its largest
// component so that tiny and huge vectors normalize without under- or
// overflowing.
func DirectionOf(v Vec3) (Vec3, error) {
	scale := math.Max(math.Abs(v.X), math.Max(math.Abs(v.Y), math.Abs(v.Z)))
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return Vec3{}, errors.Wrapf(ErrDegenerateVector, "direction %v", v)
	}
	return NewVec3(v.X/scale, v.Y/scale, v.Z/scale).Normalize(), nil
}

func (v Vec3) r3() r3.Vector {
	return r3.Vector(v)
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(v.r3().Add(other.r3()))
}

// Subtract returns the difference of two vectors
func (v Vec3) Subtract(other Vec3) Vec3 {
	return Vec3(v.r3().Sub(other.r3()))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3(v.r3().Mul(scalar))
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return v.Multiply(-1)
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.r3().Dot(other.r3())
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(v.r3().Cross(other.r3()))
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return v.r3().Norm()
}

// LengthSquared returns the squared magnitude of the vector
func (v Vec3) LengthSquared() float64 {
	return v.r3().Norm2()
}

// Distance returns the Euclidean distance between two points
func (v Vec3) Distance(other Vec3) float64 {
	return v.r3().Distance(other.r3())
}

// DistanceSquared returns the squared distance between two points
func (v Vec3) DistanceSquared(other Vec3) float64 {
	return v.Subtract(other).LengthSquared()
}

// Normalize returns a unit vector in the same direction. The zero vector is
// returned unchanged; use DirectionOf where zero must be rejected.
func (v Vec3) Normalize() Vec3 {
	return Vec3(v.r3().Normalize())
}

// IsZero reports whether all components are exactly zero
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Equals compares two vectors component by component, exactly
func (v Vec3) Equals(other Vec3) bool {
	return v == other
}

// ApproxEquals compares two vectors with a per-component tolerance
func (v Vec3) ApproxEquals(other Vec3, tolerance float64) bool {
	return math.Abs(v.X-other.X) <= tolerance &&
		math.Abs(v.Y-other.Y) <= tolerance &&
		math.Abs(v.Z-other.Z) <= tolerance
}

// Min returns the componentwise minimum of two vectors
func (v Vec3) Min(other Vec3) Vec3 {
	return Vec3{
		X: math.Min(v.X, other.X),
		Y: math.Min(v.Y, other.Y),
		Z: math.Min(v.Z, other.Z),
	}
}

// Max returns the componentwise maximum of two vectors
func (v Vec3) Max(other Vec3) Vec3 {
	return Vec3{
		X: math.Max(v.X, other.X),
		Y: math.Max(v.Y, other.Y),
		Z: math.Max(v.Z, other.Z),
	}
}

// Component returns the coordinate along the given axis
func (v Vec3) Component(axis Axis) float64 {
	switch axis {
	case XAxis:
		return v.X
	case YAxis:
		return v.Y
	default:
		return v.Z
	}
}
