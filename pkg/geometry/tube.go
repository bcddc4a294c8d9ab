package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// Tube represents an infinite open cylinder around an axis
type Tube struct {
	Axis   core.Ray // Central axis; Axis.Direction is a unit vector
	Radius float64
}

// NewTube creates an infinite tube around axis. The radius must be positive.
func NewTube(axis core.Ray, radius float64) (*Tube, error) {
	if !(radius > 0) {
		return nil, errors.Wrapf(core.ErrInvalidShapeConfiguration, "tube radius %g", radius)
	}
	return &Tube{Axis: axis, Radius: radius}, nil
}

// Intersect returns the points where the ray crosses the tube wall, nearest
// first
func (tb *Tube) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	t1, t2, n := tb.lateralRoots(ray)
	var hits []core.Intersection
	if n > 0 {
		hits = core.Append(hits, tb, ray, t1, maxDistance)
	}
	if n > 1 {
		hits = core.Append(hits, tb, ray, t2, maxDistance)
	}
	return hits
}

// lateralRoots solves |Δ + tD - ((Δ + tD)·V)V|² = r² for t, where Δ is the
// ray origin relative to the axis origin. It returns the roots in increasing
// order and how many there are. Rays parallel to the axis have none.
func (tb *Tube) lateralRoots(ray core.Ray) (t1, t2 float64, n int) {
	v := tb.Axis.Direction
	delta := ray.Origin.Subtract(tb.Axis.Origin)

	dv := ray.Direction.Dot(v)
	deltaV := delta.Dot(v)

	// a = |D|² - (D·V)², b = 2[Δ·D - (Δ·V)(D·V)], c = |Δ|² - (Δ·V)² - r²
	a := 1 - dv*dv
	b := 2.0 * (delta.Dot(ray.Direction) - deltaV*dv)
	c := delta.LengthSquared() - deltaV*deltaV - tb.Radius*tb.Radius

	if a < core.Epsilon {
		return 0, 0, 0
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, 0, 0
	}
	if discriminant == 0 {
		t := -b / (2 * a)
		return t, t, 1
	}

	sqrtD := math.Sqrt(discriminant)
	return (-b - sqrtD) / (2 * a), (-b + sqrtD) / (2 * a), 2
}

// axialDistance returns the signed distance of point along the axis from its origin
func (tb *Tube) axialDistance(point core.Vec3) float64 {
	return point.Subtract(tb.Axis.Origin).Dot(tb.Axis.Direction)
}

// Normal returns the outward unit normal at a point on the tube wall: the
// point minus its projection onto the axis. A point on the axis itself has
// no radial direction and gets the axis direction.
func (tb *Tube) Normal(point core.Vec3) core.Vec3 {
	radial := point.Subtract(tb.Axis.At(tb.axialDistance(point)))
	if radial.IsZero() {
		return tb.Axis.Direction
	}
	return radial.Normalize()
}

// BoundingBox is finite only across an axis-aligned tube
func (tb *Tube) BoundingBox() core.AABB {
	inf := math.Inf(1)
	min := core.NewVec3(-inf, -inf, -inf)
	max := core.NewVec3(inf, inf, inf)
	o, r := tb.Axis.Origin, tb.Radius

	switch getAxisAlignment(tb.Axis.Direction) {
	case XAxisAligned:
		min.Y, max.Y, min.Z, max.Z = o.Y-r, o.Y+r, o.Z-r, o.Z+r
	case YAxisAligned:
		min.X, max.X, min.Z, max.Z = o.X-r, o.X+r, o.Z-r, o.Z+r
	case ZAxisAligned:
		min.X, max.X, min.Y, max.Y = o.X-r, o.X+r, o.Y-r, o.Y+r
	}

	return core.NewAABB(min, max)
}
