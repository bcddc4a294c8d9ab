package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// PlaneThickness is the half-width of the slab used to bound an axis-aligned
// plane, so that its box has a non-zero extent along the normal.
const PlaneThickness = 1e-3

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point  core.Vec3 // Reference point on the plane
	normal core.Vec3 // Unit normal
}

// NewPlane creates a new plane through point with the given normal
func NewPlane(point, normal core.Vec3) (*Plane, error) {
	n, err := core.DirectionOf(normal)
	if err != nil {
		return nil, errors.Wrap(err, "plane normal")
	}
	return &Plane{Point: point, normal: n}, nil
}

// NewPlaneFromPoints creates the plane through three points. The normal
// follows the winding a -> b -> c. Collinear or coincident points fail with
// core.ErrDegenerateVector.
func NewPlaneFromPoints(a, b, c core.Vec3) (*Plane, error) {
	n, err := core.DirectionOf(b.Subtract(a).Cross(c.Subtract(a)))
	if err != nil {
		return nil, errors.Wrapf(err, "plane through %v, %v, %v", a, b, c)
	}
	return &Plane{Point: a, normal: n}, nil
}

// Normal returns the plane normal, which is the same at every point
func (p *Plane) Normal(point core.Vec3) core.Vec3 {
	return p.normal
}

// Intersect tests if a ray intersects with the plane
func (p *Plane) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	t, ok := p.distance(ray)
	if !ok {
		return nil
	}
	return core.Append(nil, p, ray, t, maxDistance)
}

// distance returns the signed distance along ray to the plane. Rays parallel
// to the plane and rays starting at the reference point have none.
func (p *Plane) distance(ray core.Ray) (float64, bool) {
	if ray.Origin.Equals(p.Point) {
		return 0, false
	}

	denominator := ray.Direction.Dot(p.normal)
	if math.Abs(denominator) < core.Epsilon {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	return p.Point.Subtract(ray.Origin).Dot(p.normal) / denominator, true
}

// BoundingBox returns a bounding box for this plane
func (p *Plane) BoundingBox() core.AABB {
	inf := math.Inf(1)
	min := core.NewVec3(-inf, -inf, -inf)
	max := core.NewVec3(inf, inf, inf)

	switch getAxisAlignment(p.normal) {
	case XAxisAligned:
		min.X, max.X = p.Point.X-PlaneThickness, p.Point.X+PlaneThickness
	case YAxisAligned:
		min.Y, max.Y = p.Point.Y-PlaneThickness, p.Point.Y+PlaneThickness
	case ZAxisAligned:
		min.Z, max.Z = p.Point.Z-PlaneThickness, p.Point.Z+PlaneThickness
	}

	return core.NewAABB(min, max)
}
