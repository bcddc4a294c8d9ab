package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere. The radius must be positive.
func NewSphere(center core.Vec3, radius float64) (*Sphere, error) {
	if !(radius > 0) {
		return nil, errors.Wrapf(core.ErrInvalidShapeConfiguration, "sphere radius %g", radius)
	}
	return &Sphere{Center: center, Radius: radius}, nil
}

// Intersect returns the points where the ray enters and leaves the sphere,
// nearest first
func (s *Sphere) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	if ray.Origin.Equals(s.Center) {
		return core.Append(nil, s, ray, s.Radius, maxDistance)
	}

	// Project the origin-to-center vector onto the ray to find the closest
	// approach, then compare its squared distance to the center with r².
	l := s.Center.Subtract(ray.Origin)
	tca := l.Dot(ray.Direction)
	d2 := l.LengthSquared() - tca*tca
	r2 := s.Radius * s.Radius
	if d2 > r2 {
		return nil
	}

	thc := math.Sqrt(r2 - d2)
	var hits []core.Intersection
	hits = core.Append(hits, s, ray, tca-thc, maxDistance)
	if thc > 0 {
		hits = core.Append(hits, s, ray, tca+thc, maxDistance)
	}
	return hits
}

// Normal returns the outward unit normal at a point on the sphere
func (s *Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}
