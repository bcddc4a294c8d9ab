package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// Cylinder represents a finite cylinder closed by two circular caps. The
// base cap is centered on the axis origin, the top cap Height further along
// the axis.
type Cylinder struct {
	Tube
	Height float64

	top core.Vec3 // Center of the top cap
}

// NewCylinder creates a capped cylinder. Radius and height must be positive.
func NewCylinder(axis core.Ray, radius, height float64) (*Cylinder, error) {
	if !(height > 0) {
		return nil, errors.Wrapf(core.ErrInvalidShapeConfiguration, "cylinder height %g", height)
	}
	tube, err := NewTube(axis, radius)
	if err != nil {
		return nil, errors.Wrap(err, "cylinder")
	}
	return &Cylinder{
		Tube:   *tube,
		Height: height,
		top:    axis.At(height),
	}, nil
}

// NewCylinderBetween creates a capped cylinder from its two cap centers
func NewCylinderBetween(base, top core.Vec3, radius float64) (*Cylinder, error) {
	axis, err := core.NewRay(base, top.Subtract(base))
	if err != nil {
		return nil, errors.Wrap(err, "cylinder axis")
	}
	return NewCylinder(axis, radius, top.Distance(base))
}

// Base returns the center of the base cap
func (c *Cylinder) Base() core.Vec3 {
	return c.Axis.Origin
}

// Top returns the center of the top cap
func (c *Cylinder) Top() core.Vec3 {
	return c.top
}

// Intersect returns the wall and cap crossings of the ray, nearest first
func (c *Cylinder) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	var hits []core.Intersection

	// Rim crossings belong to the caps
	tolerance := c.tolerance()
	t1, t2, n := c.lateralRoots(ray)
	for _, t := range []float64{t1, t2}[:n] {
		if h := c.axialDistance(ray.At(t)); h > tolerance && h < c.Height-tolerance {
			hits = core.Append(hits, c, ray, t, maxDistance)
		}
	}

	hits = c.appendCap(hits, ray, c.Axis.Origin, maxDistance)
	hits = c.appendCap(hits, ray, c.top, maxDistance)

	if len(hits) > 1 {
		hits = mergeCoincident(core.SortByDistance(hits), tolerance)
	}
	return hits
}

func (c *Cylinder) tolerance() float64 {
	return core.Epsilon * (1 + c.Height)
}

// mergeCoincident drops sorted hits that lie within tolerance of the
// previous kept hit, so a crossing on the edge of two faces counts once
func mergeCoincident(hits []core.Intersection, tolerance float64) []core.Intersection {
	merged := hits[:1]
	for _, hit := range hits[1:] {
		if hit.Distance-merged[len(merged)-1].Distance > tolerance {
			merged = append(merged, hit)
		}
	}
	return merged
}

// appendCap intersects the disc of the cap centered at center
func (c *Cylinder) appendCap(hits []core.Intersection, ray core.Ray, center core.Vec3, maxDistance float64) []core.Intersection {
	denominator := ray.Direction.Dot(c.Axis.Direction)
	if math.Abs(denominator) < core.Epsilon {
		return hits
	}

	t := center.Subtract(ray.Origin).Dot(c.Axis.Direction) / denominator
	if ray.At(t).DistanceSquared(center) > c.Radius*c.Radius*(1+c.tolerance()) {
		return hits
	}
	return core.Append(hits, c, ray, t, maxDistance)
}

// Normal returns the outward unit normal. Points on a cap, including the cap
// centers, get -axis (base) or +axis (top); wall points get the radial
// direction.
func (c *Cylinder) Normal(point core.Vec3) core.Vec3 {
	tolerance := c.tolerance()
	h := c.axialDistance(point)
	switch {
	case point.Equals(c.Axis.Origin) || math.Abs(h) <= tolerance:
		return c.Axis.Direction.Negate()
	case point.Equals(c.top) || math.Abs(h-c.Height) <= tolerance:
		return c.Axis.Direction
	default:
		return c.Tube.Normal(point)
	}
}

// BoundingBox returns the exact box of the capped cylinder: each cap is a
// disc whose extent along axis k is r·√(1 - v_k²).
func (c *Cylinder) BoundingBox() core.AABB {
	v := c.Axis.Direction
	extent := core.NewVec3(
		c.Radius*math.Sqrt(math.Max(0, 1-v.X*v.X)),
		c.Radius*math.Sqrt(math.Max(0, 1-v.Y*v.Y)),
		c.Radius*math.Sqrt(math.Max(0, 1-v.Z*v.Z)),
	)

	base := c.Axis.Origin
	return core.NewAABB(
		base.Min(c.top).Subtract(extent),
		base.Max(c.top).Add(extent),
	)
}
