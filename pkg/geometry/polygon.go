package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// Polygon represents a convex planar polygon. Vertices are stored in order;
// the normal follows their winding.
type Polygon struct {
	face
}

// NewPolygon creates a convex polygon from at least three coplanar vertices
// listed in consistent (either) winding order.
func NewPolygon(vertices ...core.Vec3) (*Polygon, error) {
	f, err := newFace(vertices)
	if err != nil {
		return nil, errors.Wrapf(err, "polygon with %d vertices", len(vertices))
	}
	return &Polygon{face: f}, nil
}

// Intersect tests if a ray passes through the polygon
func (p *Polygon) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	return p.intersect(p, ray, maxDistance)
}

// face holds what triangles and polygons share: the vertex loop, its
// supporting plane and a cached bounding box
type face struct {
	vertices []core.Vec3
	plane    Plane
	bbox     core.AABB
}

func newFace(vertices []core.Vec3) (face, error) {
	if len(vertices) < 3 {
		return face{}, errors.Wrapf(core.ErrInvalidShapeConfiguration, "need at least 3 vertices, got %d", len(vertices))
	}

	v := make([]core.Vec3, len(vertices))
	copy(v, vertices)

	plane, err := NewPlaneFromPoints(v[0], v[1], v[2])
	if err != nil {
		return face{}, err
	}
	normal := plane.normal
	bbox := core.NewAABBFromPoints(v...)
	tolerance := core.Epsilon * (1 + bbox.Size().Length())

	for i := 3; i < len(v); i++ {
		if math.Abs(v[i].Subtract(v[0]).Dot(normal)) > tolerance {
			return face{}, errors.Wrapf(core.ErrInvalidShapeConfiguration, "vertex %d is not coplanar", i)
		}
	}

	n := len(v)
	for i := 0; i < n; i++ {
		edge := v[(i+1)%n].Subtract(v[i])
		next := v[(i+2)%n].Subtract(v[(i+1)%n])
		turn := edge.Cross(next).Dot(normal)
		if math.Abs(turn) <= core.Epsilon*edge.Length()*next.Length() {
			return face{}, errors.Wrapf(core.ErrDegenerateVector, "edges at vertex %d are collinear", (i+1)%n)
		}
		if turn < 0 {
			return face{}, errors.Wrapf(core.ErrInvalidShapeConfiguration, "vertices are not convex or misordered at vertex %d", (i+1)%n)
		}

		// Local convexity alone accepts self-overlapping star loops, so every
		// vertex must also lie on the inner side of every edge.
		for j := 0; j < n; j++ {
			if edge.Cross(v[j].Subtract(v[i])).Dot(normal) < -tolerance*edge.Length() {
				return face{}, errors.Wrapf(core.ErrInvalidShapeConfiguration, "vertex %d lies outside edge %d", j, i)
			}
		}
	}

	return face{vertices: v, plane: *plane, bbox: bbox}, nil
}

// intersect hits the supporting plane first, then keeps the hit only if the
// ray passes strictly inside every edge. shape is recorded in the result.
func (f *face) intersect(shape core.Shape, ray core.Ray, maxDistance float64) []core.Intersection {
	t, ok := f.plane.distance(ray)
	if !ok || t <= core.Epsilon || t >= maxDistance {
		return nil
	}
	if !f.inside(ray) {
		return nil
	}
	return []core.Intersection{core.NewIntersection(shape, ray, t)}
}

// inside applies the edge sign test: the ray direction dotted with the
// normalized cross product of each pair of consecutive vertex vectors (taken
// from the ray origin) must share one strict sign. A zero means the ray grazes
// an edge and is rejected.
func (f *face) inside(ray core.Ray) bool {
	n := len(f.vertices)
	sign := 0.0
	for i := 0; i < n; i++ {
		a := f.vertices[i].Subtract(ray.Origin)
		b := f.vertices[(i+1)%n].Subtract(ray.Origin)
		side := a.Cross(b)
		if side.IsZero() {
			return false
		}

		s := ray.Direction.Dot(side.Normalize())
		if s == 0 {
			return false
		}
		if sign == 0 {
			sign = math.Copysign(1, s)
		} else if math.Signbit(s) != math.Signbit(sign) {
			return false
		}
	}
	return true
}

// Vertices returns a copy of the vertex loop
func (f *face) Vertices() []core.Vec3 {
	v := make([]core.Vec3, len(f.vertices))
	copy(v, f.vertices)
	return v
}

// Normal returns the face normal, which is the same at every point
func (f *face) Normal(point core.Vec3) core.Vec3 {
	return f.plane.normal
}

// BoundingBox returns the axis-aligned bounding box of the vertices
func (f *face) BoundingBox() core.AABB {
	return f.bbox
}
