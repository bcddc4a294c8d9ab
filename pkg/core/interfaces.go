package core

// Shape is implemented by every primitive and every composite (aggregate,
// BVH node) that can answer ray queries.
type Shape interface {
	// BoundingBox returns a box enclosing the whole shape.
	BoundingBox() AABB

	// Intersect returns every intersection of the ray with the shape at a
	// distance in (0, maxDistance). A miss is a nil slice.
	Intersect(ray Ray, maxDistance float64) []Intersection
}

// Surface is a primitive shape with a well defined unit normal at every point
// of its surface.
type Surface interface {
	Shape
	Normal(point Vec3) Vec3
}
