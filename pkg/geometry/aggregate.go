package geometry

import "github.com/df07/raycore/pkg/core"

// Aggregate is an unordered bag of shapes queried one by one. It is the
// fallback accelerator for small scenes.
type Aggregate struct {
	shapes []core.Shape
	bbox   core.AABB
}

// NewAggregate creates an aggregate holding shapes
func NewAggregate(shapes ...core.Shape) *Aggregate {
	a := &Aggregate{bbox: core.EmptyAABB()}
	a.Add(shapes...)
	return a
}

// Add appends shapes to the aggregate
func (a *Aggregate) Add(shapes ...core.Shape) {
	for _, shape := range shapes {
		a.shapes = append(a.shapes, shape)
		a.bbox = a.bbox.Union(shape.BoundingBox())
	}
}

// Len returns the number of shapes in the aggregate
func (a *Aggregate) Len() int {
	return len(a.shapes)
}

// Shapes returns a copy of the aggregate's members
func (a *Aggregate) Shapes() []core.Shape {
	shapes := make([]core.Shape, len(a.shapes))
	copy(shapes, a.shapes)
	return shapes
}

// Intersect queries every member with the caller's bound and concatenates
// the results in insertion order
func (a *Aggregate) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	var hits []core.Intersection
	for _, shape := range a.shapes {
		hits = append(hits, shape.Intersect(ray, maxDistance)...)
	}
	return hits
}

// BoundingBox returns the union of the members' boxes. An empty aggregate
// has an empty box.
func (a *Aggregate) BoundingBox() core.AABB {
	return a.bbox
}
