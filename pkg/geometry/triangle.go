package geometry

import (
	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	face
}

// NewTriangle creates a new triangle from three vertices. Collinear or
// coincident vertices fail with core.ErrDegenerateVector.
func NewTriangle(v0, v1, v2 core.Vec3) (*Triangle, error) {
	f, err := newFace([]core.Vec3{v0, v1, v2})
	if err != nil {
		return nil, errors.Wrap(err, "triangle")
	}
	return &Triangle{face: f}, nil
}

// Intersect tests if a ray passes through the triangle
func (t *Triangle) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	return t.intersect(t, ray, maxDistance)
}
