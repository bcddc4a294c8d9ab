package core

import "github.com/pkg/errors"

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a new ray, normalizing the direction. A zero direction is
// rejected with ErrDegenerateVector.
func NewRay(origin, direction Vec3) (Ray, error) {
	dir, err := DirectionOf(direction)
	if err != nil {
		return Ray{}, errors.Wrapf(err, "ray from %v", origin)
	}
	return Ray{Origin: origin, Direction: dir}, nil
}

// MustRay is like NewRay but panics on a zero direction
func MustRay(origin, direction Vec3) Ray {
	ray, err := NewRay(origin, direction)
	if err != nil {
		panic(err)
	}
	return ray
}

// At returns the point at signed distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Reverse returns the ray with the same origin travelling the other way
func (r Ray) Reverse() Ray {
	return Ray{Origin: r.Origin, Direction: r.Direction.Negate()}
}
