package core

import "errors"

var (
	// ErrDegenerateVector is returned when a direction or normal would be the
	// zero vector: a zero ray direction, collinear polygon edges or coincident
	// plane-defining points.
	ErrDegenerateVector = errors.New("core: degenerate vector")

	// ErrInvalidShapeConfiguration is returned for invalid primitive
	// parameters such as a non-positive radius or height, or polygon vertices
	// that are too few, non-planar, non-convex or misordered.
	ErrInvalidShapeConfiguration = errors.New("core: invalid shape configuration")

	// ErrEmptyInput is returned when an acceleration structure is built from
	// zero shapes.
	ErrEmptyInput = errors.New("core: empty input")
)
