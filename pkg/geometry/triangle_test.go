package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/raycore/pkg/core"
)

func TestTriangle_Intersect(t *testing.T) {
	// Triangle in the z=0 plane
	tri := mustTriangle(t, vec(0, 0, 0), vec(2, 0, 0), vec(0, 2, 0))

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  []core.Vec3
	}{
		{"hit from above", vec(0.5, 0.5, 1), vec(0, 0, -1), []core.Vec3{vec(0.5, 0.5, 0)}},
		{"hit from below", vec(0.5, 0.5, -1), vec(0, 0, 1), []core.Vec3{vec(0.5, 0.5, 0)}},
		{"oblique hit", vec(-1, 0.5, 1), vec(1.5, 0, -1), []core.Vec3{vec(0.5, 0.5, 0)}},
		{"miss outside hypotenuse", vec(1.5, 1.5, 1), vec(0, 0, -1), nil},
		{"miss outside leg", vec(-0.5, 0.5, 1), vec(0, 0, -1), nil},
		{"on edge rejected", vec(1, 0, 1), vec(0, 0, -1), nil},
		{"on vertex rejected", vec(0, 0, 1), vec(0, 0, -1), nil},
		{"behind ray", vec(0.5, 0.5, 1), vec(0, 0, 1), nil},
		{"parallel", vec(0.5, 0.5, 1), vec(1, 0, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := tri.Intersect(ray(tt.origin, tt.direction), math.Inf(1))
			expectPoints(t, hits, tt.expected...)
		})
	}
}

func TestTriangle_Intersect_MaxDistance(t *testing.T) {
	tri := mustTriangle(t, vec(0, 0, 0), vec(2, 0, 0), vec(0, 2, 0))
	r := ray(vec(0.5, 0.5, 3), vec(0, 0, -1))

	if hits := tri.Intersect(r, 3); hits != nil {
		t.Errorf("Expected hit at exactly the bound to be rejected, got %+v", hits)
	}
	if hits := tri.Intersect(r, 3.5); len(hits) != 1 || !approxEqual(hits[0].Distance, 3, 1e-12) {
		t.Errorf("Expected one hit at distance 3, got %+v", hits)
	}
}

func TestTriangle_NormalAndBounds(t *testing.T) {
	tri := mustTriangle(t, vec(0, 0, 0), vec(1, 0, 0), vec(0, 1, 0))

	if n := tri.Normal(vec(0.2, 0.2, 0)); !n.ApproxEquals(vec(0, 0, 1), 1e-12) {
		t.Errorf("Expected normal (0, 0, 1), got %v", n)
	}

	flipped := mustTriangle(t, vec(0, 0, 0), vec(0, 1, 0), vec(1, 0, 0))
	if n := flipped.Normal(vec(0.2, 0.2, 0)); !n.ApproxEquals(vec(0, 0, -1), 1e-12) {
		t.Errorf("Expected reversed winding to flip the normal, got %v", n)
	}

	box := mustTriangle(t, vec(1, 2, 3), vec(-1, 0, 5), vec(0, 4, 1)).BoundingBox()
	if !box.Min.Equals(vec(-1, 0, 1)) || !box.Max.Equals(vec(1, 4, 5)) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	if _, err := NewTriangle(vec(0, 0, 0), vec(1, 1, 1), vec(3, 3, 3)); !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector for collinear vertices, got %v", err)
	}
	if _, err := NewTriangle(vec(0, 0, 0), vec(0, 0, 0), vec(1, 0, 0)); !errors.Is(err, core.ErrDegenerateVector) {
		t.Errorf("Expected ErrDegenerateVector for coincident vertices, got %v", err)
	}
}
