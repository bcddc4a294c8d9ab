package geometry

import (
	"math"
	"testing"

	"github.com/df07/raycore/pkg/core"
)

// Helper function for approximate equality
func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) < tolerance
}

func vec(x, y, z float64) core.Vec3 {
	return core.NewVec3(x, y, z)
}

func ray(origin, direction core.Vec3) core.Ray {
	return core.MustRay(origin, direction)
}

func mustPlane(t *testing.T, point, normal core.Vec3) *Plane {
	t.Helper()
	p, err := NewPlane(point, normal)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}
	return p
}

func mustSphere(t testing.TB, center core.Vec3, radius float64) *Sphere {
	t.Helper()
	s, err := NewSphere(center, radius)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return s
}

func mustTriangle(t testing.TB, a, b, c core.Vec3) *Triangle {
	t.Helper()
	tri, err := NewTriangle(a, b, c)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	return tri
}

func mustCylinder(t *testing.T, base, top core.Vec3, radius float64) *Cylinder {
	t.Helper()
	c, err := NewCylinderBetween(base, top, radius)
	if err != nil {
		t.Fatalf("NewCylinderBetween: %v", err)
	}
	return c
}

func expectPoints(t *testing.T, hits []core.Intersection, expected ...core.Vec3) {
	t.Helper()
	if len(hits) != len(expected) {
		t.Fatalf("Expected %d hits, got %d: %+v", len(expected), len(hits), hits)
	}
	for i, hit := range hits {
		if !hit.Point.ApproxEquals(expected[i], 1e-9) {
			t.Errorf("Hit %d: expected point %v, got %v", i, expected[i], hit.Point)
		}
	}
}
