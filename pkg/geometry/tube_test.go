package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/raycore/pkg/core"
)

func TestTube_Intersect(t *testing.T) {
	// Unit tube around the z axis
	tube, err := NewTube(ray(vec(0, 0, 0), vec(0, 0, 1)), 1)
	if err != nil {
		t.Fatalf("NewTube: %v", err)
	}

	tests := []struct {
		name      string
		origin    core.Vec3
		direction core.Vec3
		expected  []core.Vec3
	}{
		{"through", vec(-3, 0, 5), vec(1, 0, 0), []core.Vec3{vec(-1, 0, 5), vec(1, 0, 5)}},
		{"oblique", vec(-3, 0, 0), vec(1, 0, 1), []core.Vec3{vec(-1, 0, 2), vec(1, 0, 4)}},
		{"from inside", vec(0, 0, 0), vec(1, 0, 0), []core.Vec3{vec(1, 0, 0)}},
		{"tangent", vec(-3, 1, 0), vec(1, 0, 0), []core.Vec3{vec(0, 1, 0)}},
		{"miss", vec(-3, 2, 0), vec(1, 0, 0), nil},
		{"parallel to axis", vec(0.5, 0, 0), vec(0, 0, 1), nil},
		{"pointing away", vec(-3, 0, 0), vec(-1, 0, 0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits := tube.Intersect(ray(tt.origin, tt.direction), math.Inf(1))
			expectPoints(t, hits, tt.expected...)
		})
	}
}

func TestTube_MaxDistance(t *testing.T) {
	tube, _ := NewTube(ray(vec(0, 0, 0), vec(0, 0, 1)), 1)
	hits := tube.Intersect(ray(vec(-3, 0, 0), vec(1, 0, 0)), 3)
	expectPoints(t, hits, vec(-1, 0, 0))
}

func TestTube_Normal(t *testing.T) {
	tube, _ := NewTube(ray(vec(0, 0, 0), vec(0, 0, 1)), 2)

	if n := tube.Normal(vec(2, 0, 7)); !n.ApproxEquals(vec(1, 0, 0), 1e-12) {
		t.Errorf("Expected radial normal (1, 0, 0), got %v", n)
	}
	if n := tube.Normal(vec(0, -2, -3)); !n.ApproxEquals(vec(0, -1, 0), 1e-12) {
		t.Errorf("Expected radial normal (0, -1, 0), got %v", n)
	}
	if n := tube.Normal(vec(0, 0, 3)); !n.ApproxEquals(vec(0, 0, 1), 1e-12) {
		t.Errorf("Expected axis direction for a point on the axis, got %v", n)
	}
}

func TestTube_BoundingBox(t *testing.T) {
	aligned, _ := NewTube(ray(vec(1, 2, 3), vec(0, 0, -1)), 0.5)
	box := aligned.BoundingBox()
	if box.Min.X != 0.5 || box.Max.X != 1.5 || box.Min.Y != 1.5 || box.Max.Y != 2.5 {
		t.Errorf("Expected bounded x and y extents, got %v", box)
	}
	if !math.IsInf(box.Min.Z, -1) || !math.IsInf(box.Max.Z, 1) {
		t.Errorf("Expected unbounded z extent, got %v", box)
	}

	oblique, _ := NewTube(ray(vec(0, 0, 0), vec(1, 1, 0)), 1)
	box = oblique.BoundingBox()
	for _, axis := range []core.Axis{core.XAxis, core.YAxis, core.ZAxis} {
		if !math.IsInf(box.Min.Component(axis), -1) || !math.IsInf(box.Max.Component(axis), 1) {
			t.Errorf("Expected unbounded %v extent for an oblique tube, got %v", axis, box)
		}
	}
}

func TestTube_InvalidRadius(t *testing.T) {
	for _, radius := range []float64{0, -1, math.NaN()} {
		if _, err := NewTube(ray(vec(0, 0, 0), vec(0, 1, 0)), radius); !errors.Is(err, core.ErrInvalidShapeConfiguration) {
			t.Errorf("Radius %v: expected ErrInvalidShapeConfiguration, got %v", radius, err)
		}
	}
}
