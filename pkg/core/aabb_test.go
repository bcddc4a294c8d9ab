package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestAABB_Intersects(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name      string
		origin    Vec3
		direction Vec3
		expected  bool
	}{
		{"straight through", NewVec3(-5, 0, 0), NewVec3(1, 0, 0), true},
		{"negative direction", NewVec3(5, 0, 0), NewVec3(-1, 0, 0), true},
		{"diagonal", NewVec3(-5, -5, -5), NewVec3(1, 1, 1), true},
		{"origin inside", NewVec3(0, 0, 0), NewVec3(0, 0, 1), true},
		{"pointing away", NewVec3(5, 0, 0), NewVec3(1, 0, 0), false},
		{"parallel outside slab", NewVec3(-5, 2, 0), NewVec3(1, 0, 0), false},
		{"parallel on face", NewVec3(-5, 1, 0), NewVec3(1, 0, 0), true},
		{"miss above", NewVec3(-5, 3, 0), NewVec3(1, 0.1, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := MustRay(tt.origin, tt.direction)
			if got := box.Intersects(ray); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_HitRange(t *testing.T) {
	box := NewAABB(NewVec3(2, -1, -1), NewVec3(3, 1, 1))
	ray := MustRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))

	if !box.Hit(ray, 0, 10) {
		t.Error("Expected hit within [0, 10]")
	}
	if box.Hit(ray, 0, 1.5) {
		t.Error("Expected miss within [0, 1.5]")
	}
	if box.Hit(ray, 3.5, 10) {
		t.Error("Expected miss within [3.5, 10]")
	}
}

func TestAABB_InfiniteBox(t *testing.T) {
	inf := math.Inf(1)
	slab := NewAABB(NewVec3(-inf, -0.001, -inf), NewVec3(inf, 0.001, inf))

	if !slab.Intersects(MustRay(NewVec3(3, 5, 7), NewVec3(0.2, -1, 0.1))) {
		t.Error("Expected ray heading down to cross the y slab")
	}
	if slab.Intersects(MustRay(NewVec3(3, 5, 7), NewVec3(1, 0, 0))) {
		t.Error("Expected horizontal ray above the slab to miss")
	}
}

func TestAABB_EmptyNeverHit(t *testing.T) {
	empty := EmptyAABB()
	if empty.IsValid() {
		t.Error("Expected empty box to be invalid")
	}
	if empty.Intersects(MustRay(NewVec3(0, 0, 0), NewVec3(1, 1, 1))) {
		t.Error("Expected empty box to never intersect")
	}

	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if empty.Union(box) != box {
		t.Errorf("Expected empty box to be the union identity, got %v", empty.Union(box))
	}
}

func TestAABB_UnionIdentity(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		box := randomBox(random)
		if got := box.Union(box); got != box {
			t.Fatalf("Expected union(A, A) == A for %v, got %v", box, got)
		}
	}
}

func TestAABB_UnionContainment(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := randomBox(random)
		b := randomBox(random)
		union := a.Union(b)

		for _, box := range []AABB{a, b} {
			for j := 0; j < 10; j++ {
				p := randomPointIn(random, box)
				if !box.Contains(p) {
					t.Fatalf("Sample %v not inside its own box %v", p, box)
				}
				if !union.Contains(p) {
					t.Fatalf("Point %v inside %v but not inside union %v", p, box, union)
				}
			}
		}
	}
}

func TestAABB_SlabSymmetry(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))
	random := rand.New(rand.NewSource(3))

	for i := 0; i < 200; i++ {
		origin := NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5).Multiply(8)
		direction := NewVec3(random.Float64()-0.5, random.Float64()-0.5, random.Float64()-0.5)
		if direction.IsZero() {
			continue
		}
		ray := MustRay(origin, direction)

		// A line through the box is detected from either side of the origin,
		// so at least one direction must see it when the origin is inside.
		if box.Contains(origin) && !(box.Intersects(ray) && box.Intersects(ray.Reverse())) {
			t.Fatalf("Ray from inside the box must hit it both ways: %+v", ray)
		}
	}

	// Centered crossing: both directions through the box center
	ray := MustRay(NewVec3(0, 0, 0), NewVec3(1, 2, 3))
	if box.Intersects(ray) != box.Intersects(ray.Reverse()) {
		t.Error("Expected a ray and its reverse to agree for a centered box")
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name     string
		box      AABB
		expected Axis
	}{
		{"x longest", NewAABB(NewVec3(0, 0, 0), NewVec3(3, 1, 1)), XAxis},
		{"y longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 3, 1)), YAxis},
		{"z longest", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 3)), ZAxis},
		{"tie prefers x", NewAABB(NewVec3(0, 0, 0), NewVec3(2, 2, 2)), XAxis},
		{"y and z tie prefers y", NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 2)), YAxis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestAABB_Measures(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(1, 2, 3), NewVec3(-1, 0, 1), NewVec3(0, 4, 2))

	if !box.Min.Equals(NewVec3(-1, 0, 1)) || !box.Max.Equals(NewVec3(1, 4, 3)) {
		t.Fatalf("Unexpected bounds %v", box)
	}
	if !box.Center().Equals(NewVec3(0, 2, 2)) {
		t.Errorf("Expected center (0, 2, 2), got %v", box.Center())
	}
	if got := box.SurfaceArea(); got != 2*(2*4+4*2+2*2) {
		t.Errorf("Unexpected surface area %f", got)
	}
	expanded := box.Expand(1)
	if !expanded.Min.Equals(NewVec3(-2, -1, 0)) || !expanded.Max.Equals(NewVec3(2, 5, 4)) {
		t.Errorf("Unexpected expanded box %v", expanded)
	}
}

func randomBox(random *rand.Rand) AABB {
	a := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	b := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(a, b)
}

func randomPointIn(random *rand.Rand, box AABB) Vec3 {
	size := box.Size()
	return NewVec3(
		box.Min.X+random.Float64()*size.X,
		box.Min.Y+random.Float64()*size.Y,
		box.Min.Z+random.Float64()*size.Z,
	).Min(box.Max)
}
