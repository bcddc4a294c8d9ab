package core

import (
	"sort"

	"github.com/samber/lo"
)

// Intersection records a single ray/shape hit
type Intersection struct {
	Shape    Shape   // The primitive that was hit
	Point    Vec3    // Point of intersection
	Distance float64 // Distance from the ray origin along the ray
}

// NewIntersection creates the record for a hit at distance t along ray
func NewIntersection(shape Shape, ray Ray, t float64) Intersection {
	return Intersection{Shape: shape, Point: ray.At(t), Distance: t}
}

// Nearest returns the intersection closest to the ray origin
func Nearest(hits []Intersection) (Intersection, bool) {
	if len(hits) == 0 {
		return Intersection{}, false
	}
	return lo.MinBy(hits, func(a, b Intersection) bool {
		return a.Distance < b.Distance
	}), true
}

// MinDistance returns the smallest distance among hits, or fallback when
// there are none.
func MinDistance(hits []Intersection, fallback float64) float64 {
	if nearest, ok := Nearest(hits); ok && nearest.Distance < fallback {
		return nearest.Distance
	}
	return fallback
}

// Within returns the hits strictly closer than maxDistance
func Within(hits []Intersection, maxDistance float64) []Intersection {
	within := lo.Filter(hits, func(hit Intersection, _ int) bool {
		return hit.Distance < maxDistance
	})
	if len(within) == 0 {
		return nil
	}
	return within
}

// SortByDistance returns a copy of hits ordered nearest first
func SortByDistance(hits []Intersection) []Intersection {
	sorted := make([]Intersection, len(hits))
	copy(sorted, hits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})
	return sorted
}

// Append adds the hit at t to hits when t lies in (Epsilon, maxDistance).
// Primitives use it to apply the common range contract.
func Append(hits []Intersection, shape Shape, ray Ray, t, maxDistance float64) []Intersection {
	if t <= Epsilon || t >= maxDistance {
		return hits
	}
	return append(hits, NewIntersection(shape, ray, t))
}
