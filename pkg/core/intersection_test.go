package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hitsAt(distances ...float64) []Intersection {
	ray := MustRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	hits := make([]Intersection, 0, len(distances))
	for _, d := range distances {
		hits = append(hits, NewIntersection(nil, ray, d))
	}
	return hits
}

func TestNearest(t *testing.T) {
	_, ok := Nearest(nil)
	assert.False(t, ok)

	nearest, ok := Nearest(hitsAt(4, 1.5, 3))
	require.True(t, ok)
	assert.Equal(t, 1.5, nearest.Distance)
	assert.Equal(t, NewVec3(1.5, 0, 0), nearest.Point)
}

func TestMinDistance(t *testing.T) {
	assert.Equal(t, 10.0, MinDistance(nil, 10))
	assert.Equal(t, 2.0, MinDistance(hitsAt(5, 2), 10))
	assert.Equal(t, 1.0, MinDistance(hitsAt(5, 2), 1))
}

func TestWithin(t *testing.T) {
	hits := hitsAt(1, 5, 2, 9)

	within := Within(hits, 5)
	require.Len(t, within, 2)
	assert.Equal(t, 1.0, within[0].Distance)
	assert.Equal(t, 2.0, within[1].Distance)

	assert.Nil(t, Within(hits, 0.5))
}

func TestSortByDistance(t *testing.T) {
	hits := hitsAt(3, 1, 2)
	sorted := SortByDistance(hits)

	assert.Equal(t, []float64{1, 2, 3}, distances(sorted))
	assert.Equal(t, []float64{3, 1, 2}, distances(hits), "input must not be reordered")
}

func TestAppend_RangeContract(t *testing.T) {
	ray := MustRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	var hits []Intersection
	hits = Append(hits, nil, ray, -1, 10)
	hits = Append(hits, nil, ray, 0, 10)
	hits = Append(hits, nil, ray, 10, 10)
	assert.Empty(t, hits)

	hits = Append(hits, nil, ray, 4, 10)
	require.Len(t, hits, 1)
	assert.Equal(t, NewVec3(0, 0, 4), hits[0].Point)
}

func distances(hits []Intersection) []float64 {
	out := make([]float64, len(hits))
	for i, hit := range hits {
		out[i] = hit.Distance
	}
	return out
}
