package caster

import (
	"math"
	"math/rand"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// RandomRays returns count rays that start in box grown by its diagonal (at
// least 1) on every side and aim at uniformly chosen points inside box
func RandomRays(rng *rand.Rand, box core.AABB, count int) ([]core.Ray, error) {
	if count < 0 {
		return nil, errors.Errorf("ray count %d is negative", count)
	}
	if !box.IsValid() {
		return nil, errors.Wrap(core.ErrEmptyInput, "random rays need a bounded box")
	}

	outer := box.Expand(math.Max(box.Size().Length(), 1))
	rays := make([]core.Ray, 0, count)
	for len(rays) < count {
		origin := randomPoint(rng, outer)
		ray, err := core.NewRay(origin, randomPoint(rng, box).Subtract(origin))
		if err != nil {
			continue
		}
		rays = append(rays, ray)
	}
	return rays, nil
}

func randomPoint(rng *rand.Rand, box core.AABB) core.Vec3 {
	size := box.Size()
	return box.Min.Add(core.NewVec3(
		rng.Float64()*size.X,
		rng.Float64()*size.Y,
		rng.Float64()*size.Z,
	))
}
