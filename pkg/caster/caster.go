package caster

import (
	"context"
	"math"
	"time"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var casterLogger = log.New("caster")

// Target is anything rays can be cast against. A built scene or BVH is safe
// to share between workers.
type Target interface {
	Intersect(ray core.Ray, maxDistance float64) []core.Intersection
	Nearest(ray core.Ray, maxDistance float64) (core.Intersection, bool)
}

// Options controls a batch cast
type Options struct {
	Workers     int     // Worker goroutines; <= 0 uses one per CPU
	MaxDistance float64 // Exclusive upper bound on hit distance; <= 0 means unbounded
	NearestOnly bool    // Keep only the closest hit of each ray
}

// Result holds the hits of one ray of a batch
type Result struct {
	Index int
	Ray   core.Ray
	Hits  []core.Intersection
}

// Stats summarizes a batch
type Stats struct {
	Rays      int
	HitRays   int // Rays with at least one hit
	TotalHits int
	Workers   int
	Elapsed   time.Duration
}

// RaysPerSecond returns the batch throughput
func (s Stats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Elapsed.Seconds()
}

// Cast casts every ray against target and returns the results in input
// order. When ctx is cancelled the batch stops early and the context error
// is returned.
func Cast(ctx context.Context, target Target, rays []core.Ray, options Options) ([]Result, Stats, error) {
	if options.MaxDistance <= 0 {
		options.MaxDistance = math.Inf(1)
	}

	start := time.Now()
	results := make([]Result, len(rays))

	pool := NewWorkerPool(target, options, options.Workers)
	pool.Start(ctx, results)
	for i, ray := range rays {
		if !pool.SubmitTask(ctx, RayTask{Index: i, Ray: ray}) {
			break
		}
	}
	pool.Stop()

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, errors.Wrap(err, "cast")
	}

	stats := Stats{
		Rays: len(rays),
		HitRays: lo.CountBy(results, func(r Result) bool {
			return len(r.Hits) > 0
		}),
		TotalHits: lo.SumBy(results, func(r Result) int {
			return len(r.Hits)
		}),
		Workers: pool.GetNumWorkers(),
		Elapsed: time.Since(start),
	}

	casterLogger.Infof("cast %d rays on %d workers in %s: %d hit, %d intersections",
		stats.Rays, stats.Workers, stats.Elapsed, stats.HitRays, stats.TotalHits)
	return results, stats, nil
}
