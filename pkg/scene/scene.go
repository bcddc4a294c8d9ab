package scene

import (
	"math"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
	"github.com/df07/raycore/pkg/log"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var sceneLogger = log.New("scene")

// Accelerator selects the structure a scene is queried through
type Accelerator string

const (
	AcceleratorBVH       Accelerator = "bvh"
	AcceleratorAggregate Accelerator = "aggregate"
)

// Scene contains the shapes of a scene and the accelerator built over them
type Scene struct {
	Shapes      []core.Shape // Objects in the scene
	Accelerator Accelerator

	root core.Shape // Built by Preprocess
	bvh  *geometry.BVHNode
}

// New creates a scene over shapes. The accelerator is built by Preprocess.
func New(accelerator Accelerator, shapes ...core.Shape) *Scene {
	return &Scene{Shapes: shapes, Accelerator: accelerator}
}

// Preprocess builds the accelerator. It must complete before the scene is
// queried; afterwards the scene is read-only and safe for concurrent queries.
func (s *Scene) Preprocess() error {
	switch s.Accelerator {
	case AcceleratorBVH, "":
		bvh, err := geometry.NewBVH(s.Shapes)
		if err != nil {
			return errors.Wrap(err, "scene")
		}
		s.Accelerator = AcceleratorBVH
		s.root, s.bvh = bvh, bvh
	case AcceleratorAggregate:
		s.root, s.bvh = geometry.NewAggregate(s.Shapes...), nil
	default:
		return errors.Wrapf(ErrUnknownAccelerator, "%q", s.Accelerator)
	}

	sceneLogger.Infof("built %s over %d shapes", s.Accelerator, len(s.Shapes))
	return nil
}

// Root returns the accelerator built by Preprocess, nil before it
func (s *Scene) Root() core.Shape {
	return s.root
}

// BVH returns the hierarchy when the scene uses one
func (s *Scene) BVH() (*geometry.BVHNode, bool) {
	return s.bvh, s.bvh != nil
}

// Intersect returns every hit within maxDistance
func (s *Scene) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	if s.root == nil {
		return nil
	}
	return s.root.Intersect(ray, maxDistance)
}

// Nearest returns the closest hit within maxDistance. A BVH scene uses the
// pruned traversal.
func (s *Scene) Nearest(ray core.Ray, maxDistance float64) (core.Intersection, bool) {
	if s.bvh != nil {
		return s.bvh.Nearest(ray, maxDistance)
	}
	return core.Nearest(s.Intersect(ray, maxDistance))
}

// BoundingBox returns the union of the shapes' boxes
func (s *Scene) BoundingBox() core.AABB {
	return lo.Reduce(s.Shapes, func(box core.AABB, shape core.Shape, _ int) core.AABB {
		return box.Union(shape.BoundingBox())
	}, core.EmptyAABB())
}

// FiniteBounds returns the union of the boxes that are bounded on every
// axis, leaving out planes and oblique tubes. It is empty when no shape is
// bounded.
func (s *Scene) FiniteBounds() core.AABB {
	finite := lo.Filter(s.Shapes, func(shape core.Shape, _ int) bool {
		box := shape.BoundingBox()
		for axis := core.XAxis; axis <= core.ZAxis; axis++ {
			if math.IsInf(box.Min.Component(axis), 0) || math.IsInf(box.Max.Component(axis), 0) {
				return false
			}
		}
		return box.IsValid()
	})
	return New(s.Accelerator, finite...).BoundingBox()
}

// KindCounts returns the number of shapes of each kind
func (s *Scene) KindCounts() map[geometry.Kind]int {
	return lo.CountValuesBy(s.Shapes, geometry.KindOf)
}
