package geometry

import (
	"sort"
	"time"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/log"
	"github.com/pkg/errors"
)

var bvhLogger = log.New("bvh")

// BVHNode represents a node in the Bounding Volume Hierarchy. Each child is
// either another *BVHNode or a leaf shape; Right is nil only for a tree built
// from a single shape. The node's box is the union of its children's boxes.
type BVHNode struct {
	box   core.AABB
	left  core.Shape
	right core.Shape
}

// NewBVH constructs a BVH from a slice of shapes. The slice is not modified.
func NewBVH(shapes []core.Shape) (*BVHNode, error) {
	if len(shapes) == 0 {
		return nil, errors.Wrap(core.ErrEmptyInput, "bvh")
	}

	// The build reorders shapes in place, so it works on a private copy and
	// hands each recursive call a disjoint sub-slice of it.
	shapesCopy := make([]core.Shape, len(shapes))
	copy(shapesCopy, shapes)

	start := time.Now()
	root := buildBVH(shapesCopy)

	if log.Enabled(log.Debug) {
		stats := root.Stats()
		bvhLogger.Debugf(
			"BVH build time: %s, shapes: %d, nodes: %d, maxDepth: %d",
			time.Since(start), stats.TotalShapes, stats.TotalNodes, stats.MaxDepth,
		)
	}
	return root, nil
}

// MustBVH is like NewBVH but panics on empty input
func MustBVH(shapes ...core.Shape) *BVHNode {
	root, err := NewBVH(shapes)
	if err != nil {
		panic(err)
	}
	return root
}

// buildBVH recursively builds the tree using an object median split along
// the longest axis. shapes must not be empty.
func buildBVH(shapes []core.Shape) *BVHNode {
	switch len(shapes) {
	case 1:
		return &BVHNode{box: shapes[0].BoundingBox(), left: shapes[0]}
	case 2:
		return &BVHNode{
			box:   shapes[0].BoundingBox().Union(shapes[1].BoundingBox()),
			left:  shapes[0],
			right: shapes[1],
		}
	}

	boundingBox := core.EmptyAABB()
	for _, shape := range shapes {
		boundingBox = boundingBox.Union(shape.BoundingBox())
	}

	sortShapesByAxis(shapes, boundingBox.LongestAxis())

	// Split in the middle; the left half gets the floor for odd sizes
	mid := len(shapes) / 2
	left := buildChild(shapes[:mid])
	right := buildChild(shapes[mid:])

	return &BVHNode{
		box:   left.BoundingBox().Union(right.BoundingBox()),
		left:  left,
		right: right,
	}
}

// buildChild returns a lone shape as a leaf instead of wrapping it in a node
func buildChild(shapes []core.Shape) core.Shape {
	if len(shapes) == 1 {
		return shapes[0]
	}
	return buildBVH(shapes)
}

// sortShapesByAxis sorts shapes by the minimum corner of their bounding box
// along the specified axis
func sortShapesByAxis(shapes []core.Shape, axis core.Axis) {
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].BoundingBox().Min.Component(axis) < shapes[j].BoundingBox().Min.Component(axis)
	})
}

// Intersect returns every hit within maxDistance in the tree. Both subtrees
// are queried with the caller's bound; the result lists left hits before
// right hits and is not sorted by distance.
func (n *BVHNode) Intersect(ray core.Ray, maxDistance float64) []core.Intersection {
	if !n.box.Intersects(ray) {
		return nil
	}

	hits := n.left.Intersect(ray, maxDistance)
	if n.right != nil {
		hits = append(hits, n.right.Intersect(ray, maxDistance)...)
	}
	return hits
}

// IntersectPruned queries the left subtree, tightens maxDistance to its
// nearest hit, then queries the right subtree with the tighter bound. Hits
// farther than a nearer left hit may be dropped from the right side, so the
// result always contains the nearest hit but not necessarily every hit.
func (n *BVHNode) IntersectPruned(ray core.Ray, maxDistance float64) []core.Intersection {
	if !n.box.Intersects(ray) {
		return nil
	}

	hits := intersectPruned(n.left, ray, maxDistance)
	if n.right == nil {
		return hits
	}

	maxDistance = core.MinDistance(hits, maxDistance)
	return append(hits, intersectPruned(n.right, ray, maxDistance)...)
}

func intersectPruned(shape core.Shape, ray core.Ray, maxDistance float64) []core.Intersection {
	if node, ok := shape.(*BVHNode); ok {
		return node.IntersectPruned(ray, maxDistance)
	}
	return shape.Intersect(ray, maxDistance)
}

// Nearest returns the closest hit within maxDistance
func (n *BVHNode) Nearest(ray core.Ray, maxDistance float64) (core.Intersection, bool) {
	return core.Nearest(n.IntersectPruned(ray, maxDistance))
}

// BoundingBox returns the union of the children's boxes
func (n *BVHNode) BoundingBox() core.AABB {
	return n.box
}

// Left returns the left child, never nil
func (n *BVHNode) Left() core.Shape {
	return n.left
}

// Right returns the right child, nil for a single-shape tree
func (n *BVHNode) Right() core.Shape {
	return n.right
}
