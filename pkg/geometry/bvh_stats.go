package geometry

import "github.com/df07/raycore/pkg/core"

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes  int     // Internal nodes, including the root
	LeafShapes  int     // Leaves, one per input shape
	MaxDepth    int     // Depth of the deepest leaf (root children are depth 1)
	AvgDepth    float64 // Mean leaf depth
	TotalShapes int     // Shapes reachable from the root
	ShapeKinds  map[Kind]int
}

// Stats walks the tree and returns statistics about its structure
func (n *BVHNode) Stats() BVHStats {
	stats := BVHStats{ShapeKinds: make(map[Kind]int)}
	collectStats(n, 0, &stats)

	if stats.LeafShapes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafShapes)
	}
	stats.TotalShapes = stats.LeafShapes
	return stats
}

// collectStats recursively collects statistics about the BVH
func collectStats(shape core.Shape, depth int, stats *BVHStats) {
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	node, ok := shape.(*BVHNode)
	if !ok {
		stats.LeafShapes++
		stats.ShapeKinds[KindOf(shape)]++
		stats.AvgDepth += float64(depth) // Accumulate depth for average calculation
		return
	}

	stats.TotalNodes++
	collectStats(node.left, depth+1, stats)
	if node.right != nil {
		collectStats(node.right, depth+1, stats)
	}
}
