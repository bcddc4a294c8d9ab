package geometry

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

// Kind enumerates the closed set of shape variants in this package
type Kind int

const (
	KindUnknown Kind = iota
	KindPlane
	KindSphere
	KindTriangle
	KindPolygon
	KindTube
	KindCylinder
	KindAggregate
	KindBVHNode
)

var kindNames = map[Kind]string{
	KindUnknown:   "unknown",
	KindPlane:     "plane",
	KindSphere:    "sphere",
	KindTriangle:  "triangle",
	KindPolygon:   "polygon",
	KindTube:      "tube",
	KindCylinder:  "cylinder",
	KindAggregate: "aggregate",
	KindBVHNode:   "bvh",
}

// String returns the lower-case variant name
func (k Kind) String() string {
	return kindNames[k]
}

// KindOf returns the variant of a shape, or KindUnknown for shapes defined
// outside this package
func KindOf(shape core.Shape) Kind {
	switch shape.(type) {
	case *Plane:
		return KindPlane
	case *Sphere:
		return KindSphere
	case *Triangle:
		return KindTriangle
	case *Polygon:
		return KindPolygon
	case *Tube:
		return KindTube
	case *Cylinder:
		return KindCylinder
	case *Aggregate:
		return KindAggregate
	case *BVHNode:
		return KindBVHNode
	default:
		return KindUnknown
	}
}

// AxisAlignment describes which coordinate axis a unit vector lies along
type AxisAlignment int

const (
	NotAxisAligned AxisAlignment = iota
	XAxisAligned
	YAxisAligned
	ZAxisAligned
)

const alignmentTolerance = 1e-12

// getAxisAlignment reports the axis a unit vector points along (either sign)
func getAxisAlignment(v core.Vec3) AxisAlignment {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case ay < alignmentTolerance && az < alignmentTolerance && ax > 0:
		return XAxisAligned
	case ax < alignmentTolerance && az < alignmentTolerance && ay > 0:
		return YAxisAligned
	case ax < alignmentTolerance && ay < alignmentTolerance && az > 0:
		return ZAxisAligned
	default:
		return NotAxisAligned
	}
}
