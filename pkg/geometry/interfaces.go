package geometry

import "github.com/df07/raycore/pkg/core"

var (
	_ core.Surface = (*Plane)(nil)
	_ core.Surface = (*Sphere)(nil)
	_ core.Surface = (*Triangle)(nil)
	_ core.Surface = (*Polygon)(nil)
	_ core.Surface = (*Tube)(nil)
	_ core.Surface = (*Cylinder)(nil)

	_ core.Shape = (*Aggregate)(nil)
	_ core.Shape = (*BVHNode)(nil)
)
