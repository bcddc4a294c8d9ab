package scene

import (
	"math"

	"github.com/df07/raycore/pkg/core"
)

// SphereGridConfig describes a ground plane with a gridSize x gridSize grid
// of spheres resting on it, scaled to fit a 9x9 area centered on x=z=4.5
func SphereGridConfig(gridSize int) Config {
	config := Config{Accelerator: AcceleratorBVH}

	// Ground plane
	config.Shapes = append(config.Shapes, ShapeConfig{
		Type:   "plane",
		Point:  Vector{0, 0, 0},
		Normal: Vector{0, 1, 0},
	})

	if gridSize < 1 {
		return config
	}

	targetArea := 9.0
	spacing := targetArea
	if gridSize > 1 {
		spacing = targetArea / float64(gridSize-1)
	}

	// Scale sphere radius with spacing, but keep it in a reasonable range
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			config.Shapes = append(config.Shapes, ShapeConfig{
				Type:   "sphere",
				Center: vectorOf(core.NewVec3(x, sphereRadius, z)),
				Radius: sphereRadius,
			})
		}
	}
	return config
}

// NewSphereGridScene builds the scene described by SphereGridConfig
func NewSphereGridScene(gridSize int) (*Scene, error) {
	return SphereGridConfig(gridSize).Build()
}
