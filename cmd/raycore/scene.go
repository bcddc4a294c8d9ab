package cmd

import (
	"fmt"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/scene"
	"github.com/pkg/errors"
)

// loadScene loads --scene, or generates the sphere grid, and builds its
// accelerator
func loadScene(opts *rootOptions) (*scene.Scene, error) {
	var (
		s   *scene.Scene
		err error
	)
	if opts.scenePath != "" {
		s, err = scene.Load(opts.scenePath)
	} else {
		logger.Infof("no scene given, generating a %dx%d sphere grid", opts.grid, opts.grid)
		s, err = scene.NewSphereGridScene(opts.grid)
	}
	if err != nil {
		return nil, err
	}

	if opts.accelerator != "" {
		s.Accelerator = scene.Accelerator(opts.accelerator)
	}
	if err := s.Preprocess(); err != nil {
		return nil, errors.Wrap(err, "build accelerator")
	}
	return s, nil
}

func formatVec(v core.Vec3) string {
	return fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z)
}

func vecFlag(name string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, errors.Errorf("--%s needs 3 comma separated values, got %d", name, len(values))
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
