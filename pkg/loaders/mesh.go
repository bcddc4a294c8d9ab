package loaders

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
	"github.com/df07/raycore/pkg/log"
	"github.com/pkg/errors"
)

var loaderLogger = log.New("loaders")

var (
	ErrUnsupportedFormat = errors.New("loaders: unsupported format")
	ErrMalformedMesh     = errors.New("loaders: malformed mesh")
)

// Mesh is an indexed triangle mesh
type Mesh struct {
	Name     string
	Vertices []core.Vec3
	Faces    [][3]int // Vertex indices, counter-clockwise seen from the front
}

// Load reads a mesh file, choosing the format by extension (.ply or .stl)
func Load(path string) (*Mesh, error) {
	start := time.Now()

	var (
		mesh *Mesh
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ply":
		mesh, err = LoadPLY(path)
	case ".stl":
		mesh, err = LoadSTL(path)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
	if err != nil {
		return nil, err
	}

	loaderLogger.Infof("loaded %s: %d vertices, %d triangles in %v",
		filepath.Base(path), len(mesh.Vertices), len(mesh.Faces), time.Since(start))
	return mesh, nil
}

// Triangles builds one triangle per face. Degenerate faces are skipped and
// counted; an out of range vertex index is an error.
func (m *Mesh) Triangles() ([]core.Shape, int, error) {
	shapes := make([]core.Shape, 0, len(m.Faces))
	skipped := 0
	for i, face := range m.Faces {
		for _, index := range face {
			if index < 0 || index >= len(m.Vertices) {
				return nil, 0, errors.Wrapf(ErrMalformedMesh, "face %d: vertex index %d out of range", i, index)
			}
		}

		triangle, err := geometry.NewTriangle(m.Vertices[face[0]], m.Vertices[face[1]], m.Vertices[face[2]])
		if errors.Is(err, core.ErrDegenerateVector) {
			skipped++
			continue
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "face %d", i)
		}
		shapes = append(shapes, triangle)
	}

	if skipped > 0 {
		loaderLogger.Warningf("skipped %d degenerate faces of %d", skipped, len(m.Faces))
	}
	return shapes, skipped, nil
}
