package scene

import (
	"io"
	"os"
	"path/filepath"

	"github.com/df07/raycore/pkg/core"
	"github.com/df07/raycore/pkg/geometry"
	"github.com/df07/raycore/pkg/loaders"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Vector is a YAML [x, y, z] sequence
type Vector []float64

// Vec3 converts v, which must have exactly three components
func (v Vector) Vec3() (core.Vec3, error) {
	if len(v) != 3 {
		return core.Vec3{}, errors.Errorf("vector needs 3 components, got %d", len(v))
	}
	return core.NewVec3(v[0], v[1], v[2]), nil
}

func vectorOf(v core.Vec3) Vector {
	return Vector{v.X, v.Y, v.Z}
}

// Config is the YAML description of a scene
type Config struct {
	Accelerator Accelerator   `yaml:"accelerator,omitempty"`
	Shapes      []ShapeConfig `yaml:"shapes"`

	BaseDir string `yaml:"-"` // Mesh files are resolved against this directory
}

// ShapeConfig describes a single shape. Which fields are used depends on Type.
type ShapeConfig struct {
	Type      string   `yaml:"type"`
	Point     Vector   `yaml:"point,omitempty"`     // plane
	Normal    Vector   `yaml:"normal,omitempty"`    // plane
	Points    []Vector `yaml:"points,omitempty"`    // plane through three points
	Center    Vector   `yaml:"center,omitempty"`    // sphere
	Radius    float64  `yaml:"radius,omitempty"`    // sphere, tube, cylinder
	Origin    Vector   `yaml:"origin,omitempty"`    // tube, cylinder
	Direction Vector   `yaml:"direction,omitempty"` // tube, cylinder
	Height    float64  `yaml:"height,omitempty"`    // cylinder
	Vertices  []Vector `yaml:"vertices,omitempty"`  // triangle, polygon
	File      string   `yaml:"file,omitempty"`      // mesh (.ply or .stl)
}

// Load reads and builds the scene described by the YAML file at path
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open scene")
	}
	defer f.Close()

	config, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}

	config.BaseDir = filepath.Dir(path)
	s, err := config.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "scene %s", path)
	}
	return s, nil
}

// Parse decodes a YAML scene description and builds its shapes. Mesh files
// are resolved against the working directory.
func Parse(r io.Reader) (*Scene, error) {
	config, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

// Decode reads a YAML scene description. Unknown fields are rejected.
func Decode(r io.Reader) (Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var config Config
	if err := decoder.Decode(&config); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, ErrEmptyScene
		}
		return Config{}, errors.Wrap(err, "decode scene")
	}
	return config, nil
}

// Build validates the description and constructs its shapes
func (c Config) Build() (*Scene, error) {
	if len(c.Shapes) == 0 {
		return nil, ErrEmptyScene
	}

	accelerator := c.Accelerator
	if accelerator == "" {
		accelerator = AcceleratorBVH
	}
	if !lo.Contains([]Accelerator{AcceleratorBVH, AcceleratorAggregate}, accelerator) {
		return nil, errors.Wrapf(ErrUnknownAccelerator, "%q", accelerator)
	}

	shapes := make([]core.Shape, 0, len(c.Shapes))
	for i, sc := range c.Shapes {
		if sc.Type == "mesh" {
			triangles, err := c.loadMesh(sc)
			if err != nil {
				return nil, errors.Wrapf(err, "shape %d (%s)", i, sc.Type)
			}
			shapes = append(shapes, triangles...)
			continue
		}

		shape, err := sc.Build()
		if err != nil {
			return nil, errors.Wrapf(err, "shape %d (%s)", i, sc.Type)
		}
		shapes = append(shapes, shape)
	}

	sceneLogger.Debugf("loaded %d shapes", len(shapes))
	return New(accelerator, shapes...), nil
}

// loadMesh reads a mesh file into one triangle per face
func (c Config) loadMesh(sc ShapeConfig) ([]core.Shape, error) {
	if sc.File == "" {
		return nil, errors.Wrapf(ErrMissingField, "%q", "file")
	}
	path := sc.File
	if !filepath.IsAbs(path) && c.BaseDir != "" {
		path = filepath.Join(c.BaseDir, path)
	}

	mesh, err := loaders.Load(path)
	if err != nil {
		return nil, err
	}
	triangles, _, err := mesh.Triangles()
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if len(triangles) == 0 {
		return nil, errors.Wrapf(ErrEmptyScene, "mesh %s has no usable faces", path)
	}
	return triangles, nil
}

// Build constructs the shape described by sc. Meshes expand to many shapes
// and are handled by Config.Build.
func (sc ShapeConfig) Build() (core.Shape, error) {
	switch sc.Type {
	case "plane":
		if len(sc.Points) > 0 {
			points, err := vectors("points", sc.Points, 3)
			if err != nil {
				return nil, err
			}
			return geometry.NewPlaneFromPoints(points[0], points[1], points[2])
		}
		point, err := required("point", sc.Point)
		if err != nil {
			return nil, err
		}
		normal, err := required("normal", sc.Normal)
		if err != nil {
			return nil, err
		}
		return geometry.NewPlane(point, normal)

	case "sphere":
		center, err := required("center", sc.Center)
		if err != nil {
			return nil, err
		}
		return geometry.NewSphere(center, sc.Radius)

	case "triangle":
		vertices, err := vectors("vertices", sc.Vertices, 3)
		if err != nil {
			return nil, err
		}
		return geometry.NewTriangle(vertices[0], vertices[1], vertices[2])

	case "polygon":
		vertices, err := vectors("vertices", sc.Vertices, 0)
		if err != nil {
			return nil, err
		}
		return geometry.NewPolygon(vertices...)

	case "tube", "cylinder":
		axis, err := sc.axis()
		if err != nil {
			return nil, err
		}
		if sc.Type == "tube" {
			return geometry.NewTube(axis, sc.Radius)
		}
		return geometry.NewCylinder(axis, sc.Radius, sc.Height)

	default:
		return nil, errors.Wrapf(ErrUnknownShapeType, "%q", sc.Type)
	}
}

func (sc ShapeConfig) axis() (core.Ray, error) {
	origin, err := required("origin", sc.Origin)
	if err != nil {
		return core.Ray{}, err
	}
	direction, err := required("direction", sc.Direction)
	if err != nil {
		return core.Ray{}, err
	}
	return core.NewRay(origin, direction)
}

func required(name string, v Vector) (core.Vec3, error) {
	if v == nil {
		return core.Vec3{}, errors.Wrapf(ErrMissingField, "%q", name)
	}
	vec, err := v.Vec3()
	return vec, errors.Wrapf(err, "%q", name)
}

// vectors converts a list of vectors; count 0 accepts any length
func vectors(name string, list []Vector, count int) ([]core.Vec3, error) {
	if len(list) == 0 {
		return nil, errors.Wrapf(ErrMissingField, "%q", name)
	}
	if count > 0 && len(list) != count {
		return nil, errors.Wrapf(core.ErrInvalidShapeConfiguration, "%q needs %d entries, got %d", name, count, len(list))
	}

	result := make([]core.Vec3, len(list))
	for i, v := range list {
		vec, err := v.Vec3()
		if err != nil {
			return nil, errors.Wrapf(err, "%q[%d]", name, i)
		}
		result[i] = vec
	}
	return result, nil
}

// Marshal writes the description of c as YAML
func (c Config) Marshal(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return errors.Wrap(err, "encode scene")
	}
	return encoder.Close()
}
