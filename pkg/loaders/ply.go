package loaders

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// PLYHeader represents the parsed header of a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is an element declaration and its properties, in file order
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type of a list
	IsList   bool
	ListType string // For list properties, the type of the count
}

// LoadPLY reads the vertex positions and faces of a PLY file
func LoadPLY(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open PLY file")
	}
	defer file.Close()

	return ParsePLY(bufio.NewReaderSize(file, 1024*1024))
}

// ParsePLY parses a PLY stream. Polygonal faces are split into triangle fans
// and elements other than vertex and face are skipped.
func ParsePLY(r *bufio.Reader) (*Mesh, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, errors.Wrap(err, "PLY header")
	}

	var values plyReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(r)
		scanner.Split(bufio.ScanWords)
		values = &asciiReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: r, order: binary.BigEndian}
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "PLY format %q", header.Format)
	}

	mesh := &Mesh{}
	for _, element := range header.Elements {
		switch element.Name {
		case "vertex":
			err = mesh.readPLYVertices(values, element)
		case "face":
			err = mesh.readPLYFaces(values, element)
		default:
			err = skipPLYElement(values, element)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "PLY element %s", element.Name)
		}
	}
	return mesh, nil
}

// parsePLYHeader reads header lines up to and including end_header
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	first := true

	for {
		raw, err := r.ReadString('\n')
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedMesh, "missing end_header: %v", err)
		}
		parts := strings.Fields(raw)

		if first {
			if len(parts) != 1 || parts[0] != "ply" {
				return nil, errors.Wrap(ErrMalformedMesh, "missing ply magic number")
			}
			first = false
			continue
		}
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, errors.Wrap(ErrMalformedMesh, "missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, errors.Wrapf(ErrMalformedMesh, "invalid format line %q", strings.TrimSpace(raw))
			}
			header.Format, header.Version = parts[1], parts[2]
		case "comment", "obj_info":
			// Ignore comments
		case "element":
			if len(parts) < 3 {
				return nil, errors.Wrapf(ErrMalformedMesh, "invalid element line %q", strings.TrimSpace(raw))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, errors.Wrapf(ErrMalformedMesh, "invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, errors.Wrap(ErrMalformedMesh, "property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		default:
			return nil, errors.Wrapf(ErrMalformedMesh, "unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses the fields after "property"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, errors.Wrap(ErrMalformedMesh, "invalid list property definition")
		}
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) < 2 {
		return PLYProperty{}, errors.Wrap(ErrMalformedMesh, "invalid property definition")
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func (m *Mesh) readPLYVertices(values plyReader, element PLYElement) error {
	axes := map[string]int{"x": 0, "y": 1, "z": 2}
	found := 0
	for _, prop := range element.Properties {
		if _, ok := axes[prop.Name]; ok && !prop.IsList {
			found++
		}
	}
	if found != 3 {
		return errors.Wrap(ErrMalformedMesh, "vertex needs x, y and z properties")
	}

	m.Vertices = make([]core.Vec3, 0, preallocated(element.Count))
	for i := 0; i < element.Count; i++ {
		var xyz [3]float64
		for _, prop := range element.Properties {
			if prop.IsList {
				if _, err := readPLYList(values, prop); err != nil {
					return errors.Wrapf(err, "vertex %d", i)
				}
				continue
			}
			value, err := values.scalar(prop.Type)
			if err != nil {
				return errors.Wrapf(err, "vertex %d property %s", i, prop.Name)
			}
			if axis, ok := axes[prop.Name]; ok {
				xyz[axis] = value
			}
		}
		m.Vertices = append(m.Vertices, core.NewVec3(xyz[0], xyz[1], xyz[2]))
	}
	return nil
}

func (m *Mesh) readPLYFaces(values plyReader, element PLYElement) error {
	m.Faces = make([][3]int, 0, preallocated(element.Count))
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList {
				if _, err := values.scalar(prop.Type); err != nil {
					return errors.Wrapf(err, "face %d property %s", i, prop.Name)
				}
				continue
			}

			indices, err := readPLYList(values, prop)
			if err != nil {
				return errors.Wrapf(err, "face %d", i)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(indices) < 3 {
				return errors.Wrapf(ErrMalformedMesh, "face %d has %d vertices", i, len(indices))
			}

			// Triangle fan around the first vertex
			for k := 1; k+1 < len(indices); k++ {
				m.Faces = append(m.Faces, [3]int{int(indices[0]), int(indices[k]), int(indices[k+1])})
			}
		}
	}
	return nil
}

func skipPLYElement(values plyReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			var err error
			if prop.IsList {
				_, err = readPLYList(values, prop)
			} else {
				_, err = values.scalar(prop.Type)
			}
			if err != nil {
				return errors.Wrapf(err, "item %d property %s", i, prop.Name)
			}
		}
	}
	return nil
}

func readPLYList(values plyReader, prop PLYProperty) ([]float64, error) {
	count, err := values.scalar(prop.ListType)
	if err != nil {
		return nil, err
	}
	if count < 0 || count != math.Trunc(count) {
		return nil, errors.Wrapf(ErrMalformedMesh, "invalid list length %v", count)
	}

	n := int(count)
	items := make([]float64, 0, preallocated(n))
	for i := 0; i < n; i++ {
		item, err := values.scalar(prop.Type)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// maxPreallocated bounds capacity taken on trust from header or list counts;
// a corrupt count then fails on missing data instead of exhausting memory
const maxPreallocated = 1 << 16

func preallocated(count int) int {
	return min(count, maxPreallocated)
}

// plyReader reads one scalar of a PLY type as float64
type plyReader interface {
	scalar(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
}

func (a *asciiReader) scalar(dataType string) (float64, error) {
	if getTypeSize(dataType) == 0 {
		return 0, errors.Wrapf(ErrUnsupportedFormat, "data type %q", dataType)
	}
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, errors.Wrap(ErrMalformedMesh, "unexpected end of data")
	}
	value, err := strconv.ParseFloat(a.scanner.Text(), 64)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedMesh, "%v", err)
	}
	return value, nil
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) scalar(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, errors.Wrapf(ErrUnsupportedFormat, "data type %q", dataType)
	}
	data := b.buf[:size]
	if _, err := io.ReadFull(b.r, data); err != nil {
		return 0, errors.Wrapf(ErrMalformedMesh, "unexpected end of data: %v", err)
	}

	switch dataType {
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(data))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(data)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(data))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(data)), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(data))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(data)), nil
	case "char", "int8":
		return float64(int8(data[0])), nil
	default: // uchar, uint8
		return float64(data[0]), nil
	}
}

// getTypeSize returns the size in bytes of a PLY scalar type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "double", "float64":
		return 8
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 0
	}
}
