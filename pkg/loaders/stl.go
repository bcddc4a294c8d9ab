package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/df07/raycore/pkg/core"
	"github.com/pkg/errors"
)

// LoadSTL reads an ASCII or binary STL file. Facet normals are ignored;
// every facet gets its own three vertices.
func LoadSTL(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open STL file")
	}
	defer file.Close()

	return ParseSTL(bufio.NewReader(file))
}

// ParseSTL detects the STL flavour from the first bytes and parses it
func ParseSTL(r *bufio.Reader) (*Mesh, error) {
	// Binary files may also start with "solid", so ASCII additionally needs
	// a facet keyword near the start
	head, _ := r.Peek(512)
	if bytes.HasPrefix(head, []byte("solid")) && bytes.Contains(head, []byte("facet")) {
		return parseASCIISTL(r)
	}
	return parseBinarySTL(r)
}

func parseASCIISTL(r io.Reader) (*Mesh, error) {
	scanner := bufio.NewScanner(r)
	mesh := &Mesh{}

	var facet []core.Vec3
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			mesh.Name = strings.Join(fields[1:], " ")

		case "vertex":
			if len(fields) != 4 {
				return nil, errors.Wrapf(ErrMalformedMesh, "line %d: vertex needs 3 coordinates", line)
			}
			var xyz [3]float64
			for i := range xyz {
				value, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(ErrMalformedMesh, "line %d: %v", line, err)
				}
				xyz[i] = value
			}
			facet = append(facet, core.NewVec3(xyz[0], xyz[1], xyz[2]))

		case "endfacet":
			if len(facet) != 3 {
				return nil, errors.Wrapf(ErrMalformedMesh, "line %d: facet has %d vertices", line, len(facet))
			}
			mesh.addFacet(facet[0], facet[1], facet[2])
			facet = facet[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read ASCII STL")
	}
	return mesh, nil
}

// stlFacet is the on-disk layout of a binary STL triangle
type stlFacet struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

func parseBinarySTL(r io.Reader) (*Mesh, error) {
	header := make([]byte, 80)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrapf(ErrMalformedMesh, "binary STL header: %v", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrapf(ErrMalformedMesh, "binary STL triangle count: %v", err)
	}

	mesh := &Mesh{Name: string(bytes.TrimRight(header, "\x00 "))}
	for i := uint32(0); i < count; i++ {
		var facet stlFacet
		if err := binary.Read(r, binary.LittleEndian, &facet); err != nil {
			return nil, errors.Wrapf(ErrMalformedMesh, "triangle %d of %d: %v", i, count, err)
		}

		var v [3]core.Vec3
		for j, xyz := range facet.Vertices {
			v[j] = core.NewVec3(float64(xyz[0]), float64(xyz[1]), float64(xyz[2]))
		}
		mesh.addFacet(v[0], v[1], v[2])
	}
	return mesh, nil
}

func (m *Mesh) addFacet(a, b, c core.Vec3) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, a, b, c)
	m.Faces = append(m.Faces, [3]int{base, base + 1, base + 2})
}
