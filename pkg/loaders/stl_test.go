package loaders

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/raycore/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const asciiSTL = `solid wedge
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 0 0 1
      vertex 1 0 0
    endloop
  endfacet
endsolid wedge
`

func binarySTL(t *testing.T, name string, facets ...[3][3]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, name)
	buf.Write(header)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(facets))))
	for _, f := range facets {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, stlFacet{Vertices: f}))
	}
	return buf.Bytes()
}

func TestParseSTL_ASCII(t *testing.T) {
	mesh, err := ParseSTL(bufio.NewReader(strings.NewReader(asciiSTL)))
	require.NoError(t, err)

	assert.Equal(t, "wedge", mesh.Name)
	require.Len(t, mesh.Vertices, 6)
	assert.Equal(t, [][3]int{{0, 1, 2}, {3, 4, 5}}, mesh.Faces)
	assert.Equal(t, core.NewVec3(0, 0, 1), mesh.Vertices[4])
}

func TestParseSTL_Binary(t *testing.T) {
	// A binary header may start with "solid" too
	data := binarySTL(t, "solid but binary",
		[3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[3][3]float32{{0, 0, 0}, {0, 0, 0}, {0, 1, 0}},
	)

	mesh, err := ParseSTL(bufio.NewReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, "solid but binary", mesh.Name)
	assert.Len(t, mesh.Faces, 2)

	shapes, skipped, err := mesh.Triangles()
	require.NoError(t, err)
	assert.Len(t, shapes, 1)
	assert.Equal(t, 1, skipped)
}

func TestParseSTL_Errors(t *testing.T) {
	_, err := ParseSTL(bufio.NewReader(strings.NewReader("solid x\nfacet normal 0 0 1\nvertex 0 0\nendfacet\n")))
	assert.ErrorIs(t, err, ErrMalformedMesh)

	_, err = ParseSTL(bufio.NewReader(strings.NewReader("solid x\nfacet normal 0 0 1\nvertex 0 0 0\nendfacet\n")))
	assert.ErrorIs(t, err, ErrMalformedMesh)

	truncated := binarySTL(t, "", [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	_, err = ParseSTL(bufio.NewReader(bytes.NewReader(truncated[:len(truncated)-10])))
	assert.ErrorIs(t, err, ErrMalformedMesh)
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wedge.STL")
	require.NoError(t, os.WriteFile(path, []byte(asciiSTL), 0o644))

	mesh, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, mesh.Faces, 2)

	_, err = Load(filepath.Join(dir, "wedge.obj"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestMesh_IndexOutOfRange(t *testing.T) {
	mesh := &Mesh{
		Vertices: []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		Faces:    [][3]int{{0, 1, 3}},
	}
	_, _, err := mesh.Triangles()
	assert.ErrorIs(t, err, ErrMalformedMesh)
}
