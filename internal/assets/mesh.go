package assets

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxMeshElements caps every count read from a mesh file.
const maxMeshElements = 1 << 26

var ErrInvalidMesh = errors.New("invalid mesh")

type Vertex struct {
	Position rl.Vector3
	Normal   rl.Vector3
}

// Submesh is a range of the index buffer drawn with one material.
type Submesh struct {
	IndexStart uint32
	IndexCount uint32
}

// Mesh is an indexed triangle list split into submeshes.
type Mesh struct {
	Vertices  []Vertex
	Indices   []uint32
	Submeshes []Submesh
}

// Parts returns the submeshes, or one submesh covering every index when the
// mesh declares none.
func (m *Mesh) Parts() []Submesh {
	if len(m.Submeshes) > 0 {
		return m.Submeshes
	}
	return []Submesh{{IndexStart: 0, IndexCount: uint32(len(m.Indices))}}
}

// Validate checks that indices and submesh ranges stay in bounds.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d = %d, have %d vertices", ErrInvalidMesh, i, idx, len(m.Vertices))
		}
	}
	for i, s := range m.Submeshes {
		if uint64(s.IndexStart)+uint64(s.IndexCount) > uint64(len(m.Indices)) {
			return fmt.Errorf("%w: submesh %d [%d+%d] exceeds %d indices", ErrInvalidMesh, i, s.IndexStart, s.IndexCount, len(m.Indices))
		}
	}
	return nil
}

func readCount(r io.Reader, what string) (uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, fmt.Errorf("read %s count: %w", what, err)
	}
	if n > maxMeshElements {
		return 0, fmt.Errorf("%w: %s count %d too large", ErrInvalidMesh, what, n)
	}
	return n, nil
}

// ReadMesh decodes the little-endian mesh format: vertex count and
// (position, normal) float triples, index count and u32 indices, submesh
// count and (start, count) pairs.
func ReadMesh(r io.Reader) (*Mesh, error) {
	vertexCount, err := readCount(r, "vertex")
	if err != nil {
		return nil, err
	}
	raw := make([]float32, 6*vertexCount)
	if err := binary.Read(r, binary.LittleEndian, raw); err != nil {
		return nil, fmt.Errorf("read vertices: %w", err)
	}
	m := &Mesh{Vertices: make([]Vertex, vertexCount)}
	for i := range m.Vertices {
		f := raw[6*i : 6*i+6]
		m.Vertices[i] = Vertex{
			Position: rl.Vector3{X: f[0], Y: f[1], Z: f[2]},
			Normal:   rl.Vector3{X: f[3], Y: f[4], Z: f[5]},
		}
	}

	indexCount, err := readCount(r, "index")
	if err != nil {
		return nil, err
	}
	m.Indices = make([]uint32, indexCount)
	if err := binary.Read(r, binary.LittleEndian, m.Indices); err != nil {
		return nil, fmt.Errorf("read indices: %w", err)
	}

	submeshCount, err := readCount(r, "submesh")
	if err != nil {
		return nil, err
	}
	ranges := make([]uint32, 2*submeshCount)
	if err := binary.Read(r, binary.LittleEndian, ranges); err != nil {
		return nil, fmt.Errorf("read submeshes: %w", err)
	}
	m.Submeshes = make([]Submesh, submeshCount)
	for i := range m.Submeshes {
		m.Submeshes[i] = Submesh{IndexStart: ranges[2*i], IndexCount: ranges[2*i+1]}
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func ReadMeshFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()
	m, err := ReadMesh(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("mesh %s: %w", path, err)
	}
	return m, nil
}

// WriteMesh encodes m in the format ReadMesh reads.
func WriteMesh(w io.Writer, m *Mesh) error {
	raw := make([]float32, 0, 6*len(m.Vertices))
	for _, v := range m.Vertices {
		raw = append(raw, v.Position.X, v.Position.Y, v.Position.Z, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	ranges := make([]uint32, 0, 2*len(m.Submeshes))
	for _, s := range m.Submeshes {
		ranges = append(ranges, s.IndexStart, s.IndexCount)
	}
	for _, part := range []any{
		uint32(len(m.Vertices)), raw,
		uint32(len(m.Indices)), m.Indices,
		uint32(len(m.Submeshes)), ranges,
	} {
		if err := binary.Write(w, binary.LittleEndian, part); err != nil {
			return fmt.Errorf("write mesh: %w", err)
		}
	}
	return nil
}
