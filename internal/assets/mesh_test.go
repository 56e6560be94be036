package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestReadMeshLayout(t *testing.T) {
	var buf bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&buf, le, uint32(3))
	binary.Write(&buf, le, []float32{
		0, 0, 0, 0, 1, 0,
		1, 0, 0, 0, 1, 0,
		0, 0, 1, 0, 1, 0,
	})
	binary.Write(&buf, le, uint32(3))
	binary.Write(&buf, le, []uint32{0, 2, 1})
	binary.Write(&buf, le, uint32(1))
	binary.Write(&buf, le, []uint32{0, 3})

	m, err := ReadMesh(&buf)
	if err != nil {
		t.Fatalf("ReadMesh failed: %v", err)
	}
	if len(m.Vertices) != 3 {
		t.Fatalf("Expected 3 vertices, got %d", len(m.Vertices))
	}
	if m.Vertices[1].Position != (rl.Vector3{X: 1}) {
		t.Errorf("Unexpected vertex 1 position %v", m.Vertices[1].Position)
	}
	if m.Vertices[2].Normal != (rl.Vector3{Y: 1}) {
		t.Errorf("Unexpected vertex 2 normal %v", m.Vertices[2].Normal)
	}
	if m.Indices[1] != 2 {
		t.Errorf("Expected index 1 = 2, got %d", m.Indices[1])
	}
	if len(m.Submeshes) != 1 || m.Submeshes[0].IndexCount != 3 {
		t.Errorf("Unexpected submeshes %+v", m.Submeshes)
	}
}

func TestWriteReadMesh(t *testing.T) {
	src := planeMesh()
	var buf bytes.Buffer
	if err := WriteMesh(&buf, src); err != nil {
		t.Fatalf("WriteMesh failed: %v", err)
	}
	got, err := ReadMesh(&buf)
	if err != nil {
		t.Fatalf("ReadMesh failed: %v", err)
	}
	if len(got.Vertices) != len(src.Vertices) || len(got.Indices) != len(src.Indices) || len(got.Submeshes) != len(src.Submeshes) {
		t.Errorf("Size mismatch after round trip")
	}
	if got.Vertices[0] != src.Vertices[0] {
		t.Errorf("Expected %v, got %v", src.Vertices[0], got.Vertices[0])
	}
}

func TestReadMeshTruncated(t *testing.T) {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(2))
	binary.Write(&buf, binary.LittleEndian, []float32{0, 0, 0})

	if _, err := ReadMesh(&buf); err == nil {
		t.Error("Expected error for truncated vertex data")
	}
}

func TestReadMeshIndexOutOfRange(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{{}, {}, {}},
		Indices:  []uint32{0, 1, 7},
	}
	var buf bytes.Buffer
	WriteMesh(&buf, m)

	_, err := ReadMesh(&buf)
	if !errors.Is(err, ErrInvalidMesh) {
		t.Errorf("Expected ErrInvalidMesh, got %v", err)
	}
}

func TestMeshParts(t *testing.T) {
	m := &Mesh{Indices: []uint32{0, 1, 2, 0, 2, 3}}
	parts := m.Parts()
	if len(parts) != 1 || parts[0].IndexCount != 6 {
		t.Errorf("Expected one part over 6 indices, got %+v", parts)
	}
}
