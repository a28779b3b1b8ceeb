package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
)

// OBJ format errors.
var (
	ErrInvalidOBJRecord = errors.New("invalid OBJ record")
	ErrOBJIndexRange    = errors.New("OBJ vertex index out of range")
)

// OBJ represents the geometry of a parsed Wavefront OBJ file.
// Texture coordinates, normals, groups and materials are skipped.
type OBJ struct {
	Name     string
	Vertices []m.Vec3
	// Faces holds zero-based vertex indices per polygon.
	Faces [][]int
}

// ParseOBJ parses OBJ text from r.
func ParseOBJ(r io.Reader) (*OBJ, error) {
	obj := &OBJ{}
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = obj.parseVertex(fields[1:])
		case "f":
			err = obj.parseFace(fields[1:])
		case "o":
			obj.Name = strings.Join(fields[1:], " ")
		default:
			// vt, vn, g, s, usemtl, mtllib, l, ...
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	for i, face := range obj.Faces {
		for _, v := range face {
			if v < 0 || v >= len(obj.Vertices) {
				return nil, fmt.Errorf("%w: face %d uses vertex %d of %d", ErrOBJIndexRange, i, v+1, len(obj.Vertices))
			}
		}
	}

	return obj, nil
}

// ParseOBJBytes parses OBJ text from raw bytes.
func ParseOBJBytes(data []byte) (*OBJ, error) {
	return ParseOBJ(bytes.NewReader(data))
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

func (o *OBJ) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrInvalidOBJRecord, len(fields))
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("%w: vertex coordinate %q", ErrInvalidOBJRecord, fields[i])
		}
		xyz[i] = f
	}
	o.Vertices = append(o.Vertices, m.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]})
	return nil
}

// parseFace reads "f v1 v2 v3 ..." where each vertex may be v, v/vt,
// v//vn or v/vt/vn. Negative indices count back from the latest vertex.
func (o *OBJ) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: face needs 3 vertices, got %d", ErrInvalidOBJRecord, len(fields))
	}
	face := make([]int, len(fields))
	for i, field := range fields {
		ref, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(ref)
		if err != nil || idx == 0 {
			return fmt.Errorf("%w: face vertex %q", ErrInvalidOBJRecord, field)
		}
		if idx < 0 {
			idx += len(o.Vertices)
		} else {
			idx--
		}
		face[i] = idx
	}
	o.Faces = append(o.Faces, face)
	return nil
}

// TriangleCount returns the number of triangles after fan triangulation.
func (o *OBJ) TriangleCount() int {
	count := 0
	for _, face := range o.Faces {
		count += len(face) - 2
	}
	return count
}

// Indices returns the faces fan-triangulated into a flat index list.
func (o *OBJ) Indices() []int {
	indices := make([]int, 0, o.TriangleCount()*3)
	for _, face := range o.Faces {
		for i := 1; i+1 < len(face); i++ {
			indices = append(indices, face[0], face[i], face[i+1])
		}
	}
	return indices
}

// Mesh builds a mesh from the parsed geometry.
func (o *OBJ) Mesh(opts ...mesh.Option) (*mesh.Mesh, error) {
	return mesh.New(o.Vertices, o.Indices(), opts...)
}
