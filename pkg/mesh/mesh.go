// Package mesh stores a triangle mesh together with its per-edge adjacency
// table and exposes triangle-local coordinate frames and cross-edge unfolding.
//
// Triangle i has vertices Triangle(i)[0..2]; edge j of a triangle runs from
// vertex j to vertex j+1 (mod 3). Topology is fixed at construction. Vertex
// positions can be moved with Translate and Scale between walk steps.
package mesh

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshwalk/pkg/geom"
	m "github.com/Faultbox/meshwalk/pkg/math"
)

// Mesh errors.
var (
	ErrInvalidTriangleCount = errors.New("index count is not a multiple of 3")
	ErrOutOfRange           = errors.New("index out of range")
	ErrNonManifoldMesh      = errors.New("edge shared by more than two triangles")
	ErrNotAdjacent          = errors.New("triangles are not adjacent")
	ErrDegenerateGeometry   = geom.ErrDegenerateGeometry
)

// Mesh is an indexed triangle mesh with cached adjacency.
type Mesh struct {
	vertices  []m.Vec3
	triangles [][3]int
	adjacency [][3]int
	log       *zap.Logger
}

// Option configures a Mesh.
type Option func(*Mesh)

// WithLogger sets the logger used for construction diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(mesh *Mesh) {
		if log != nil {
			mesh.log = log
		}
	}
}

// New builds a mesh from a vertex list and a flat triangle index list.
// Every consecutive triple of indices is one triangle. All validation
// problems are reported together.
func New(vertices []m.Vec3, indices []int, opts ...Option) (*Mesh, error) {
	mesh := &Mesh{
		vertices: append([]m.Vec3(nil), vertices...),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(mesh)
	}

	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%d indices: %w", len(indices), ErrInvalidTriangleCount)
	}

	var errs error
	mesh.triangles = make([][3]int, len(indices)/3)
	for i := range mesh.triangles {
		tri := [3]int{indices[3*i], indices[3*i+1], indices[3*i+2]}
		mesh.triangles[i] = tri
		errs = multierr.Append(errs, mesh.validateTriangle(i, tri))
	}
	if errs != nil {
		return nil, errs
	}

	if err := mesh.buildAdjacency(); err != nil {
		return nil, err
	}

	mesh.log.Debug("mesh built",
		zap.Int("vertices", len(mesh.vertices)),
		zap.Int("triangles", len(mesh.triangles)),
		zap.Int("boundaryEdges", len(mesh.BoundaryEdges())),
		zap.Int("flippedEdges", mesh.flippedEdgeCount()))

	return mesh, nil
}

func (mesh *Mesh) validateTriangle(i int, tri [3]int) error {
	var errs error
	for _, v := range tri {
		if v < 0 || v >= len(mesh.vertices) {
			errs = multierr.Append(errs, fmt.Errorf("triangle %d: vertex %d of %d: %w", i, v, len(mesh.vertices), ErrOutOfRange))
		}
	}
	if errs != nil {
		return errs
	}
	if tri[0] == tri[1] || tri[1] == tri[2] || tri[2] == tri[0] {
		return fmt.Errorf("triangle %d repeats a vertex %v: %w", i, tri, ErrDegenerateGeometry)
	}
	if geom.TriangleArea(mesh.Triangle(i)) == 0 {
		return fmt.Errorf("triangle %d has zero area: %w", i, ErrDegenerateGeometry)
	}
	return nil
}

// TriangleCount returns the number of triangles.
func (mesh *Mesh) TriangleCount() int {
	return len(mesh.triangles)
}

// VertexCount returns the number of vertices.
func (mesh *Mesh) VertexCount() int {
	return len(mesh.vertices)
}

// HasTriangle reports whether i is a valid triangle index.
func (mesh *Mesh) HasTriangle(i int) bool {
	return i >= 0 && i < len(mesh.triangles)
}

// CheckTriangle returns ErrOutOfRange for an invalid triangle index.
func (mesh *Mesh) CheckTriangle(i int) error {
	if !mesh.HasTriangle(i) {
		return fmt.Errorf("triangle %d of %d: %w", i, len(mesh.triangles), ErrOutOfRange)
	}
	return nil
}

// Vertices returns a copy of the vertex positions.
func (mesh *Mesh) Vertices() []m.Vec3 {
	return append([]m.Vec3(nil), mesh.vertices...)
}

// Vertex returns vertex v.
func (mesh *Mesh) Vertex(v int) m.Vec3 {
	return mesh.vertices[v]
}

// TriangleIndices returns the vertex indices of triangle i.
func (mesh *Mesh) TriangleIndices(i int) [3]int {
	return mesh.triangles[i]
}

// Triangle returns the vertex positions of triangle i.
func (mesh *Mesh) Triangle(i int) [3]m.Vec3 {
	t := mesh.triangles[i]
	return [3]m.Vec3{mesh.vertices[t[0]], mesh.vertices[t[1]], mesh.vertices[t[2]]}
}

// Normal returns the unit normal of triangle i following its winding.
func (mesh *Mesh) Normal(i int) m.Vec3 {
	return geom.TriangleNormal(mesh.Triangle(i)).Normalize()
}

// Centroid returns the centroid of triangle i.
func (mesh *Mesh) Centroid(i int) m.Vec3 {
	t := mesh.Triangle(i)
	return t[0].Add(t[1]).Add(t[2]).Scale(1.0 / 3)
}

// Bounds returns the bounding box of all vertices.
func (mesh *Mesh) Bounds() AABB {
	if len(mesh.vertices) == 0 {
		return AABB{}
	}
	box := AABB{Min: mesh.vertices[0], Max: mesh.vertices[0]}
	for _, v := range mesh.vertices[1:] {
		box.Min = box.Min.Min(v)
		box.Max = box.Max.Max(v)
	}
	return box
}

// Translate moves every vertex by v.
func (mesh *Mesh) Translate(v m.Vec3) {
	for i := range mesh.vertices {
		mesh.vertices[i] = mesh.vertices[i].Add(v)
	}
}

// Scale multiplies every vertex position by s. Local coordinates of
// existing surface positions are not rescaled.
func (mesh *Mesh) Scale(s float64) {
	for i := range mesh.vertices {
		mesh.vertices[i] = mesh.vertices[i].Scale(s)
	}
}
