package mesh

import (
	"fmt"
	"math"

	"github.com/Faultbox/meshwalk/pkg/geom"
	m "github.com/Faultbox/meshwalk/pkg/math"
)

// hinge describes the shared edge of triangles i and j and the rotation
// about it that lays j flat in i's plane.
type hinge struct {
	pivot m.Vec3
	axis  m.Vec3
	angle float64
	free  m.Vec3
}

func (mesh *Mesh) hinge(i, j int) (hinge, error) {
	if err := mesh.CheckTriangle(i); err != nil {
		return hinge{}, err
	}
	if err := mesh.CheckTriangle(j); err != nil {
		return hinge{}, err
	}
	e, ok := mesh.AdjacentEdgeByTriangle(i, j)
	if !ok {
		return hinge{}, fmt.Errorf("triangles %d and %d: %w", i, j, ErrNotAdjacent)
	}
	free, _ := mesh.FreeVertexIndex(i, j)

	ti := mesh.Triangle(i)
	e0, e1 := ti[e], ti[(e+1)%3]
	freeI := ti[(e+2)%3]
	freeJ := mesh.Triangle(j)[free]
	axis := e1.Sub(e0)

	fold, err := geom.AngleAroundAxis(freeJ.Sub(e0), freeI.Sub(e0), axis)
	if err != nil {
		return hinge{}, fmt.Errorf("unfold triangle %d onto %d: %w", j, i, err)
	}
	return hinge{pivot: e0, axis: axis, angle: math.Pi - fold, free: freeJ}, nil
}

// PlanarAdjacentMatrix returns the rotation about the edge shared by i and j
// that brings triangle j into the plane of triangle i, on the opposite side
// of the edge from i's free vertex.
func (mesh *Mesh) PlanarAdjacentMatrix(i, j int) (m.Mat4, error) {
	h, err := mesh.hinge(i, j)
	if err != nil {
		return m.Mat4{}, err
	}
	return m.RotateAround(h.pivot, h.axis, h.angle), nil
}

// PlanarAdjacentTriangle returns the free vertex of triangle j unfolded into
// the plane of triangle i, in mesh space.
func (mesh *Mesh) PlanarAdjacentTriangle(i, j int) (m.Vec3, error) {
	h, err := mesh.hinge(i, j)
	if err != nil {
		return m.Vec3{}, err
	}
	return m.RotateAround(h.pivot, h.axis, h.angle).TransformPoint(h.free), nil
}

// TriToAdjacentCoord carries the local point c of triangle i across the
// shared edge into triangle j's frame, folding it with the mesh.
func (mesh *Mesh) TriToAdjacentCoord(i, j int, c m.Vec2) (m.Vec2, error) {
	h, err := mesh.hinge(i, j)
	if err != nil {
		return m.Vec2{}, err
	}
	p := m.RotateAround(h.pivot, h.axis, -h.angle).TransformPoint(mesh.TriToMeshCoord(i, c))
	return mesh.MeshToTriCoord(j, p), nil
}
