package mesh

import (
	"fmt"

	"go.uber.org/multierr"
)

// NoNeighbor marks an edge on the mesh boundary.
const NoNeighbor = -1

// Edge identifies the shared edge as seen from the neighbouring triangle.
// Start is the neighbour's vertex slot holding this edge's start vertex and
// End the slot holding its end vertex.
type Edge struct {
	Start int
	End   int
}

// Aligned reports whether the neighbour walks the shared edge in the same
// order. Consistently wound neighbours walk it in reverse, so an aligned
// edge means the two triangles have opposite winding.
func (e Edge) Aligned() bool {
	return e.End == (e.Start+1)%3
}

// Leading returns the neighbour's edge slot for the shared edge.
func (e Edge) Leading() int {
	if e.Aligned() {
		return e.Start
	}
	return e.End
}

type edgeKey struct {
	a, b int
}

func makeEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type edgeRef struct {
	triangle int
	edge     int
}

// buildAdjacency resolves each triangle edge against an unordered edge
// index. The first triangle seen on an edge always has the lower index.
func (mesh *Mesh) buildAdjacency() error {
	edges := make(map[edgeKey][]edgeRef, len(mesh.triangles)*3/2)
	for i, tri := range mesh.triangles {
		for e := range 3 {
			key := makeEdgeKey(tri[e], tri[(e+1)%3])
			edges[key] = append(edges[key], edgeRef{triangle: i, edge: e})
		}
	}

	mesh.adjacency = make([][3]int, len(mesh.triangles))
	for i := range mesh.adjacency {
		mesh.adjacency[i] = [3]int{NoNeighbor, NoNeighbor, NoNeighbor}
	}

	var errs error
	for i, tri := range mesh.triangles {
		for e := range 3 {
			if mesh.adjacency[i][e] != NoNeighbor {
				continue
			}
			refs := edges[makeEdgeKey(tri[e], tri[(e+1)%3])]
			switch {
			case len(refs) > 2:
				if refs[0].triangle == i && refs[0].edge == e {
					errs = multierr.Append(errs, fmt.Errorf("edge (%d, %d) has %d triangles: %w",
						tri[e], tri[(e+1)%3], len(refs), ErrNonManifoldMesh))
				}
			case len(refs) == 2:
				other := refs[1]
				if other.triangle == i {
					other = refs[0]
				}
				if other.triangle <= i {
					return fmt.Errorf("triangle %d edge %d resolved from triangle %d: %w",
						i, e, other.triangle, ErrNonManifoldMesh)
				}
				mesh.adjacency[i][e] = other.triangle
				mesh.adjacency[other.triangle][other.edge] = i
			}
		}
	}
	return errs
}

// AdjacentTriangle returns the triangle across edge e of triangle i.
func (mesh *Mesh) AdjacentTriangle(i, e int) (int, bool) {
	n := mesh.adjacency[i][e]
	return n, n != NoNeighbor
}

// AdjacentTriangles returns the neighbours of triangle i per edge, with
// NoNeighbor on boundary edges.
func (mesh *Mesh) AdjacentTriangles(i int) [3]int {
	return mesh.adjacency[i]
}

// AdjacentEdge returns the shared edge of triangle i's edge e as seen from
// the neighbouring triangle.
func (mesh *Mesh) AdjacentEdge(i, e int) (Edge, bool) {
	n, ok := mesh.AdjacentTriangle(i, e)
	if !ok {
		return Edge{}, false
	}
	tri := mesh.triangles[i]
	return Edge{
		Start: mesh.slotOf(n, tri[e]),
		End:   mesh.slotOf(n, tri[(e+1)%3]),
	}, true
}

// Flipped reports whether the neighbour across edge e of triangle i has
// opposite winding. Boundary edges are never flipped.
func (mesh *Mesh) Flipped(i, e int) bool {
	edge, ok := mesh.AdjacentEdge(i, e)
	return ok && edge.Aligned()
}

// IsAdjacent reports whether triangles i and j share an edge.
func (mesh *Mesh) IsAdjacent(i, j int) bool {
	_, ok := mesh.AdjacentEdgeByTriangle(i, j)
	return ok
}

// AdjacentEdgeByTriangle returns the edge of triangle i shared with j.
func (mesh *Mesh) AdjacentEdgeByTriangle(i, j int) (int, bool) {
	for e, n := range mesh.adjacency[i] {
		if n == j && n != NoNeighbor {
			return e, true
		}
	}
	return 0, false
}

// FreeVertexIndex returns the vertex slot of triangle j that is not on the
// edge it shares with triangle i.
func (mesh *Mesh) FreeVertexIndex(i, j int) (int, bool) {
	e, ok := mesh.AdjacentEdgeByTriangle(j, i)
	if !ok {
		return 0, false
	}
	return (e + 2) % 3, true
}

// BoundaryEdge is a triangle edge without a neighbour.
type BoundaryEdge struct {
	Triangle int
	Edge     int
}

// BoundaryEdges lists every edge without a neighbour.
func (mesh *Mesh) BoundaryEdges() []BoundaryEdge {
	var edges []BoundaryEdge
	for i, adj := range mesh.adjacency {
		for e, n := range adj {
			if n == NoNeighbor {
				edges = append(edges, BoundaryEdge{Triangle: i, Edge: e})
			}
		}
	}
	return edges
}

func (mesh *Mesh) flippedEdgeCount() int {
	count := 0
	for i := range mesh.adjacency {
		for e := range 3 {
			if mesh.Flipped(i, e) {
				count++
			}
		}
	}
	return count / 2
}

func (mesh *Mesh) slotOf(i, vertex int) int {
	for slot, v := range mesh.triangles[i] {
		if v == vertex {
			return slot
		}
	}
	return -1
}
