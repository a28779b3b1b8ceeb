package mesh

import m "github.com/Faultbox/meshwalk/pkg/math"

// Origin returns the origin of triangle i's local frame (its first vertex).
func (mesh *Mesh) Origin(i int) m.Vec3 {
	return mesh.vertices[mesh.triangles[i][0]]
}

// Axes returns the orthonormal in-plane basis of triangle i. Y points from
// vertex 0 to vertex 1; X is the component of vertex 2 orthogonal to Y.
func (mesh *Mesh) Axes(i int) (x, y m.Vec3) {
	t := mesh.Triangle(i)
	y = t[1].Sub(t[0]).Normalize()
	d := t[2].Sub(t[0])
	x = d.Sub(y.Scale(d.Dot(y))).Normalize()
	return x, y
}

// MeshToTriCoord projects the mesh-space point p into triangle i's frame.
func (mesh *Mesh) MeshToTriCoord(i int, p m.Vec3) m.Vec2 {
	x, y := mesh.Axes(i)
	d := p.Sub(mesh.Origin(i))
	return m.Vec2{X: d.Dot(x), Y: d.Dot(y)}
}

// TriToMeshCoord maps the local point c of triangle i into mesh space.
func (mesh *Mesh) TriToMeshCoord(i int, c m.Vec2) m.Vec3 {
	x, y := mesh.Axes(i)
	return mesh.Origin(i).Add(x.Scale(c.X)).Add(y.Scale(c.Y))
}

// TriToMeshDirection maps the local direction d of triangle i into mesh space.
func (mesh *Mesh) TriToMeshDirection(i int, d m.Vec2) m.Vec3 {
	x, y := mesh.Axes(i)
	return x.Scale(d.X).Add(y.Scale(d.Y))
}

// SurfaceTriangle returns triangle i in its own local frame. Vertex 0 is at
// the origin and vertex 1 on +Y, so every local triangle winds clockwise.
func (mesh *Mesh) SurfaceTriangle(i int) [3]m.Vec2 {
	t := mesh.Triangle(i)
	return [3]m.Vec2{
		{},
		mesh.MeshToTriCoord(i, t[1]),
		mesh.MeshToTriCoord(i, t[2]),
	}
}

// LocalEdge returns edge e of triangle i in the triangle's local frame.
func (mesh *Mesh) LocalEdge(i, e int) (start, end m.Vec2) {
	tri := mesh.SurfaceTriangle(i)
	return tri[e], tri[(e+1)%3]
}
