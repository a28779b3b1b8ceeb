package geom

import m "github.com/Faultbox/meshwalk/pkg/math"

// TriangleIncenter returns the incenter of tri: the vertices weighted by the
// length of the opposite edge.
func TriangleIncenter(tri [3]m.Vec2) m.Vec2 {
	a := tri[2].Distance(tri[1])
	b := tri[0].Distance(tri[2])
	c := tri[1].Distance(tri[0])
	sum := a + b + c
	if sum == 0 {
		return tri[0]
	}
	return tri[0].Scale(a).Add(tri[1].Scale(b)).Add(tri[2].Scale(c)).Scale(1 / sum)
}

// TriangleNormal returns the unnormalized normal (v1-v0) x (v2-v0).
func TriangleNormal(tri [3]m.Vec3) m.Vec3 {
	return tri[1].Sub(tri[0]).Cross(tri[2].Sub(tri[0]))
}

// TriangleArea returns the area of a 3D triangle.
func TriangleArea(tri [3]m.Vec3) float64 {
	return TriangleNormal(tri).Length() / 2
}
