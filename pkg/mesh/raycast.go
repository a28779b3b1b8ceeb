package mesh

import (
	"math"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

// rayEpsilon rejects rays parallel to a triangle plane.
const rayEpsilon = 1e-12

// Ray represents a ray in mesh space with origin and direction.
type Ray struct {
	Origin    m.Vec3
	Direction m.Vec3
}

// NewRay creates a ray with a normalized direction.
func NewRay(origin, direction m.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) m.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min m.Vec3
	Max m.Vec3
}

// NewAABB creates an AABB from two corners, in any order.
func NewAABB(a, b m.Vec3) AABB {
	return AABB{Min: a.Min(b), Max: a.Max(b)}
}

// Contains reports whether p lies inside the box, boundary included.
func (box AABB) Contains(p m.Vec3) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X &&
		p.Y >= box.Min.Y && p.Y <= box.Max.Y &&
		p.Z >= box.Min.Z && p.Z <= box.Max.Z
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float64, hit bool) {
	tmin := math.Inf(-1)
	tmax := math.Inf(1)

	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float64{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float64{box.Max.X, box.Max.Y, box.Max.Z}

	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// IntersectTriangle intersects the ray with a triangle from either side.
// It returns the distance along the ray and the barycentric weights of
// vertices 1 and 2.
func (r Ray) IntersectTriangle(tri [3]m.Vec3) (t, u, v float64, hit bool) {
	e1 := tri[1].Sub(tri[0])
	e2 := tri[2].Sub(tri[0])
	p := r.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, 0, 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(tri[0])
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}
	q := s.Cross(e1)
	v = r.Direction.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}
	t = e2.Dot(q) * inv
	if t < 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}

// Hit is the nearest triangle hit by a ray.
type Hit struct {
	Triangle int
	Distance float64
	Point    m.Vec3
}

// Raycast returns the nearest triangle hit by r.
func (mesh *Mesh) Raycast(r Ray) (Hit, bool) {
	if _, ok := r.IntersectAABB(mesh.Bounds()); !ok {
		return Hit{}, false
	}

	best := Hit{Triangle: NoNeighbor, Distance: math.Inf(1)}
	for i := range mesh.triangles {
		t, _, _, ok := r.IntersectTriangle(mesh.Triangle(i))
		if ok && t < best.Distance {
			best = Hit{Triangle: i, Distance: t, Point: r.At(t)}
		}
	}
	return best, best.Triangle != NoNeighbor
}
