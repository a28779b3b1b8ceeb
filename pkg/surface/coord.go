// Package surface implements positions on the surface of a triangle mesh
// and the walk that carries them across triangle edges.
//
// A Coord is an immutable value: a triangle, a 2D point in that triangle's
// local frame, a heading and a front/back flag. Move, Rotate and the path
// finders return new values and never modify their receiver.
package surface

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"

	"github.com/Faultbox/meshwalk/pkg/geom"
	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
)

// Surface errors.
var (
	ErrNilMesh       = errors.New("nil mesh")
	ErrOutOfRange    = mesh.ErrOutOfRange
	ErrUnreachable   = errors.New("triangle unreachable")
	ErrDifferentMesh = errors.New("coordinates on different meshes")
	ErrNoHit         = errors.New("ray does not hit the mesh")
)

// Coord is a position and heading on a mesh surface.
type Coord struct {
	mesh      *mesh.Mesh
	triangle  int
	point     m.Vec2
	rotation  s1.Angle
	frontSide bool
}

// Option configures a new Coord.
type Option func(*Coord)

// WithRotation sets the initial heading.
func WithRotation(rotation s1.Angle) Option {
	return func(c *Coord) {
		c.rotation = rotation
	}
}

// WithFrontSide sets which face of the triangle the position is on.
func WithFrontSide(front bool) Option {
	return func(c *Coord) {
		c.frontSide = front
	}
}

// New creates a coordinate on triangle of msh at the local point. The
// heading defaults to 0 and the position starts on the front side.
func New(msh *mesh.Mesh, triangle int, point m.Vec2, opts ...Option) (Coord, error) {
	if msh == nil {
		return Coord{}, ErrNilMesh
	}
	if err := msh.CheckTriangle(triangle); err != nil {
		return Coord{}, fmt.Errorf("surface coordinate: %w", err)
	}
	c := Coord{
		mesh:      msh,
		triangle:  triangle,
		point:     point,
		frontSide: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// Mesh returns the mesh the coordinate lives on.
func (c Coord) Mesh() *mesh.Mesh { return c.mesh }

// Triangle returns the current triangle index.
func (c Coord) Triangle() int { return c.triangle }

// Point returns the position in the triangle's local frame.
func (c Coord) Point() m.Vec2 { return c.point }

// Rotation returns the heading in the triangle's local frame.
func (c Coord) Rotation() s1.Angle { return c.rotation }

// FrontSide reports whether the position is on the front face.
func (c Coord) FrontSide() bool { return c.frontSide }

// LocalCoord returns the position in mesh space.
func (c Coord) LocalCoord() m.Vec3 {
	return c.mesh.TriToMeshCoord(c.triangle, c.point)
}

// Heading returns the unit heading vector in the triangle's local frame.
func (c Coord) Heading() m.Vec2 {
	return geom.HeadingVector(c.rotation, 1)
}

// AmbientHeading returns the unit heading vector in mesh space.
func (c Coord) AmbientHeading() m.Vec3 {
	return c.mesh.TriToMeshDirection(c.triangle, c.Heading())
}

// Rotate returns a copy turned by delta.
func (c Coord) Rotate(delta s1.Angle) Coord {
	c.rotation = geom.WrapAngle(c.rotation + delta)
	return c
}

// Move walks the coordinate by v, given in the current triangle's frame,
// using the default walker.
func (c Coord) Move(v m.Vec2) Coord {
	return DefaultWalker().Move(c, v)
}

// Equal reports whether both coordinates are on the same mesh and triangle
// with identical point and rotation.
func (c Coord) Equal(o Coord) bool {
	return c.mesh == o.mesh &&
		c.triangle == o.triangle &&
		c.point == o.point &&
		c.rotation == o.rotation
}

// AlmostEqual is Equal with the point and the rotation (in radians)
// allowed to differ by eps.
func (c Coord) AlmostEqual(o Coord, eps float64) bool {
	if c.mesh != o.mesh || c.triangle != o.triangle {
		return false
	}
	if !c.point.ApproxEqual(o.point, eps) {
		return false
	}
	d := geom.WrapAngle(c.rotation - o.rotation).Radians()
	return math.Min(d, 2*math.Pi-d) <= eps
}

// String returns a human readable description.
func (c Coord) String() string {
	side := "front"
	if !c.frontSide {
		side = "back"
	}
	return fmt.Sprintf("triangle %d (%.4f, %.4f) heading %.2f° %s",
		c.triangle, c.point.X, c.point.Y, c.rotation.Degrees(), side)
}
