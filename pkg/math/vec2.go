// Package math provides the vector types used by the mesh and surface packages.
package math

import "math"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product.
func (v Vec2) Dot(other Vec2) float64 {
	return v.X*other.X + v.Y*other.Y
}

// Cross returns the z component of the 3D cross product (the perp-dot product).
func (v Vec2) Cross(other Vec2) float64 {
	return v.X*other.Y - v.Y*other.X
}

// Length returns the magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared magnitude.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Normalize returns a unit vector.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vec2) Distance(other Vec2) float64 {
	return v.Sub(other).Length()
}

// Lerp interpolates linearly between v (t=0) and other (t=1).
func (v Vec2) Lerp(other Vec2, t float64) Vec2 {
	return Vec2{v.X*(1-t) + other.X*t, v.Y*(1-t) + other.Y*t}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{c*v.X - s*v.Y, s*v.X + c*v.Y}
}

// Angle returns the signed angle in radians that rotates v onto other.
func (v Vec2) Angle(other Vec2) float64 {
	return math.Atan2(v.Cross(other), v.Dot(other))
}

// Project returns the projection of v onto the line spanned by axis.
func (v Vec2) Project(axis Vec2) Vec2 {
	n := axis.Normalize()
	return n.Scale(v.Dot(n))
}

// Mirror reflects v across the line through the origin spanned by axis.
func (v Vec2) Mirror(axis Vec2) Vec2 {
	return v.Project(axis).Scale(2).Sub(v)
}

// ApproxEqual reports whether v and other are within eps of each other.
func (v Vec2) ApproxEqual(other Vec2, eps float64) bool {
	return v.Distance(other) <= eps
}
