package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/s1"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

// axisEpsilon is the squared length below which a projected vector counts as zero.
const axisEpsilon = 1e-24

// AngleAroundAxis projects v and forward onto the plane perpendicular to axis
// and returns the signed angle in radians from forward to v, positive for a
// right-handed turn about axis. Inputs that leave either projection empty
// return ErrDegenerateGeometry.
func AngleAroundAxis(v, forward, axis m.Vec3) (float64, error) {
	right := axis.Cross(forward)
	if right.Dot(right) < axisEpsilon {
		return 0, fmt.Errorf("forward %v is parallel to axis %v: %w", forward, axis, ErrDegenerateGeometry)
	}
	right = right.Normalize()
	fwd := right.Cross(axis).Normalize()

	x, y := v.Dot(fwd), v.Dot(right)
	if x*x+y*y < axisEpsilon {
		return 0, fmt.Errorf("vector %v is parallel to axis %v: %w", v, axis, ErrDegenerateGeometry)
	}
	return math.Atan2(y, x), nil
}

// HeadingVector returns the local direction of heading theta scaled to length.
// Heading 0 points along -X and headings increase toward +Y.
func HeadingVector(theta s1.Angle, length float64) m.Vec2 {
	s, c := math.Sincos(theta.Radians())
	return m.Vec2{X: -c * length, Y: s * length}
}

// HeadingAngle is the inverse of HeadingVector, wrapped to [0, 360) degrees.
func HeadingAngle(v m.Vec2) (s1.Angle, error) {
	if v.IsZero() {
		return 0, fmt.Errorf("heading of zero vector: %w", ErrDegenerateGeometry)
	}
	return WrapAngle(s1.Angle(math.Atan2(v.Y, -v.X))), nil
}

// WrapAngle maps theta into [0, 2π).
func WrapAngle(theta s1.Angle) s1.Angle {
	return s1.Angle(ValueWrap(theta.Radians(), 2*math.Pi))
}

// ValueWrap returns value modulo mod without negative results.
func ValueWrap(value, mod float64) float64 {
	value = math.Mod(value, mod)
	if value < 0 {
		value += mod
	}
	if value >= mod {
		value = 0
	}
	return value
}
