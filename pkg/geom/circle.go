package geom

import (
	"fmt"
	"math"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

// tangentTolerance absorbs rounding when circles touch.
const tangentTolerance = 1e-9

// CircleCircleIntersection returns the intersection points of two coplanar
// circles. The first point lies to the right of the line c0 -> c1. Touching
// circles return the same point twice. Concentric and disjoint circles
// return ErrNoIntersection.
func CircleCircleIntersection(c0 m.Vec2, r0 float64, c1 m.Vec2, r1 float64) ([2]m.Vec2, error) {
	d := c0.Distance(c1)
	if d == 0 {
		return [2]m.Vec2{}, fmt.Errorf("concentric circles: %w", ErrNoIntersection)
	}
	if d > r0+r1+tangentTolerance || d < math.Abs(r0-r1)-tangentTolerance {
		return [2]m.Vec2{}, fmt.Errorf("circles at distance %g with radii %g, %g: %w", d, r0, r1, ErrNoIntersection)
	}

	// distance from c0 to the chord, then half chord length
	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(r0*r0-a*a, 0))

	u := c1.Sub(c0).Scale(1 / d)
	p := c0.Add(u.Scale(a))
	right := m.Vec2{X: u.Y, Y: -u.X}

	return [2]m.Vec2{
		p.Add(right.Scale(h)),
		p.Sub(right.Scale(h)),
	}, nil
}
