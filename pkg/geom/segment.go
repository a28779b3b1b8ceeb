package geom

import (
	"math"
	"strconv"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

// Side is the side of a directed line a point lies on.
type Side int

// Side values. The zero value is Neither.
const (
	Neither Side = iota
	Right
	Left
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Neither:
		return "Neither"
	default:
		return "Side(" + strconv.Itoa(int(s)) + ")"
	}
}

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B m.Vec2
}

// Delta returns B - A.
func (s Segment) Delta() m.Vec2 {
	return s.B.Sub(s.A)
}

// Length returns the segment length.
func (s Segment) Length() float64 {
	return s.Delta().Length()
}

// Lerp returns the point at parameter t (A at 0, B at 1).
func (s Segment) Lerp(t float64) m.Vec2 {
	return s.A.Lerp(s.B, t)
}

// NearestT returns the parameter of the point on the line nearest to p.
// When isSegment is set the parameter is clamped to [0, 1]. A zero-length
// segment yields 0.
func (s Segment) NearestT(p m.Vec2, isSegment bool) float64 {
	d := s.Delta()
	lenSq := d.LengthSq()
	if lenSq == 0 {
		return 0
	}
	t := p.Sub(s.A).Dot(d) / lenSq
	if isSegment {
		t = math.Min(math.Max(t, 0), 1)
	}
	return t
}

// SideOf reports which side of the directed line p lies on. Points exactly
// on the line count as Right unless strict is set, in which case they are
// reported as Neither.
func (s Segment) SideOf(p m.Vec2, strict bool) Side {
	c := s.Delta().Cross(p.Sub(s.A))
	switch {
	case c > 0:
		return Left
	case c == 0 && strict:
		return Neither
	default:
		return Right
	}
}

// Intersection is the result of LineIntersect.
type Intersection struct {
	Point m.Vec2
	UA    float64 // parameter along the first segment
	UB    float64 // parameter along the second segment
}

// LineIntersect intersects the lines through a and b. It reports false for
// parallel or coincident lines and, when segmentOnly is set, for
// intersections outside either segment.
func LineIntersect(a, b Segment, segmentOnly bool) (Intersection, bool) {
	da := a.Delta()
	db := b.Delta()
	ud := db.Y*da.X - db.X*da.Y
	if ud == 0 {
		return Intersection{}, false
	}
	ua := (db.X*(a.A.Y-b.A.Y) - db.Y*(a.A.X-b.A.X)) / ud
	ub := (da.X*(a.A.Y-b.A.Y) - da.Y*(a.A.X-b.A.X)) / ud
	if segmentOnly && (ua < 0 || ua > 1 || ub < 0 || ub > 1) {
		return Intersection{}, false
	}
	return Intersection{Point: a.Lerp(ua), UA: ua, UB: ub}, true
}

// PointLineDistance returns the distance from p to the line (or segment, if
// isSegment) s. A zero-length s degenerates to the distance to its endpoint.
func PointLineDistance(p m.Vec2, s Segment, isSegment bool) float64 {
	if s.Delta().IsZero() {
		return p.Distance(s.A)
	}
	return p.Distance(s.Lerp(s.NearestT(p, isSegment)))
}
