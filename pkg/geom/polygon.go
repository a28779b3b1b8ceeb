package geom

import (
	"fmt"
	"slices"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

// PointInPolygon tests p against poly with the even-odd rule.
// poly needs at least two points; shorter input is never inside.
func PointInPolygon(p m.Vec2, poly []m.Vec2) bool {
	if len(poly) < 2 {
		return false
	}
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		pi, pj := poly[i], poly[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) &&
			p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
	}
	return inside
}

// SignedArea returns twice the signed shoelace area of poly.
// Counter-clockwise polygons are positive.
func SignedArea(poly []m.Vec2) float64 {
	var area float64
	for i := range poly {
		next := poly[(i+1)%len(poly)]
		area += poly[i].Cross(next)
	}
	return area
}

// IsClockwise reports whether poly is wound clockwise. Polygons with fewer
// than three points or zero area are rejected with ErrDegenerateGeometry.
func IsClockwise(poly []m.Vec2) (bool, error) {
	if len(poly) < 3 {
		return false, fmt.Errorf("polygon with %d points: %w", len(poly), ErrDegenerateGeometry)
	}
	area := SignedArea(poly)
	if area == 0 {
		return false, fmt.Errorf("polygon has zero area: %w", ErrDegenerateGeometry)
	}
	return area < 0, nil
}

// SetWinding returns a copy of poly with the requested winding.
func SetWinding(poly []m.Vec2, clockwise bool) ([]m.Vec2, error) {
	cw, err := IsClockwise(poly)
	if err != nil {
		return nil, err
	}
	out := slices.Clone(poly)
	if cw != clockwise {
		slices.Reverse(out)
	}
	return out, nil
}

// PolygonCoord addresses a point on a polygon boundary by edge and parameter.
// Edge i runs from vertex i to vertex i+1 (wrapping).
type PolygonCoord struct {
	Edge int
	T    float64
}

// Point evaluates c on poly.
func (c PolygonCoord) Point(poly []m.Vec2) m.Vec2 {
	return EdgeOf(poly, c.Edge).Lerp(c.T)
}

// EdgeOf returns edge i of poly.
func EdgeOf(poly []m.Vec2, i int) Segment {
	return Segment{A: poly[i], B: poly[(i+1)%len(poly)]}
}

// NearestOnPolygon returns the boundary point of poly nearest to p.
func NearestOnPolygon(poly []m.Vec2, p m.Vec2) PolygonCoord {
	var nearest PolygonCoord
	best := -1.0
	for i := range poly {
		edge := EdgeOf(poly, i)
		d := PointLineDistance(p, edge, true)
		if best < 0 || d < best {
			nearest = PolygonCoord{Edge: i, T: edge.NearestT(p, true)}
			best = d
		}
	}
	return nearest
}

// ScalePolygon returns poly scaled by factor toward center.
func ScalePolygon(poly []m.Vec2, center m.Vec2, factor float64) []m.Vec2 {
	out := make([]m.Vec2, len(poly))
	for i, p := range poly {
		out[i] = p.Sub(center).Scale(factor).Add(center)
	}
	return out
}
