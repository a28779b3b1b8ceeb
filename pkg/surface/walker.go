package surface

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/meshwalk/pkg/geom"
	m "github.com/Faultbox/meshwalk/pkg/math"
)

// Walker defaults.
const (
	DefaultEdgeEpsilon  = 1e-6
	DefaultShrinkFactor = 0.9999
	DefaultMaxCrossings = 100000
)

// Walker moves coordinates across a mesh.
type Walker struct {
	// EdgeEpsilon bounds the segment parameters treated as zero. Hits that
	// close to the start only count as exits when the segment leaves
	// through that edge.
	EdgeEpsilon float64
	// ShrinkFactor scales each triangle toward its incenter when snapping
	// landing points off the boundary.
	ShrinkFactor float64
	// MaxCrossings bounds the number of edges crossed by one Move.
	MaxCrossings int

	log *zap.Logger
}

// DefaultWalker returns a walker with the default tunables.
func DefaultWalker() Walker {
	return Walker{
		EdgeEpsilon:  DefaultEdgeEpsilon,
		ShrinkFactor: DefaultShrinkFactor,
		MaxCrossings: DefaultMaxCrossings,
	}
}

// WithLogger returns a copy of w logging to log.
func (w Walker) WithLogger(log *zap.Logger) Walker {
	w.log = log
	return w
}

func (w Walker) logger() *zap.Logger {
	if w.log == nil {
		return zap.NewNop()
	}
	return w.log
}

// Move walks c by v, given in c's triangle frame. Edges with a neighbour
// carry the walk on into the neighbour; boundary edges stop it.
func (w Walker) Move(c Coord, v m.Vec2) Coord {
	if v.IsZero() {
		return c
	}
	log := w.logger()
	msh := c.mesh

	tri, p, rot, front := c.triangle, c.point, c.rotation, c.frontSide
	entry := -1
	for crossings := 0; ; crossings++ {
		local := msh.SurfaceTriangle(tri)
		seg := geom.Segment{A: p, B: p.Add(v)}

		exit, hit, ok := w.exitEdge(local, seg, entry)
		if !ok {
			p = w.AdjustCoord(local, seg.B)
			break
		}

		next, ok := msh.AdjacentTriangle(tri, exit)
		if !ok {
			p = w.AdjustCoord(local, hit.Point)
			break
		}
		if crossings >= w.MaxCrossings {
			log.Warn("walk stopped at crossing limit",
				zap.Int("triangle", tri),
				zap.Int("crossings", crossings))
			p = w.AdjustCoord(local, hit.Point)
			break
		}

		remaining := v.Length() * (1 - hit.UA)
		edge, _ := msh.AdjacentEdge(tri, exit)
		nextLocal := msh.SurfaceTriangle(next)
		start, end := nextLocal[edge.Start], nextLocal[edge.End]
		nextDir := end.Sub(start)
		turn := geom.EdgeOf(local[:], exit).Delta().Angle(nextDir)

		dir := v.Normalize().Rotate(turn)
		heading := geom.HeadingVector(rot, 1).Rotate(turn)
		if edge.Aligned() {
			dir = dir.Mirror(nextDir)
			heading = heading.Mirror(nextDir)
			front = !front
		}
		if h, err := geom.HeadingAngle(heading); err == nil {
			rot = h
		}

		if ce := log.Check(zap.DebugLevel, "edge crossed"); ce != nil {
			ce.Write(
				zap.Int("from", tri),
				zap.Int("to", next),
				zap.Bool("flipped", edge.Aligned()),
				zap.Float64("remaining", remaining))
		}

		tri, entry = next, edge.Leading()
		p = start.Lerp(end, hit.UB)
		v = dir.Scale(math.Max(remaining, 0))
		if remaining <= 0 {
			p = w.AdjustCoord(nextLocal, p)
			break
		}
	}

	return Coord{
		mesh:      msh,
		triangle:  tri,
		point:     p,
		rotation:  rot,
		frontSide: front,
	}
}

// exitEdge finds the edge the segment leaves the triangle through: the
// nearest intersection ahead of the start, skipping the entry edge. A start
// on a vertex or an edge meets those edges at a parameter near zero; such a
// hit is the exit only if the segment heads out across that edge.
func (w Walker) exitEdge(local [3]m.Vec2, seg geom.Segment, entry int) (int, geom.Intersection, bool) {
	exit := -1
	var best geom.Intersection
	for e := range 3 {
		if e == entry {
			continue
		}
		in, ok := geom.LineIntersect(seg, geom.EdgeOf(local[:], e), false)
		if !ok || in.UA > 1 || in.UA < -w.EdgeEpsilon ||
			in.UB < -w.EdgeEpsilon || in.UB > 1+w.EdgeEpsilon {
			continue
		}
		if in.UA <= w.EdgeEpsilon {
			if !leaves(local, e, seg.Delta()) {
				continue
			}
			in.UA = math.Max(in.UA, 0)
			in.Point = seg.Lerp(in.UA)
		}
		in.UB = math.Min(math.Max(in.UB, 0), 1)
		if exit < 0 || in.UA < best.UA {
			exit, best = e, in
		}
	}
	return exit, best, exit >= 0
}

// leaves reports whether direction d points out of the triangle across
// edge e, away from the opposite vertex.
func leaves(local [3]m.Vec2, e int, d m.Vec2) bool {
	edge := geom.EdgeOf(local[:], e)
	inside := edge.Delta().Cross(local[(e+2)%3].Sub(edge.A))
	return edge.Delta().Cross(d)*inside < 0
}

// AdjustCoord keeps p strictly inside the local triangle: points outside
// the triangle shrunk toward its incenter by ShrinkFactor snap to the
// nearest point on the shrunk boundary.
func (w Walker) AdjustCoord(local [3]m.Vec2, p m.Vec2) m.Vec2 {
	shrunk := geom.ScalePolygon(local[:], geom.TriangleIncenter(local), w.ShrinkFactor)
	if geom.PointInPolygon(p, shrunk) {
		return p
	}
	return geom.NearestOnPolygon(shrunk, p).Point(shrunk)
}
