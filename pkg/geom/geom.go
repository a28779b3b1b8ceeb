// Package geom provides the planar and spatial geometry kernel used for
// walking on triangle meshes: segment intersection, point-in-polygon tests,
// nearest points, triangle centers, circle intersection and axis angles.
package geom

import "errors"

// Geometry errors.
var (
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	ErrNoIntersection     = errors.New("no intersection")
)
