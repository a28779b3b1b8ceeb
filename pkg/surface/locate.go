package surface

import (
	"github.com/Faultbox/meshwalk/pkg/mesh"
)

// Locate places a coordinate where r first hits msh.
func Locate(msh *mesh.Mesh, r mesh.Ray, opts ...Option) (Coord, error) {
	if msh == nil {
		return Coord{}, ErrNilMesh
	}
	hit, ok := msh.Raycast(r)
	if !ok {
		return Coord{}, ErrNoHit
	}
	return New(msh, hit.Triangle, msh.MeshToTriCoord(hit.Triangle, hit.Point), opts...)
}
