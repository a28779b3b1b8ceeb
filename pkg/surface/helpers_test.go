package surface

import (
	"math/rand"
	"testing"

	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
)

const tolerance = 1e-6

var unitQuad = []m.Vec3{
	{X: 0, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
}

func newMesh(t *testing.T, vertices []m.Vec3, indices ...int) *mesh.Mesh {
	t.Helper()
	msh, err := mesh.New(vertices, indices)
	if err != nil {
		t.Fatalf("mesh.New() error = %v", err)
	}
	return msh
}

// quadMesh returns the unit square split along the (0,1)-(1,0) diagonal.
func quadMesh(t *testing.T, indices ...int) *mesh.Mesh {
	t.Helper()
	if len(indices) == 0 {
		indices = []int{0, 1, 2, 1, 3, 2}
	}
	return newMesh(t, unitQuad, indices...)
}

// gridMesh returns a flat w x h grid of unit squares in the XY plane, two
// triangles per square. Square (i, j) holds triangles 2*(j*w+i) and
// 2*(j*w+i)+1. With rng set, triangles are randomly rewound.
func gridMesh(t *testing.T, w, h int, rng *rand.Rand) *mesh.Mesh {
	t.Helper()
	var vertices []m.Vec3
	for j := 0; j <= h; j++ {
		for i := 0; i <= w; i++ {
			vertices = append(vertices, m.Vec3{X: float64(i), Y: float64(j)})
		}
	}
	vertex := func(i, j int) int { return j*(w+1) + i }

	var indices []int
	for j := 0; j < h; j++ {
		for i := 0; i < w; i++ {
			a, b := vertex(i, j), vertex(i+1, j)
			c, d := vertex(i, j+1), vertex(i+1, j+1)
			for _, tri := range [][3]int{{a, c, b}, {c, d, b}} {
				if rng != nil && rng.Intn(2) == 0 {
					tri[1], tri[2] = tri[2], tri[1]
				}
				indices = append(indices, tri[:]...)
			}
		}
	}
	return newMesh(t, vertices, indices...)
}

func mustCoord(t *testing.T, msh *mesh.Mesh, triangle int, p m.Vec2, opts ...Option) Coord {
	t.Helper()
	c, err := New(msh, triangle, p, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// ambientToLocal expresses the mesh-space direction v in c's triangle frame.
func ambientToLocal(c Coord, v m.Vec3) m.Vec2 {
	x, y := c.Mesh().Axes(c.Triangle())
	return m.Vec2{X: v.Dot(x), Y: v.Dot(y)}
}

// meshRayDown returns a ray hitting the XY plane from above at p.
func meshRayDown(p m.Vec3) mesh.Ray {
	return mesh.NewRay(p.Add(m.Vec3{Z: 5}), m.Vec3{Z: -1})
}
