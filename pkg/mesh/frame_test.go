package mesh

import (
	"math/rand"
	"testing"

	m "github.com/Faultbox/meshwalk/pkg/math"
)

func TestTriToMeshCoord(t *testing.T) {
	tests := []struct {
		name     string
		vertices []m.Vec3
		local    m.Vec2
		want     m.Vec3
	}{
		{
			name:     "axis aligned",
			vertices: []m.Vec3{{}, {Y: 1}, {X: 1}},
			local:    m.Vec2{X: 0.2, Y: 0.6},
			want:     m.Vec3{X: 0.2, Y: 0.6},
		},
		{
			name:     "sideways",
			vertices: []m.Vec3{{}, {Z: 1}, {X: 1}},
			local:    m.Vec2{X: 0.2, Y: 0.6},
			want:     m.Vec3{X: 0.2, Z: 0.6},
		},
		{
			name:     "sideways short edge",
			vertices: []m.Vec3{{}, {Z: 1}, {X: 0.5}},
			local:    m.Vec2{X: 0.2, Y: 0.6},
			want:     m.Vec3{X: 0.2, Z: 0.6},
		},
		{
			name:     "sideways skewed",
			vertices: []m.Vec3{{}, {Z: 1}, {X: 0.5, Z: 0.3}},
			local:    m.Vec2{X: 0.2, Y: 0.6},
			want:     m.Vec3{X: 0.2, Z: 0.6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := New(tt.vertices, []int{0, 1, 2})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := mesh.TriToMeshCoord(0, tt.local); !got.ApproxEqual(tt.want, 1e-9) {
				t.Errorf("TriToMeshCoord() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTriToMeshCoordTransformed(t *testing.T) {
	mesh, err := New([]m.Vec3{{}, {Y: 1}, {X: 1}}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	local := m.Vec2{X: 0.2, Y: 0.6}

	mesh.Translate(m.Vec3{X: 5, Y: 4, Z: 2})
	if got := mesh.TriToMeshCoord(0, local); !got.ApproxEqual(m.Vec3{X: 5.2, Y: 4.6, Z: 2}, 1e-9) {
		t.Errorf("translated TriToMeshCoord() = %v, want (5.2, 4.6, 2)", got)
	}

	mesh.Translate(m.Vec3{X: -5, Y: -4, Z: -2})
	mesh.Scale(3)
	if got := mesh.TriToMeshCoord(0, local); !got.ApproxEqual(m.Vec3{X: 0.2, Y: 0.6}, 1e-9) {
		t.Errorf("scaled TriToMeshCoord() = %v, want (0.2, 0.6, 0)", got)
	}
}

func TestSurfaceTriangleRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(123123))
	for i := 0; i < 1000; i++ {
		mesh := randomTriangle(t, rng)
		got := mesh.SurfaceTriangle(0)
		if got[0].Length() > 1e-9 {
			t.Fatalf("SurfaceTriangle(0)[0] = %v, want origin", got[0])
		}
		tri := mesh.Triangle(0)
		want := m.Vec2{Y: tri[1].Distance(tri[0])}
		if !got[1].ApproxEqual(want, 1e-6) {
			t.Fatalf("SurfaceTriangle(0)[1] = %v, want %v", got[1], want)
		}
		if got[2].X <= 0 {
			t.Fatalf("SurfaceTriangle(0)[2] = %v, want positive X", got[2])
		}
	}
}

func TestMeshToTriCoordRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		mesh := randomTriangle(t, rng)
		c := m.Vec2{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
		got := mesh.MeshToTriCoord(0, mesh.TriToMeshCoord(0, c))
		if !got.ApproxEqual(c, 1e-9) {
			t.Fatalf("MeshToTriCoord(TriToMeshCoord(%v)) = %v", c, got)
		}
	}
}

func TestTriToMeshDirection(t *testing.T) {
	mesh, err := New([]m.Vec3{{X: 3}, {X: 3, Z: 1}, {X: 4}}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := mesh.TriToMeshDirection(0, m.Vec2{X: 0, Y: 2}); !got.ApproxEqual(m.Vec3{Z: 2}, 1e-12) {
		t.Errorf("TriToMeshDirection() = %v, want (0, 0, 2)", got)
	}
}

func TestLocalEdge(t *testing.T) {
	mesh := quadMesh(t)
	start, end := mesh.LocalEdge(0, 2)
	if !start.ApproxEqual(m.Vec2{X: 1}, 1e-12) || !end.ApproxEqual(m.Vec2{}, 1e-12) {
		t.Errorf("LocalEdge(0, 2) = %v, %v, want (1, 0), (0, 0)", start, end)
	}
}
