package surface

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/golang/geo/s1"

	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
)

func TestNew(t *testing.T) {
	msh := quadMesh(t)
	c := mustCoord(t, msh, 1, m.Vec2{X: 0.2, Y: 0.3})
	if c.Mesh() != msh || c.Triangle() != 1 {
		t.Errorf("New() = %v on %p, want triangle 1 on %p", c, c.Mesh(), msh)
	}
	if c.Rotation() != 0 {
		t.Errorf("Rotation() = %v, want 0", c.Rotation())
	}
	if !c.FrontSide() {
		t.Error("FrontSide() = false, want true")
	}

	c = mustCoord(t, msh, 0, m.Vec2{}, WithRotation(90*s1.Degree), WithFrontSide(false))
	if c.Rotation() != 90*s1.Degree || c.FrontSide() {
		t.Errorf("New() with options = %v", c)
	}
}

func TestNewErrors(t *testing.T) {
	msh := quadMesh(t)
	for _, tri := range []int{-1, 2, 100} {
		if _, err := New(msh, tri, m.Vec2{}); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("New(triangle %d) error = %v, want ErrOutOfRange", tri, err)
		}
	}
	if _, err := New(nil, 0, m.Vec2{}); !errors.Is(err, ErrNilMesh) {
		t.Errorf("New(nil) error = %v, want ErrNilMesh", err)
	}
}

func TestLocalCoord(t *testing.T) {
	msh := newMesh(t, []m.Vec3{{}, {Y: 1}, {X: 1}}, 0, 1, 2)
	c := mustCoord(t, msh, 0, m.Vec2{X: 0.2, Y: 0.6})
	if got := c.LocalCoord(); !got.ApproxEqual(m.Vec3{X: 0.2, Y: 0.6}, tolerance) {
		t.Errorf("LocalCoord() = %v, want (0.2, 0.6, 0)", got)
	}

	msh.Translate(m.Vec3{X: 5, Y: 4, Z: 2})
	if got := c.LocalCoord(); !got.ApproxEqual(m.Vec3{X: 5.2, Y: 4.6, Z: 2}, tolerance) {
		t.Errorf("LocalCoord() after Translate = %v, want (5.2, 4.6, 2)", got)
	}
}

func TestLocalCoordRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		vertices := make([]m.Vec3, 3)
		for j := range vertices {
			vertices[j] = m.Vec3{X: rng.Float64()*10 - 5, Y: rng.Float64()*10 - 5, Z: rng.Float64()*10 - 5}
		}
		msh := newMesh(t, vertices, 0, 1, 2)
		p := m.Vec2{X: rng.Float64(), Y: rng.Float64()}
		c := mustCoord(t, msh, 0, p)
		if got := msh.MeshToTriCoord(0, c.LocalCoord()); !got.ApproxEqual(p, 1e-9) {
			t.Fatalf("MeshToTriCoord(LocalCoord()) = %v, want %v", got, p)
		}
	}
}

func TestHeading(t *testing.T) {
	msh := quadMesh(t)
	tests := []struct {
		rotation s1.Angle
		want     m.Vec2
		ambient  m.Vec3
	}{
		{0, m.Vec2{X: -1}, m.Vec3{X: -1}},
		{90 * s1.Degree, m.Vec2{Y: 1}, m.Vec3{Y: 1}},
		{270 * s1.Degree, m.Vec2{Y: -1}, m.Vec3{Y: -1}},
	}
	for _, tt := range tests {
		c := mustCoord(t, msh, 0, m.Vec2{}, WithRotation(tt.rotation))
		if got := c.Heading(); !got.ApproxEqual(tt.want, 1e-12) {
			t.Errorf("Heading() at %v = %v, want %v", tt.rotation, got, tt.want)
		}
		if got := c.AmbientHeading(); !got.ApproxEqual(tt.ambient, 1e-12) {
			t.Errorf("AmbientHeading() at %v = %v, want %v", tt.rotation, got, tt.ambient)
		}
	}
}

func TestRotate(t *testing.T) {
	c := mustCoord(t, quadMesh(t), 0, m.Vec2{X: 0.1, Y: 0.1})

	got := c.Rotate(90 * s1.Degree)
	if math.Abs(got.Rotation().Degrees()-90) > 1e-9 {
		t.Errorf("Rotate(90°) = %v°, want 90°", got.Rotation().Degrees())
	}
	if c.Rotation() != 0 {
		t.Error("Rotate() modified its receiver")
	}
	if got.Point() != c.Point() || got.Triangle() != c.Triangle() {
		t.Errorf("Rotate() moved the coordinate to %v", got)
	}

	got = c.Rotate(-2 * s1.Degree)
	if math.Abs(got.Rotation().Degrees()-358) > 1e-9 {
		t.Errorf("Rotate(-2°) = %v°, want 358°", got.Rotation().Degrees())
	}
	if !got.Rotate(2 * s1.Degree).AlmostEqual(c, 1e-9) {
		t.Error("Rotate(-2°).Rotate(2°) is not back at the start")
	}
}

func TestEqual(t *testing.T) {
	msh := quadMesh(t)
	other := quadMesh(t)
	c := mustCoord(t, msh, 0, m.Vec2{X: 0.1, Y: 0.2})

	tests := []struct {
		name   string
		o      Coord
		equal  bool
		almost bool
	}{
		{"identical", mustCoord(t, msh, 0, m.Vec2{X: 0.1, Y: 0.2}), true, true},
		{"other side", mustCoord(t, msh, 0, m.Vec2{X: 0.1, Y: 0.2}, WithFrontSide(false)), true, true},
		{"nudged", mustCoord(t, msh, 0, m.Vec2{X: 0.1 + 1e-9, Y: 0.2}), false, true},
		{"turned slightly", mustCoord(t, msh, 0, m.Vec2{X: 0.1, Y: 0.2}, WithRotation(-1e-9)), false, true},
		{"far", mustCoord(t, msh, 0, m.Vec2{X: 0.3, Y: 0.2}), false, false},
		{"turned", mustCoord(t, msh, 0, m.Vec2{X: 0.1, Y: 0.2}, WithRotation(s1.Degree)), false, false},
		{"other triangle", mustCoord(t, msh, 1, m.Vec2{X: 0.1, Y: 0.2}), false, false},
		{"other mesh", mustCoord(t, other, 0, m.Vec2{X: 0.1, Y: 0.2}), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Equal(tt.o); got != tt.equal {
				t.Errorf("Equal() = %v, want %v", got, tt.equal)
			}
			if got := c.AlmostEqual(tt.o, 1e-6); got != tt.almost {
				t.Errorf("AlmostEqual() = %v, want %v", got, tt.almost)
			}
		})
	}
}

func TestString(t *testing.T) {
	c := mustCoord(t, quadMesh(t), 1, m.Vec2{X: 0.25, Y: 0.5}, WithRotation(270*s1.Degree), WithFrontSide(false))
	got := c.String()
	for _, want := range []string{"triangle 1", "0.2500", "0.5000", "270.00", "back"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}

func TestLocate(t *testing.T) {
	msh := quadMesh(t)
	c, err := Locate(msh, mesh.NewRay(m.Vec3{X: 0.8, Y: 0.7, Z: 5}, m.Vec3{Z: -1}))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if c.Triangle() != 1 {
		t.Errorf("Locate().Triangle() = %d, want 1", c.Triangle())
	}
	if got := c.LocalCoord(); !got.ApproxEqual(m.Vec3{X: 0.8, Y: 0.7}, 1e-9) {
		t.Errorf("Locate().LocalCoord() = %v, want (0.8, 0.7, 0)", got)
	}

	if _, err := Locate(msh, mesh.NewRay(m.Vec3{X: 5, Z: 5}, m.Vec3{Z: -1})); !errors.Is(err, ErrNoHit) {
		t.Errorf("Locate() off the mesh error = %v, want ErrNoHit", err)
	}
	if _, err := Locate(nil, mesh.Ray{}); !errors.Is(err, ErrNilMesh) {
		t.Errorf("Locate(nil) error = %v, want ErrNilMesh", err)
	}
}
