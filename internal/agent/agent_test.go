package agent

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
	"github.com/Faultbox/meshwalk/pkg/surface"
)

const tolerance = 1e-9

// newAgent places an agent on a single triangle whose local frame matches
// the XY plane.
func newAgent(t *testing.T, p m.Vec2, heading s1.Angle) *Agent {
	t.Helper()
	msh, err := mesh.New([]m.Vec3{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 0}}, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("mesh.New() error = %v", err)
	}
	c, err := surface.New(msh, 0, p, surface.WithRotation(heading))
	if err != nil {
		t.Fatalf("surface.New() error = %v", err)
	}
	return New(c)
}

func TestStep(t *testing.T) {
	tests := []struct {
		name    string
		cmd     Command
		point   m.Vec2
		degrees float64
	}{
		{"forward", Forward, m.Vec2{X: 0.2, Y: 0.21}, 90},
		{"forward lowercase", 'w', m.Vec2{X: 0.2, Y: 0.21}, 90},
		{"turn left", TurnLeft, m.Vec2{X: 0.2, Y: 0.2}, 88},
		{"turn right", TurnRight, m.Vec2{X: 0.2, Y: 0.2}, 92},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 90*s1.Degree)
			got, err := a.Step(tt.cmd)
			if err != nil {
				t.Fatalf("Step(%q) error = %v", tt.cmd, err)
			}
			if !got.Point().ApproxEqual(tt.point, tolerance) {
				t.Errorf("Step(%q) point = %v, want %v", tt.cmd, got.Point(), tt.point)
			}
			if d := got.Rotation().Degrees(); math.Abs(d-tt.degrees) > 1e-6 {
				t.Errorf("Step(%q) heading = %v, want %v", tt.cmd, d, tt.degrees)
			}
			if !a.Position.Equal(got) {
				t.Errorf("Position = %v, want %v", a.Position, got)
			}
		})
	}
}

func TestStepTurnWraps(t *testing.T) {
	a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 0)
	got, err := a.Step(TurnLeft)
	if err != nil {
		t.Fatalf("Step() error = %v", err)
	}
	if d := got.Rotation().Degrees(); math.Abs(d-358) > 1e-6 {
		t.Errorf("heading = %v, want 358", d)
	}
}

func TestStepUnknown(t *testing.T) {
	a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 0)
	before := a.Position
	if _, err := a.Step('Q'); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("Step('Q') error = %v, want %v", err, ErrUnknownCommand)
	}
	if !a.Position.Equal(before) {
		t.Errorf("Position changed to %v after unknown command", a.Position)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		script  string
		steps   int
		point   m.Vec2
		degrees float64
	}{
		{"empty", "", 0, m.Vec2{X: 0.2, Y: 0.2}, 90},
		{"forward", "WWWWW", 5, m.Vec2{X: 0.2, Y: 0.25}, 90},
		{"counted", "10W", 10, m.Vec2{X: 0.2, Y: 0.3}, 90},
		{"whitespace", " 2w\n3W\t", 5, m.Vec2{X: 0.2, Y: 0.25}, 90},
		{"turn and back", "45D 45A", 90, m.Vec2{X: 0.2, Y: 0.2}, 90},
		// A 180 degree heading points along +X.
		{"turn then walk", "45D10W", 55, m.Vec2{X: 0.3, Y: 0.2}, 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 90*s1.Degree)
			trail, err := a.Run(tt.script)
			if err != nil {
				t.Fatalf("Run(%q) error = %v", tt.script, err)
			}
			if len(trail) != tt.steps+1 {
				t.Fatalf("Run(%q) trail length = %d, want %d", tt.script, len(trail), tt.steps+1)
			}
			last := trail[len(trail)-1]
			if !last.Point().ApproxEqual(tt.point, 1e-6) {
				t.Errorf("Run(%q) point = %v, want %v", tt.script, last.Point(), tt.point)
			}
			if d := last.Rotation().Degrees(); math.Abs(d-tt.degrees) > 1e-6 {
				t.Errorf("Run(%q) heading = %v, want %v", tt.script, d, tt.degrees)
			}
		})
	}
}

func TestRunStopsAtBoundary(t *testing.T) {
	a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 90*s1.Degree)
	trail, err := a.Run("200W")
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	p := trail[len(trail)-1].Point()
	if p.X+p.Y > 1 || p.Y < 0.79 {
		t.Errorf("Run() ended at %v, want just inside the hypotenuse", p)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		trail  int
	}{
		{"unknown", "WWX", 3},
		{"dangling count", "W12", 2},
		{"non ascii", "Wé", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 90*s1.Degree)
			trail, err := a.Run(tt.script)
			if !errors.Is(err, ErrUnknownCommand) {
				t.Errorf("Run(%q) error = %v, want %v", tt.script, err, ErrUnknownCommand)
			}
			if len(trail) != tt.trail {
				t.Errorf("Run(%q) trail length = %d, want %d", tt.script, len(trail), tt.trail)
			}
		})
	}
}

func TestRunLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	a := newAgent(t, m.Vec2{X: 0.2, Y: 0.2}, 0)
	a.SetLogger(zap.New(core))

	if _, err := a.Run("DDW"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	entries := logs.FilterMessage("script finished").All()
	if len(entries) != 1 {
		t.Fatalf("got %d 'script finished' entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["commands"]; got != int64(3) {
		t.Errorf("commands = %v, want 3", got)
	}
}
