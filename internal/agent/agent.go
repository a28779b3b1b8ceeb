// Package agent drives a surface coordinate with scripted movement commands.
package agent

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"github.com/Faultbox/meshwalk/pkg/geom"
	"github.com/Faultbox/meshwalk/pkg/surface"
)

// ErrUnknownCommand is returned for script characters that are not commands.
var ErrUnknownCommand = errors.New("unknown command")

// Command is a single movement input.
type Command byte

// Movement commands.
const (
	Forward   Command = 'W'
	TurnLeft  Command = 'A'
	TurnRight Command = 'D'
)

// Defaults for a new agent.
const (
	DefaultStepSize = 0.01
	DefaultTurnRate = 2 // degrees
)

// Agent walks over a mesh surface.
type Agent struct {
	Position surface.Coord

	StepSize float64  // distance per Forward
	TurnRate s1.Angle // rotation per TurnLeft/TurnRight
	Walker   surface.Walker

	log *zap.Logger
}

// New creates an agent at start with default step size and turn rate.
func New(start surface.Coord) *Agent {
	return &Agent{
		Position: start,
		StepSize: DefaultStepSize,
		TurnRate: DefaultTurnRate * s1.Degree,
		Walker:   surface.DefaultWalker(),
		log:      zap.NewNop(),
	}
}

// SetLogger sets the agent's logger.
func (a *Agent) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	a.log = log
}

// Step applies one command and returns the new position.
func (a *Agent) Step(cmd Command) (surface.Coord, error) {
	switch Command(unicode.ToUpper(rune(cmd))) {
	case Forward:
		v := geom.HeadingVector(a.Position.Rotation(), a.StepSize)
		a.Position = a.Walker.Move(a.Position, v)
	case TurnLeft:
		a.Position = a.Position.Rotate(-a.TurnRate)
	case TurnRight:
		a.Position = a.Position.Rotate(a.TurnRate)
	default:
		return a.Position, fmt.Errorf("%w: %q", ErrUnknownCommand, rune(cmd))
	}
	return a.Position, nil
}

// Run executes every command in script and returns the trail of positions,
// starting with the initial one. Whitespace is ignored. A run count may
// prefix a command, so "10W" moves forward ten times.
func (a *Agent) Run(script string) ([]surface.Coord, error) {
	trail := []surface.Coord{a.Position}
	repeat := 0
	for i, r := range script {
		switch {
		case unicode.IsSpace(r):
			continue
		case r >= '0' && r <= '9':
			repeat = repeat*10 + int(r-'0')
			continue
		case r > unicode.MaxASCII:
			return trail, fmt.Errorf("offset %d: %w: %q", i, ErrUnknownCommand, r)
		}

		n := max(repeat, 1)
		repeat = 0
		for range n {
			pos, err := a.Step(Command(r))
			if err != nil {
				return trail, fmt.Errorf("offset %d: %w", i, err)
			}
			trail = append(trail, pos)
		}
	}
	if repeat != 0 {
		return trail, fmt.Errorf("%w: dangling count %d", ErrUnknownCommand, repeat)
	}

	a.log.Debug("script finished",
		zap.Int("commands", len(trail)-1),
		zap.Stringer("position", a.Position))
	return trail, nil
}
