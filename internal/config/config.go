// Package config handles meshwalk configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshwalk/internal/logger"
	"github.com/Faultbox/meshwalk/pkg/surface"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all meshwalk settings.
type Config struct {
	Mesh    MeshConfig    `yaml:"mesh"`
	Walk    WalkConfig    `yaml:"walk"`
	Path    PathConfig    `yaml:"path"`
	Logging LoggingConfig `yaml:"logging"`
}

// MeshConfig describes the mesh to load and how to place it.
type MeshConfig struct {
	Path      string     `yaml:"path"` // Wavefront OBJ file
	Scale     float64    `yaml:"scale"`
	Translate [3]float64 `yaml:"translate"`
}

// WalkConfig holds agent and walker tunables.
type WalkConfig struct {
	StepSize     float64 `yaml:"step_size"`
	TurnRate     float64 `yaml:"turn_rate"` // degrees per turn command
	EdgeEpsilon  float64 `yaml:"edge_epsilon"`
	ShrinkFactor float64 `yaml:"shrink_factor"`
	MaxCrossings int     `yaml:"max_crossings"`
}

// PathConfig holds path finder settings.
type PathConfig struct {
	Weighted bool `yaml:"weighted"` // centroid-distance costs instead of hop counts
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`    // debug, info, warn, error
	LogFile string `yaml:"log_file"` // empty = stderr only
}

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Mesh: MeshConfig{
			Scale: 1,
		},
		Walk: WalkConfig{
			StepSize:     0.01,
			TurnRate:     2,
			EdgeEpsilon:  surface.DefaultEdgeEpsilon,
			ShrinkFactor: surface.DefaultShrinkFactor,
			MaxCrossings: surface.DefaultMaxCrossings,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate reports every out-of-range setting.
func (c *Config) Validate() error {
	var err error
	if c.Mesh.Scale == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: mesh.scale must be non-zero", ErrInvalidConfig))
	}
	if c.Walk.StepSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: walk.step_size must be positive, got %g", ErrInvalidConfig, c.Walk.StepSize))
	}
	if c.Walk.EdgeEpsilon <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: walk.edge_epsilon must be positive, got %g", ErrInvalidConfig, c.Walk.EdgeEpsilon))
	}
	if c.Walk.ShrinkFactor <= 0 || c.Walk.ShrinkFactor >= 1 {
		err = multierr.Append(err, fmt.Errorf("%w: walk.shrink_factor must be in (0, 1), got %g", ErrInvalidConfig, c.Walk.ShrinkFactor))
	}
	if c.Walk.MaxCrossings <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: walk.max_crossings must be positive, got %d", ErrInvalidConfig, c.Walk.MaxCrossings))
	}
	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		err = multierr.Append(err, fmt.Errorf("%w: logging.level: %v", ErrInvalidConfig, lerr))
	}
	return err
}

// Walker builds a surface walker from the walk settings.
func (w WalkConfig) Walker(log *zap.Logger) surface.Walker {
	return surface.Walker{
		EdgeEpsilon:  w.EdgeEpsilon,
		ShrinkFactor: w.ShrinkFactor,
		MaxCrossings: w.MaxCrossings,
	}.WithLogger(log)
}
