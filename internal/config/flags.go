package config

import "flag"

// Flags holds command-line overrides.
type Flags struct {
	Config   string
	Debug    bool
	Mesh     string
	Step     float64
	Weighted bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.Mesh, "mesh", "", "Path to mesh file")
	fs.Float64Var(&f.Step, "step", 0, "Agent step size")
	fs.BoolVar(&f.Weighted, "weighted", false, "Use centroid-distance path costs")
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.Mesh != "" {
		cfg.Mesh.Path = f.Mesh
	}
	if f.Step > 0 {
		cfg.Walk.StepSize = f.Step
	}
	if f.Weighted {
		cfg.Path.Weighted = true
	}
}
