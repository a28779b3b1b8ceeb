// meshwalk is a CLI utility for walking agents over triangle mesh surfaces.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/geo/s1"
	"go.uber.org/zap"

	"github.com/Faultbox/meshwalk/internal/agent"
	"github.com/Faultbox/meshwalk/internal/config"
	"github.com/Faultbox/meshwalk/internal/logger"
	"github.com/Faultbox/meshwalk/pkg/formats"
	"github.com/Faultbox/meshwalk/pkg/geom"
	m "github.com/Faultbox/meshwalk/pkg/math"
	"github.com/Faultbox/meshwalk/pkg/mesh"
	"github.com/Faultbox/meshwalk/pkg/surface"
)

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdout)
	logger.Sync()
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(command string, args []string, w io.Writer) error {
	switch command {
	case "info":
		return cmdInfo(args, w)
	case "walk":
		return cmdWalk(args, w)
	case "path":
		return cmdPath(args, w)
	case "help", "-h", "--help":
		printUsage(w)
		return nil
	default:
		printUsage(w)
		return fmt.Errorf("%w: unknown command %s", errUsage, command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `meshwalk - walk agents over triangle mesh surfaces

Usage:
  meshwalk <command> [options] [mesh.obj] [args]

Commands:
  info <mesh.obj>                  Show mesh statistics
  walk <mesh.obj>                  Run a movement script from a start triangle
  path <mesh.obj> <from> <to>      Find a coarse triangle path

Common options:
  -config <file>   Config file (default $MESHWALK_CONFIG, ./meshwalk.yaml
                   or the user config dir)
  -mesh <file>     Mesh file when not given as an argument
  -debug           Enable debug logging
  -step <size>     Agent step size
  -weighted        Use centroid-distance path costs

Walk options:
  -tri <n>         Start triangle (default 0)
  -x, -y <coord>   Start point in the triangle frame (default incenter)
  -heading <deg>   Start heading in degrees
  -script <cmds>   Commands: W forward, A turn left, D turn right,
                   optionally prefixed by a count (default "100W")
  -trail           Print every position

Examples:
  meshwalk info terrain.obj
  meshwalk walk -tri 3 -heading 90 -script "50W 10D 50W" terrain.obj
  meshwalk path -weighted terrain.obj 0 42`)
}

// env holds what every command needs.
type env struct {
	cfg  *config.Config
	mesh *mesh.Mesh
	log  *zap.Logger
}

// setup loads config, initializes logging and loads the mesh. A positional
// argument beyond the want command arguments names the mesh and overrides
// the config file. It returns the remaining positional arguments.
func setup(fs *flag.FlagSet, flags *config.Flags, args []string, want int) (*env, []string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	rest := fs.Args()
	if len(rest) > want && flags.Mesh == "" {
		cfg.Mesh.Path, rest = rest[0], rest[1:]
	}
	if cfg.Mesh.Path == "" {
		return nil, nil, fmt.Errorf("%w: no mesh file given", errUsage)
	}

	msh, err := loadMesh(cfg.Mesh)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("mesh loaded",
		zap.String("path", cfg.Mesh.Path),
		zap.Int("triangles", msh.TriangleCount()))

	return &env{cfg: cfg, mesh: msh, log: logger.Log}, rest, nil
}

func loadMesh(mc config.MeshConfig) (*mesh.Mesh, error) {
	obj, err := formats.ParseOBJFile(mc.Path)
	if err != nil {
		return nil, err
	}
	msh, err := obj.Mesh(mesh.WithLogger(logger.Named("mesh")))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", mc.Path, err)
	}
	if mc.Scale != 1 {
		msh.Scale(mc.Scale)
	}
	if t := (m.Vec3{X: mc.Translate[0], Y: mc.Translate[1], Z: mc.Translate[2]}); t != (m.Vec3{}) {
		msh.Translate(t)
	}
	return msh, nil
}

func newFlagSet(name string) (*flag.FlagSet, *config.Flags) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	flags := &config.Flags{}
	flags.Register(fs)
	return fs, flags
}

func cmdInfo(args []string, w io.Writer) error {
	fs, flags := newFlagSet("info")
	e, _, err := setup(fs, flags, args, 0)
	if err != nil {
		return err
	}
	msh := e.mesh

	flipped := 0
	for i := range msh.TriangleCount() {
		for edge := range 3 {
			if msh.Flipped(i, edge) {
				flipped++
			}
		}
	}
	bounds := msh.Bounds()

	fmt.Fprintf(w, "Mesh:      %s\n", e.cfg.Mesh.Path)
	fmt.Fprintf(w, "Vertices:  %d\n", msh.VertexCount())
	fmt.Fprintf(w, "Triangles: %d\n", msh.TriangleCount())
	fmt.Fprintf(w, "Boundary:  %d edges\n", len(msh.BoundaryEdges()))
	fmt.Fprintf(w, "Flipped:   %d edges\n", flipped/2)
	fmt.Fprintf(w, "Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)
	return nil
}

func cmdWalk(args []string, w io.Writer) error {
	fs, flags := newFlagSet("walk")
	tri := fs.Int("tri", 0, "Start triangle")
	x := fs.Float64("x", 0, "Start x in the triangle frame")
	y := fs.Float64("y", 0, "Start y in the triangle frame")
	heading := fs.Float64("heading", 0, "Start heading in degrees")
	script := fs.String("script", "100W", "Movement script")
	trail := fs.Bool("trail", false, "Print every position")

	e, _, err := setup(fs, flags, args, 0)
	if err != nil {
		return err
	}
	if err := e.mesh.CheckTriangle(*tri); err != nil {
		return err
	}

	p := geom.TriangleIncenter(e.mesh.SurfaceTriangle(*tri))
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			p.X = *x
		case "y":
			p.Y = *y
		}
	})

	start, err := surface.New(e.mesh, *tri, p, surface.WithRotation(s1.Angle(*heading)*s1.Degree))
	if err != nil {
		return err
	}

	a := agent.New(start)
	a.StepSize = e.cfg.Walk.StepSize
	a.TurnRate = s1.Angle(e.cfg.Walk.TurnRate) * s1.Degree
	a.Walker = e.cfg.Walk.Walker(logger.Named("walker"))
	a.SetLogger(logger.Named("agent"))

	positions, err := a.Run(*script)
	if *trail {
		for i, c := range positions {
			fmt.Fprintf(w, "%5d  %s\n", i, c)
		}
	}
	if err != nil {
		return err
	}

	end := a.Position
	world := end.LocalCoord()
	fmt.Fprintf(w, "Start:  %s\n", start)
	fmt.Fprintf(w, "End:    %s\n", end)
	fmt.Fprintf(w, "Mesh:   (%.4f, %.4f, %.4f)\n", world.X, world.Y, world.Z)
	fmt.Fprintf(w, "Steps:  %d\n", len(positions)-1)
	return nil
}

func cmdPath(args []string, w io.Writer) error {
	fs, flags := newFlagSet("path")
	e, rest, err := setup(fs, flags, args, 2)
	if err != nil {
		return err
	}
	if len(rest) != 2 {
		return fmt.Errorf("%w: meshwalk path [options] <mesh.obj> <from> <to>", errUsage)
	}

	var ends [2]surface.Coord
	for i, arg := range rest {
		tri, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%w: triangle %q is not a number", errUsage, arg)
		}
		if err := e.mesh.CheckTriangle(tri); err != nil {
			return err
		}
		ends[i], err = surface.New(e.mesh, tri, geom.TriangleIncenter(e.mesh.SurfaceTriangle(tri)))
		if err != nil {
			return err
		}
	}

	var path []int
	if e.cfg.Path.Weighted {
		path, err = surface.WeightedCoarsePath(ends[0], ends[1], surface.CentroidDistance(e.mesh))
	} else {
		path, err = surface.CoarsePath(ends[0], ends[1])
	}
	if err != nil {
		return err
	}

	length := 0.0
	for i := 1; i < len(path); i++ {
		length += e.mesh.Centroid(path[i-1]).Distance(e.mesh.Centroid(path[i]))
	}
	e.log.Debug("path found", zap.Ints("path", path), zap.Bool("weighted", e.cfg.Path.Weighted))

	fmt.Fprintf(w, "Path:   %v\n", path)
	fmt.Fprintf(w, "Hops:   %d\n", len(path)-1)
	fmt.Fprintf(w, "Length: %.4f\n", length)
	return nil
}
