// scenetool is a CLI utility for inspecting grove scenes and models.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/grove/internal/assets"
	"github.com/Faultbox/grove/internal/engine/model"
	"github.com/Faultbox/grove/internal/game/movement"
	"github.com/Faultbox/grove/internal/game/session"
	"github.com/Faultbox/grove/internal/game/world"
	"github.com/Faultbox/grove/internal/logger"
	"github.com/Faultbox/grove/pkg/formats"
)

// errUsage marks errors that should be followed by the usage text.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if lvl := os.Getenv("GROVE_LOG"); lvl != "" {
		if err := logger.Init(lvl, ""); err == nil {
			defer logger.Sync()
		}
	}

	err := run(os.Stdout, os.Args[1], os.Args[2:])
	if err == nil {
		return
	}
	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		printUsage(os.Stderr)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}

func run(w io.Writer, command string, args []string) error {
	switch command {
	case "info":
		return cmdInfo(w, args)
	case "validate", "check":
		return cmdValidate(w, args)
	case "tiles":
		return cmdTiles(w, args)
	case "simulate", "sim":
		return cmdSimulate(w, args)
	case "convert":
		return cmdConvert(w, args)
	case "assets", "ls":
		return cmdAssets(w, args)
	case "help", "-h", "--help":
		printUsage(w)
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, command)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `scenetool - grove scene and model utility

Usage:
  scenetool <command> [options]

Commands:
  info <model.obj>                 Show vertex counts before and after de-duplication
  validate <scene>                 Check a scene file (yaml or toml)
  tiles [-list] <scene>            Show the ground tile grid
  simulate [options] <scene>       Step the movement controller without a window
  convert <scene> <out>            Re-encode a scene; the output extension picks the format
  assets [dir]                     List embedded assets

A scene of "default" uses the embedded default scene.

Examples:
  scenetool info models/lowpolytree.obj
  scenetool validate scenes/forest.toml
  scenetool simulate -keys forward -run -steps 120 default`)
}

func loadScene(arg string) (*world.Scene, error) {
	path := arg
	if arg == "default" {
		path = ""
	}
	return session.LoadScene(assets.NewManager(), path)
}

func cmdInfo(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: scenetool info <model.obj>", errUsage)
	}
	name := args[0]

	data, err := assets.NewManager().Load(name)
	if err != nil {
		if data, err = os.ReadFile(name); err != nil {
			return &model.LoadError{Path: name, Err: err}
		}
	}
	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return &model.LoadError{Path: name, Err: err}
	}
	mesh, err := model.BuildMesh(name, obj)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Model:     %s\n", name)
	fmt.Fprintf(w, "Positions: %d\n", obj.VertexCount())
	fmt.Fprintf(w, "Raw:       %d vertices\n", obj.IndexCount())
	fmt.Fprintf(w, "Unique:    %d vertices\n", len(mesh.Vertices))
	fmt.Fprintf(w, "Triangles: %d\n", mesh.TriangleCount())
	size := mesh.Bounds.Size()
	fmt.Fprintf(w, "Bounds:    %v .. %v (size %.3f x %.3f x %.3f)\n",
		mesh.Bounds.Min, mesh.Bounds.Max, size.X(), size.Y(), size.Z())
	if len(obj.Shapes) > 1 {
		fmt.Fprintln(w, "Shapes:")
		for _, s := range obj.Shapes {
			fmt.Fprintf(w, "  %-16s %d triangles\n", s.Name, s.TriangleCount())
		}
	}
	for _, warn := range obj.Warnings {
		fmt.Fprintf(w, "Warning:   %s\n", warn)
	}
	return nil
}

func cmdValidate(w io.Writer, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("%w: scenetool validate <scene>", errUsage)
	}

	s, err := loadScene(args[0])
	if err != nil {
		var cfgErr *world.ConfigError
		if !errors.As(err, &cfgErr) {
			return err
		}
		errs := multierr.Errors(err)
		for _, e := range errs {
			fmt.Fprintf(w, "  %v\n", e)
		}
		return fmt.Errorf("%s: %d problem(s)", args[0], len(errs))
	}

	fmt.Fprintf(w, "%s: ok (%q, %d objects, %d tiles)\n",
		args[0], s.Name, s.Objects.Len(), s.Ground.TileCount())
	return nil
}

func cmdTiles(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("tiles", flag.ContinueOnError)
	fs.SetOutput(w)
	list := fs.Bool("list", false, "Print every tile offset")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: scenetool tiles [-list] <scene>", errUsage)
	}

	s, err := loadScene(fs.Arg(0))
	if err != nil {
		return err
	}
	nx, nz := s.Ground.TileRange()
	fmt.Fprintf(w, "Ground: x %d..%d, z %d..%d, %d tiles\n", -nx, nx, -nz, nz, s.Ground.TileCount())
	fmt.Fprintf(w, "Walkable: |x| <= %g, |z| <= %g, eye height %g..%g\n",
		s.Ground.HalfExtents.X(), s.Ground.HalfExtents.Z(), s.Ground.FloorLevel, s.Ground.Ceiling())

	if *list {
		for _, t := range s.Ground.Tiles() {
			fmt.Fprintf(w, "  %3d %3d\n", t.X, t.Z)
		}
	}
	return nil
}

func cmdSimulate(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	fs.SetOutput(w)
	steps := fs.Int("steps", 60, "Number of frames")
	dt := fs.Float64("dt", 1.0/60, "Frame time in seconds")
	keys := fs.String("keys", "", "Comma separated keys held from the first frame (forward, backward, pan-left, pan-right, truck-left, truck-right, jump)")
	runMod := fs.Bool("run", false, "Hold the run modifier")
	collision := fs.String("collision", "footprint", "Collision mode: off, broad or footprint")
	verbose := fs.Bool("v", false, "Print every frame")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: scenetool simulate [options] <scene>", errUsage)
	}

	s, err := loadScene(fs.Arg(0))
	if err != nil {
		return err
	}
	opts := session.DefaultOptions()
	if opts.Collision, err = world.ParseCollisionMode(*collision); err != nil {
		return err
	}

	var in movement.InputState
	for _, name := range strings.Split(*keys, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		k, err := movement.ParseKey(name)
		if err != nil {
			return err
		}
		in.Add(movement.KeyEvent{Key: k, Down: true, Run: *runMod})
	}

	sess := session.New(s, opts)
	fmt.Fprintf(w, "start  eye=%v\n", fmtVec(sess.Camera.Eye()))
	for i := 0; i < *steps; i++ {
		res := sess.Step(float32(*dt), in)
		in.Reset()

		if *verbose || res.Dolly != movement.NotRejected || res.Truck != movement.NotRejected || res.Jump != movement.JumpUnchanged {
			fmt.Fprintf(w, "%5d  eye=%v", i, fmtVec(res.Eye))
			if res.Dolly != movement.NotRejected {
				fmt.Fprintf(w, " dolly=%s", res.Dolly)
			}
			if res.Truck != movement.NotRejected {
				fmt.Fprintf(w, " truck=%s", res.Truck)
			}
			if res.HitObject >= 0 {
				fmt.Fprintf(w, " object=%s", s.Objects.At(res.HitObject).Name)
			}
			if res.Jump != movement.JumpUnchanged {
				fmt.Fprintf(w, " jump=%s", res.Jump)
			}
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "end    eye=%v forward=%v\n", fmtVec(sess.Camera.Eye()), fmtVec(sess.Camera.Forward()))
	return nil
}

func fmtVec(v [3]float32) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v[0], v[1], v[2])
}

func cmdConvert(w io.Writer, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: scenetool convert <scene> <out>", errUsage)
	}
	s, err := loadScene(args[0])
	if err != nil {
		return err
	}
	data, err := world.Encode(s, world.FormatFromPath(args[1]))
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[1], data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %s (%d bytes)\n", args[1], len(data))
	return nil
}

func cmdAssets(w io.Writer, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = filepath.ToSlash(args[0])
	}
	names, err := assets.NewManager().List(dir)
	if err != nil {
		return err
	}
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	return nil
}
