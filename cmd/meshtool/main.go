// meshtool is a CLI utility that builds the heightfield mesh without a
// window, for inspection and export.
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/Faultbox/heightmap-viewer/internal/config"
	"github.com/Faultbox/heightmap-viewer/internal/engine/heightfield"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "export":
		err = cmdExport(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshtool - heightfield mesh utility

Usage:
  meshtool <command> [options]

Commands:
  info   [-n N] [-step S] [-amplitude A]             Show mesh counts and bounds
  export [-n N] [-step S] [-amplitude A] -o out.obj  Write the mesh as Wavefront OBJ

Examples:
  meshtool info -n 100 -step 0.1
  meshtool export -n 50 -o hills.obj`)
}

// meshFlags registers the mesh parameters shared by all commands.
type meshFlags struct {
	n         *int
	step      *float64
	amplitude *float64
	epsilon   *float64
}

func newMeshFlags(fs *flag.FlagSet) meshFlags {
	def := config.Default().Mesh
	return meshFlags{
		n:         fs.Int("n", def.Resolution, "Grid cells per side"),
		step:      fs.Float64("step", float64(def.Step), "Spacing between vertices"),
		amplitude: fs.Float64("amplitude", float64(def.Amplitude), "Height amplitude"),
		epsilon:   fs.Float64("epsilon", float64(def.Epsilon), "Finite difference offset for normals"),
	}
}

func (f meshFlags) build() (*heightfield.Mesh, error) {
	amplitude := float32(*f.amplitude)
	if a := float64(amplitude); math.IsNaN(a) || math.IsInf(a, 0) {
		return nil, fmt.Errorf("%w: amplitude %v must be finite", heightfield.ErrInvalidSampler, *f.amplitude)
	}
	s := heightfield.NewSampler(amplitude)
	s.Epsilon = float32(*f.epsilon)
	return s.BuildMesh(*f.n, float32(*f.step))
}

func cmdInfo(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	mf := newMeshFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	mesh, err := mf.build()
	if err != nil {
		return err
	}

	b := mesh.Bounds
	size := b.Size()
	center := b.Center()
	fmt.Fprintf(out, "Resolution: %d x %d cells\n", mesh.Resolution, mesh.Resolution)
	fmt.Fprintf(out, "Step:       %g\n", mesh.Step)
	fmt.Fprintf(out, "Vertices:   %d\n", mesh.VertexCount())
	fmt.Fprintf(out, "Indices:    %d\n", mesh.IndexCount())
	fmt.Fprintf(out, "Triangles:  %d\n", mesh.TriangleCount())
	fmt.Fprintf(out, "Bounds:     (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
	fmt.Fprintf(out, "Size:       %.3f x %.3f x %.3f\n", size[0], size[1], size[2])
	fmt.Fprintf(out, "Center:     (%.3f, %.3f, %.3f)\n", center[0], center[1], center[2])
	fmt.Fprintf(out, "GPU bytes:  %d vertex, %d index\n",
		mesh.VertexCount()*int(heightfield.VertexStride), mesh.IndexCount()*4)
	return nil
}

func cmdExport(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	mf := newMeshFlags(fs)
	output := fs.String("o", "", "Output OBJ file (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" {
		return fmt.Errorf("export: -o is required")
	}

	mesh, err := mf.build()
	if err != nil {
		return err
	}

	f, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", *output, err)
	}
	if err := mesh.WriteOBJ(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s (%d vertices, %d triangles)\n", *output, mesh.VertexCount(), mesh.TriangleCount())
	return nil
}
