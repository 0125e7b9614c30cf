// swrast renders a single mesh, or a multi-object YAML scene, to a PNG
// file using the software triangle rasterizer in pkg/raster.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/CygnusX-26/swrast/pkg/math3d"
	"github.com/CygnusX-26/swrast/pkg/raster"
	"github.com/CygnusX-26/swrast/pkg/scene"
)

var (
	filename    = flag.String("f", "", "Path to a .obj, .gltf, or .glb mesh file")
	sceneFile   = flag.String("scene", "", "Path to a YAML scene file (overrides -f)")
	output      = flag.String("o", "out.png", "Output PNG path")
	dims        = flag.String("size", "500x500", "Output image dimensions as WIDTHxHEIGHT")
	flipNormals = flag.Bool("n", false, "Negate all mesh normals before shading (use when a mesh renders inside-out)")
)

func init() {
	flag.StringVar(filename, "filename", "", "Same as -f")
	flag.BoolVar(flipNormals, "normals", false, "Same as -n")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "swrast - software triangle rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: swrast -f model.obj [-o out.png]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := newLogger()
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("render failed", "error", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if v := os.Getenv("SWRAST_LOG_LEVEL"); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			level = l
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run() error {
	width, height, err := parseDims(*dims)
	if err != nil {
		return fmt.Errorf("swrast: %w", err)
	}

	world, err := loadWorld(width, height)
	if err != nil {
		return err
	}

	if *flipNormals {
		flipWorldNormals(world)
	}

	pixels := make([]byte, width*height*4)
	db := raster.NewDepthBuffer(width, height)

	slog.Info("rendering", "width", width, "height", height, "objects", len(world.Objects))
	if err := raster.Draw(world, db, pixels, width, height); err != nil {
		return fmt.Errorf("swrast: render: %w", err)
	}

	if err := raster.SavePNG(*output, width, height, pixels); err != nil {
		return fmt.Errorf("swrast: save %s: %w", *output, err)
	}
	slog.Info("wrote image", "path", *output)
	return nil
}

func loadWorld(width, height int) (*scene.World, error) {
	if *sceneFile != "" {
		w, err := scene.LoadConfig(*sceneFile)
		if err != nil {
			return nil, fmt.Errorf("swrast: %w", err)
		}
		w.Camera.SetAspectRatio(float64(width) / float64(height))
		return w, nil
	}

	if *filename == "" {
		flag.Usage()
		os.Exit(2)
	}

	mesh, err := loadMesh(*filename)
	if err != nil {
		return nil, fmt.Errorf("swrast: %w", err)
	}

	w := scene.NewWorld()
	w.Camera.SetAspectRatio(float64(width) / float64(height))

	center := mesh.Center()
	radius := mesh.Size().Len()
	if radius == 0 {
		radius = 1
	}
	w.Camera.SetPosition(center.Add(math3d.V3(0, 0, radius*2.5)))
	w.Camera.LookAt(center)

	w.Objects = append(w.Objects, scene.Object{Name: filepath.Base(*filename), Mesh: mesh})
	return w, nil
}

func loadMesh(path string) (*scene.Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return scene.LoadGLTF(path)
	default:
		return scene.LoadOBJ(path)
	}
}

func flipWorldNormals(w *scene.World) {
	for _, obj := range w.Objects {
		if m, ok := obj.Mesh.(*scene.Mesh); ok {
			for i := range m.Normals {
				m.Normals[i] = m.Normals[i].Negate()
			}
		}
	}
}

func parseDims(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid -size %q, want WIDTHxHEIGHT", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width %q", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height %q", parts[1])
	}
	return w, h, nil
}
