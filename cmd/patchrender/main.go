// Command patchrender loads a control grid file, tessellates and shades its
// bicubic patches and writes a preview image.
//
//	patchrender [flags] control-file
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/config"
	"github.com/splinekit/cubic/editor"
	"github.com/splinekit/cubic/internal/logger"
	"github.com/splinekit/cubic/internal/raster"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML config file")
	family := flag.String("family", "", "Spline family: hermite, bezier, bspline, catmullrom")
	out := flag.String("out", "patches.png", "Output image (.png, .webp or .tga)")
	size := flag.Int("size", 512, "Output image size in pixels")
	mode := flag.String("mode", "solid", "View mode: solid, wireframe or points")
	rx := flag.Int("rx", 0, "Rotation steps around the x-axis (negative turns clockwise)")
	ry := flag.Int("ry", 0, "Rotation steps around the y-axis")
	rz := flag.Int("rz", 0, "Rotation steps around the z-axis")
	zoom := flag.Int("zoom", 0, "Scale steps (negative shrinks)")
	net := flag.Bool("net", false, "Draw the control net")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: patchrender [flags] control-file")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.LoadFile(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
	}
	if *family != "" {
		if _, err := basis.ParseFamily(*family); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		cfg.Tessellation.Family = *family
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	viewMode, err := parseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	start := time.Now()
	s := editor.NewSurface(cfg.SurfaceOptions())
	if err := s.Load(flag.Arg(0)); err != nil {
		logger.Log.Error("cannot load control grid", zap.Error(err))
		os.Exit(1)
	}
	s.SetMode(viewMode)
	steps(*rx, func(dir int) { s.Rotate(editor.AxisX, dir) })
	steps(*ry, func(dir int) { s.Rotate(editor.AxisY, dir) })
	steps(*rz, func(dir int) { s.Rotate(editor.AxisZ, dir) })
	steps(*zoom, func(dir int) { s.Zoom(dir > 0) })

	logger.Log.Info("surface ready",
		zap.String("label", s.Label()),
		zap.Stringer("family", s.Family()),
		zap.Int("rows", s.Grid().Rows()),
		zap.Int("cols", s.Grid().Cols()),
		zap.Int("patches", len(s.Patches())),
		zap.Duration("elapsed", time.Since(start)))

	img := render(s, raster.DefaultOptions(*size), *net)
	if err := raster.Save(*out, img); err != nil {
		logger.Log.Error("cannot write image", zap.String("path", *out), zap.Error(err))
		os.Exit(1)
	}
	logger.Sugar.Infof("wrote %s in %v", *out, time.Since(start).Round(time.Millisecond))
}

// steps calls f |n| times with the sign of n.
func steps(n int, f func(dir int)) {
	dir := 1
	if n < 0 {
		dir, n = -1, -n
	}
	for i := 0; i < n; i++ {
		f(dir)
	}
}

func parseMode(m string) (editor.ViewMode, error) {
	switch m {
	case "solid":
		return editor.ViewSolid, nil
	case "wireframe":
		return editor.ViewWireframe, nil
	case "points":
		return editor.ViewPoints, nil
	}
	return 0, fmt.Errorf("unknown view mode %q", m)
}

func render(s *editor.Surface, opts raster.Options, net bool) *image.NRGBA {
	c := raster.NewCanvas(s.Points(), opts)
	switch s.Mode() {
	case editor.ViewSolid:
		c.Patches(s.Shaded())
	case editor.ViewWireframe:
		for _, l := range s.Wireframe() {
			c.Polyline(l, color.NRGBA{200, 200, 200, 255})
		}
	case editor.ViewPoints:
		c.Points(s.Points(), color.White)
	}
	if net {
		for _, l := range s.ControlNet() {
			c.Polyline(l, color.NRGBA{255, 255, 0, 255})
		}
	}
	return c.Image()
}
