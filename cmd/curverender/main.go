// Command curverender reads planar control points, builds the closed spline
// curve through the curve editor and writes a preview image with the curve
// and its control polygon.
//
//	curverender [flags] points-file
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"go.uber.org/zap"

	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/config"
	"github.com/splinekit/cubic/ctrlfile"
	"github.com/splinekit/cubic/editor"
	"github.com/splinekit/cubic/internal/logger"
	"github.com/splinekit/cubic/internal/raster"
	"github.com/ungerik/go3d/float64/vec3"
)

func main() {
	configFile := flag.String("config", "", "Path to a YAML config file")
	family := flag.String("family", "", "Spline family: hermite, bezier, bspline, catmullrom")
	out := flag.String("out", "curve.png", "Output image (.png, .webp or .tga)")
	size := flag.Int("size", 512, "Output image size in pixels")
	rotate := flag.Int("rotate", 0, "Rotation steps (negative turns clockwise)")
	scale := flag.Int("scale", 0, "Scale steps (negative shrinks)")
	mirror := flag.String("mirror", "", "Mirror at the vertical (y) or horizontal (x) axis")
	shear := flag.Int("shear", 0, "Horizontal shear steps")
	pick := flag.String("pick", "", "Select the control point nearest to x,y")
	drag := flag.String("drag", "", "Move the picked control point to x,y")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: curverender [flags] points-file")
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
	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	c, err := build(flag.Arg(0), cfg.CurveOptions())
	if err != nil {
		logger.Log.Error("cannot build curve", zap.Error(err))
		os.Exit(1)
	}

	ed := cfg.Editor
	for i := 0; i < abs(*rotate); i++ {
		c.Rotate(sign(*rotate) * ed.RotationDegrees)
	}
	for i := 0; i < abs(*scale); i++ {
		if *scale > 0 {
			c.Scale(ed.ScaleFactor)
		} else {
			c.Scale(1 / ed.ScaleFactor)
		}
	}
	for i := 0; i < abs(*shear); i++ {
		c.Shear(sign(*shear)*ed.ShearFactor, 0)
	}
	switch *mirror {
	case "":
	case "x":
		c.Mirror(cubic.AxisX)
	case "y":
		c.Mirror(cubic.AxisY)
	default:
		logger.Log.Warn("ignoring unknown mirror axis", zap.String("axis", *mirror))
	}

	if *pick != "" {
		x, y, err := parseXY(*pick)
		if err != nil {
			logger.Log.Error("bad -pick", zap.Error(err))
			os.Exit(2)
		}
		if c.Click(x, y) < 0 {
			logger.Log.Warn("no control point near pick position", zap.String("pick", *pick))
		}
	}
	if *drag != "" {
		x, y, err := parseXY(*drag)
		if err != nil {
			logger.Log.Error("bad -drag", zap.Error(err))
			os.Exit(2)
		}
		if !c.Drag(x, y) {
			logger.Log.Warn("nothing to drag, use -pick")
		}
	}

	logger.Log.Info("curve ready",
		zap.Stringer("family", c.Family()),
		zap.Int("control_points", c.Len()),
		zap.Int("curve_points", len(c.Points())))

	if err := raster.Save(*out, render(c, raster.DefaultOptions(*size))); err != nil {
		logger.Log.Error("cannot write image", zap.String("path", *out), zap.Error(err))
		os.Exit(1)
	}
	logger.Sugar.Infof("wrote %s", *out)
}

// render draws the control polygon with its vertex markers, the selected
// vertex highlighted, and the curve on top.
func render(c *editor.Curve, opts raster.Options) *image.NRGBA {
	ctrl := c.ControlPoints()
	canvas := raster.NewCanvas(append(ctrl, c.Points()...), opts)
	canvas.Contour(c.ControlPolygon(), color.NRGBA{90, 90, 90, 255})
	canvas.Points(ctrl, color.NRGBA{255, 255, 0, 255})
	if sel := c.Selected(); sel >= 0 {
		canvas.Points(ctrl[sel:sel+1], color.NRGBA{255, 0, 0, 255})
	}
	canvas.Polyline(closed(c.Points()), color.White)
	return canvas.Image()
}

func parseXY(s string) (float64, float64, error) {
	var x, y float64
	if _, err := fmt.Sscanf(s, "%g,%g", &x, &y); err != nil {
		return 0, 0, fmt.Errorf("want x,y, have %q: %w", s, err)
	}
	return x, y, nil
}

// build feeds the points of a file to a curve editor and closes the curve.
func build(path string, opts editor.CurveOptions) (*editor.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	pts, err := ctrlfile.ReadPoints(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c := editor.NewCurve(opts)
	for _, p := range pts {
		if c.Click(p[0], p[1]) < 0 {
			logger.Sugar.Warnf("control point limit %d reached, ignoring the rest", opts.MaxControlPoints)
			break
		}
	}
	if err := c.Finalize(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func closed(pts []vec3.T) []vec3.T {
	if len(pts) == 0 {
		return pts
	}
	return append(pts[:len(pts):len(pts)], pts[0])
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) float64 {
	if n < 0 {
		return -1
	}
	return 1
}
