package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/editor"
	"github.com/splinekit/cubic/internal/raster"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestBuild(t *testing.T) {
	c, err := build(filepath.Join("testdata", "pentagon.txt"), editor.DefaultCurveOptions())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if c.State() != editor.Closed {
		t.Errorf("expected closed curve, got %s", c.State())
	}
	if c.Len() != 5 {
		t.Errorf("expected 5 control points, got %d", c.Len())
	}
	if len(c.Points()) == 0 {
		t.Error("expected tessellated curve")
	}

	opts := editor.DefaultCurveOptions()
	opts.MaxControlPoints = 3
	if _, err := build(filepath.Join("testdata", "pentagon.txt"), opts); !errors.Is(err, editor.ErrNotReady) {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
	if _, err := build(filepath.Join("testdata", "missing.txt"), opts); err == nil || !strings.Contains(err.Error(), "missing.txt") {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestClosed(t *testing.T) {
	pts := []vec3.T{cubic.P2(0, 0), cubic.P2(1, 0), cubic.P2(1, 1)}
	cl := closed(pts)
	if len(cl) != 4 || cl[3] != pts[0] {
		t.Errorf("expected closing point, got %v", cl)
	}
	if len(pts) != 3 {
		t.Error("input must not change")
	}
}

func TestParseXY(t *testing.T) {
	x, y, err := parseXY("210,60.5")
	if err != nil || x != 210 || y != 60.5 {
		t.Errorf("expected (210,60.5), got (%g,%g), %v", x, y, err)
	}
	if _, _, err := parseXY("210"); err == nil {
		t.Error("expected error for a single coordinate")
	}
}

func TestRenderHighlightsSelection(t *testing.T) {
	c, err := build(filepath.Join("testdata", "pentagon.txt"), editor.DefaultCurveOptions())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	opts := raster.DefaultOptions(100)
	opts.Supersample = 1
	opts.LineWidth = 3

	count := func() int {
		img := render(c, opts)
		n := 0
		for y := 0; y < 100; y++ {
			for x := 0; x < 100; x++ {
				if p := img.NRGBAAt(x, y); p.R > 200 && p.G < 60 && p.B < 60 {
					n++
				}
			}
		}
		return n
	}
	if n := count(); n != 0 {
		t.Errorf("expected no highlighted vertex, found %d red pixels", n)
	}
	if c.Click(240, 180) != 2 {
		t.Fatal("expected to select control point 2")
	}
	if n := count(); n == 0 {
		t.Error("expected the selected vertex to be highlighted")
	}
}
