package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/shade"
	"github.com/ungerik/go3d/float64/vec3"
)

func tri(z float64, c shade.RGB) shade.Triangle {
	return shade.Triangle{
		V:         [3]vec3.T{cubic.P(0, 0, z), cubic.P(10, 0, z), cubic.P(0, 10, z)},
		Intensity: 1,
		Color:     c,
	}
}

func testOptions() Options {
	opts := DefaultOptions(100)
	opts.Supersample = 1
	opts.Margin = 10
	return opts
}

func TestFitAndProject(t *testing.T) {
	f := Fit([]vec3.T{cubic.P(0, 0, 0), cubic.P(10, 10, 0)}, 100, 10)
	x, y := f.Project(cubic.P(0, 0, 0))
	if x != 10 || y != 90 {
		t.Errorf("expected (10,90), got (%g,%g)", x, y)
	}
	x, y = f.Project(cubic.P(10, 10, 5))
	if x != 90 || y != 10 {
		t.Errorf("expected (90,10), got (%g,%g)", x, y)
	}
}

func TestTriangleFill(t *testing.T) {
	tris := []shade.Triangle{tri(0, shade.RGB{1, 0, 0})}
	c := NewCanvas([]vec3.T{tris[0].V[0], tris[0].V[1], tris[0].V[2]}, testOptions())
	c.Triangles(tris)
	img := c.Image()

	if got := img.NRGBAAt(20, 80); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("expected red inside the triangle, got %v", got)
	}
	if got := img.NRGBAAt(85, 15); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("expected background outside the triangle, got %v", got)
	}
}

func TestPainterOrder(t *testing.T) {
	near, far := tri(1, shade.RGB{0, 1, 0}), tri(0, shade.RGB{1, 0, 0})
	tris := []shade.Triangle{near, far}
	c := NewCanvas([]vec3.T{near.V[0], near.V[1], near.V[2]}, testOptions())
	c.Triangles(tris)
	if got := c.Image().NRGBAAt(20, 80); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("expected the nearer triangle on top, got %v", got)
	}
}

func TestPolylineAndSupersample(t *testing.T) {
	opts := DefaultOptions(50)
	opts.LineWidth = 2
	line := []vec3.T{cubic.P(0, 0, 0), cubic.P(10, 0, 0), cubic.P(10, 10, 0)}
	c := NewCanvas(line, opts)
	c.Polyline(line, color.White)
	c.Points(line, color.White)
	img := c.Image()
	if img.Bounds().Dx() != 50 || img.Bounds().Dy() != 50 {
		t.Fatalf("expected 50×50 output, got %v", img.Bounds())
	}
	lit := 0
	for _, v := range img.Pix {
		if v > 128 {
			lit++
		}
	}
	if lit == 0 {
		t.Error("expected stroked pixels")
	}
}

func TestContour(t *testing.T) {
	ct := polyclip.Contour{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	opts := testOptions()
	opts.LineWidth = 2
	c := NewCanvas([]vec3.T{cubic.P2(0, 0), cubic.P2(10, 10)}, opts)
	c.Contour(ct, color.White)
	img := c.Image()
	// the closing edge from (0,10) back to (0,0) runs along x = 10 pixels
	if got := img.NRGBAAt(10, 50); got.R < 128 {
		t.Errorf("expected the closing edge to be drawn, got %v", got)
	}
	if got := img.NRGBAAt(50, 50); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("expected an empty interior, got %v", got)
	}
}

func TestRGBA(t *testing.T) {
	if got := RGBA(shade.RGB{-1, 0.5, 2}); got != (color.NRGBA{0, 128, 255, 255}) {
		t.Errorf("unexpected color %v", got)
	}
}

func TestEncodeFormats(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for _, ext := range []string{".png", ".webp", ".tga", ".PNG"} {
		var buf bytes.Buffer
		if err := Encode(&buf, img, ext); err != nil {
			t.Errorf("%s: %v", ext, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%s: empty output", ext)
		}
	}
	if err := Encode(&bytes.Buffer{}, img, ".gif"); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 2, color.NRGBA{10, 20, 30, 255})
	path := filepath.Join(dir, "out", "patch.png")
	if err := Save(path, img); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer f.Close()
	back, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	r, g, b, _ := back.At(1, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("unexpected pixel %d %d %d", r>>8, g>>8, b>>8)
	}
	if err := Save(filepath.Join(dir, "patch.bmp"), img); !errors.Is(err, ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}
