// Package raster draws shaded surface patches and polylines into images,
// using an orthographic view along the z-axis.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sort"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/splinekit/cubic/shade"
	"github.com/ungerik/go3d/float64/vec3"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Options control framing and sampling.
type Options struct {
	Size        int         // width and height of the output in pixels
	Supersample int         // render at Size·Supersample, then downsample
	Margin      int         // border in output pixels
	Background  color.NRGBA // fill color of the canvas
	LineWidth   float64     // stroke width of polylines in output pixels
}

// DefaultOptions returns the standard rendering settings.
func DefaultOptions(size int) Options {
	return Options{
		Size:        size,
		Supersample: 2,
		Margin:      16,
		Background:  color.NRGBA{0, 0, 0, 255},
		LineWidth:   1,
	}
}

// Frame maps model coordinates to pixel coordinates. Model y grows upwards,
// pixel y grows downwards.
type Frame struct {
	cx, cy float64
	scale  float64
	half   float64
}

// Fit computes a frame which centers the bounding box of pts on a canvas
// of size pixels, leaving margin pixels at every side.
func Fit(pts []vec3.T, size, margin int) Frame {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p[0]), math.Max(maxX, p[0])
		minY, maxY = math.Min(minY, p[1]), math.Max(maxY, p[1])
	}
	f := Frame{half: float64(size) / 2, scale: 1}
	if len(pts) == 0 {
		return f
	}
	f.cx, f.cy = (minX+maxX)/2, (minY+maxY)/2
	span := math.Max(maxX-minX, maxY-minY)
	if span < 0.001 {
		span = 0.001
	}
	f.scale = float64(size-2*margin) / span
	return f
}

// Project returns the pixel position of p.
func (f Frame) Project(p vec3.T) (float32, float32) {
	x := f.half + (p[0]-f.cx)*f.scale
	y := f.half - (p[1]-f.cy)*f.scale
	return float32(x), float32(y)
}

// Canvas is a render target with a fixed frame.
type Canvas struct {
	img   *image.NRGBA
	frame Frame
	z     *vector.Rasterizer
	opts  Options
}

// NewCanvas creates a canvas framed to fit pts.
func NewCanvas(pts []vec3.T, opts Options) *Canvas {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	size := opts.Size * opts.Supersample
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	return &Canvas{
		img:   img,
		frame: Fit(pts, size, opts.Margin*opts.Supersample),
		z:     vector.NewRasterizer(size, size),
		opts:  opts,
	}
}

func (c *Canvas) fill(col color.Color) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

// Triangles draws shaded triangles back to front, the nearest triangle
// (largest centroid z) last.
func (c *Canvas) Triangles(tris []shade.Triangle) {
	order := make([]int, len(tris))
	depth := make([]float64, len(tris))
	for k := range tris {
		order[k] = k
		depth[k] = tris[k].V[0][2] + tris[k].V[1][2] + tris[k].V[2][2]
	}
	sort.SliceStable(order, func(a, b int) bool {
		return depth[order[a]] < depth[order[b]]
	})
	for _, k := range order {
		t := &tris[k]
		x, y := c.frame.Project(t.V[0])
		c.z.MoveTo(x, y)
		x, y = c.frame.Project(t.V[1])
		c.z.LineTo(x, y)
		x, y = c.frame.Project(t.V[2])
		c.z.LineTo(x, y)
		c.z.ClosePath()
		c.fill(RGBA(t.Color))
	}
}

// Patches draws every triangle of the shaded patches in one depth order.
func (c *Canvas) Patches(patches []shade.Patch) {
	var tris []shade.Triangle
	for k := range patches {
		tris = append(tris, patches[k].Triangles...)
	}
	c.Triangles(tris)
}

// Polyline strokes an open polyline with the configured line width.
func (c *Canvas) Polyline(pts []vec3.T, col color.Color) {
	w := float32(c.opts.LineWidth*float64(c.opts.Supersample)) / 2
	for k := 0; k+1 < len(pts); k++ {
		ax, ay := c.frame.Project(pts[k])
		bx, by := c.frame.Project(pts[k+1])
		dx, dy := bx-ax, by-ay
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*w, dx/l*w
		c.z.MoveTo(ax+nx, ay+ny)
		c.z.LineTo(bx+nx, by+ny)
		c.z.LineTo(bx-nx, by-ny)
		c.z.LineTo(ax-nx, ay-ny)
		c.z.ClosePath()
	}
	c.fill(col)
}

// Contour strokes a closed contour. The last vertex connects to the first.
func (c *Canvas) Contour(ct polyclip.Contour, col color.Color) {
	if len(ct) == 0 {
		return
	}
	pts := make([]vec3.T, 0, len(ct)+1)
	for _, p := range ct {
		pts = append(pts, vec3.T{p.X, p.Y, 0})
	}
	c.Polyline(append(pts, pts[0]), col)
}

// Points draws every point as a small square.
func (c *Canvas) Points(pts []vec3.T, col color.Color) {
	r := float32(c.opts.LineWidth * float64(c.opts.Supersample))
	for _, p := range pts {
		x, y := c.frame.Project(p)
		c.z.MoveTo(x-r, y-r)
		c.z.LineTo(x+r, y-r)
		c.z.LineTo(x+r, y+r)
		c.z.LineTo(x-r, y+r)
		c.z.ClosePath()
	}
	c.fill(col)
}

// Image returns the rendered image at output size.
func (c *Canvas) Image() *image.NRGBA {
	if c.opts.Supersample == 1 {
		return c.img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, c.opts.Size, c.opts.Size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
	return dst
}

// RGBA converts a shaded color with components in [0,1] to an opaque color.
func RGBA(c shade.RGB) color.NRGBA {
	return color.NRGBA{clamp8(c[0]), clamp8(c[1]), clamp8(c[2]), 255}
}

func clamp8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
