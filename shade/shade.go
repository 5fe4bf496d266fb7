// Package shade triangulates tessellated surface patches and computes a flat
// color for every triangle from two point lights and an ambient term.
//
// For a triangle with normal n and centroid c, each light contributes
//
//	max(0, n·d) / (1 + k·dist²)
//
// where d is the unit direction from c to the light and dist the distance.
// The intensity of the triangle is ambient + I₀ + w·I₁, clamped to 1, and its
// color is the intensity times the base color of its patch.
package shade

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/splinekit/cubic/tessellate"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'cubic.shade'
func tracer() tracing.Trace {
	return tracing.Select("cubic.shade")
}

// DegenerateArea is the magnitude of an edge cross product below which a
// triangle is considered degenerate and gets the fallback normal.
const DegenerateArea = 1e-12

// RGB is a color with components in [0,1].
type RGB [3]float64

// Scaled returns c with every component multiplied by f.
func (c RGB) Scaled(f float64) RGB {
	return RGB{c[0] * f, c[1] * f, c[2] * f}
}

// Light is a point light. It has a position and no orientation.
type Light struct {
	Position vec3.T
}

// Lighting holds the illumination model's parameters. It is constant
// while shading and passed explicitly to every shading call.
type Lighting struct {
	Lights          [2]Light // primary and secondary light
	Ambient         float64  // constant term added to every triangle
	Attenuation     float64  // k in 1/(1 + k·dist²)
	SecondaryWeight float64  // scale of the secondary light's contribution
	FallbackNormal  vec3.T   // normal of degenerate triangles
	Palette         []RGB    // base colors, cycled by patch number
}

// DefaultPalette are the base colors of patches.
var DefaultPalette = []RGB{
	{1.0, 0.2, 0.2},
	{0.2, 1.0, 0.2},
	{0.2, 0.2, 1.0},
	{1.0, 1.0, 0.2},
}

// DefaultLighting returns the standard two-light setup.
func DefaultLighting() Lighting {
	palette := make([]RGB, len(DefaultPalette))
	copy(palette, DefaultPalette)
	return Lighting{
		Lights: [2]Light{
			{Position: vec3.T{30, 30, 30}},
			{Position: vec3.T{-20, 10, -10}},
		},
		Ambient:         0.25,
		Attenuation:     0.005,
		SecondaryWeight: 0.6,
		FallbackNormal:  vec3.T{0, 0, 1},
		Palette:         palette,
	}
}

// BaseColor returns the palette color for patch number seq.
func (l *Lighting) BaseColor(seq int) RGB {
	if len(l.Palette) == 0 {
		return RGB{1, 1, 1}
	}
	k := seq % len(l.Palette)
	if k < 0 {
		k += len(l.Palette)
	}
	return l.Palette[k]
}

// Normal returns the unit normal of triangle (v0,v1,v2), oriented by the
// winding (v1−v0)×(v2−v0). Degenerate triangles get the fallback normal.
func Normal(v0, v1, v2 vec3.T, fallback vec3.T) vec3.T {
	a := vec3.Sub(&v1, &v0)
	b := vec3.Sub(&v2, &v0)
	n := vec3.Cross(&a, &b)
	l := n.Length()
	if l < DegenerateArea {
		return fallback
	}
	return n.Scaled(1 / l)
}

// Centroid returns the mean of the three vertices.
func Centroid(v0, v1, v2 vec3.T) vec3.T {
	return vec3.T{
		(v0[0] + v1[0] + v2[0]) / 3,
		(v0[1] + v1[1] + v2[1]) / 3,
		(v0[2] + v1[2] + v2[2]) / 3,
	}
}

// Contribution is the diffuse contribution of a light at position pos to a
// surface element with unit normal n at point c, attenuated by 1/(1 + k·dist²).
// A light sitting exactly on c is treated as being at distance 1.
func Contribution(pos vec3.T, n, c vec3.T, k float64) float64 {
	d := vec3.Sub(&pos, &c)
	dist := d.Length()
	if dist == 0 {
		dist = 1
	}
	d = d.Scaled(1 / dist)
	dot := vec3.Dot(&n, &d)
	if dot < 0 {
		dot = 0
	}
	return dot / (1 + k*dist*dist)
}

// Intensity is the clamped total intensity of a surface element.
func (l *Lighting) Intensity(n, c vec3.T) float64 {
	i := l.Ambient +
		Contribution(l.Lights[0].Position, n, c, l.Attenuation) +
		l.SecondaryWeight*Contribution(l.Lights[1].Position, n, c, l.Attenuation)
	return math.Min(i, 1)
}

// Triangle is a shaded triangle, produced and consumed within one draw pass.
type Triangle struct {
	V         [3]vec3.T
	Normal    vec3.T
	Intensity float64
	Color     RGB
}

// ShadeTriangle computes normal, intensity and color of triangle (v0,v1,v2).
func (l *Lighting) ShadeTriangle(v0, v1, v2 vec3.T, base RGB) Triangle {
	n := Normal(v0, v1, v2, l.FallbackNormal)
	i := l.Intensity(n, Centroid(v0, v1, v2))
	return Triangle{
		V:         [3]vec3.T{v0, v1, v2},
		Normal:    n,
		Intensity: i,
		Color:     base.Scaled(i),
	}
}

// Triangulate splits every 2×2 block of mesh m into the triangles
// (v00,v01,v11) and (v00,v11,v10) and shades them with base color base.
func Triangulate(m *tessellate.Mesh, base RGB, l *Lighting) []Triangle {
	if m.N < 2 {
		return nil
	}
	tris := make([]Triangle, 0, 2*(m.N-1)*(m.N-1))
	for i := 0; i < m.N-1; i++ {
		for j := 0; j < m.N-1; j++ {
			v00, v01 := m.At(i, j), m.At(i, j+1)
			v10, v11 := m.At(i+1, j), m.At(i+1, j+1)
			tris = append(tris,
				l.ShadeTriangle(v00, v01, v11, base),
				l.ShadeTriangle(v00, v11, v10, base))
		}
	}
	return tris
}

// Patch is the shaded triangle list of one surface patch.
type Patch struct {
	Row, Col, Seq int
	Base          RGB
	Triangles     []Triangle
}

// Surface shades every tessellated patch. Base colors cycle through the
// palette by patch number, so neighbouring patches are distinguishable.
func Surface(patches []tessellate.SurfacePatch, l *Lighting) []Patch {
	shaded := make([]Patch, len(patches))
	count := 0
	for k := range patches {
		p := &patches[k]
		base := l.BaseColor(p.Seq)
		shaded[k] = Patch{
			Row:       p.Row,
			Col:       p.Col,
			Seq:       p.Seq,
			Base:      base,
			Triangles: Triangulate(&p.Mesh, base, l),
		}
		count += len(shaded[k].Triangles)
	}
	tracer().Debugf("shaded %d patches, %d triangles", len(patches), count)
	return shaded
}
