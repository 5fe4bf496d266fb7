// Package basis provides the canonical 4×4 basis matrices of the cubic spline
// families Hermite, Bezier, B-Spline and Catmull-Rom.
//
// A point of a cubic segment is the row vector [t³, t², t, 1] multiplied by a
// basis matrix, giving four blending weights, which are then applied to a
// window of four control points. Normalization constants (1/6 for B-Splines,
// 1/2 for Catmull-Rom) are folded into the matrices, so evaluation code does
// not need to know which family it is working with. The single exception is
// Hermite, whose window has to be rewritten into points and tangents first;
// see Prepare.
package basis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'cubic.basis'
func tracer() tracing.Trace {
	return tracing.Select("cubic.basis")
}

// Family is a tag for a cubic spline family.
type Family int

// Spline families.
const (
	Hermite Family = iota
	Bezier
	BSpline
	CatmullRom
)

// ErrUnknownFamily is returned when parsing a family name fails.
var ErrUnknownFamily = errors.New("unknown spline family")

var familyNames = [...]string{"hermite", "bezier", "bspline", "catmullrom"}

func (f Family) String() string {
	if f < Hermite || f > CatmullRom {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily returns the family for a name. Names are matched case-insensitive,
// ignoring '-' and '_', so "Catmull-Rom" and "b_spline" are accepted.
func ParseFamily(name string) (Family, error) {
	n := strings.ToLower(name)
	n = strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
	for i, fn := range familyNames {
		if n == fn {
			return Family(i), nil
		}
	}
	return Hermite, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
}

// Matrix is a 4×4 basis matrix, indexed [row][col]. Row 0 holds the
// coefficients of t³, row 3 those of the constant term.
type Matrix [4][4]float64

var hermite = Matrix{
	{2, -2, 1, 1},
	{-3, 3, -2, -1},
	{0, 0, 1, 0},
	{1, 0, 0, 0},
}

var bezier = Matrix{
	{-1, 3, -3, 1},
	{3, -6, 3, 0},
	{-3, 3, 0, 0},
	{1, 0, 0, 0},
}

var bspline = Matrix{
	{-1.0 / 6.0, 3.0 / 6.0, -3.0 / 6.0, 1.0 / 6.0},
	{3.0 / 6.0, -6.0 / 6.0, 3.0 / 6.0, 0},
	{-3.0 / 6.0, 0, 3.0 / 6.0, 0},
	{1.0 / 6.0, 4.0 / 6.0, 1.0 / 6.0, 0},
}

var catmullRom = Matrix{
	{-1.0 / 2.0, 3.0 / 2.0, -3.0 / 2.0, 1.0 / 2.0},
	{2.0 / 2.0, -5.0 / 2.0, 4.0 / 2.0, -1.0 / 2.0},
	{-1.0 / 2.0, 0, 1.0 / 2.0, 0},
	{0, 2.0 / 2.0, 0, 0},
}

// For returns the basis matrix of family f. Matrices are values, so callers
// cannot alter the package's tables. An out-of-range family falls back to
// Bezier.
func For(f Family) Matrix {
	switch f {
	case Hermite:
		return hermite
	case Bezier:
		return bezier
	case BSpline:
		return bspline
	case CatmullRom:
		return catmullRom
	}
	tracer().Errorf("no basis matrix for %s, using bezier", f)
	return bezier
}

// Weights returns the blending weights [t³, t², t, 1] · M.
func (m *Matrix) Weights(t float64) [4]float64 {
	tt := [4]float64{t * t * t, t * t, t, 1}
	var w [4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			w[i] += m[j][i] * tt[j]
		}
	}
	return w
}

// Transposed returns Mᵀ.
func (m *Matrix) Transposed() Matrix {
	var o Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			o[i][j] = m[j][i]
		}
	}
	return o
}

// Window is a local window of four consecutive control points.
type Window [4]vec3.T

// Prepare rewrites a window for family f before blending. For Hermite, the
// window P0..P3 becomes {P0, P1, P0−P3, P1−P2}: the endpoint tangents are
// approximated by differences to the outer points of the window. Every other
// family gets its window back unchanged.
func Prepare(f Family, w Window) Window {
	if f != Hermite {
		return w
	}
	return Window{
		w[0],
		w[1],
		vec3.Sub(&w[0], &w[3]),
		vec3.Sub(&w[1], &w[2]),
	}
}
