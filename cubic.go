/*
Package cubic evaluates closed cubic curves and bicubic tensor-product surface
patches from small sets of control points, and shades the tessellated geometry.

The root package holds the numeric basics shared by all sub-packages: points
(3-component vectors of package go3d), tolerance predicates and the
transformations applied to whole control topologies.

	basis       canonical 4×4 basis matrices per spline family
	topology    control rings and grids with wrap-around addressing
	spline      curve and surface point evaluation
	tessellate  sampling of curves and patches
	shade       triangulation, normals and two-light shading
	ctrlfile    control-grid text records
	editor      curve editor state machine and surface model
	config      YAML configuration

# BSD License

# Copyright (c) The splinekit authors

All rights reserved.

Please refer to the license file for more information.
*/
package cubic

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'cubic'
func tracer() tracing.Trace {
	return tracing.Select("cubic")
}

// === Numeric Data Type =====================================================

// Deg2Rad is a constant for converting from DEG to RAD or vice versa
var Deg2Rad float64 = 0.01745329251

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Points ================================================================

// Origin represents the frequently used constant (0,0,0).
var Origin = vec3.T{0, 0, 0}

// P is a quick notation for constructing a point from floats.
func P(x, y, z float64) vec3.T {
	return vec3.T{x, y, z}
}

// P2 constructs a point of the plane. Its z-part carries the homogeneous
// weight 1, which evaluation treats like any other coordinate.
func P2(x, y float64) vec3.T {
	return vec3.T{x, y, 1}
}

// Equal compares two points component-wise within Epsilon.
func Equal(p, q vec3.T) bool {
	return Is0(p[0]-q[0]) && Is0(p[1]-q[1]) && Is0(p[2]-q[2])
}

// Near compares two points component-wise within tolerance tol.
func Near(p, q vec3.T, tol float64) bool {
	return math.Abs(p[0]-q[0]) <= tol && math.Abs(p[1]-q[1]) <= tol &&
		math.Abs(p[2]-q[2]) <= tol
}

// Centroid returns the mean of a set of points, or Origin for an empty set.
func Centroid(pts []vec3.T) vec3.T {
	c := vec3.T{}
	if len(pts) == 0 {
		return c
	}
	for i := range pts {
		c.Add(&pts[i])
	}
	return c.Scaled(1 / float64(len(pts)))
}

// String returns a point as a (debugging) string.
func String(p vec3.T) string {
	return fmt.Sprintf("(%g,%g,%g)", p[0], p[1], p[2])
}

// === Affine Transformations ================================================

// AT is an affine transform of the plane in homogeneous coordinates,
// a matrix type used for transforming control points of curves.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) get(row, col int) float64 {
	return m[row*3+col]
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

func (m AT) col(col int) []float64 {
	c := make([]float64, 3)
	c[0] = m[col]
	c[1] = m[3+col]
	c[2] = m[6+col]
	return c
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(dx, dy float64) AT {
	m := Identity()
	m.set(0, 2, dx)
	m.set(1, 2, dy)
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// Scaling transform. Scale a point by sx horizontally and sy vertically,
// relative to the origin.
func Scaling(sx, sy float64) AT {
	m := Identity()
	m.set(0, 0, sx)
	m.set(1, 1, sy)
	return m
}

// Axis selects a mirror axis.
type Axis int

// Mirror axes.
const (
	AxisX Axis = iota // mirror at the x-axis, i.e. negate y
	AxisY             // mirror at the y-axis, i.e. negate x
)

// Mirror transform. Reflect a point at one of the coordinate axes.
func Mirror(axis Axis) AT {
	if axis == AxisX {
		return Scaling(1, -1)
	}
	return Scaling(-1, 1)
}

// Shear transform. x' = x + shx·y, y' = shy·x + y.
func Shear(shx, shy float64) AT {
	m := Identity()
	m.set(0, 1, shx)
	m.set(1, 0, shy)
	return m
}

// Around conjugates a transform with a translation, so that it operates
// relative to center (cx,cy) instead of the origin.
func (m AT) Around(cx, cy float64) AT {
	return Translation(-cx, -cy).Combine(m).Combine(Translation(cx, cy))
}

// Debug Stringer for an affine transform.
func (m AT) String() string {
	s := fmt.Sprintf("[%g,%g,%g|%g,%g,%g|%g,%g,%g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
	return s
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	p1 := vec1[0] * vec2[0]
	p2 := vec1[1] * vec2[1]
	p3 := vec1[2] * vec2[2]
	return p1 + p2 + p3
}

// Combine 2 affine transformation to a new one. Returns a new transformation
// without changing the argument(s). The resulting transform applies m first,
// then n.
func (m AT) Combine(n AT) AT {
	o := newAT()
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			o.set(row, col, dotProd(n.row(row), m.col(col)))
		}
	}
	return o
}

func (m AT) multiplyVector(v []float64) []float64 {
	c := make([]float64, 3)
	c[0] = dotProd(m.row(0), v)
	c[1] = dotProd(m.row(1), v)
	c[2] = dotProd(m.row(2), v)
	return c
}

// Transform a point of the plane. The argument is unchanged and a new point
// is returned. The z-part of p is carried over untouched.
func (m AT) Transform(p vec3.T) vec3.T {
	c := []float64{p[0], p[1], 1.0}
	c = m.multiplyVector(c)
	if Is0(c[2]) {
		tracer().Errorf("transform %s maps %s to infinity", m, String(p))
		return vec3.T{0, 0, p[2]}
	}
	return vec3.T{Zap(c[0] / c[2]), Zap(c[1] / c[2]), p[2]}
}

// === Linear Transformations of Space =======================================

// LT is a linear transform of 3-space, used for transforming control grids
// of surfaces.
type LT [9]float64 // a 3x3 matrix, flattened by rows

// Identity3 is the identity transform of 3-space.
func Identity3() LT {
	return LT{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// RotationX rotates counter-clockwise around the x-axis. Argument is in radians.
func RotationX(theta float64) LT {
	s, c := math.Sincos(theta)
	return LT{1, 0, 0, 0, c, -s, 0, s, c}
}

// RotationY rotates counter-clockwise around the y-axis. Argument is in radians.
func RotationY(theta float64) LT {
	s, c := math.Sincos(theta)
	return LT{c, 0, s, 0, 1, 0, -s, 0, c}
}

// RotationZ rotates counter-clockwise around the z-axis. Argument is in radians.
func RotationZ(theta float64) LT {
	s, c := math.Sincos(theta)
	return LT{c, -s, 0, s, c, 0, 0, 0, 1}
}

// UniformScaling scales by factor f relative to the origin.
func UniformScaling(f float64) LT {
	return LT{f, 0, 0, 0, f, 0, 0, 0, f}
}

// Transform a point of 3-space. The argument is unchanged and a new point
// is returned.
func (m LT) Transform(p vec3.T) vec3.T {
	return vec3.T{
		m[0]*p[0] + m[1]*p[1] + m[2]*p[2],
		m[3]*p[0] + m[4]*p[1] + m[5]*p[2],
		m[6]*p[0] + m[7]*p[1] + m[8]*p[2],
	}
}
