// Package spline evaluates points on cubic curve segments and bicubic surface
// patches from local control windows and a basis matrix.
package spline

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/topology"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'cubic.spline'
func tracer() tracing.Trace {
	return tracing.Select("cubic.spline")
}

// Evaluator binds a spline family to its basis matrix. The matrix is selected
// once per family, not per evaluation.
type Evaluator struct {
	Family basis.Family
	Basis  basis.Matrix
}

// New creates an evaluator for family f.
func New(f basis.Family) Evaluator {
	return Evaluator{Family: f, Basis: basis.For(f)}
}

// CurvePoint returns the point at parameter t ∈ [0,1] of the segment defined by
// window w. The window is prepared for the family first (tangent reconstruction
// for Hermite), then blended with the weights [t³,t²,t,1]·M.
func CurvePoint(f basis.Family, m *basis.Matrix, w basis.Window, t float64) vec3.T {
	w = basis.Prepare(f, w)
	return blend(m.Weights(t), &w)
}

func blend(wt [4]float64, w *basis.Window) vec3.T {
	p := vec3.T{}
	for i := 0; i < 4; i++ {
		q := w[i].Scaled(wt[i])
		p.Add(&q)
	}
	return p
}

// SurfacePoint returns p(s,t) = S·M · P · Mᵀ·T for a 4×4 window P, with
// S = [s³,s²,s,1] and T = [t³,t²,t,1]. Both directions use the same basis.
//
// Each column of the window is prepared for the family and reduced by the
// s-weights into one of 4 intermediate points; these are prepared again and
// blended by the t-weights. For Hermite, the tangents are thus reconstructed
// in both parameter directions.
func SurfacePoint(f basis.Family, m *basis.Matrix, w *topology.Patch, s, t float64) vec3.T {
	ws := m.Weights(s) // S·M
	wt := m.Weights(t) // Mᵀ·T
	var cols basis.Window
	for j := 0; j < 4; j++ {
		col := basis.Prepare(f, basis.Window{w[0][j], w[1][j], w[2][j], w[3][j]})
		cols[j] = blend(ws, &col)
	}
	cols = basis.Prepare(f, cols)
	return blend(wt, &cols)
}

// Curve evaluates segment j of the closed curve of ring r at parameter t.
// Rings with fewer than 4 points yield the origin; callers should check
// r.Ready() instead of relying on that.
func (ev *Evaluator) Curve(r *topology.Ring, j int, t float64) vec3.T {
	if !r.Ready() {
		tracer().Debugf("curve evaluation on %d points", r.Len())
		return vec3.T{}
	}
	return CurvePoint(ev.Family, &ev.Basis, r.Window(j), t)
}

// Surface evaluates the patch with origin (i0,j0) of grid g at (s,t).
// Grids with fewer than 4 rows yield the origin.
func (ev *Evaluator) Surface(g *topology.Grid, i0, j0 int, s, t float64) vec3.T {
	if !g.Ready() {
		tracer().Debugf("surface evaluation on %d×%d grid", g.Rows(), g.Cols())
		return vec3.T{}
	}
	w := g.Window(i0, j0)
	return SurfacePoint(ev.Family, &ev.Basis, &w, s, t)
}
