// Package tessellate samples closed curves and surface patches into discrete
// points.
//
// Tessellation always produces fresh storage: results are never updated
// incrementally, and a caller replaces its previous geometry as a whole.
package tessellate

import (
	"math"

	"github.com/npillmayer/schuko/tracing"
	"github.com/splinekit/cubic/spline"
	"github.com/splinekit/cubic/topology"
	"github.com/ungerik/go3d/float64/vec3"
)

// tracer writes to trace with key 'cubic.tessellate'
func tracer() tracing.Trace {
	return tracing.Select("cubic.tessellate")
}

// DefaultCurveCapacity is the maximum number of points of a tessellated curve.
const DefaultCurveCapacity = 80

// DefaultStep is the parametric step for sampling surface patches.
const DefaultStep = 0.04

// paramLimit is the upper bound of the sampling loop. It is slightly above 1
// to include 1 despite accumulated rounding.
const paramLimit = 1.01

// SegmentSamples is the number of samples per curve segment, for a curve of
// n segments tessellated into at most capacity points.
func SegmentSamples(capacity, n int) int {
	if n <= 0 {
		return 0
	}
	return capacity/n + 1
}

// Curve tessellates the closed curve of ring r into at most capacity points.
// There is one segment per control point; segment j is sampled at
// t = s/k for s in [0,k), with k = SegmentSamples(capacity, n). Sampling stops
// when capacity is reached. Rings with fewer than 4 points yield no points.
func Curve(r *topology.Ring, ev spline.Evaluator, capacity int) []vec3.T {
	if !r.Ready() || capacity <= 0 {
		return nil
	}
	n := r.Len()
	k := SegmentSamples(capacity, n)
	pts := make([]vec3.T, 0, capacity)
	for seg := 0; seg < n && len(pts) < capacity; seg++ {
		for s := 0; s < k && len(pts) < capacity; s++ {
			pts = append(pts, ev.Curve(r, seg, float64(s)/float64(k)))
		}
	}
	tracer().Debugf("%s curve: %d segments, %d points", ev.Family, n, len(pts))
	return pts
}

// MaxSide bounds the samples per direction of a patch.
const MaxSide = 1024

// Side is the number of samples per direction of a patch sampled with the
// given step: the count of values 0, step, 2·step, … not exceeding 1.01.
// A step which is not positive, or which would need more than MaxSide
// samples, yields 0.
func Side(step float64) int {
	if !(step > 0) || math.IsInf(step, 0) || paramLimit/step >= MaxSide {
		return 0
	}
	return int(math.Floor(paramLimit/step)) + 1
}

// Mesh is a square grid of evaluated surface points, stored flat by rows.
type Mesh struct {
	N      int
	Points []vec3.T
}

// At returns the point at row i, column j.
func (m *Mesh) At(i, j int) vec3.T {
	return m.Points[i*m.N+j]
}

// Row returns row i as a polyline.
func (m *Mesh) Row(i int) []vec3.T {
	return m.Points[i*m.N : (i+1)*m.N]
}

// Col returns column j as a polyline.
func (m *Mesh) Col(j int) []vec3.T {
	col := make([]vec3.T, m.N)
	for i := range col {
		col[i] = m.Points[i*m.N+j]
	}
	return col
}

// Patch samples one patch window at parameters (i·step, j·step) for
// i, j in [0, Side(step)). Row index i follows s, column index j follows t.
// A step rejected by Side yields an empty mesh.
func Patch(ev spline.Evaluator, w *topology.Patch, step float64) Mesh {
	n := Side(step)
	if n == 0 {
		tracer().Errorf("cannot sample patch with step %g", step)
		return Mesh{}
	}
	m := Mesh{N: n, Points: make([]vec3.T, n*n)}
	for i := 0; i < n; i++ {
		s := float64(i) * step
		for j := 0; j < n; j++ {
			t := float64(j) * step
			m.Points[i*n+j] = spline.SurfacePoint(ev.Family, &ev.Basis, w, s, t)
		}
	}
	return m
}

// SurfacePatch is the tessellation of the patch with window origin
// (Row, Col). Seq is the running number of the patch within its surface.
type SurfacePatch struct {
	Row, Col int
	Seq      int
	Mesh     Mesh
}

// Surface tessellates every patch of grid g. Patch origins advance row by row
// over the g.Bands() row bands, and over every column with wrap-around.
// Patches are sampled independently; boundaries shared by neighbouring
// patches are evaluated once per patch.
func Surface(g *topology.Grid, ev spline.Evaluator, step float64) []SurfacePatch {
	if !g.Ready() {
		return nil
	}
	patches := make([]SurfacePatch, 0, g.Bands()*g.Cols())
	seq := 0
	for i := 0; i < g.Bands(); i++ {
		for j := 0; j < g.Cols(); j++ {
			w := g.Window(i, j)
			patches = append(patches, SurfacePatch{
				Row:  i,
				Col:  j,
				Seq:  seq,
				Mesh: Patch(ev, &w, step),
			})
			seq++
		}
	}
	tracer().Debugf("%s surface: %d patches of %d×%d grid", ev.Family, len(patches), g.Rows(), g.Cols())
	return patches
}
