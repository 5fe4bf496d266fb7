package topology

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/basis"
	"github.com/ungerik/go3d/float64/vec3"
)

// Ring is an ordered sequence of control points of a closed curve, bounded by
// a fixed capacity. Insertion order is creation order. Points are mutated in
// place; the backing storage is never reallocated after construction.
type Ring struct {
	points []vec3.T
}

// NewRing creates an empty ring holding at most capacity points.
func NewRing(capacity int) *Ring {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring{points: make([]vec3.T, 0, capacity)}
}

// Len is the number of control points.
func (r *Ring) Len() int {
	return len(r.points)
}

// Cap is the maximum number of control points.
func (r *Ring) Cap() int {
	return cap(r.points)
}

// Ready is true if the ring holds enough points to be evaluated.
func (r *Ring) Ready() bool {
	return len(r.points) >= MinPoints
}

// Append adds a control point at the end of the ring.
func (r *Ring) Append(p vec3.T) error {
	if len(r.points) == cap(r.points) {
		return ErrCapacity
	}
	r.points = append(r.points, p)
	return nil
}

// At returns control point i. Indices wrap around.
func (r *Ring) At(i int) vec3.T {
	return r.points[Wrap(i, len(r.points))]
}

// Set moves control point i. Unlike At, Set does not wrap.
func (r *Ring) Set(i int, p vec3.T) error {
	if i < 0 || i >= len(r.points) {
		return ErrIndex
	}
	r.points[i] = p
	return nil
}

// Points returns a copy of the control points in order.
func (r *Ring) Points() []vec3.T {
	pts := make([]vec3.T, len(r.points))
	copy(pts, r.points)
	return pts
}

// Clear empties the ring, keeping its capacity.
func (r *Ring) Clear() {
	r.points = r.points[:0]
}

// Window returns the 4 control points starting at origin j, i.e. points
// j, j+1, j+2, j+3 modulo the ring's length. The ring must hold at least
// MinPoints points; callers check Ready before.
func (r *Ring) Window(j int) basis.Window {
	var w basis.Window
	n := len(r.points)
	for i := 0; i < 4; i++ {
		w[i] = r.points[Wrap(j+i, n)]
	}
	return w
}

// Centroid is the mean of all control points.
func (r *Ring) Centroid() vec3.T {
	return cubic.Centroid(r.points)
}

// Transform applies an affine transform of the plane to every control point.
func (r *Ring) Transform(m cubic.AT) {
	for i := range r.points {
		r.points[i] = m.Transform(r.points[i])
	}
	tracer().Debugf("transformed %d ring points by %s", len(r.points), m)
}

// Nearest returns the index of the control point closest to (x,y), measured
// in the plane, if it lies within distance radius; otherwise -1. Of points at
// equal distance the first one wins.
func (r *Ring) Nearest(x, y, radius float64) int {
	best, bestDist := -1, radius
	for i, p := range r.points {
		if d := math.Hypot(p[0]-x, p[1]-y); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Contour returns the closed control polygon, projected to the plane.
func (r *Ring) Contour() polyclip.Contour {
	c := make(polyclip.Contour, 0, len(r.points))
	for _, p := range r.points {
		c.Add(polyclip.Point{X: p[0], Y: p[1]})
	}
	return c
}
