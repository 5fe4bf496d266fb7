// Package topology holds control points of closed curves and cylindrically
// closed surfaces.
//
// Storage is always a finite, non-cyclic sequence. Closure is produced by
// addressing: every index into a topology is taken modulo its extent (see
// Wrap), so the first and last elements are adjacent. A Ring of n ≥ 4 points
// decomposes into n overlapping windows of 4 points; a Grid of n rows and m
// columns decomposes into (n−3)·m overlapping 4×4 patch windows, open in the
// row direction and closed in the column direction.
package topology

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cubic.topology'
func tracer() tracing.Trace {
	return tracing.Select("cubic.topology")
}

// MinPoints is the number of control points (per dimension) needed to define a
// cubic segment.
const MinPoints = 4

var (
	// ErrCapacity indicates a ring is full.
	ErrCapacity = errors.New("control ring is at capacity")
	// ErrIndex indicates an index outside of a topology's storage.
	ErrIndex = errors.New("control point index out of range")
	// ErrDimensions indicates unusable grid dimensions.
	ErrDimensions = errors.New("invalid control grid dimensions")
)

// Wrap maps i into [0, n). Negative indices wrap around as well.
// Wrap panics if n ≤ 0.
func Wrap(i, n int) int {
	if n <= 0 {
		panic("topology: wrap of empty extent")
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
