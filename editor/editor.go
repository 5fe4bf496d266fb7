// Package editor holds the interactive models around the geometry core: a
// closed-curve editor with its two-state point entry, and a surface model
// wrapping a loaded control grid.
//
// Both models regenerate their geometry synchronously after every mutation,
// building new buffers and swapping them in as a whole, so a renderer holding
// a previously returned buffer never observes a partial rewrite.
package editor

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'cubic.editor'
func tracer() tracing.Trace {
	return tracing.Select("cubic.editor")
}

// ErrNotReady indicates an operation which needs at least 4 control points.
var ErrNotReady = errors.New("fewer than 4 control points")
