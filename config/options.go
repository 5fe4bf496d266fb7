package config

import (
	"github.com/splinekit/cubic/editor"
)

// CurveOptions returns the settings of a curve editor.
func (c *Config) CurveOptions() editor.CurveOptions {
	return editor.CurveOptions{
		MaxControlPoints: c.Editor.MaxControlPoints,
		CurveCapacity:    c.Tessellation.CurveCapacity,
		PickRadius:       c.Editor.PickRadius,
		Family:           c.Family(),
	}
}

// SurfaceOptions returns the settings of a surface model.
func (c *Config) SurfaceOptions() editor.SurfaceOptions {
	return editor.SurfaceOptions{
		Family:     c.Family(),
		Step:       c.Tessellation.SurfaceStep,
		LoadScale:  c.Tessellation.LoadScale,
		RotateStep: c.Editor.SurfaceRotateStep,
		ScaleUp:    c.Editor.SurfaceScaleUp,
		ScaleDown:  c.Editor.SurfaceScaleDown,
		Lighting:   c.Lighting(),
	}
}
