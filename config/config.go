// Package config holds every tunable constant of tessellation, shading and
// editing in one explicit object, loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/shade"
	"github.com/splinekit/cubic/tessellate"
	"github.com/ungerik/go3d/float64/vec3"
)

// ErrInvalid indicates a configuration value out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all settings.
type Config struct {
	Tessellation TessellationConfig `yaml:"tessellation"`
	Shading      ShadingConfig      `yaml:"shading"`
	Editor       EditorConfig       `yaml:"editor"`
	Logging      LoggingConfig      `yaml:"logging"`
}

// TessellationConfig holds sampling settings.
type TessellationConfig struct {
	Family        string  `yaml:"family"`         // initial spline family
	CurveCapacity int     `yaml:"curve_capacity"` // max points of a tessellated curve
	SurfaceStep   float64 `yaml:"surface_step"`   // parametric step of patch sampling
	LoadScale     float64 `yaml:"load_scale"`     // uniform scale of loaded control grids
}

// ShadingConfig holds the two-light illumination model.
type ShadingConfig struct {
	Ambient         float64     `yaml:"ambient"`
	Attenuation     float64     `yaml:"attenuation"`
	SecondaryWeight float64     `yaml:"secondary_weight"`
	PrimaryLight    []float64   `yaml:"primary_light"`
	SecondaryLight  []float64   `yaml:"secondary_light"`
	FallbackNormal  []float64   `yaml:"fallback_normal"`
	Palette         [][]float64 `yaml:"palette"`
}

// EditorConfig holds interactive editing steps.
type EditorConfig struct {
	MaxControlPoints  int     `yaml:"max_control_points"`
	PickRadius        float64 `yaml:"pick_radius"`
	RotationDegrees   float64 `yaml:"rotation_degrees"`
	ScaleFactor       float64 `yaml:"scale_factor"`
	ShearFactor       float64 `yaml:"shear_factor"`
	SurfaceRotateStep float64 `yaml:"surface_rotate_step"` // radians
	SurfaceScaleUp    float64 `yaml:"surface_scale_up"`
	SurfaceScaleDown  float64 `yaml:"surface_scale_down"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the standard values.
func Default() *Config {
	return &Config{
		Tessellation: TessellationConfig{
			Family:        "bezier",
			CurveCapacity: 80,
			SurfaceStep:   0.04,
			LoadScale:     0.22,
		},
		Shading: ShadingConfig{
			Ambient:         0.25,
			Attenuation:     0.005,
			SecondaryWeight: 0.6,
			PrimaryLight:    []float64{30, 30, 30},
			SecondaryLight:  []float64{-20, 10, -10},
			FallbackNormal:  []float64{0, 0, 1},
			Palette: [][]float64{
				{1.0, 0.2, 0.2},
				{0.2, 1.0, 0.2},
				{0.2, 0.2, 1.0},
				{1.0, 1.0, 0.2},
			},
		},
		Editor: EditorConfig{
			MaxControlPoints:  30,
			PickRadius:        6,
			RotationDegrees:   15,
			ScaleFactor:       1.15,
			ShearFactor:       0.25,
			SurfaceRotateStep: 0.01,
			SurfaceScaleUp:    1.05,
			SurfaceScaleDown:  0.95,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks every value for its admissible range.
func (c *Config) Validate() error {
	if _, err := basis.ParseFamily(c.Tessellation.Family); err != nil {
		return fmt.Errorf("%w: tessellation.family: %v", ErrInvalid, err)
	}
	if c.Tessellation.CurveCapacity <= 0 {
		return fmt.Errorf("%w: tessellation.curve_capacity must be positive", ErrInvalid)
	}
	if !(c.Tessellation.SurfaceStep > 0 && c.Tessellation.SurfaceStep <= 1) {
		return fmt.Errorf("%w: tessellation.surface_step must be in (0,1]", ErrInvalid)
	}
	if tessellate.Side(c.Tessellation.SurfaceStep) == 0 {
		return fmt.Errorf("%w: tessellation.surface_step %g needs more than %d samples per patch side",
			ErrInvalid, c.Tessellation.SurfaceStep, tessellate.MaxSide)
	}
	if c.Tessellation.LoadScale == 0 || math.IsNaN(c.Tessellation.LoadScale) {
		return fmt.Errorf("%w: tessellation.load_scale must not be 0", ErrInvalid)
	}
	if c.Shading.Attenuation < 0 || c.Shading.Ambient < 0 {
		return fmt.Errorf("%w: shading terms must not be negative", ErrInvalid)
	}
	if c.Shading.SecondaryWeight < 0 || c.Shading.SecondaryWeight >= 1 {
		return fmt.Errorf("%w: shading.secondary_weight must be in [0,1)", ErrInvalid)
	}
	for name, v := range map[string][]float64{
		"primary_light":   c.Shading.PrimaryLight,
		"secondary_light": c.Shading.SecondaryLight,
		"fallback_normal": c.Shading.FallbackNormal,
	} {
		if len(v) != 3 {
			return fmt.Errorf("%w: shading.%s needs 3 components, has %d", ErrInvalid, name, len(v))
		}
	}
	if len(c.Shading.Palette) == 0 {
		return fmt.Errorf("%w: shading.palette is empty", ErrInvalid)
	}
	for i, rgb := range c.Shading.Palette {
		if len(rgb) != 3 {
			return fmt.Errorf("%w: shading.palette[%d] needs 3 components", ErrInvalid, i)
		}
	}
	if c.Editor.MaxControlPoints < 4 {
		return fmt.Errorf("%w: editor.max_control_points must be at least 4", ErrInvalid)
	}
	if c.Editor.PickRadius <= 0 {
		return fmt.Errorf("%w: editor.pick_radius must be positive", ErrInvalid)
	}
	return nil
}

// Family returns the configured spline family.
func (c *Config) Family() basis.Family {
	f, err := basis.ParseFamily(c.Tessellation.Family)
	if err != nil {
		return basis.Bezier
	}
	return f
}

func triple(v []float64) vec3.T {
	var t vec3.T
	copy(t[:], v)
	return t
}

// Lighting converts the shading settings. The configuration should have
// been validated before.
func (c *Config) Lighting() shade.Lighting {
	s := &c.Shading
	l := shade.Lighting{
		Ambient:         s.Ambient,
		Attenuation:     s.Attenuation,
		SecondaryWeight: s.SecondaryWeight,
		FallbackNormal:  triple(s.FallbackNormal),
		Palette:         make([]shade.RGB, len(s.Palette)),
	}
	l.Lights[0].Position = triple(s.PrimaryLight)
	l.Lights[1].Position = triple(s.SecondaryLight)
	for i, rgb := range s.Palette {
		copy(l.Palette[i][:], rgb)
	}
	return l
}
