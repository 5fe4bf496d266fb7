package editor

import (
	"io"

	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/ctrlfile"
	"github.com/splinekit/cubic/shade"
	"github.com/splinekit/cubic/spline"
	"github.com/splinekit/cubic/tessellate"
	"github.com/splinekit/cubic/topology"
	"github.com/ungerik/go3d/float64/vec3"
)

// ViewMode selects how surface patches are presented.
type ViewMode int

// View modes.
const (
	ViewPoints ViewMode = iota
	ViewWireframe
	ViewSolid
)

// Axis3 selects a coordinate axis of space.
type Axis3 int

// Rotation axes.
const (
	AxisX Axis3 = iota
	AxisY
	AxisZ
)

// SurfaceOptions configure a surface model.
type SurfaceOptions struct {
	Family     basis.Family
	Step       float64 // parametric sampling step
	LoadScale  float64 // uniform scale of loaded control grids
	RotateStep float64 // radians per rotation step
	ScaleUp    float64
	ScaleDown  float64
	Lighting   shade.Lighting
}

// DefaultSurfaceOptions are the standard surface settings.
func DefaultSurfaceOptions() SurfaceOptions {
	return SurfaceOptions{
		Family:     basis.Bezier,
		Step:       tessellate.DefaultStep,
		LoadScale:  ctrlfile.DefaultScale,
		RotateStep: 0.01,
		ScaleUp:    1.05,
		ScaleDown:  0.95,
		Lighting:   shade.DefaultLighting(),
	}
}

// Surface is a cylindrically closed surface defined by a control grid.
// It keeps the tessellated patches and their shaded triangles up to date with
// the grid, the spline family and the lights.
type Surface struct {
	opts    SurfaceOptions
	ev      spline.Evaluator
	grid    *topology.Grid
	label   string
	mode    ViewMode
	patches []tessellate.SurfacePatch
	shaded  []shade.Patch
}

// NewSurface creates a surface model without a control grid.
func NewSurface(opts SurfaceOptions) *Surface {
	return &Surface{
		opts: opts,
		ev:   spline.New(opts.Family),
		mode: ViewSolid,
	}
}

// Load reads a control grid file. Loading is all-or-nothing: on failure the
// previous grid and geometry are left intact.
func (s *Surface) Load(path string) error {
	g, h, err := ctrlfile.Load(path, s.opts.LoadScale)
	if err != nil {
		tracer().Errorf("load %s: %v", path, err)
		return err
	}
	s.label = h.Label
	s.SetGrid(g)
	return nil
}

// Read reads a control grid from r, with the same semantics as Load.
func (s *Surface) Read(r io.Reader) error {
	g, h, err := ctrlfile.Read(r, s.opts.LoadScale)
	if err != nil {
		tracer().Errorf("read control grid: %v", err)
		return err
	}
	s.label = h.Label
	s.SetGrid(g)
	return nil
}

// SetGrid replaces the control grid and regenerates. The surface takes
// ownership of g.
func (s *Surface) SetGrid(g *topology.Grid) {
	s.grid = g
	s.regenerate()
}

// Grid returns the control grid, or nil.
func (s *Surface) Grid() *topology.Grid {
	return s.grid
}

// Label returns the label of the loaded control grid.
func (s *Surface) Label() string {
	return s.label
}

// Family returns the active spline family.
func (s *Surface) Family() basis.Family {
	return s.ev.Family
}

// SetFamily switches the spline family and regenerates.
func (s *Surface) SetFamily(f basis.Family) {
	s.ev = spline.New(f)
	s.regenerate()
}

// Mode returns the view mode.
func (s *Surface) Mode() ViewMode {
	return s.mode
}

// SetMode selects the view mode. Geometry is not affected.
func (s *Surface) SetMode(m ViewMode) {
	s.mode = m
}

// SetLight moves light i (0 primary, 1 secondary) and reshades.
func (s *Surface) SetLight(i int, pos vec3.T) {
	if i < 0 || i > 1 {
		return
	}
	s.opts.Lighting.Lights[i].Position = pos
	s.reshade()
}

// Lighting returns the current illumination parameters.
func (s *Surface) Lighting() shade.Lighting {
	return s.opts.Lighting
}

// Transform applies a linear transform to the control grid and regenerates.
func (s *Surface) Transform(m cubic.LT) {
	if s.grid == nil {
		return
	}
	s.grid.Transform(m)
	s.regenerate()
}

// Rotate rotates the control grid by one rotation step around an axis;
// dir > 0 turns counter-clockwise, dir < 0 clockwise.
func (s *Surface) Rotate(axis Axis3, dir int) {
	theta := s.opts.RotateStep
	if dir < 0 {
		theta = -theta
	}
	switch axis {
	case AxisX:
		s.Transform(cubic.RotationX(theta))
	case AxisY:
		s.Transform(cubic.RotationY(theta))
	case AxisZ:
		s.Transform(cubic.RotationZ(theta))
	}
}

// Zoom scales the control grid by one scale step up or down.
func (s *Surface) Zoom(up bool) {
	f := s.opts.ScaleDown
	if up {
		f = s.opts.ScaleUp
	}
	s.Transform(cubic.UniformScaling(f))
}

// Patches returns the tessellated patches.
func (s *Surface) Patches() []tessellate.SurfacePatch {
	return s.patches
}

// Shaded returns the shaded triangle lists of all patches.
func (s *Surface) Shaded() []shade.Patch {
	return s.shaded
}

// Points returns every sampled surface point, patch by patch.
func (s *Surface) Points() []vec3.T {
	var pts []vec3.T
	for k := range s.patches {
		pts = append(pts, s.patches[k].Mesh.Points...)
	}
	return pts
}

// Wireframe returns the row and column polylines of every patch mesh.
func (s *Surface) Wireframe() [][]vec3.T {
	var lines [][]vec3.T
	for k := range s.patches {
		m := &s.patches[k].Mesh
		for i := 0; i < m.N; i++ {
			row := make([]vec3.T, m.N)
			copy(row, m.Row(i))
			lines = append(lines, row)
		}
		for j := 0; j < m.N; j++ {
			lines = append(lines, m.Col(j))
		}
	}
	return lines
}

// ControlNet returns the control grid as row and column polylines.
func (s *Surface) ControlNet() [][]vec3.T {
	if s.grid == nil {
		return nil
	}
	lines := make([][]vec3.T, 0, s.grid.Rows()+s.grid.Cols())
	for i := 0; i < s.grid.Rows(); i++ {
		lines = append(lines, s.grid.Row(i))
	}
	for j := 0; j < s.grid.Cols(); j++ {
		lines = append(lines, s.grid.Col(j))
	}
	return lines
}

func (s *Surface) regenerate() {
	if s.grid == nil || !s.grid.Ready() {
		s.patches, s.shaded = nil, nil
		return
	}
	s.patches = tessellate.Surface(s.grid, s.ev, s.opts.Step)
	s.reshade()
}

func (s *Surface) reshade() {
	s.shaded = shade.Surface(s.patches, &s.opts.Lighting)
	tracer().Debugf("surface %q: %d shaded patches", s.label, len(s.shaded))
}
