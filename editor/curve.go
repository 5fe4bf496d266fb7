package editor

import (
	polyclip "github.com/akavel/polyclip-go"
	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/spline"
	"github.com/splinekit/cubic/tessellate"
	"github.com/splinekit/cubic/topology"
	"github.com/ungerik/go3d/float64/vec3"
)

// State is the state of point entry of a curve editor.
type State int

// Curve editor states.
const (
	Collecting State = iota // clicks append control points
	Closed                  // the curve is shown, clicks select control points
)

func (s State) String() string {
	if s == Closed {
		return "closed"
	}
	return "collecting"
}

// CurveOptions configure a curve editor.
type CurveOptions struct {
	MaxControlPoints int          // capacity of the control ring
	CurveCapacity    int          // max points of the tessellated curve
	PickRadius       float64      // selection distance for clicks
	Family           basis.Family // initial spline family
}

// DefaultCurveOptions are the standard editor settings.
func DefaultCurveOptions() CurveOptions {
	return CurveOptions{
		MaxControlPoints: 30,
		CurveCapacity:    tessellate.DefaultCurveCapacity,
		PickRadius:       6,
		Family:           basis.Bezier,
	}
}

// Curve is the editor of a closed curve in the plane.
//
// It starts Collecting: every click appends a control point. Finalize closes
// the control polygon once it has at least 4 points; from then on clicks
// select the nearest control point, which may be dragged. Clear returns to
// Collecting with an empty polygon.
type Curve struct {
	opts     CurveOptions
	ring     *topology.Ring
	ev       spline.Evaluator
	state    State
	selected int
	curve    []vec3.T
}

// NewCurve creates an empty curve editor.
func NewCurve(opts CurveOptions) *Curve {
	return &Curve{
		opts:     opts,
		ring:     topology.NewRing(opts.MaxControlPoints),
		ev:       spline.New(opts.Family),
		selected: -1,
	}
}

// State returns the current state.
func (c *Curve) State() State {
	return c.state
}

// Family returns the active spline family.
func (c *Curve) Family() basis.Family {
	return c.ev.Family
}

// Selected returns the index of the selected control point, or -1.
func (c *Curve) Selected() int {
	return c.selected
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return c.ring.Len()
}

// Click handles a click at (x,y). While collecting, a control point is
// appended, unless the polygon is full. When closed, the nearest control
// point within the pick radius is selected, if any. Click returns the index
// of the appended or selected point, or -1.
func (c *Curve) Click(x, y float64) int {
	if c.state == Collecting {
		if err := c.ring.Append(cubic.P2(x, y)); err != nil {
			tracer().Debugf("click (%g,%g) ignored: %v", x, y, err)
			return -1
		}
		return c.ring.Len() - 1
	}
	c.selected = c.ring.Nearest(x, y, c.opts.PickRadius)
	return c.selected
}

// Release ends a drag and deselects.
func (c *Curve) Release() {
	c.selected = -1
}

// Drag moves the selected control point to (x,y) and regenerates the curve.
// It returns false if no point is selected.
func (c *Curve) Drag(x, y float64) bool {
	if c.state != Closed || c.selected < 0 {
		return false
	}
	if err := c.ring.Set(c.selected, cubic.P2(x, y)); err != nil {
		tracer().Errorf("drag of point %d: %v", c.selected, err)
		return false
	}
	c.regenerate()
	return true
}

// Finalize closes the control polygon and generates the curve. It fails with
// ErrNotReady if there are fewer than 4 control points.
func (c *Curve) Finalize() error {
	if !c.ring.Ready() {
		return ErrNotReady
	}
	c.state = Closed
	c.regenerate()
	return nil
}

// Regenerate is an explicit request to (re)generate the curve. Like Finalize,
// it closes a polygon of at least 4 points.
func (c *Curve) Regenerate() error {
	return c.Finalize()
}

// Clear removes all control points and the curve, and returns to collecting.
func (c *Curve) Clear() {
	c.ring.Clear()
	c.curve = nil
	c.selected = -1
	c.state = Collecting
}

// SetFamily switches the spline family. A closed curve is regenerated.
func (c *Curve) SetFamily(f basis.Family) {
	c.ev = spline.New(f)
	if c.state == Closed {
		c.regenerate()
	}
}

// Transform applies an affine transform to the whole control polygon, relative
// to the centroid of the control points. A closed curve is regenerated.
func (c *Curve) Transform(m cubic.AT) {
	if c.ring.Len() == 0 {
		return
	}
	ctr := c.ring.Centroid()
	c.ring.Transform(m.Around(ctr[0], ctr[1]))
	if c.state == Closed {
		c.regenerate()
	}
}

// Rotate rotates the control polygon counter-clockwise by deg degrees.
func (c *Curve) Rotate(deg float64) {
	c.Transform(cubic.Rotation(deg * cubic.Deg2Rad))
}

// Scale scales the control polygon uniformly by f.
func (c *Curve) Scale(f float64) {
	c.Transform(cubic.Scaling(f, f))
}

// Mirror reflects the control polygon at an axis through its centroid.
func (c *Curve) Mirror(axis cubic.Axis) {
	c.Transform(cubic.Mirror(axis))
}

// Shear shears the control polygon: x' = x + shx·y, y' = shy·x + y.
func (c *Curve) Shear(shx, shy float64) {
	c.Transform(cubic.Shear(shx, shy))
}

// Translate moves the control polygon by (dx,dy).
func (c *Curve) Translate(dx, dy float64) {
	c.Transform(cubic.Translation(dx, dy))
}

// Points returns the tessellated curve, a closed polyline. The slice is
// replaced, never modified, by later regenerations.
func (c *Curve) Points() []vec3.T {
	return c.curve
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []vec3.T {
	return c.ring.Points()
}

// ControlPolygon returns the closed control polygon.
func (c *Curve) ControlPolygon() polyclip.Contour {
	return c.ring.Contour()
}

func (c *Curve) regenerate() {
	c.curve = tessellate.Curve(c.ring, c.ev, c.opts.CurveCapacity)
	tracer().Debugf("regenerated %s curve of %d control points", c.ev.Family, c.ring.Len())
}
