package topology

import (
	"fmt"

	"github.com/splinekit/cubic"
	"github.com/ungerik/go3d/float64/vec3"
)

// Patch is a 4×4 window of control points, indexed [row][col].
type Patch [4][4]vec3.T

// Grid is a row-major n×m grid of control points of a surface, stored flat.
type Grid struct {
	rows, cols int
	points     []vec3.T
}

// MaxGridPoints bounds the storage a single grid may claim.
const MaxGridPoints = 1 << 20

// NewGrid allocates a grid of rows×cols points at the origin.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || rows > MaxGridPoints/cols {
		return nil, fmt.Errorf("%w: %d×%d", ErrDimensions, rows, cols)
	}
	return &Grid{
		rows:   rows,
		cols:   cols,
		points: make([]vec3.T, rows*cols),
	}, nil
}

// Rows is the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols is the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Ready is true if the grid holds enough rows to be evaluated. Columns wrap,
// so any non-empty column extent addresses the 4 columns of a window.
func (g *Grid) Ready() bool {
	return g.rows >= MinPoints && g.cols > 0
}

// Bands is the number of row bands, i.e. valid patch origins in the row
// direction. Rows do not wrap, so a grid of n rows has n−3 bands.
func (g *Grid) Bands() int {
	if g.rows < MinPoints {
		return 0
	}
	return g.rows - MinPoints + 1
}

func (g *Grid) index(i, j int) (int, error) {
	if i < 0 || i >= g.rows || j < 0 || j >= g.cols {
		return 0, fmt.Errorf("%w: (%d,%d) in %d×%d", ErrIndex, i, j, g.rows, g.cols)
	}
	return i*g.cols + j, nil
}

// At returns the control point at row i, column j.
func (g *Grid) At(i, j int) (vec3.T, error) {
	k, err := g.index(i, j)
	if err != nil {
		return vec3.T{}, err
	}
	return g.points[k], nil
}

// Set moves the control point at row i, column j.
func (g *Grid) Set(i, j int, p vec3.T) error {
	k, err := g.index(i, j)
	if err != nil {
		return err
	}
	g.points[k] = p
	return nil
}

// Wrapped returns the control point at (i mod rows, j mod cols).
func (g *Grid) Wrapped(i, j int) vec3.T {
	return g.points[Wrap(i, g.rows)*g.cols+Wrap(j, g.cols)]
}

// Row returns a copy of row i.
func (g *Grid) Row(i int) []vec3.T {
	i = Wrap(i, g.rows)
	row := make([]vec3.T, g.cols)
	copy(row, g.points[i*g.cols:(i+1)*g.cols])
	return row
}

// Col returns a copy of column j.
func (g *Grid) Col(j int) []vec3.T {
	j = Wrap(j, g.cols)
	col := make([]vec3.T, g.rows)
	for i := range col {
		col[i] = g.points[i*g.cols+j]
	}
	return col
}

// Window returns the 4×4 control points starting at (i0,j0), both indices
// taken modulo the grid's extent.
func (g *Grid) Window(i0, j0 int) Patch {
	var w Patch
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			w[i][j] = g.Wrapped(i0+i, j0+j)
		}
	}
	return w
}

// Transform applies a linear transform of 3-space to every control point.
func (g *Grid) Transform(m cubic.LT) {
	for k := range g.points {
		g.points[k] = m.Transform(g.points[k])
	}
	tracer().Debugf("transformed %d×%d grid", g.rows, g.cols)
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, cols: g.cols, points: make([]vec3.T, len(g.points))}
	copy(c.points, g.points)
	return c
}
