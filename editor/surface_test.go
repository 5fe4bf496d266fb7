package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/splinekit/cubic"
	"github.com/splinekit/cubic/basis"
	"github.com/splinekit/cubic/ctrlfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cylinder = filepath.Join("..", "ctrlfile", "testdata", "cylinder4x4.txt")

func loadedSurface(t *testing.T) *Surface {
	s := NewSurface(DefaultSurfaceOptions())
	require.NoError(t, s.Load(cylinder))
	return s
}

func TestSurfaceLoad(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	assert.Equal(t, "OBJ", s.Label())
	require.NotNil(t, s.Grid())
	assert.Equal(t, 4, s.Grid().Rows())
	assert.Len(t, s.Patches(), 4) // one row band, four wrapped columns
	require.Len(t, s.Shaded(), 4)
	for k, p := range s.Shaded() {
		assert.Equal(t, k, p.Seq)
		assert.Len(t, p.Triangles, 2*25*25)
		for _, tri := range p.Triangles {
			assert.True(t, tri.Intensity >= 0 && tri.Intensity <= 1)
		}
	}
	assert.Len(t, s.Points(), 4*26*26)
	assert.Len(t, s.Wireframe(), 4*2*26)
	assert.Len(t, s.ControlNet(), 8)
}

func TestSurfaceLoadIsAllOrNothing(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	grid, patches := s.Grid(), s.Patches()

	err := s.Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	err = s.Read(strings.NewReader("OBJ 4 4\nP0 1 2 3\nP1 4 5 6\n"))
	assert.ErrorIs(t, err, ctrlfile.ErrTruncated)

	assert.Same(t, grid, s.Grid())
	assert.Equal(t, patches, s.Patches())
	assert.Equal(t, "OBJ", s.Label())
}

func TestSurfaceFamilyAndMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	bezier := s.Points()
	s.SetFamily(basis.CatmullRom)
	assert.Equal(t, basis.CatmullRom, s.Family())
	assert.NotEqual(t, bezier, s.Points())
	assert.Equal(t, ViewSolid, s.Mode())
	s.SetMode(ViewWireframe)
	assert.Equal(t, ViewWireframe, s.Mode())
}

func TestSurfaceRotateAndZoom(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	p0, err := s.Grid().At(0, 0)
	require.NoError(t, err)

	s.Rotate(AxisZ, 1)
	p1, _ := s.Grid().At(0, 0)
	assert.False(t, cubic.Near(p0, p1, 1e-6))
	s.Rotate(AxisZ, -1)
	p2, _ := s.Grid().At(0, 0)
	assert.True(t, cubic.Near(p0, p2, 1e-9))

	s.Zoom(true)
	p3, _ := s.Grid().At(0, 0)
	assert.True(t, cubic.Near(p0.Scaled(1.05), p3, 1e-9))
	s.Zoom(false)
	p4, _ := s.Grid().At(0, 0)
	assert.True(t, cubic.Near(p0.Scaled(1.05*0.95), p4, 1e-9))
}

func TestSurfaceSetLightReshades(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	before := s.Shaded()
	s.SetLight(0, cubic.P(-30, -30, -30))
	after := s.Shaded()
	assert.Equal(t, cubic.P(-30, -30, -30), s.Lighting().Lights[0].Position)
	require.Len(t, after, len(before))
	assert.NotEqual(t, before[0].Triangles, after[0].Triangles)
	assert.Equal(t, before[0].Triangles[0].V, after[0].Triangles[0].V)
}

func TestSurfaceEmpty(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := NewSurface(DefaultSurfaceOptions())
	s.Rotate(AxisX, 1)
	s.Zoom(true)
	assert.Nil(t, s.Grid())
	assert.Empty(t, s.Patches())
	assert.Empty(t, s.Wireframe())
	assert.Nil(t, s.ControlNet())
}

func TestSurfaceHermiteInterpolatesGrid(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	s := loadedSurface(t)
	s.SetFamily(basis.Hermite)
	for _, p := range s.Patches() {
		want, err := s.Grid().At(p.Row, p.Col)
		require.NoError(t, err)
		assert.True(t, cubic.Near(want, p.Mesh.At(0, 0), 1e-9), "patch %d corner", p.Seq)
	}
}
