package main

import (
	"path/filepath"
	"testing"

	"github.com/splinekit/cubic/editor"
	"github.com/splinekit/cubic/internal/raster"
)

func TestSteps(t *testing.T) {
	var dirs []int
	steps(-3, func(dir int) { dirs = append(dirs, dir) })
	if len(dirs) != 3 || dirs[0] != -1 {
		t.Errorf("expected three clockwise steps, got %v", dirs)
	}
	dirs = nil
	steps(0, func(dir int) { dirs = append(dirs, dir) })
	if len(dirs) != 0 {
		t.Errorf("expected no steps, got %v", dirs)
	}
}

func TestParseMode(t *testing.T) {
	for name, want := range map[string]editor.ViewMode{
		"solid":     editor.ViewSolid,
		"wireframe": editor.ViewWireframe,
		"points":    editor.ViewPoints,
	} {
		m, err := parseMode(name)
		if err != nil || m != want {
			t.Errorf("%s: got %v, %v", name, m, err)
		}
	}
	if _, err := parseMode("phong"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRenderModes(t *testing.T) {
	s := editor.NewSurface(editor.DefaultSurfaceOptions())
	if err := s.Load(filepath.Join("..", "..", "ctrlfile", "testdata", "cylinder4x4.txt")); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	opts := raster.DefaultOptions(64)
	for _, m := range []editor.ViewMode{editor.ViewSolid, editor.ViewWireframe, editor.ViewPoints} {
		s.SetMode(m)
		img := render(s, opts, true)
		if img.Bounds().Dx() != 64 {
			t.Errorf("mode %d: unexpected size %v", m, img.Bounds())
		}
	}
}
