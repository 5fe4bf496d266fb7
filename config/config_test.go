package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/splinekit/cubic/basis"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Family() != basis.Bezier {
		t.Errorf("expected bezier family, got %s", cfg.Family())
	}
	if cfg.Tessellation.CurveCapacity != 80 {
		t.Errorf("expected curve capacity 80, got %d", cfg.Tessellation.CurveCapacity)
	}
	if cfg.Tessellation.SurfaceStep != 0.04 {
		t.Errorf("expected surface step 0.04, got %f", cfg.Tessellation.SurfaceStep)
	}

	l := cfg.Lighting()
	if l.Ambient != 0.25 || l.Attenuation != 0.005 || l.SecondaryWeight != 0.6 {
		t.Errorf("unexpected shading terms %+v", l)
	}
	if l.Lights[0].Position != (vec3.T{30, 30, 30}) {
		t.Errorf("expected primary light at (30,30,30), got %v", l.Lights[0].Position)
	}
	if l.Lights[1].Position != (vec3.T{-20, 10, -10}) {
		t.Errorf("expected secondary light at (-20,10,-10), got %v", l.Lights[1].Position)
	}
	if len(l.Palette) != 4 {
		t.Errorf("expected 4 palette colors, got %d", len(l.Palette))
	}

	co := cfg.CurveOptions()
	if co.MaxControlPoints != 30 || co.PickRadius != 6 {
		t.Errorf("unexpected curve options %+v", co)
	}
	so := cfg.SurfaceOptions()
	if so.Step != 0.04 || so.LoadScale != 0.22 || so.RotateStep != 0.01 {
		t.Errorf("unexpected surface options %+v", so)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
tessellation:
  family: catmull-rom
  surface_step: 0.1

shading:
  primary_light: [1, 2, 3]

logging:
  level: debug
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Family() != basis.CatmullRom {
		t.Errorf("expected catmullrom, got %s", cfg.Family())
	}
	if cfg.Tessellation.SurfaceStep != 0.1 {
		t.Errorf("expected surface step 0.1, got %f", cfg.Tessellation.SurfaceStep)
	}
	if cfg.Lighting().Lights[0].Position != (vec3.T{1, 2, 3}) {
		t.Errorf("expected primary light at (1,2,3), got %v", cfg.Lighting().Lights[0].Position)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}

	// values missing from the file keep their defaults
	if cfg.Tessellation.CurveCapacity != 80 {
		t.Errorf("expected default curve capacity, got %d", cfg.Tessellation.CurveCapacity)
	}
	if cfg.Lighting().Lights[1].Position != (vec3.T{-20, 10, -10}) {
		t.Errorf("expected default secondary light, got %v", cfg.Lighting().Lights[1].Position)
	}
}

func TestLoadInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	tests := map[string]string{
		"family":   "tessellation:\n  family: nurbs\n",
		"step":     "tessellation:\n  surface_step: 0\n",
		"tiny":     "tessellation:\n  surface_step: 0.000001\n",
		"light":    "shading:\n  primary_light: [1, 2]\n",
		"palette":  "shading:\n  palette: []\n",
		"points":   "editor:\n  max_control_points: 3\n",
		"capacity": "tessellation:\n  curve_capacity: -1\n",
	}
	for name, content := range tests {
		path := filepath.Join(tmpDir, name+".yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadFile(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", name, err)
		}
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
	bad := filepath.Join(tmpDir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("tessellation: [\n"), 0644)
	if _, err := LoadFile(bad); err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "sub", "config.yaml")

	cfg := Default()
	cfg.Tessellation.Family = "bspline"
	cfg.Editor.PickRadius = 9
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("failed to reload config: %v", err)
	}
	if loaded.Family() != basis.BSpline {
		t.Errorf("expected bspline, got %s", loaded.Family())
	}
	if loaded.Editor.PickRadius != 9 {
		t.Errorf("expected pick radius 9, got %f", loaded.Editor.PickRadius)
	}
}
