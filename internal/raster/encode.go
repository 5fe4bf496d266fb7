package raster

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
)

// ErrFormat indicates an unsupported output file extension.
var ErrFormat = errors.New("unsupported image format")

// Supported reports whether ext names an output format.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".webp", ".tga":
		return true
	}
	return false
}

// Encode writes img to w in the format named by ext (".png", ".webp" or
// ".tga").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".webp":
		return nativewebp.Encode(w, img, nil)
	case ".tga":
		return tga.Encode(w, img)
	}
	return fmt.Errorf("%w: %q", ErrFormat, ext)
}

// Save writes img to path, choosing the format by file extension.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	if !Supported(ext) {
		return fmt.Errorf("%w: %q", ErrFormat, ext)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, img, ext); err != nil {
		f.Close()
		return fmt.Errorf("%s encode: %w", ext, err)
	}
	return f.Close()
}
