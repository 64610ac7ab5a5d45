package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// ExportPNG writes img to path, creating parent directories as needed. When
// withShadow is set the image is composited over a drop shadow first, the
// way presentation slides usually want board snippets.
func ExportPNG(path string, img *image.RGBA, withShadow bool) (*image.RGBA, error) {
	out := img
	if withShadow {
		res := ApplyShadow(img, DefaultShadowOptions())
		if res.Image != nil {
			out = res.Image
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return out, nil
}
