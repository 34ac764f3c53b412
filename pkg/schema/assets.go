package schema

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

func dirOf(path string) string { return filepath.Dir(path) }

// image resolves an image source. Sources supplied with WithImage win over
// files; relative paths are resolved against the asset directory.
func (c *config) image(src string) (image.Image, error) {
	if src == "" {
		return nil, nil
	}
	if img, ok := c.images[src]; ok {
		return img, nil
	}
	path := src
	if !filepath.IsAbs(path) && c.assetDir != "" {
		path = filepath.Join(c.assetDir, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
