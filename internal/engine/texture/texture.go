// Package texture loads images from disk and uploads them as OpenGL
// textures.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// Extensions tried, in order, when resolving a texture name.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// MaxSize caps the longest edge of an uploaded texture.
const MaxSize = 1024

// ErrNotFound is returned when no file matches a texture name.
var ErrNotFound = errors.New("texture not found")

// Resolve finds the file for name inside dir.
func Resolve(dir, name string) (string, error) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s in %s: %w", name, dir, ErrNotFound)
}

// Load decodes the image at path and resamples it to power-of-two
// dimensions no larger than MaxSize.
func Load(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return Resample(src), nil
}

// Resample scales src to power-of-two dimensions no larger than MaxSize.
func Resample(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := potFloor(b.Dx()), potFloor(b.Dy())
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Solid returns a 1x1 image of a 0xRRGGBB colour.
func Solid(hex uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 255})
	return img
}

// potFloor returns the largest power of two <= n, clamped to [1, MaxSize].
func potFloor(n int) int {
	p := 1
	for p*2 <= n && p*2 <= MaxSize {
		p *= 2
	}
	return p
}
