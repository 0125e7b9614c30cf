package scene

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
)

// UV is a texture coordinate. W is rarely used but kept per the .obj
// grammar's optional third component; it defaults to 0.
type UV struct {
	U, V, W float64
}

// Image is an opaque 2-D RGB pixel buffer sampled only at integer
// coordinates (nearest-neighbor); bilinear/mipmapped filtering is an
// explicit non-goal of this rasterizer.
type Image struct {
	Width, Height int
	Pixels        []Color
}

// NewImage allocates a black Width x Height image.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]Color, width*height)}
}

// At returns the pixel at (x, y), clamped to the image bounds.
func (img *Image) At(x, y int) Color {
	x = clampInt(x, 0, img.Width-1)
	y = clampInt(y, 0, img.Height-1)
	return img.Pixels[y*img.Width+x]
}

// Set writes the pixel at (x, y) if it is in bounds.
func (img *Image) Set(x, y int, c Color) {
	if x < 0 || x >= img.Width || y < 0 || y >= img.Height {
		return
	}
	img.Pixels[y*img.Width+x] = c
}

// SampleNearest samples the image at texture coordinate (u, v) using
// nearest-neighbor lookup, per spec: round(u*(W-1)), round(v*(H-1)),
// clamped to the image bounds.
func (img *Image) SampleNearest(u, v float64) Color {
	x := int(u*float64(img.Width-1) + 0.5)
	y := int(v*float64(img.Height-1) + 0.5)
	return img.At(x, y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LoadImage decodes a PNG or JPEG file from disk into an Image. Only the
// decoded RGB channels are used; every stored pixel is opaque (A = 1).
func LoadImage(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}

	bounds := src.Bounds()
	img := NewImage(bounds.Dx(), bounds.Dy())
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			r, g, b, _ := src.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			img.Set(x, y, Color{
				R: float64(r) / 65535,
				G: float64(g) / 65535,
				B: float64(b) / 65535,
				A: 1,
			})
		}
	}
	return img, nil
}
