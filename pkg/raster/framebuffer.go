package raster

import (
	"image"
	"image/png"
	"os"
)

// SavePNG encodes a width*height*4 RGBA byte buffer (the same layout
// Draw writes into) as a PNG file at path.
func SavePNG(path string, width, height int, pixels []byte) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	img := &image.RGBA{
		Pix:    pixels,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
	return png.Encode(f, img)
}
