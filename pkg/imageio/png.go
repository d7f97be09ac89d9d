package imageio

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

// PNGWriter encodes 8-bit RGBA PNG files using the same quantization as PPMWriter
type PNGWriter struct{}

// Encode writes src as a PNG
func (PNGWriter) Encode(w io.Writer, src PixelSource) error {
	if err := png.Encode(w, ToRGBA(src)); err != nil {
		return xerrors.Errorf("encoding png: %w", err)
	}
	return nil
}

// ToRGBA converts src to a gamma-corrected, quantized RGBA image
func ToRGBA(src PixelSource) *image.RGBA {
	width, height := src.Size()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			r, g, b := core.ColorToBytes(src.At(i, j))
			img.SetRGBA(i, j, color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255})
		}
	}
	return img
}
