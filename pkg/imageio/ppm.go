package imageio

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

// PPMWriter encodes plain-text P3 portable pixmaps with a max value of 255
type PPMWriter struct{}

// Encode writes the header followed by one "r g b" line per pixel, top row
// first and left to right within a row
func (PPMWriter) Encode(w io.Writer, src PixelSource) error {
	width, height := src.Size()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", width, height); err != nil {
		return xerrors.Errorf("writing ppm header: %w", err)
	}

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			r, g, b := core.ColorToBytes(src.At(i, j))
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return xerrors.Errorf("writing pixel (%d, %d): %w", i, j, err)
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("flushing ppm: %w", err)
	}
	return nil
}
