// Package imageio encodes rendered frames into image files.
package imageio

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

// ErrUnknownFormat is returned when no encoder exists for a format name or file extension
var ErrUnknownFormat = errors.New("unknown image format")

// PixelSource is a row-major grid of averaged linear radiance
type PixelSource interface {
	Size() (width, height int)
	At(i, j int) core.Vec3
}

// Encoder writes a complete image for src to w
type Encoder interface {
	Encode(w io.Writer, src PixelSource) error
}

// Formats lists the supported format names
func Formats() []string {
	return []string{"ppm", "png"}
}

// WriterForFormat returns the encoder registered under name (case-insensitive)
func WriterForFormat(name string) (Encoder, error) {
	switch strings.ToLower(name) {
	case "ppm":
		return PPMWriter{}, nil
	case "png":
		return PNGWriter{}, nil
	default:
		return nil, xerrors.Errorf("format %q: %w", name, ErrUnknownFormat)
	}
}

// WriterForPath picks the encoder from the file extension of path
func WriterForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, xerrors.Errorf("path %q has no extension: %w", path, ErrUnknownFormat)
	}
	return WriterForFormat(ext)
}
