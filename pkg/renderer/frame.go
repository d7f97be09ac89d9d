package renderer

import "github.com/df07/go-raytracer/pkg/core"

// Frame is a row-major buffer of averaged linear radiance, top row first
type Frame struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFrame allocates a black frame
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// Size returns the frame dimensions
func (f *Frame) Size() (width, height int) {
	return f.Width, f.Height
}

// At returns the color of column i in row j
func (f *Frame) At(i, j int) core.Vec3 {
	return f.Pixels[j*f.Width+i]
}

// Set stores the color of column i in row j
func (f *Frame) Set(i, j int, c core.Vec3) {
	f.Pixels[j*f.Width+i] = c
}
