package renderer

import "errors"

var (
	// ErrInterrupted is returned when a render is cancelled before every
	// scanline completes
	ErrInterrupted = errors.New("render interrupted")

	// ErrNilScene is returned when a raytracer is created without a scene or world
	ErrNilScene = errors.New("scene is nil")
)
