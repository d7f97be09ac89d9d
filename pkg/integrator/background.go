package integrator

import "github.com/df07/go-raytracer/pkg/core"

// GradientBackground blends vertically between two colors by ray direction
type GradientBackground struct {
	Bottom core.Vec3 // Color looking straight down
	Top    core.Vec3 // Color looking straight up
}

// NewGradientBackground creates a vertical gradient background
func NewGradientBackground(bottom, top core.Vec3) *GradientBackground {
	return &GradientBackground{Bottom: bottom, Top: top}
}

// NewSkyBackground returns the white-to-blue sky used by the built-in scenes
func NewSkyBackground() *GradientBackground {
	return NewGradientBackground(core.NewVec3(1.0, 1.0, 1.0), core.NewVec3(0.5, 0.7, 1.0))
}

// Color returns (1-a)*Bottom + a*Top with a = 0.5*(unit(d).Y + 1)
func (g *GradientBackground) Color(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return g.Bottom.Multiply(1.0 - a).Add(g.Top.Multiply(a))
}

// SolidBackground returns the same radiance for every escaping ray
type SolidBackground struct {
	Radiance core.Vec3
}

// NewSolidBackground creates a uniform background
func NewSolidBackground(radiance core.Vec3) *SolidBackground {
	return &SolidBackground{Radiance: radiance}
}

// Color returns the uniform radiance
func (s *SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Radiance
}
