package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// NormalIntegrator shades the first surface hit by its normal mapped into
// [0,1]. Used for previewing geometry without any light transport.
type NormalIntegrator struct {
	Background Background
}

// NewNormalIntegrator creates a normal shading integrator.
// A nil background falls back to the default sky gradient.
func NewNormalIntegrator(background Background) *NormalIntegrator {
	if background == nil {
		background = NewSkyBackground()
	}
	return &NormalIntegrator{Background: background}
}

// RayColor returns 0.5*(n + 1) for the nearest hit, or the background
func (ni *NormalIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, core.NewInterval(0, math.Inf(1)))
	if !isHit {
		return ni.Background.Color(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
