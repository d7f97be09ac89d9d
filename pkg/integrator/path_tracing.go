package integrator

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
)

// PathTracingIntegrator implements unidirectional path tracing
type PathTracingIntegrator struct {
	MaxDepth   int        // Maximum number of ray segments traced per path
	Background Background // Radiance for rays that leave the scene
}

// NewPathTracingIntegrator creates a new path tracing integrator.
// A nil background falls back to the default sky gradient.
func NewPathTracingIntegrator(config core.SamplingConfig, background Background) *PathTracingIntegrator {
	if background == nil {
		background = NewSkyBackground()
	}
	return &PathTracingIntegrator{
		MaxDepth:   config.MaxDepth,
		Background: background,
	}
}

// RayColor computes the color for a single ray. The path is followed
// iteratively with a running throughput product, so deep budgets do not grow
// the stack.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)
	hitRange := core.NewInterval(ShadowAcneEpsilon, math.Inf(1))

	for depth := pt.MaxDepth; depth > 0; depth-- {
		hit, isHit := world.Hit(ray, hitRange)
		if !isHit {
			return throughput.MultiplyVec(pt.Background.Color(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			return core.Vec3{}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{}
}
