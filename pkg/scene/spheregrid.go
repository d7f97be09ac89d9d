package scene

import (
	"math"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// oklchToRGB maps lightness l in [0,1], chroma c and hue h in degrees to
// clamped linear RGB via OKLab and LMS.
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	lp := l + 0.3963377774*a + 0.2158037573*b
	mp := l - 0.1055613458*a - 0.0638541728*b
	sp := l - 0.0894841775*a - 1.2914855480*b
	lp, mp, sp = lp*lp*lp, mp*mp*mp, sp*sp*sp

	rgb := core.NewVec3(
		+4.0767416621*lp-3.3077115913*mp+0.2309699292*sp,
		-1.2684380046*lp+2.6097574011*mp-0.3413193965*sp,
		-0.0041960863*lp-0.7034186147*mp+1.7076147010*sp,
	)
	return rgb.Clamp(0, 1)
}

const (
	gridExtent    = 9.0
	gridLightness = 0.65
	gridMinChroma = 0.05
	gridMaxChroma = 0.25
)

// NewSphereGridScene lays out gridSize×gridSize metal spheres on a gray
// ground. Hue sweeps along x and chroma along z; the grid always spans the
// same square so larger sizes produce smaller spheres.
func NewSphereGridScene(gridSize int, cameraOverrides ...renderer.CameraConfig) *Scene {
	center := core.NewVec3(gridExtent/2, 0, gridExtent/2)
	cameraConfig := applyCameraOverrides(renderer.CameraConfig{
		LookFrom:     core.NewVec3(center.X, 6, 18),
		LookAt:       core.NewVec3(center.X, 0.8, center.Z),
		Up:           core.NewVec3(0, 1, 0),
		ImageWidth:   400,
		AspectRatio:  16.0 / 9.0,
		VFov:         40,
		DefocusAngle: 0.3,
	}, cameraOverrides)

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 40

	s := newScene("spheregrid", cameraConfig, samplingConfig)
	s.AddSphere(center.Subtract(core.NewVec3(0, 1000, 0)), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	gridSize = max(gridSize, 2)
	steps := float64(gridSize - 1)
	spacing := gridExtent / steps
	radius := min(max(spacing*0.35, 0.02), 0.35)

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			hue := float64(i) / steps * 360
			chroma := gridMinChroma + float64(j)/steps*(gridMaxChroma-gridMinChroma)
			lightness := gridLightness + 0.1*math.Sin(float64(i+j)*0.5)
			fuzz := 0.05 + 0.05*float64((i+j)%3)

			pos := core.NewVec3(float64(i)*spacing, radius, float64(j)*spacing)
			s.AddSphere(pos, radius, material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz))
		}
	}

	return s
}
