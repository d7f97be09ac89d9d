package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewMaterialsScene creates one sphere per material kind: a diffuse center,
// a hollow glass sphere on the left and fuzzy gold metal on the right
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.ImageWidth = 400
	defaultCameraConfig.AspectRatio = 16.0 / 9.0

	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 50

	s := newScene("materials", cameraConfig, samplingConfig)
	addMaterialSpheres(s)
	return s
}

// NewDefocusScene renders the materials scene from above and to the left
// with a narrow field of view and a thin lens focused on the center sphere
func NewDefocusScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:   16.0 / 9.0,
		ImageWidth:    400,
		VFov:          20,
		LookFrom:      core.NewVec3(-2, 2, 1),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  10.0,
		FocusDistance: 3.4,
	}

	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 50

	s := newScene("defocus", cameraConfig, samplingConfig)
	addMaterialSpheres(s)
	return s
}

func addMaterialSpheres(s *Scene) {
	ground := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	center := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	glass := material.NewDielectric(1.50)
	bubble := material.NewDielectric(1.00 / 1.50)
	gold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.AddSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, ground)
	s.AddSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, center)
	s.AddSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, glass)
	s.AddSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, bubble)
	s.AddSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, gold)
}
