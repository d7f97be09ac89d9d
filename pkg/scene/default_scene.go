package scene

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse sphere resting on a large ground sphere,
// seen by a pinhole camera at the origin looking down -z
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.ImageWidth = 400
	defaultCameraConfig.AspectRatio = 16.0 / 9.0

	cameraConfig := applyCameraOverrides(defaultCameraConfig, cameraOverrides)

	samplingConfig := core.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 100
	samplingConfig.MaxDepth = 50

	s := newScene("default", cameraConfig, samplingConfig)

	diffuse := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, diffuse)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, diffuse)

	return s
}

// NewEmptyScene creates a scene with no objects, so every pixel shows the background
func NewEmptyScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.DefaultCameraConfig()
	defaultCameraConfig.ImageWidth = 400
	defaultCameraConfig.AspectRatio = 16.0 / 9.0

	return newScene("empty", applyCameraOverrides(defaultCameraConfig, cameraOverrides), core.DefaultSamplingConfig())
}
