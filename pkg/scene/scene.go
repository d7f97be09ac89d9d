package scene

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string                 // Identifier the scene was created under
	World          *geometry.HittableList // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig core.SamplingConfig
	Background     integrator.Background // Radiance for rays that leave the scene
}

// newScene creates an empty scene with the sky background
func newScene(name string, cameraConfig renderer.CameraConfig, samplingConfig core.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewHittableList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		Background:     integrator.NewSkyBackground(),
	}
}

// applyCameraOverrides merges the first override, if any, into base
func applyCameraOverrides(base renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(base, overrides[0])
	}
	return base
}

// GetWorld returns the scene objects
func (s *Scene) GetWorld() geometry.Hittable {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() core.SamplingConfig {
	return s.SamplingConfig
}

// GetBackground returns the background, defaulting to the sky gradient
func (s *Scene) GetBackground() integrator.Background {
	if s.Background == nil {
		return integrator.NewSkyBackground()
	}
	return s.Background
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// GetPrimitiveCount returns the number of objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return s.World.Len()
}

// Validate checks the world, camera and sampling configuration before rendering
func (s *Scene) Validate() error {
	if s.World == nil {
		return xerrors.Errorf("scene %q has no world: %w", s.Name, core.ErrInvalidConfiguration)
	}
	if err := s.World.Validate(); err != nil {
		return xerrors.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return xerrors.Errorf("scene %q camera: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return xerrors.Errorf("scene %q sampling: %w", s.Name, err)
	}
	return nil
}
