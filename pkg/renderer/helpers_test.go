package renderer

import (
	"fmt"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
)

// fixedSampler replays a constant value for every dimension
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

// MockScene implements Scene for testing
type MockScene struct {
	world      geometry.Hittable
	camera     CameraConfig
	sampling   core.SamplingConfig
	background integrator.Background
}

func (m *MockScene) GetWorld() geometry.Hittable            { return m.world }
func (m *MockScene) GetCameraConfig() CameraConfig          { return m.camera }
func (m *MockScene) GetSamplingConfig() core.SamplingConfig { return m.sampling }
func (m *MockScene) GetBackground() integrator.Background   { return m.background }

// newMockScene builds a small two-sphere scene in the default camera's view
func newMockScene(width, samples, depth int) *MockScene {
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	center := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.2)
	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, ground),
	)

	camera := DefaultCameraConfig()
	camera.ImageWidth = width
	camera.AspectRatio = 16.0 / 9.0

	return &MockScene{
		world:  world,
		camera: camera,
		sampling: core.SamplingConfig{
			SamplesPerPixel: samples,
			MaxDepth:        depth,
			Seed:            7,
		},
		background: integrator.NewSkyBackground(),
	}
}

// recordingLogger keeps formatted messages per level
type recordingLogger struct {
	infos    []string
	warnings []string
}

func (r *recordingLogger) Debugf(format string, args ...interface{}) {}
func (r *recordingLogger) Infof(format string, args ...interface{}) {
	r.infos = append(r.infos, sprintf(format, args...))
}
func (r *recordingLogger) Noticef(format string, args ...interface{}) {}
func (r *recordingLogger) Warningf(format string, args ...interface{}) {
	r.warnings = append(r.warnings, sprintf(format, args...))
}
func (r *recordingLogger) Errorf(format string, args ...interface{}) {}

func sprintf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
