package scene

import (
	"bufio"
	"bytes"
	"context"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/renderer"
)

func render(t *testing.T, s *Scene) *renderer.Frame {
	t.Helper()
	rt, err := renderer.NewRaytracer(s)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	frame, _, err := rt.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return frame
}

func TestDefaultSceneMatchesReferenceSetup(t *testing.T) {
	s := NewDefaultScene()

	if s.CameraConfig.ImageWidth != 400 || s.CameraConfig.AspectRatio != 16.0/9.0 {
		t.Errorf("Expected 400 wide 16:9 camera, got %+v", s.CameraConfig)
	}
	if s.CameraConfig.LookFrom != (core.Vec3{}) || s.CameraConfig.LookAt != core.NewVec3(0, 0, -1) {
		t.Errorf("Expected pinhole at origin facing -z, got %+v", s.CameraConfig)
	}
	if s.CameraConfig.DefocusAngle != 0 {
		t.Errorf("Expected pinhole camera, got defocus angle %f", s.CameraConfig.DefocusAngle)
	}
	if s.SamplingConfig.SamplesPerPixel != 100 || s.SamplingConfig.MaxDepth != 50 {
		t.Errorf("Expected 100 samples and depth 50, got %+v", s.SamplingConfig)
	}

	want := []struct {
		center core.Vec3
		radius float64
	}{
		{core.NewVec3(0, 0, -1), 0.5},
		{core.NewVec3(0, -100.5, -1), 100},
	}
	if s.GetPrimitiveCount() != len(want) {
		t.Fatalf("Expected %d spheres, got %d", len(want), s.GetPrimitiveCount())
	}
	for idx, w := range want {
		sphere, ok := s.World.Objects[idx].(*geometry.Sphere)
		if !ok {
			t.Fatalf("Object %d is %T, expected *geometry.Sphere", idx, s.World.Objects[idx])
		}
		if sphere.Center != w.center || sphere.Radius != w.radius {
			t.Errorf("Sphere %d = (%v, %f), want (%v, %f)", idx, sphere.Center, sphere.Radius, w.center, w.radius)
		}
	}

	if err := s.Validate(); err != nil {
		t.Errorf("Default scene should validate: %v", err)
	}
}

func TestDefaultSceneRendersSkyAndSphere(t *testing.T) {
	// Full resolution with a low sample count keeps the test fast
	s := NewDefaultScene()
	s.SamplingConfig.SamplesPerPixel = 2

	frame := render(t, s)
	if frame.Width != 400 || frame.Height != 225 {
		t.Fatalf("Expected 400x225 frame, got %dx%d", frame.Width, frame.Height)
	}

	var buf bytes.Buffer
	if err := (imageio.PPMWriter{}).Encode(&buf, frame); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	lines := 0
	var header []string
	for scanner.Scan() {
		line := scanner.Text()
		lines++
		if lines <= 3 {
			header = append(header, line)
			continue
		}
		for _, field := range strings.Fields(line) {
			v, err := strconv.Atoi(field)
			if err != nil || v < 0 || v > 255 {
				t.Fatalf("Line %d has invalid channel %q", lines, field)
			}
		}
	}
	if lines != 400*225+3 {
		t.Errorf("Expected %d lines, got %d", 400*225+3, lines)
	}
	if diff := cmp.Diff([]string{"P3", "400 225", "255"}, header); diff != "" {
		t.Errorf("Header mismatch (-want +got):\n%s", diff)
	}

	// Top row shows the sky: blue dominates red
	sky := frame.At(200, 0)
	if sky.Z <= sky.X {
		t.Errorf("Expected sky color at the top, got %v", sky)
	}

	// The diffuse sphere at the center is darker than the sky above it
	center := frame.At(200, 112)
	if center.Luminance() >= sky.Luminance() {
		t.Errorf("Expected a darker sphere at the center, got %v vs sky %v", center, sky)
	}
}

func TestZeroDepthRendersBlack(t *testing.T) {
	overrides := renderer.CameraConfig{ImageWidth: 32}
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name, overrides)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			s.SamplingConfig.SamplesPerPixel = 2
			s.SamplingConfig.MaxDepth = 0

			frame := render(t, s)
			for idx, c := range frame.Pixels {
				if c != (core.Vec3{}) {
					t.Fatalf("Pixel %d is %v, expected black", idx, c)
				}
			}
		})
	}
}

func TestEmptySceneShowsBackground(t *testing.T) {
	s := NewEmptyScene(renderer.CameraConfig{ImageWidth: 64})
	s.SamplingConfig.SamplesPerPixel = 8
	frame := render(t, s)

	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	background := s.GetBackground()
	opts := cmpopts.EquateApprox(0, 0.01)

	for j := 0; j < frame.Height; j++ {
		for i := 0; i < frame.Width; i++ {
			primary := core.NewRay(camera.Center(), camera.PixelCenter(i, j).Subtract(camera.Center()))
			want := background.Color(primary)
			if diff := cmp.Diff(want, frame.At(i, j), opts); diff != "" {
				t.Fatalf("Pixel (%d,%d) differs from the background (-want +got):\n%s", i, j, diff)
			}
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Lookup(name)
			if err != nil {
				t.Fatalf("Lookup failed: %v", err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Preset %q should validate: %v", name, err)
			}
			if _, err := renderer.NewRaytracer(s); err != nil {
				t.Errorf("Preset %q rejected by renderer: %v", name, err)
			}
		})
	}
}

func TestFinalSceneIsReproducible(t *testing.T) {
	a := NewFinalScene(3)
	b := NewFinalScene(3)
	c := NewFinalScene(4)

	if a.GetPrimitiveCount() != b.GetPrimitiveCount() {
		t.Fatalf("Same layout seed produced %d and %d spheres", a.GetPrimitiveCount(), b.GetPrimitiveCount())
	}
	// ground + up to 22*22 small spheres + 3 large ones
	if n := a.GetPrimitiveCount(); n < 400 || n > 1+22*22+3 {
		t.Errorf("Unexpected sphere count %d", n)
	}

	same := true
	for idx := range a.World.Objects {
		sa := a.World.Objects[idx].(*geometry.Sphere)
		sb := b.World.Objects[idx].(*geometry.Sphere)
		if sa.Center != sb.Center || sa.Radius != sb.Radius {
			t.Fatalf("Sphere %d differs between identical layout seeds", idx)
		}
	}
	for idx := 1; idx < a.GetPrimitiveCount() && idx < c.GetPrimitiveCount(); idx++ {
		if a.World.Objects[idx].(*geometry.Sphere).Center != c.World.Objects[idx].(*geometry.Sphere).Center {
			same = false
			break
		}
	}
	if same {
		t.Error("Different layout seeds produced the same layout")
	}

	// Small spheres keep clear of the large metal sphere's footprint
	for _, object := range a.World.Objects {
		sphere := object.(*geometry.Sphere)
		if sphere.Radius == 0.2 && sphere.Center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
			t.Errorf("Small sphere at %v overlaps the clear zone", sphere.Center)
		}
	}
}

func TestSphereGridScene(t *testing.T) {
	s := NewSphereGridScene(4)
	if got := s.GetPrimitiveCount(); got != 1+16 {
		t.Errorf("Expected 17 spheres, got %d", got)
	}
	for _, object := range s.World.Objects[1:] {
		sphere := object.(*geometry.Sphere)
		if math.Abs(sphere.Center.Y-sphere.Radius) > 1e-12 {
			t.Errorf("Grid sphere at %v should rest on the ground", sphere.Center)
		}
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Sphere grid should validate: %v", err)
	}
}

func TestCameraOverridesApply(t *testing.T) {
	s := NewDefocusScene(renderer.CameraConfig{ImageWidth: 120, DefocusAngle: 2})
	if s.CameraConfig.ImageWidth != 120 || s.CameraConfig.DefocusAngle != 2 {
		t.Errorf("Overrides not applied: %+v", s.CameraConfig)
	}
	if s.CameraConfig.VFov != 20 || s.CameraConfig.FocusDistance != 3.4 {
		t.Errorf("Preset values lost: %+v", s.CameraConfig)
	}
}

func TestSceneValidateRejectsBadInput(t *testing.T) {
	s := NewDefaultScene()
	s.AddSphere(core.NewVec3(1, 1, 1), 0, nil)
	if err := s.Validate(); !xerrors.Is(err, core.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
	}

	s = NewDefaultScene()
	s.World = nil
	if err := s.Validate(); !xerrors.Is(err, core.ErrInvalidConfiguration) {
		t.Errorf("Expected ErrInvalidConfiguration for missing world, got %v", err)
	}
	if s.GetWorld() != nil {
		t.Error("Expected nil world interface for a scene without objects list")
	}
}
