package renderer

import (
	"math"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	AspectRatio   float64   // Ratio of image width over height
	ImageWidth    int       // Rendered image width in pixels
	VFov          float64   // Vertical field of view in degrees
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera looks at
	Up            core.Vec3 // Camera-relative "up" direction
	DefocusAngle  float64   // Variation angle of rays through each pixel, in degrees (0 = pinhole)
	FocusDistance float64   // Distance to the plane of perfect focus (0 = |LookFrom - LookAt|)
}

// DefaultCameraConfig returns the pinhole camera at the origin looking down -z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:   1.0,
		ImageWidth:    100,
		VFov:          90,
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		DefocusAngle:  0,
		FocusDistance: 0,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// A zero vector cannot be expressed as an override; build the full config
// instead when the camera must look at or sit at the origin.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// MaxImageDimension bounds the image width and the derived image height
const MaxImageDimension = 1 << 15

// Validate rejects configurations that would produce NaN rays or an image too
// large to allocate
func (c CameraConfig) Validate() error {
	if c.ImageWidth < 1 || c.ImageWidth > MaxImageDimension {
		return xerrors.Errorf("image width must be in [1, %d], got %d: %w", MaxImageDimension, c.ImageWidth, core.ErrInvalidConfiguration)
	}
	if !(c.AspectRatio > 0) || math.IsInf(c.AspectRatio, 0) {
		return xerrors.Errorf("aspect ratio must be positive and finite, got %g: %w", c.AspectRatio, core.ErrInvalidConfiguration)
	}
	if height := float64(c.ImageWidth) / c.AspectRatio; height > MaxImageDimension {
		return xerrors.Errorf("aspect ratio %g gives an image height of %g, above %d: %w", c.AspectRatio, height, MaxImageDimension, core.ErrInvalidConfiguration)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return xerrors.Errorf("vertical field of view must be in (0, 180) degrees, got %g: %w", c.VFov, core.ErrInvalidConfiguration)
	}
	if !c.LookFrom.IsFinite() || !c.LookAt.IsFinite() || !c.Up.IsFinite() {
		return xerrors.Errorf("camera vectors must be finite: %w", core.ErrInvalidConfiguration)
	}
	view := c.LookFrom.Subtract(c.LookAt)
	if view.NearZero() {
		return xerrors.Errorf("look from %v equals look at %v: %w", c.LookFrom, c.LookAt, core.ErrInvalidConfiguration)
	}
	if c.Up.Cross(view.Normalize()).NearZero() {
		return xerrors.Errorf("up vector %v is parallel to the view direction: %w", c.Up, core.ErrInvalidConfiguration)
	}
	if !(c.DefocusAngle >= 0 && c.DefocusAngle < 180) {
		return xerrors.Errorf("defocus angle must be in [0, 180) degrees, got %g: %w", c.DefocusAngle, core.ErrInvalidConfiguration)
	}
	if !(c.FocusDistance >= 0) || math.IsInf(c.FocusDistance, 0) {
		return xerrors.Errorf("focus distance must be finite and not negative, got %g: %w", c.FocusDistance, core.ErrInvalidConfiguration)
	}
	return nil
}

// Camera generates rays for rendering
type Camera struct {
	config       CameraConfig
	imageHeight  int       // Rendered image height
	center       core.Vec3 // Camera center
	pixel00Loc   core.Vec3 // Location of pixel 0, 0
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from the config, deriving every viewport vector up front
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, xerrors.Errorf("camera: %w", err)
	}

	imageHeight := int(float64(config.ImageWidth) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	center := config.LookFrom
	focusDistance := config.FocusDistance
	if focusDistance == 0 {
		focusDistance = config.LookFrom.Subtract(config.LookAt).Length()
	}

	// Determine viewport dimensions
	theta := degreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageHeight:  imageHeight,
		center:       center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// GetRay returns a ray toward a random point inside pixel (i, j), where i is
// the column and j the row counted from the top. With a positive defocus
// angle the origin is sampled on the defocus disk.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// PixelCenter returns the world-space center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// ImageWidth returns the rendered image width in pixels
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the rendered image height in pixels
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera position
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Forward returns the unit view direction
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// sampleSquare returns an offset in [-0.5, 0.5) x [-0.5, 0.5)
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}
