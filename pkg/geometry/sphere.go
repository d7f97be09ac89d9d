package geometry

import (
	"math"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// Sphere represents a sphere shape.
// A negative radius flips the outward normal, which models hollow shells.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	// Vector from ray origin to sphere center
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2·halfB·t + c = 0
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer intersection point first
	root := (-halfB - sqrtD) / a
	if !rayT.Surrounds(root) {
		// Try the farther intersection point
		root = (-halfB + sqrtD) / a
		if !rayT.Surrounds(root) {
			return nil, false
		}
	}

	hitRecord := &material.HitRecord{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}

	// Calculate outward normal (from center to hit point)
	outwardNormal := hitRecord.Point.Subtract(s.Center).Divide(s.Radius)
	hitRecord.SetFaceNormal(ray, outwardNormal)

	return hitRecord, true
}

// Validate rejects spheres whose normal would be undefined
func (s *Sphere) Validate() error {
	if !s.Center.IsFinite() {
		return xerrors.Errorf("sphere center %v is not finite: %w", s.Center, core.ErrInvalidConfiguration)
	}
	if s.Radius == 0 || math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0) {
		return xerrors.Errorf("sphere radius %v must be non-zero and finite: %w", s.Radius, core.ErrInvalidConfiguration)
	}
	if s.Material == nil {
		return xerrors.Errorf("sphere at %v has no material: %w", s.Center, core.ErrInvalidConfiguration)
	}
	if err := material.Validate(s.Material); err != nil {
		return xerrors.Errorf("sphere at %v: %w", s.Center, err)
	}
	return nil
}
