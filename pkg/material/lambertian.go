package material

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance per channel
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Normal plus a point on the unit sphere gives a cosine-weighted direction
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(sampler))

	// The sample can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

// Validate ensures the albedo is a reflectance in [0,1]
func (l *Lambertian) Validate() error {
	if !validReflectance(l.Albedo) {
		return xerrors.Errorf("lambertian albedo %v outside [0,1]: %w", l.Albedo, core.ErrInvalidConfiguration)
	}
	return nil
}

func validReflectance(c core.Vec3) bool {
	unit := core.NewInterval(0, 1)
	return unit.Contains(c.X) && unit.Contains(c.Y) && unit.Contains(c.Z)
}
