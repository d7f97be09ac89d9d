package material

import (
	"testing"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
)

func TestLambertian_ScatterAboveSurface(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scatter %d went below the surface: %v", i, scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	// A cube sample of (0.5, 0.25, 0.5) maps to (0, -0.5, 0), which normalizes
	// to exactly the negated normal, so normal + sample cancels
	sampler := &sequenceSampler{samples: []core.Vec3{core.NewVec3(0.5, 0.25, 0.5)}}

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback to the normal %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_Validate(t *testing.T) {
	tests := []struct {
		name    string
		albedo  core.Vec3
		wantErr bool
	}{
		{"Mid grey", core.NewVec3(0.5, 0.5, 0.5), false},
		{"Black and white bounds", core.NewVec3(0, 1, 0), false},
		{"Above one", core.NewVec3(1.2, 0.5, 0.5), true},
		{"Negative", core.NewVec3(0.5, -0.1, 0.5), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(NewLambertian(tt.albedo))
			if tt.wantErr && !xerrors.Is(err, core.ErrInvalidConfiguration) {
				t.Errorf("Expected ErrInvalidConfiguration, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestHitRecord_SetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name      string
		direction core.Vec3
		frontFace bool
		normal    core.Vec3
	}{
		{"Ray from outside", core.NewVec3(0, 0, -1), true, outward},
		{"Ray from inside", core.NewVec3(0, 0, 1), false, outward.Negate()},
		{"Oblique from outside", core.NewVec3(1, 1, -0.5), true, outward},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit.SetFaceNormal(ray, outward)
			if hit.FrontFace != tt.frontFace {
				t.Errorf("FrontFace = %t, want %t", hit.FrontFace, tt.frontFace)
			}
			if hit.Normal != tt.normal {
				t.Errorf("Normal = %v, want %v", hit.Normal, tt.normal)
			}
			if ray.Direction.Dot(hit.Normal) >= 0 {
				t.Errorf("Normal %v does not face the ray %v", hit.Normal, ray.Direction)
			}
		})
	}
}
