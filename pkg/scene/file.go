package scene

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/xerrors"
	"sigs.k8s.io/yaml"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// FileSpec is the on-disk description of a scene. YAML and JSON share the
// same field names; every camera and sampling field is optional.
type FileSpec struct {
	Name        string                  `json:"name,omitempty"`
	Description string                  `json:"description,omitempty"`
	Camera      CameraSpec              `json:"camera,omitempty"`
	Sampling    SamplingSpec            `json:"sampling,omitempty"`
	Background  *BackgroundSpec         `json:"background,omitempty"`
	Materials   map[string]MaterialSpec `json:"materials"`
	Spheres     []SphereSpec            `json:"spheres"`
}

// CameraSpec overrides fields of renderer.DefaultCameraConfig
type CameraSpec struct {
	AspectRatio   *float64    `json:"aspect_ratio,omitempty"`
	ImageWidth    *int        `json:"image_width,omitempty"`
	VFov          *float64    `json:"vfov,omitempty"`
	LookFrom      *[3]float64 `json:"look_from,omitempty"`
	LookAt        *[3]float64 `json:"look_at,omitempty"`
	Up            *[3]float64 `json:"up,omitempty"`
	DefocusAngle  *float64    `json:"defocus_angle,omitempty"`
	FocusDistance *float64    `json:"focus_distance,omitempty"`
}

// SamplingSpec overrides fields of core.DefaultSamplingConfig
type SamplingSpec struct {
	SamplesPerPixel *int   `json:"samples_per_pixel,omitempty"`
	MaxDepth        *int   `json:"max_depth,omitempty"`
	Seed            *int64 `json:"seed,omitempty"`
}

// BackgroundSpec selects a gradient (bottom/top) or solid (color) background
type BackgroundSpec struct {
	Type   string      `json:"type"`
	Bottom *[3]float64 `json:"bottom,omitempty"`
	Top    *[3]float64 `json:"top,omitempty"`
	Color  *[3]float64 `json:"color,omitempty"`
}

// MaterialSpec describes one named material
type MaterialSpec struct {
	Type            string     `json:"type"`
	Albedo          [3]float64 `json:"albedo,omitempty"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractiveIndex float64    `json:"refractive_index,omitempty"`
}

// SphereSpec places a sphere with a material referenced by name
type SphereSpec struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

// LoadFile reads a YAML or JSON scene description from path
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, xerrors.Errorf("reading scene file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, xerrors.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// Parse builds a scene from a YAML or JSON document. Unknown fields,
// unknown material types or names, and invalid geometry or camera settings
// are rejected.
func Parse(data []byte) (*Scene, error) {
	var spec FileSpec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, xerrors.Errorf("parsing scene: %v: %w", err, core.ErrInvalidConfiguration)
	}
	return spec.Build()
}

// Build turns the description into a validated scene
func (spec FileSpec) Build() (*Scene, error) {
	s := newScene(spec.Name, spec.Camera.apply(renderer.DefaultCameraConfig()), spec.Sampling.apply(core.DefaultSamplingConfig()))

	background, err := spec.Background.build()
	if err != nil {
		return nil, err
	}
	if background != nil {
		s.Background = background
	}

	materials := make(map[string]material.Material, len(spec.Materials))
	names := make([]string, 0, len(spec.Materials))
	for name := range spec.Materials {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		mat, err := spec.Materials[name].build()
		if err != nil {
			return nil, xerrors.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for idx, sphere := range spec.Spheres {
		mat, ok := materials[sphere.Material]
		if !ok {
			return nil, xerrors.Errorf("sphere %d references unknown material %q: %w", idx, sphere.Material, core.ErrInvalidConfiguration)
		}
		s.AddSphere(vec3(sphere.Center), sphere.Radius, mat)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (c CameraSpec) apply(config renderer.CameraConfig) renderer.CameraConfig {
	if c.AspectRatio != nil {
		config.AspectRatio = *c.AspectRatio
	}
	if c.ImageWidth != nil {
		config.ImageWidth = *c.ImageWidth
	}
	if c.VFov != nil {
		config.VFov = *c.VFov
	}
	if c.LookFrom != nil {
		config.LookFrom = vec3(*c.LookFrom)
	}
	if c.LookAt != nil {
		config.LookAt = vec3(*c.LookAt)
	}
	if c.Up != nil {
		config.Up = vec3(*c.Up)
	}
	if c.DefocusAngle != nil {
		config.DefocusAngle = *c.DefocusAngle
	}
	if c.FocusDistance != nil {
		config.FocusDistance = *c.FocusDistance
	}
	return config
}

func (s SamplingSpec) apply(config core.SamplingConfig) core.SamplingConfig {
	if s.SamplesPerPixel != nil {
		config.SamplesPerPixel = *s.SamplesPerPixel
	}
	if s.MaxDepth != nil {
		config.MaxDepth = *s.MaxDepth
	}
	if s.Seed != nil {
		config.Seed = *s.Seed
	}
	return config
}

func (b *BackgroundSpec) build() (integrator.Background, error) {
	if b == nil {
		return nil, nil
	}
	switch b.Type {
	case "", "gradient":
		sky := integrator.NewSkyBackground()
		if b.Bottom != nil {
			sky.Bottom = vec3(*b.Bottom)
		}
		if b.Top != nil {
			sky.Top = vec3(*b.Top)
		}
		return sky, nil
	case "solid":
		if b.Color == nil {
			return nil, xerrors.Errorf("solid background needs a color: %w", core.ErrInvalidConfiguration)
		}
		return integrator.NewSolidBackground(vec3(*b.Color)), nil
	default:
		return nil, xerrors.Errorf("unknown background type %q: %w", b.Type, core.ErrInvalidConfiguration)
	}
}

func (m MaterialSpec) build() (material.Material, error) {
	var mat material.Material
	switch m.Type {
	case "lambertian":
		mat = material.NewLambertian(vec3(m.Albedo))
	case "metal":
		mat = material.NewMetal(vec3(m.Albedo), m.Fuzz)
	case "dielectric":
		mat = material.NewDielectric(m.RefractiveIndex)
	default:
		return nil, xerrors.Errorf("unknown material type %q: %w", m.Type, core.ErrInvalidConfiguration)
	}
	if err := material.Validate(mat); err != nil {
		return nil, err
	}
	return mat, nil
}

func vec3(v [3]float64) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
