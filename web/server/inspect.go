package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = toArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

// InspectResult contains the first object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	HitRecord *material.HitRecord
	Object    geometry.Hittable // The object that was hit, nil if it could not be identified
}

// inspectPixel casts the ray through the center of pixel (i, j), without
// jitter or defocus, and reports the first object it hits
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, i, j int) InspectResult {
	if sceneObj.World == nil {
		return InspectResult{}
	}

	center := camera.Center()
	ray := core.NewRay(center, camera.PixelCenter(i, j).Subtract(center))
	rayT := core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1))

	hit, isHit := sceneObj.World.Hit(ray, rayT)
	if !isHit {
		return InspectResult{}
	}

	// The list does not say which object produced the hit, so find the one
	// that reproduces it
	for _, object := range sceneObj.World.Objects {
		if objectHit, ok := object.Hit(ray, rayT); ok && objectHit.T == hit.T {
			return InspectResult{Hit: true, HitRecord: hit, Object: object}
		}
	}

	return InspectResult{Hit: true, HitRecord: hit}
}

// extractGeometryInfo extracts detailed geometry information
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = toArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	default:
		return "unknown", properties
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	query := r.URL.Query()
	pixelX, err := parseIntParam(query, "x", -1, 0, math.MaxInt32)
	if err != nil {
		s.writeError(w, err)
		return
	}
	pixelY, err := parseIntParam(query, "y", -1, 0, math.MaxInt32)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if pixelX < 0 || pixelY < 0 {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "x and y are required"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	camera, err := renderer.NewCamera(sceneObj.CameraConfig)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if pixelX >= camera.ImageWidth() || pixelY >= camera.ImageHeight() {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("pixel (%d, %d) outside %dx%d image", pixelX, pixelY, camera.ImageWidth(), camera.ImageHeight()),
		})
		return
	}

	result := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if !result.Hit {
		s.writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        toArray(result.HitRecord.Point),
		Normal:       toArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T,
		FrontFace:    result.HitRecord.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}
	s.writeJSON(w, http.StatusOK, response)
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a reflectance as a CSS color using the output quantization
func hexColor(c core.Vec3) string {
	r, g, b := core.ColorToBytes(c)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
