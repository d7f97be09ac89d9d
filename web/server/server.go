package server

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/log"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// Request limits
const (
	maxImageWidth      = 2000
	maxSamplesPerPixel = 10000
	maxRayDepth        = 1000
)

const shutdownTimeout = 5 * time.Second

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	logger    log.Logger
}

// NewServer creates a new web server. Scene files are discovered in
// scenesDir; an empty scenesDir serves the built-in scenes only.
func NewServer(port int, scenesDir string) *Server {
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		logger:    log.New("server"),
	}
}

// RenderRequest represents a render request from the client. Zero values
// (and -1 for MaxDepth) keep the scene's own settings.
type RenderRequest struct {
	Scene    string `json:"scene"`    // Built-in scene ID or "file:<name>"
	Width    int    `json:"width"`    // Image width
	Samples  int    `json:"samples"`  // Samples per pixel
	MaxDepth int    `json:"maxDepth"` // Maximum bounce depth
	Seed     int64  `json:"seed"`     // Render seed
	Format   string `json:"format"`   // "png" or "ppm" for /api/image
}

// Handler returns the HTTP routes served by s
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/image", s.handleImage)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Noticef("Starting web server on http://localhost%s", httpServer.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return xerrors.Errorf("serving: %w", err)
	case <-ctx.Done():
		s.logger.Notice("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return xerrors.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, err := s.createScene(&RenderRequest{Scene: sceneName, MaxDepth: -1})
	if err != nil {
		s.writeError(w, err)
		return
	}

	camera := sceneObj.CameraConfig
	sampling := sceneObj.SamplingConfig
	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           camera.ImageWidth,
			"aspectRatio":     camera.AspectRatio,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
			"seed":            sampling.Seed,
			"primitiveCount":  sceneObj.GetPrimitiveCount(),
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 1, "max": maxImageWidth},
			"samples":  map[string]int{"min": 1, "max": maxSamplesPerPixel},
			"maxDepth": map[string]int{"min": 0, "max": maxRayDepth},
		},
	}
	s.writeJSON(w, http.StatusOK, response)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{
		Scene:  query.Get("scene"),
		Format: strings.ToLower(query.Get("format")),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}
	if req.Format == "" {
		req.Format = "png"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 1, maxImageWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamplesPerPixel); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", -1, 0, maxRayDepth); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 0, math.MinInt32, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, minVal, maxVal int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, xerrors.Errorf("invalid %s %q: %w", key, value, core.ErrInvalidConfiguration)
		}
		if parsed < minVal || parsed > maxVal {
			return 0, xerrors.Errorf("%s must be between %d and %d, got %d: %w", key, minVal, maxVal, parsed, core.ErrInvalidConfiguration)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds the requested scene with the request's overrides
// applied. Only built-in IDs and files discovered in the scenes directory
// can be named, never arbitrary paths.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	overrides := renderer.CameraConfig{ImageWidth: req.Width}

	var (
		sceneObj *scene.Scene
		err      error
	)
	if strings.HasPrefix(req.Scene, "file:") {
		path, findErr := s.sceneFilePath(req.Scene)
		if findErr != nil {
			return nil, findErr
		}
		sceneObj, err = scene.Lookup(path, overrides)
	} else if isBuiltinScene(req.Scene) {
		sceneObj, err = scene.Lookup(req.Scene, overrides)
	} else {
		return nil, xerrors.Errorf("%q: %w", req.Scene, scene.ErrUnknownScene)
	}
	if err != nil {
		return nil, err
	}

	if req.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = req.Samples
	}
	if req.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = req.MaxDepth
	}
	if req.Seed != 0 {
		sceneObj.SamplingConfig.Seed = req.Seed
	}
	return sceneObj, nil
}

func isBuiltinScene(name string) bool {
	for _, id := range scene.Names() {
		if id == name {
			return true
		}
	}
	return false
}

// sceneFilePath resolves a "file:<name>" ID against the scenes directory
func (s *Server) sceneFilePath(id string) (string, error) {
	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		return "", err
	}
	for _, info := range files {
		if info.ID == id {
			return info.FilePath, nil
		}
	}
	return "", xerrors.Errorf("%q: %w", id, scene.ErrUnknownScene)
}

// writeJSON writes v as a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warningf("Error writing response: %v", err)
	}
}

// writeError maps err to a status code and writes it as JSON
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.logger.Errorf("Request failed: %v", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusForError(err error) int {
	switch {
	case xerrors.Is(err, scene.ErrUnknownScene):
		return http.StatusNotFound
	case xerrors.Is(err, core.ErrInvalidConfiguration), xerrors.Is(err, renderer.ErrNilScene):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
