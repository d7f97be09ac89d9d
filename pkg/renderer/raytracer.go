package renderer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/integrator"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Hittable
	GetCameraConfig() CameraConfig
	GetSamplingConfig() core.SamplingConfig
	GetBackground() integrator.Background
}

// Option customizes a Raytracer
type Option func(*Raytracer)

// WithLogger routes render diagnostics to logger
func WithLogger(logger core.Logger) Option {
	return func(rt *Raytracer) {
		rt.logger = logger
	}
}

// WithProgress reports completed scanlines to progress
func WithProgress(progress ProgressReporter) Option {
	return func(rt *Raytracer) {
		rt.progress = progress
	}
}

// WithIntegrator replaces the default path tracing integrator
func WithIntegrator(integ integrator.Integrator) Option {
	return func(rt *Raytracer) {
		rt.integrator = integ
	}
}

// Raytracer renders a scene into a frame. The scene is read-only during
// rendering and may be shared by concurrent renders.
type Raytracer struct {
	world      geometry.Hittable
	camera     *Camera
	config     core.SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
	progress   ProgressReporter
}

// NewRaytracer validates the scene and prepares its camera and integrator
func NewRaytracer(scene Scene, opts ...Option) (*Raytracer, error) {
	if scene == nil {
		return nil, ErrNilScene
	}
	world := scene.GetWorld()
	if world == nil {
		return nil, xerrors.Errorf("scene has no world: %w", ErrNilScene)
	}

	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, xerrors.Errorf("sampling: %w", err)
	}

	if v, ok := world.(geometry.Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, xerrors.Errorf("world: %w", err)
		}
	}

	camera, err := NewCamera(scene.GetCameraConfig())
	if err != nil {
		return nil, err
	}

	rt := &Raytracer{
		world:    world,
		camera:   camera,
		config:   config,
		logger:   core.NopLogger{},
		progress: NopProgress{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.integrator == nil {
		rt.integrator = integrator.NewPathTracingIntegrator(config, scene.GetBackground())
	}

	return rt, nil
}

// Camera returns the camera built from the scene
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// SamplingConfig returns the validated sampling configuration
func (rt *Raytracer) SamplingConfig() core.SamplingConfig {
	return rt.config
}

// RenderPixel averages SamplesPerPixel radiance estimates for pixel (i, j)
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, sampler))
	}
	return ps.GetColor()
}

// Render produces the full frame. Scanlines are distributed across the
// worker pool; each scanline draws from its own random stream, so the result
// does not depend on the number of workers. Cancelling ctx stops the render
// between pixels and returns ErrInterrupted.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	frame := NewFrame(width, height)
	pool := NewWorkerPool(rt.config.NumWorkers)

	stats := RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Workers:         make([]WorkerStats, pool.GetNumWorkers()),
	}
	for id := range stats.Workers {
		stats.Workers[id].ID = id
	}

	rt.logger.Infof("Rendering %dx%d at %d samples per pixel, depth %d, on %d workers",
		width, height, rt.config.SamplesPerPixel, rt.config.MaxDepth, pool.GetNumWorkers())

	var (
		remaining = int64(height)
		doneOnce  sync.Once
	)
	startTime := time.Now()

	err := pool.Run(ctx, height, func(ctx context.Context, workerID, row int) error {
		rowStart := time.Now()
		if err := rt.renderScanline(ctx, frame, row); err != nil {
			return err
		}

		// Each worker only touches its own stats slot
		worker := &stats.Workers[workerID]
		worker.Scanlines++
		worker.Samples += width * rt.config.SamplesPerPixel
		worker.BusyTime += time.Since(rowStart)

		left := atomic.AddInt64(&remaining, -1)
		rt.progress.Update(int(left), height)
		if left == 0 {
			doneOnce.Do(rt.progress.Done)
		}
		return nil
	})

	stats.RenderTime = time.Since(startTime)
	for _, worker := range stats.Workers {
		stats.TotalSamples += worker.Samples
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			rt.logger.Warningf("Render cancelled with %d scanlines remaining", atomic.LoadInt64(&remaining))
			return nil, stats, xerrors.Errorf("%v: %w", ctxErr, ErrInterrupted)
		}
		return nil, stats, err
	}

	rt.logger.Infof("Rendered %d samples in %v", stats.TotalSamples, stats.RenderTime)
	return frame, stats, nil
}

// renderScanline fills row j of the frame, checking for cancellation between pixels
func (rt *Raytracer) renderScanline(ctx context.Context, frame *Frame, j int) error {
	sampler := core.NewSeededSampler(scanlineSeed(rt.config.Seed, j))
	for i := 0; i < frame.Width; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		frame.Set(i, j, rt.RenderPixel(i, j, sampler))
	}
	return nil
}

// scanlineSeed derives the seed of row j's random stream from the render seed
func scanlineSeed(seed int64, j int) int64 {
	return int64(uint64(seed) ^ (uint64(j)+1)*0x9E3779B97F4A7C15)
}
