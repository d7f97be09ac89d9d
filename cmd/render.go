package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli"
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/integrator"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// RenderFrame renders a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	sceneObj, err := loadScene(ctx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	encoder, err := selectEncoder(ctx.String("format"), out)
	if err != nil {
		return err
	}

	opts := []renderer.Option{
		renderer.WithLogger(logger),
		renderer.WithProgress(renderer.NewTerminalProgress(os.Stderr, logger)),
	}
	switch name := ctx.String("integrator"); name {
	case "path":
	case "normals":
		opts = append(opts, renderer.WithIntegrator(integrator.NewNormalIntegrator(sceneObj.GetBackground())))
	default:
		return xerrors.Errorf("unknown integrator %q: %w", name, core.ErrInvalidConfiguration)
	}

	raytracer, err := renderer.NewRaytracer(sceneObj, opts...)
	if err != nil {
		return err
	}

	// Ctrl+C stops the workers between pixels
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Noticef("rendering scene %q (%d primitives)", sceneObj.Name, sceneObj.GetPrimitiveCount())
	frame, stats, err := raytracer.Render(renderCtx)
	if err != nil {
		return err
	}

	if err := writeFrame(out, encoder, frame); err != nil {
		return err
	}

	logger.Noticef("rendered %s samples in %s (%s)",
		humanize.Comma(int64(stats.TotalSamples)), stats.RenderTime,
		humanize.SIWithDigits(stats.SamplesPerSecond(), 2, "samples/s"))
	if ctx.Bool("stats") {
		displayFrameStats(stats)
	}
	return nil
}

// loadScene resolves the scene argument and applies the camera and sampling flags
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	name := ctx.String("scene")
	if ctx.NArg() > 1 {
		return nil, xerrors.New("expected at most one scene argument")
	}
	if ctx.NArg() == 1 {
		name = ctx.Args().First()
	}

	sceneObj, err := scene.Lookup(name)
	if err != nil {
		return nil, err
	}
	applyCameraFlags(ctx, &sceneObj.CameraConfig)
	applySamplingFlags(ctx, &sceneObj.SamplingConfig)
	return sceneObj, nil
}

// applyCameraFlags overrides only the camera settings given on the command
// line, so --defocus-angle 0 turns a lens camera into a pinhole
func applyCameraFlags(ctx *cli.Context, config *renderer.CameraConfig) {
	if ctx.IsSet("width") {
		config.ImageWidth = ctx.Int("width")
	}
	if ctx.IsSet("aspect") {
		config.AspectRatio = ctx.Float64("aspect")
	}
	if ctx.IsSet("vfov") {
		config.VFov = ctx.Float64("vfov")
	}
	if ctx.IsSet("defocus-angle") {
		config.DefocusAngle = ctx.Float64("defocus-angle")
	}
	if ctx.IsSet("focus-dist") {
		config.FocusDistance = ctx.Float64("focus-dist")
	}
}

// applySamplingFlags overrides only the sampling settings given on the command line
func applySamplingFlags(ctx *cli.Context, config *core.SamplingConfig) {
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}
	if ctx.IsSet("workers") {
		config.NumWorkers = ctx.Int("workers")
	}
}

// selectEncoder picks the image format from the flag, then from the output
// file extension; stdout defaults to PPM
func selectEncoder(format, out string) (imageio.Encoder, error) {
	if format != "" {
		return imageio.WriterForFormat(format)
	}
	if out == "-" {
		return imageio.PPMWriter{}, nil
	}
	return imageio.WriterForPath(out)
}

func writeFrame(out string, encoder imageio.Encoder, frame *renderer.Frame) error {
	if out == "-" {
		return encodeTo(os.Stdout, encoder, frame)
	}

	f, err := os.Create(out)
	if err != nil {
		return xerrors.Errorf("creating output file: %w", err)
	}
	if err := encodeTo(f, encoder, frame); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("closing output file: %w", err)
	}
	logger.Noticef("wrote %s", out)
	return nil
}

func encodeTo(w io.Writer, encoder imageio.Encoder, frame *renderer.Frame) error {
	if err := encoder.Encode(w, frame); err != nil {
		return xerrors.Errorf("writing image: %w", err)
	}
	return nil
}

func displayFrameStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	stats.WriteTable(&buf)
	logger.Noticef("frame statistics\n%s", buf.String())
}
