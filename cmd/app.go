package cmd

import (
	"strings"

	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/imageio"
	"github.com/df07/go-raytracer/pkg/scene"
)

// NewApp assembles the command line interface
func NewApp() *cli.App {
	// -v is taken by verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render sphere scenes using Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "set the log level explicitly (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render a built-in scene or a YAML/JSON scene file. The image is written as a
plain PPM (P3) stream to stdout unless --out names a file; the file extension
picks the format when --format is not given.

Camera and sampling flags only apply when given, so --depth 0 renders a black
frame and --defocus-angle 0 turns off the lens blur.`,
			ArgsUsage: "[scene or scene file]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene (" + strings.Join(scene.Names(), ", ") + ") or scene file path",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width in pixels",
				},
				cli.Float64Flag{
					Name:  "aspect",
					Usage: "aspect ratio (width / height)",
				},
				cli.Float64Flag{
					Name:  "vfov",
					Usage: "vertical field of view in degrees",
				},
				cli.Float64Flag{
					Name:  "defocus-angle",
					Usage: "lens cone angle in degrees",
				},
				cli.Float64Flag{
					Name:  "focus-dist",
					Usage: "distance to the plane of perfect focus",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Usage: "maximum ray bounces",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "number of render workers (0 uses every CPU)",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: "path",
					Usage: "light transport: path or normals",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "-",
					Usage: "output file, - for stdout",
				},
				cli.StringFlag{
					Name:  "format, f",
					Usage: "image format (" + strings.Join(imageio.Formats(), ", ") + ")",
				},
				cli.BoolFlag{
					Name:  "stats",
					Usage: "print per-worker render statistics",
				},
			},
			Action: RenderFrame,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Usage: "scene file directory (defaults to ./scenes or ../scenes)",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the render API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
				cli.StringFlag{
					Name:  "dir",
					Usage: "scene file directory (defaults to ./scenes or ../scenes)",
				},
			},
			Action: Serve,
		},
	}
	return app
}
