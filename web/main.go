package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/log"
	"github.com/df07/go-raytracer/pkg/scene"
	"github.com/df07/go-raytracer/web/server"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "raytracer-web"
	app.Usage = "serve the raytracer render API"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "dir",
			Usage: "scene file directory (defaults to ./scenes or ../scenes)",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		dir := ctx.String("dir")
		if dir == "" {
			dir = scene.FindScenesDir()
		}

		serveCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Noticef("Raytracer web server, visit http://localhost:%d/api/scenes", ctx.Int("port"))
		return server.NewServer(ctx.Int("port"), dir).Start(serveCtx)
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
