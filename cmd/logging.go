package cmd

import (
	"github.com/urfave/cli"

	"github.com/df07/go-raytracer/pkg/log"
)

var logger = log.New("raytracer")

// setupLogging applies -v/-vv, then an explicit --log-level on top
func setupLogging(ctx *cli.Context) error {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.VerbosityLevel(verbosity))

	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}
	return nil
}
