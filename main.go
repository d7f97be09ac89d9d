package main

import (
	"os"

	"github.com/df07/go-raytracer/cmd"
	"github.com/df07/go-raytracer/pkg/log"
)

func main() {
	if err := cmd.NewApp().Run(os.Args); err != nil {
		log.New("raytracer").Errorf("%v", err)
		os.Exit(1)
	}
}
