// objtool is a CLI utility for inspecting Wavefront OBJ and MTL files.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/mallory-scotton/wavefront/internal/config"
	"github.com/mallory-scotton/wavefront/internal/logger"
)

var cfg *config.Config

func main() {
	app := cli.NewApp()
	app.Name = "objtool"
	app.Usage = "inspect Wavefront OBJ geometry and MTL material files"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "path to config file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		cli.BoolFlag{
			Name:  "no-triangulate",
			Usage: "keep polygons as-is instead of splitting into triangle fans",
		},
		cli.StringFlag{
			Name:  "mtl-dir",
			Usage: "base directory for material file lookups",
		},
	}
	app.Before = setup
	app.After = func(*cli.Context) error {
		logger.Sync()
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "info",
			Usage:     "show summary statistics for an OBJ file",
			ArgsUsage: "model.obj",
			Action:    cmdInfo,
		},
		{
			Name:      "shapes",
			Usage:     "list shapes with their face and index counts",
			ArgsUsage: "model.obj",
			Action:    cmdShapes,
		},
		{
			Name:      "materials",
			Usage:     "list materials resolved through mtllib directives",
			ArgsUsage: "model.obj",
			Action:    cmdMaterials,
		},
		{
			Name:      "validate",
			Usage:     "check that face indices stay within attribute bounds",
			ArgsUsage: "model.obj",
			Action:    cmdValidate,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads configuration and applies flag overrides before any command runs.
func setup(ctx *cli.Context) error {
	var err error
	cfg, err = config.Load(ctx.GlobalString("config"))
	if err != nil {
		return err
	}

	if ctx.GlobalBool("debug") {
		cfg.Logging.Level = "debug"
	}
	if ctx.GlobalBool("no-triangulate") {
		cfg.Loader.Triangulate = false
	}
	if dir := ctx.GlobalString("mtl-dir"); dir != "" {
		cfg.Loader.MaterialDir = dir
	}

	return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
}
