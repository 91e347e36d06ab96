package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/sdkgen/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	flags := &commands.Flags{}
	ctrl := commands.NewController(flags, log.Logger)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	generationFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "registry",
			Usage:       "registry YAML file (overrides sdkgen.json)",
			Destination: &flags.Registry,
		},
		&cli.StringFlag{
			Name:        "templates",
			Usage:       "folder holding blank_sdk.go.tmpl and blank_sdk2.go.tmpl; empty uses the built-in templates",
			Destination: &flags.Templates,
		},
		&cli.StringFlag{
			Name:        "language",
			Usage:       "output language",
			Destination: &flags.Language,
		},
		&cli.StringFlag{
			Name:        "sdk-root",
			Usage:       "destination folder for the per-route SDK files",
			Destination: &flags.SDKRoot,
		},
		&cli.StringFlag{
			Name:        "client-root",
			Usage:       "destination folder for the per-route options files",
			Destination: &flags.ClientRoot,
		},
		&cli.BoolFlag{
			Name:        "format",
			Usage:       "run generated Go through gofmt before comparing",
			Destination: &flags.Format,
		},
		&cli.BoolFlag{
			Name:        "create-dirs",
			Usage:       "create missing destination folders",
			Destination: &flags.CreateDirs,
		},
	}

	app := &cli.Command{
		Name:    "sdkgen",
		Usage:   "Generate Go SDK option structs and enums from an option registry",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SDKGEN_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Usage:       "path to sdkgen.json (default: search the current directory and its parents)",
				Sources:     cli.EnvVars("SDKGEN_CONFIG"),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Write the SDK and options files for every relevant route",
				Flags: generationFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "check",
				Usage: "Validate every declared option type without writing files",
				Flags: generationFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Check(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Generate, then regenerate whenever the registry or templates change",
				Flags: generationFlags,
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:      "init-config",
				Usage:     "Write a starter sdkgen.json and the default templates",
				ArgsUsage: "[dir]",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:    "interactive",
						Aliases: []string{"i"},
						Usage:   "prompt for each setting",
					},
				}, generationFlags...),
				Action: func(ctx context.Context, c *cli.Command) error {
					dir := "."
					if c.Args().Len() > 0 {
						dir = c.Args().First()
					}
					return ctrl.InitConfig(ctx, dir, c.Bool("interactive"))
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run sdkgen")
	}
}
