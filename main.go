package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mrlokans/elibrary/internal/config"
	"github.com/mrlokans/elibrary/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	serve := func(*cli.Context) error {
		return entrypoint.Run(config.NewConfig(), Version)
	}

	app := &cli.App{
		Name:    "elibrary",
		Usage:   "e-library backend: accounts, catalogue, bookmarks, notes and preferences",
		Version: fmt.Sprintf("%s (%s)", Version, Commit),
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: serve,
			},
			{
				Name:      "seed-books",
				Usage:     "import a YAML or JSON book catalogue into the database",
				ArgsUsage: " ",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "path to the catalogue file",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "parse and validate without writing",
					},
				},
				Action: func(c *cli.Context) error {
					return entrypoint.SeedBooks(config.NewConfig(), c.String("file"), c.Bool("dry-run"))
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
