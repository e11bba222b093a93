package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/seekfast/bmgrep/internal/config"
	"github.com/seekfast/bmgrep/internal/debug"
)

var version = "0.1.0"

// loadConfigWithOverrides loads configuration and applies CLI flag overrides
func loadConfigWithOverrides(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", c.String("config"), err)
	}

	// Apply CLI flag overrides
	if c.IsSet("workers") {
		cfg.Search.MaxWorkers = c.Int("workers")
	}
	if c.Bool("overlap") {
		cfg.Search.Overlap = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func main() {
	app := &cli.App{
		Name:                   "bmgrep",
		Usage:                  "Concurrent Boyer-Moore substring search over memory-mapped files",
		Version:                version,
		UseShortOptionHandling: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Config file path",
				Value:   config.DefaultConfigFile,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "Max concurrent chunk scanners per search",
			},
			&cli.BoolFlag{
				Name:  "overlap",
				Usage: "Overlap chunks so matches spanning a chunk boundary are found",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show debug information",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Output as JSON",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				os.Setenv("DEBUG", "1")
				debug.SetDebugOutput(os.Stderr)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Aliases:   []string{"s"},
				Usage:     "Search one file for a pattern",
				ArgsUsage: "<file> <pattern>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "watch",
						Usage: "Keep running and re-search whenever the file changes",
					},
				},
				Action: searchCommand,
			},
			{
				Name:      "scan",
				Usage:     "Search every file matching glob patterns for a pattern",
				ArgsUsage: "<pattern>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "root",
						Aliases: []string{"r"},
						Usage:   "Directory the glob patterns are resolved against",
						Value:   ".",
					},
					&cli.StringSliceFlag{
						Name:    "glob",
						Aliases: []string{"g"},
						Usage:   "Include files matching glob patterns (e.g., --glob '**/*.log')",
					},
					&cli.StringSliceFlag{
						Name:    "exclude",
						Aliases: []string{"e"},
						Usage:   "Exclude files matching glob patterns",
					},
					&cli.IntFlag{
						Name:    "parallel",
						Aliases: []string{"p"},
						Usage:   "Max files searched concurrently (0=auto)",
					},
				},
				Action: scanCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(2)
	}
}
