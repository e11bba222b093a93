package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/seekfast/bmgrep/internal/bmsearch"
	"github.com/seekfast/bmgrep/internal/config"
	"github.com/seekfast/bmgrep/internal/report"
)

// newSearcher builds the coordinator from the effective configuration.
func newSearcher(cfg *config.Config) (*bmsearch.Searcher, error) {
	opts := []bmsearch.Option{bmsearch.WithMaxWorkers(cfg.Search.MaxWorkers)}
	if cfg.Search.Overlap {
		opts = append(opts, bmsearch.WithBoundaryOverlap())
	}
	return bmsearch.NewSearcher(opts...)
}

// newReporter picks the output format from the global flags.
func newReporter(c *cli.Context) report.Reporter {
	if c.Bool("json") {
		return &report.JSON{W: os.Stdout}
	}
	return &report.Console{W: os.Stdout, Verbose: c.Bool("verbose")}
}
