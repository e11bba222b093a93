package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/seekfast/bmgrep/internal/bmsearch"
	"github.com/seekfast/bmgrep/internal/fileset"
	"github.com/seekfast/bmgrep/internal/report"
)

func scanCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return errors.New("usage: bmgrep scan --glob '<pattern>' <search-pattern>")
	}
	pattern := []byte(c.Args().First())

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	globs := c.StringSlice("glob")
	if len(globs) == 0 {
		globs = []string{"**/*"}
	}
	exclude := append(cfg.Scan.Exclude, c.StringSlice("exclude")...)

	files, err := fileset.Resolve(c.String("root"), globs, exclude)
	if err != nil {
		return cli.Exit(fmt.Sprintf("bad glob pattern: %v", err), 2)
	}
	if len(files) == 0 {
		return cli.Exit("no files matched", 1)
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	limit := cfg.EffectiveParallelFiles()
	if c.IsSet("parallel") && c.Int("parallel") > 0 {
		limit = c.Int("parallel")
	}

	reporter := newReporter(c)
	results := fileset.SearchAll(c.Context, searcher, files, pattern, limit)

	anyFound := false
	for _, res := range results {
		if res.Err != nil {
			// Empty or unreadable files are skipped, not fatal to the set.
			if errors.Is(res.Err, bmsearch.ErrEmptyInput) {
				continue
			}
			printSearchError(res.Err)
			continue
		}
		if !res.Outcome.Found {
			continue
		}
		anyFound = true
		if err := reporter.Report(report.Result{
			Path:    res.Path,
			Pattern: string(pattern),
			Found:   true,
			Offset:  res.Outcome.Offset,
			Elapsed: res.Outcome.Elapsed,
			Workers: res.Outcome.Workers,
		}); err != nil {
			return cli.Exit(err.Error(), 2)
		}
	}

	if !anyFound {
		fmt.Fprintf(os.Stderr, "%q not found in %d files\n", pattern, len(files))
		return cli.Exit("", 1)
	}
	return nil
}
