package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/seekfast/bmgrep/internal/bmsearch"
	"github.com/seekfast/bmgrep/internal/config"
	bmerrors "github.com/seekfast/bmgrep/internal/errors"
	"github.com/seekfast/bmgrep/internal/report"
	"github.com/seekfast/bmgrep/internal/source"
	"github.com/seekfast/bmgrep/internal/watch"
)

func searchCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("usage: bmgrep search <file> <pattern>")
	}
	path := c.Args().Get(0)
	pattern := []byte(c.Args().Get(1))

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	searcher, err := newSearcher(cfg)
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}
	reporter := newReporter(c)

	found, err := runSearch(c.Context, searcher, reporter, path, pattern, c.Bool("verbose"))
	if err != nil {
		return reportSearchError(err)
	}

	if c.Bool("watch") {
		return watchLoop(c, cfg, searcher, reporter, path, pattern)
	}

	if !found {
		// grep convention: 1 means "ran fine, no match".
		return cli.Exit("", 1)
	}
	return nil
}

// runSearch maps one file and searches it. The mapping is released before
// returning on every path.
func runSearch(ctx context.Context, searcher *bmsearch.Searcher, reporter report.Reporter, path string, pattern []byte, verbose bool) (bool, error) {
	src, err := source.Open(path)
	if err != nil {
		return false, err
	}
	defer src.Close()

	out, err := searcher.Search(ctx, src.Bytes(), pattern)
	if err != nil {
		return false, err
	}

	res := report.Result{
		Pattern: string(pattern),
		Found:   out.Found,
		Offset:  out.Offset,
		Elapsed: out.Elapsed,
		Workers: out.Workers,
	}
	if verbose {
		res.Fingerprint = src.Fingerprint()
	}
	if err := reporter.Report(res); err != nil {
		return false, err
	}
	return out.Found, nil
}

// watchLoop blocks until interrupted, re-running the search after each
// debounced change to the file.
func watchLoop(c *cli.Context, cfg *config.Config, searcher *bmsearch.Searcher, reporter report.Reporter, path string, pattern []byte) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(path, time.Duration(cfg.Watch.DebounceMs)*time.Millisecond, func() {
		if _, err := runSearch(ctx, searcher, reporter, path, pattern, c.Bool("verbose")); err != nil {
			printSearchError(err)
		}
	})
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	if err := w.Start(ctx); err != nil {
		return cli.Exit(err.Error(), 2)
	}
	defer w.Stop()

	fmt.Fprintf(os.Stderr, "watching %s, press Ctrl-C to stop\n", path)
	<-ctx.Done()
	return nil
}

// reportSearchError maps pipeline failures to user-facing messages and a
// non-zero exit code. Validation failures and unreadable sources both abort
// before any scanning happened.
func reportSearchError(err error) error {
	var ie *bmerrors.InputError
	if errors.As(err, &ie) {
		return cli.Exit(ie.UserMessage(), 2)
	}
	return cli.Exit(err.Error(), 2)
}

func printSearchError(err error) {
	var ie *bmerrors.InputError
	if errors.As(err, &ie) {
		fmt.Fprintln(os.Stderr, ie.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
}
