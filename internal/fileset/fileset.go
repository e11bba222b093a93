// Package fileset resolves glob patterns to files and runs one coordinator
// search per file with bounded parallelism. Each file gets its own buffer,
// shift table, and workers; files only share the immutable pattern.
package fileset

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/seekfast/bmgrep/internal/bmsearch"
	"github.com/seekfast/bmgrep/internal/debug"
	"github.com/seekfast/bmgrep/internal/source"
)

// Result is the per-file outcome of a multi-file search. Err records a
// failure opening or searching that one file; it does not abort the rest
// of the set.
type Result struct {
	Path    string
	Outcome bmsearch.Outcome
	Err     error
}

// Resolve expands doublestar glob patterns relative to root into a sorted,
// de-duplicated list of regular files, dropping any path that matches one
// of the exclude patterns.
func Resolve(root string, patterns, exclude []string) ([]string, error) {
	fsys := os.DirFS(root)

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, err
		}
		for _, rel := range matches {
			if seen[rel] || excluded(rel, exclude) {
				continue
			}
			info, err := fs.Stat(fsys, rel)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[rel] = true
			files = append(files, filepath.Join(root, filepath.FromSlash(rel)))
		}
	}

	sort.Strings(files)
	debug.LogSearch("resolved %d files from %d patterns\n", len(files), len(patterns))
	return files, nil
}

func excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// SearchAll searches every file for pattern, at most limit files at a time.
// Results come back in the same order as paths, one slot per file; slots
// are disjoint so the workers need no locking. Only context cancellation
// stops the set early.
func SearchAll(ctx context.Context, searcher *bmsearch.Searcher, paths []string, pattern []byte, limit int) []Result {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, path := range paths {
		i, path := i, path
		results[i].Path = path
		g.Go(func() error {
			results[i] = searchOne(ctx, searcher, path, pattern)
			// Per-file failures stay in the result slot; returning them
			// would cancel the sibling searches.
			return ctx.Err()
		})
	}

	// The only error an arm returns is ctx.Err(), which the per-file
	// results already reflect.
	_ = g.Wait()
	return results
}

func searchOne(ctx context.Context, searcher *bmsearch.Searcher, path string, pattern []byte) Result {
	res := Result{Path: path}

	src, err := source.Open(path)
	if err != nil {
		res.Err = err
		return res
	}
	defer src.Close()

	res.Outcome, res.Err = searcher.Search(ctx, src.Bytes(), pattern)
	return res
}
