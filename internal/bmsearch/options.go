package bmsearch

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when the buffer to search is empty.
	ErrEmptyInput = errors.New("empty input")

	// ErrEmptyPattern is returned when the search pattern is empty.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrInvalidWorkerCount is returned when the worker cap is not positive.
	ErrInvalidWorkerCount = errors.New("max workers must be greater than 0")
)

// DefaultMaxWorkers is the default cap on concurrent chunk scanners.
const DefaultMaxWorkers = 16

// Option is a function that configures a Searcher.
type Option func(*Searcher) error

// WithMaxWorkers sets the maximum number of concurrent chunk scanners.
// The effective worker count for a given search may be lower: it drops to 1
// whenever an even split would produce chunks smaller than the pattern,
// since such a chunk could never contain a match on its own.
func WithMaxWorkers(n int) Option {
	return func(s *Searcher) error {
		if n <= 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, n)
		}
		s.maxWorkers = n
		return nil
	}
}

// WithBoundaryOverlap extends every chunk except the last by len(pattern)-1
// bytes so that matches straddling a chunk boundary are found. Off by
// default: the non-overlapping split scans each byte exactly once and
// accepts that boundary-straddling matches are missed.
func WithBoundaryOverlap() Option {
	return func(s *Searcher) error {
		s.overlap = true
		return nil
	}
}
