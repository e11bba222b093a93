package bmsearch

import (
	"context"
	"sync"
	"time"

	"github.com/seekfast/bmgrep/internal/debug"
)

// Outcome is the final verdict of a search.
type Outcome struct {
	// Found reports whether the pattern occurs in the buffer (subject to
	// the chunk boundary limitation described in the package docs).
	Found bool

	// Offset is the absolute byte offset of the match when Found is true.
	Offset int

	// Elapsed is the wall-clock time from just before worker dispatch to
	// just after the last worker joined. Zero when no scan ran.
	Elapsed time.Duration

	// Workers is the number of chunk scanners dispatched. Zero when the
	// outcome was decided without scanning (oversized pattern).
	Workers int
}

// task is the immutable per-worker snapshot: a chunk view into the buffer,
// the shared pattern, a private copy of the shift table, and the slot the
// worker writes its single result into. Slots are disjoint by construction,
// so workers never contend.
type task struct {
	chunk   []byte
	start   int
	pattern []byte
	table   ShiftTable
	local   int
}

// Searcher coordinates concurrent Boyer-Moore searches. A Searcher is
// immutable after construction and safe for concurrent use; each Search
// call creates its own workers and result slots.
type Searcher struct {
	maxWorkers int
	overlap    bool
}

// NewSearcher creates a Searcher with the given options.
func NewSearcher(opts ...Option) (*Searcher, error) {
	s := &Searcher{maxWorkers: DefaultMaxWorkers}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// MaxWorkers returns the configured worker cap.
func (s *Searcher) MaxWorkers() int {
	return s.maxWorkers
}

// Search looks for the first occurrence of pattern in buf.
//
// An empty buffer or empty pattern is an error and nothing is scanned. A
// pattern longer than the buffer is not an error: the outcome is a
// deterministic NotFound without a single byte comparison.
//
// The context is consulted between chunk dispatches only. If it is
// cancelled mid-dispatch, the remaining chunks are never started,
// already-running workers are joined, and ctx.Err() is returned with no
// partial result. Once all workers are dispatched the join is unbounded;
// workers never block, so it completes as soon as the scans do.
func (s *Searcher) Search(ctx context.Context, buf, pattern []byte) (Outcome, error) {
	if len(buf) == 0 {
		return Outcome{}, ErrEmptyInput
	}
	if len(pattern) == 0 {
		return Outcome{}, ErrEmptyPattern
	}
	if len(pattern) > len(buf) {
		debug.LogSearch("pattern longer than buffer (%d > %d), skipping scan\n", len(pattern), len(buf))
		return Outcome{}, nil
	}

	table := BuildShiftTable(pattern)

	// Never create a chunk smaller than the pattern: it could not contain
	// a match on its own regardless of global position.
	workers := s.maxWorkers
	chunkSize := len(buf) / workers
	if chunkSize < len(pattern) {
		workers = 1
		chunkSize = len(buf)
	}
	debug.LogSearch("dispatching %d workers, chunk size %d, buffer %d, pattern %d\n",
		workers, chunkSize, len(buf), len(pattern))

	tasks := make([]task, workers)
	var wg sync.WaitGroup
	start := time.Now()

	dispatched := 0
	for i := 0; i < workers; i++ {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return Outcome{}, err
		}

		lo := i * chunkSize
		hi := lo + chunkSize
		if i == workers-1 {
			// The last chunk absorbs the division remainder.
			hi = len(buf)
		} else if s.overlap {
			hi += len(pattern) - 1
			if hi > len(buf) {
				hi = len(buf)
			}
		}

		t := &tasks[i]
		t.chunk = buf[lo:hi]
		t.start = lo
		t.pattern = pattern
		t.table = table
		t.local = -1

		wg.Add(1)
		go func(t *task) {
			defer wg.Done()
			t.local = ScanChunk(t.chunk, t.pattern, &t.table)
		}(t)
		dispatched++
	}

	wg.Wait()
	elapsed := time.Since(start)

	// Resolve in chunk index order, not completion order. Chunks are
	// ordered and own disjoint ranges of match starts, so the first chunk
	// reporting a hit holds the leftmost match.
	for i := range tasks[:dispatched] {
		if tasks[i].local >= 0 {
			return Outcome{
				Found:   true,
				Offset:  tasks[i].start + tasks[i].local,
				Elapsed: elapsed,
				Workers: dispatched,
			}, nil
		}
	}
	return Outcome{Elapsed: elapsed, Workers: dispatched}, nil
}
