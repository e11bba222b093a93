// Package bmsearch locates the first occurrence of a byte pattern inside a
// large in-memory buffer using the Boyer-Moore bad-character rule, with the
// buffer split into fixed-size chunks that are scanned concurrently.
//
// # Overview
//
// A search runs in three stages:
//  1. BuildShiftTable precomputes, for every possible byte value, the
//     rightmost index at which that byte occurs in the pattern.
//  2. ScanChunk runs the classic Boyer-Moore scan (bad-character rule only,
//     no good-suffix rule) over one contiguous byte range.
//  3. Searcher.Search partitions the buffer into up to MaxWorkers chunks,
//     dispatches one goroutine per chunk, joins them all, and resolves the
//     per-chunk results in ascending chunk order.
//
// # Quick start
//
//	s, _ := bmsearch.NewSearcher(bmsearch.WithMaxWorkers(16))
//	out, err := s.Search(ctx, buf, []byte("needle"))
//	if err == nil && out.Found {
//	    // out.Offset is the absolute offset of the match
//	}
//
// # Concurrency model
//
// Workers are created fresh per search and never communicate with each
// other. Each worker owns an immutable snapshot of its inputs (chunk view,
// pattern, a private copy of the shift table) and writes exactly one result
// into its own slot. The coordinator's join is the only synchronization
// point; it blocks until every worker has finished before reading any slot,
// so no locking is needed. Result resolution order is fixed (ascending chunk
// index), which makes the outcome independent of scheduler timing.
//
// # Chunk boundary limitation
//
// Chunks do not overlap by default. A pattern whose only occurrence
// straddles the boundary between two adjacent chunks is reported as not
// found even though it exists in the buffer. This keeps every byte scanned
// exactly once. Callers that need straddling matches can opt in with
// WithBoundaryOverlap, which extends every chunk except the last by
// len(pattern)-1 bytes at the cost of rescanning those bytes.
package bmsearch
