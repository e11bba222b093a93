package bmsearch

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill returns n bytes of filler that cannot collide with test patterns.
func fill(n int) []byte {
	return bytes.Repeat([]byte{'.'}, n)
}

// plant copies pattern into buf at offset.
func plant(buf []byte, offset int, pattern string) {
	copy(buf[offset:], pattern)
}

func newTestSearcher(t *testing.T, opts ...Option) *Searcher {
	t.Helper()
	s, err := NewSearcher(opts...)
	require.NoError(t, err)
	return s
}

func TestSearch_Validation(t *testing.T) {
	s := newTestSearcher(t)
	ctx := context.Background()

	t.Run("EmptyBuffer", func(t *testing.T) {
		_, err := s.Search(ctx, nil, []byte("pattern"))
		require.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("EmptyPattern", func(t *testing.T) {
		_, err := s.Search(ctx, []byte("buffer"), nil)
		require.ErrorIs(t, err, ErrEmptyPattern)
	})

	t.Run("OversizedPatternIsNotAnError", func(t *testing.T) {
		out, err := s.Search(ctx, fill(10), bytes.Repeat([]byte{'x'}, 15))
		require.NoError(t, err)
		assert.False(t, out.Found)
		// Decided without scanning: no workers, no elapsed time.
		assert.Equal(t, 0, out.Workers)
		assert.Zero(t, out.Elapsed)
	})
}

func TestSearch_SingleChunk(t *testing.T) {
	s := newTestSearcher(t, WithMaxWorkers(1))
	ctx := context.Background()

	buf := []byte("abcxabcdabxabcdabcdabcy")
	out, err := s.Search(ctx, buf, []byte("abcdabcy"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 15, out.Offset)
	assert.Equal(t, 1, out.Workers)
}

func TestSearch_AllWorkersDispatchOnEvenSplit(t *testing.T) {
	// 1600 bytes across 16 workers: chunk size 100, no remainder.
	s := newTestSearcher(t, WithMaxWorkers(16))

	buf := fill(1600)
	plant(buf, 1590, "hello")

	out, err := s.Search(context.Background(), buf, []byte("hello"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1590, out.Offset)
	assert.Equal(t, 16, out.Workers)
}

func TestSearch_LastChunkAbsorbsRemainder(t *testing.T) {
	// 1007 bytes across 4 workers: chunks of 251 and a last chunk of 254.
	// A match in the remainder bytes must be found.
	s := newTestSearcher(t, WithMaxWorkers(4))

	buf := fill(1007)
	plant(buf, 1002, "tail!")

	out, err := s.Search(context.Background(), buf, []byte("tail!"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1002, out.Offset)
	assert.Equal(t, 4, out.Workers)
}

func TestSearch_FallsBackToSingleWorkerForSmallBuffers(t *testing.T) {
	// 100/16 = 6 < pattern length 20, so the whole buffer becomes one chunk.
	s := newTestSearcher(t, WithMaxWorkers(16))

	buf := fill(100)
	pattern := bytes.Repeat([]byte{'z'}, 20)
	plant(buf, 40, string(pattern))

	out, err := s.Search(context.Background(), buf, pattern)
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 40, out.Offset)
	assert.Equal(t, 1, out.Workers)
}

func TestSearch_LeftmostMatchAcrossChunks(t *testing.T) {
	// Matches in chunks 1 and 3; the lowest chunk index wins, which is
	// also the leftmost occurrence overall.
	s := newTestSearcher(t, WithMaxWorkers(4))

	buf := fill(400)
	plant(buf, 120, "match")
	plant(buf, 310, "match")

	out, err := s.Search(context.Background(), buf, []byte("match"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 120, out.Offset)
}

func TestSearch_BoundaryStraddleIsMissedByDefault(t *testing.T) {
	// 160 bytes, 16 workers, chunk size 10. The only occurrence starts at
	// offset 8 and spans the chunk 0/1 boundary, so neither chunk sees it
	// in full. This miss is the documented cost of non-overlapping chunks.
	s := newTestSearcher(t, WithMaxWorkers(16))

	buf := fill(160)
	plant(buf, 8, "span")

	out, err := s.Search(context.Background(), buf, []byte("span"))
	require.NoError(t, err)
	assert.False(t, out.Found, "straddling match must be missed without overlap")
	assert.Equal(t, 16, out.Workers)

	// The same bytes are found when the buffer is scanned as one chunk.
	single := newTestSearcher(t, WithMaxWorkers(1))
	out, err = single.Search(context.Background(), buf, []byte("span"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 8, out.Offset)
}

func TestSearch_BoundaryOverlapFindsStraddlingMatch(t *testing.T) {
	s := newTestSearcher(t, WithMaxWorkers(16), WithBoundaryOverlap())

	buf := fill(160)
	plant(buf, 8, "span")

	out, err := s.Search(context.Background(), buf, []byte("span"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 8, out.Offset)
	assert.Equal(t, 16, out.Workers)
}

func TestSearch_NotFound(t *testing.T) {
	s := newTestSearcher(t)

	out, err := s.Search(context.Background(), fill(4096), []byte("absent"))
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, 16, out.Workers)
}

func TestSearch_Idempotent(t *testing.T) {
	s := newTestSearcher(t, WithMaxWorkers(8))

	buf := fill(2048)
	plant(buf, 777, "stable")
	pattern := []byte("stable")

	first, err := s.Search(context.Background(), buf, pattern)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		out, err := s.Search(context.Background(), buf, pattern)
		require.NoError(t, err)
		assert.Equal(t, first.Found, out.Found)
		assert.Equal(t, first.Offset, out.Offset)
	}
}

func TestSearch_CancelledContext(t *testing.T) {
	s := newTestSearcher(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	buf := fill(1600)
	plant(buf, 100, "needle")

	_, err := s.Search(ctx, buf, []byte("needle"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewSearcher_RejectsBadWorkerCount(t *testing.T) {
	_, err := NewSearcher(WithMaxWorkers(0))
	require.ErrorIs(t, err, ErrInvalidWorkerCount)

	_, err = NewSearcher(WithMaxWorkers(-3))
	require.ErrorIs(t, err, ErrInvalidWorkerCount)
}

func TestSearch_MatchAtVeryEndOfLargeBuffer(t *testing.T) {
	// Worst case for chunked dispatch: the only hit sits in the last
	// few bytes of a large buffer.
	s := newTestSearcher(t)

	buf := fill(1 << 20)
	plant(buf, len(buf)-len("ThisIsTheEnd"), "ThisIsTheEnd")

	out, err := s.Search(context.Background(), buf, []byte("ThisIsTheEnd"))
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, len(buf)-len("ThisIsTheEnd"), out.Offset)
}
