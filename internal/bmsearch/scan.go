package bmsearch

// ScanChunk runs a Boyer-Moore scan (bad-character rule only) over one
// contiguous byte range and returns the offset of the leftmost match
// relative to the start of the chunk, or -1 if the pattern does not occur.
//
// The pattern is compared right to left at each alignment. On a mismatch at
// pattern index j against chunk byte c, the alignment advances by
// max(1, j-table[c]); the max guarantees forward progress when the table
// points at an occurrence at or to the right of j.
//
// ScanChunk is a pure function of its inputs and cannot fail: a pattern
// longer than the chunk simply never enters the loop and yields -1. The
// pattern must be non-empty; callers validate before scanning.
func ScanChunk(chunk, pattern []byte, table *ShiftTable) int {
	chunkLen := len(chunk)
	patternLen := len(pattern)

	shift := 0
	for shift <= chunkLen-patternLen {
		j := patternLen - 1
		for j >= 0 && pattern[j] == chunk[shift+j] {
			j--
		}
		if j < 0 {
			return shift
		}
		step := j - table[chunk[shift+j]]
		if step < 1 {
			step = 1
		}
		shift += step
	}
	return -1
}
