package bmsearch

import (
	"bytes"
	"testing"
)

func scan(chunk, pattern string) int {
	table := BuildShiftTable([]byte(pattern))
	return ScanChunk([]byte(chunk), []byte(pattern), &table)
}

func TestScanChunk_Basic(t *testing.T) {
	tests := []struct {
		name    string
		chunk   string
		pattern string
		want    int
	}{
		{"match at start", "needle in a haystack", "needle", 0},
		{"match at end", "haystack with a needle", "needle", 16},
		{"match in middle", "abcxabcdabxabcdabcdabcy", "abcdabcy", 15},
		{"no match", "abcdefgh", "xyz", -1},
		{"single byte hit", "abc", "b", 1},
		{"single byte miss", "abc", "z", -1},
		{"pattern equals chunk", "exact", "exact", 0},
		{"pattern equals chunk miss", "exact", "exacu", -1},
		{"pattern longer than chunk", "ab", "abc", -1},
		{"repeated prefix", "aaaaaab", "aab", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scan(tt.chunk, tt.pattern); got != tt.want {
				t.Errorf("ScanChunk(%q, %q) = %d, want %d", tt.chunk, tt.pattern, got, tt.want)
			}
		})
	}
}

func TestScanChunk_LeftmostMatch(t *testing.T) {
	if got := scan("xxabxxabxx", "ab"); got != 2 {
		t.Errorf("got %d, want leftmost occurrence at 2", got)
	}
}

func TestScanChunk_ForwardProgressOnAdversarialInput(t *testing.T) {
	// All-equal bytes force the max(1, ...) clamp on every mismatch; the
	// scan must still terminate and find nothing.
	chunk := bytes.Repeat([]byte{'a'}, 4096)
	pattern := append(bytes.Repeat([]byte{'a'}, 15), 'b')

	table := BuildShiftTable(pattern)
	if got := ScanChunk(chunk, pattern, &table); got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestScanChunk_RawByteEquality(t *testing.T) {
	// No case folding: "ABC" must not match "abc".
	if got := scan("xxabcxx", "ABC"); got != -1 {
		t.Errorf("got %d, want -1 for case-mismatched pattern", got)
	}

	// Arbitrary binary data is matched byte for byte.
	chunk := []byte{0x00, 0xde, 0xad, 0xbe, 0xef, 0x00}
	pattern := []byte{0xad, 0xbe}
	table := BuildShiftTable(pattern)
	if got := ScanChunk(chunk, pattern, &table); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestScanChunk_AgreesWithBytesIndex(t *testing.T) {
	chunk := []byte("the quick brown fox jumps over the lazy dog, the end")
	patterns := []string{"the", "fox", "dog", "end", "quick brown", "missing", "g, "}

	for _, p := range patterns {
		pattern := []byte(p)
		table := BuildShiftTable(pattern)
		got := ScanChunk(chunk, pattern, &table)
		if want := bytes.Index(chunk, pattern); got != want {
			t.Errorf("ScanChunk(%q) = %d, bytes.Index = %d", p, got, want)
		}
	}
}
