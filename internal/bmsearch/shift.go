package bmsearch

// AlphabetSize is the number of distinct byte values the shift table covers.
// Matching operates on raw bytes, so the table is always 256 entries wide
// regardless of text encoding.
const AlphabetSize = 256

// shiftAbsent marks a byte value that does not occur in the pattern.
const shiftAbsent = -1

// ShiftTable maps every byte value to the highest index at which it occurs
// in the pattern, or -1 if it does not occur. It is a plain value type so a
// worker can take a private copy with a single assignment, eliminating any
// cross-goroutine sharing of the table.
type ShiftTable [AlphabetSize]int

// BuildShiftTable computes the bad-character shift table for pattern.
// Later pattern indices overwrite earlier ones, so each entry ends up at the
// rightmost occurrence of that byte. The pattern must be non-empty; callers
// validate before building.
func BuildShiftTable(pattern []byte) ShiftTable {
	var table ShiftTable
	for i := range table {
		table[i] = shiftAbsent
	}
	for i, b := range pattern {
		table[b] = i
	}
	return table
}

// Occurs reports whether byte b appears anywhere in the pattern the table
// was built from.
func (t *ShiftTable) Occurs(b byte) bool {
	return t[b] != shiftAbsent
}
