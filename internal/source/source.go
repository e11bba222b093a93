// Package source obtains an immutable, contiguous byte buffer from a named
// file by memory-mapping it read-only. The mapping is released on Close on
// every path, including error paths in the caller, making the Source a
// scoped guard around the OS resources it holds.
package source

import (
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sys/unix"

	"github.com/seekfast/bmgrep/internal/debug"
	bmerrors "github.com/seekfast/bmgrep/internal/errors"
)

// Source is a read-only view of a file's contents. It is safe for
// concurrent readers; no writer exists for its lifetime.
type Source struct {
	path   string
	data   []byte
	mapped bool

	fpOnce sync.Once
	fp     uint64
}

// Open maps the file at path into memory read-only. It fails with a
// classified *errors.InputError (not-found, permission, or I/O) so the
// caller can report each case distinctly. The file descriptor is closed
// before Open returns; the mapping keeps the contents alive.
//
// An empty file yields a valid Source with zero length. Mapping is skipped
// in that case since mmap rejects zero-length ranges.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, bmerrors.NewInputError("open", path, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, bmerrors.NewInputError("stat", path, err)
	}

	size := st.Size()
	if size == 0 {
		debug.LogSource("%s is empty, no mapping created\n", path)
		return &Source{path: path}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, bmerrors.NewInputError("mmap", path, err)
	}
	debug.LogSource("mapped %s (%d bytes)\n", path, size)

	return &Source{path: path, data: data, mapped: true}, nil
}

// FromBytes wraps an in-memory buffer in a Source. Close is a no-op. Used
// by tests and callers that already hold the bytes.
func FromBytes(name string, data []byte) *Source {
	return &Source{path: name, data: data}
}

// Bytes returns the underlying buffer. Callers must not modify it and must
// not retain it past Close.
func (s *Source) Bytes() []byte {
	return s.data
}

// Len returns the buffer length in bytes.
func (s *Source) Len() int {
	return len(s.data)
}

// Path returns the name of the originating source.
func (s *Source) Path() string {
	return s.path
}

// Fingerprint returns the 64-bit content hash of the buffer, computed
// lazily on first call and cached.
func (s *Source) Fingerprint() uint64 {
	s.fpOnce.Do(func() {
		s.fp = xxhash.Sum64(s.data)
	})
	return s.fp
}

// Close releases the mapping. Safe to call more than once and on
// bytes-backed sources.
func (s *Source) Close() error {
	if !s.mapped {
		s.data = nil
		return nil
	}

	data := s.data
	s.data = nil
	s.mapped = false
	if err := unix.Munmap(data); err != nil {
		return bmerrors.NewInputError("munmap", s.path, err)
	}
	debug.LogSource("unmapped %s\n", s.path)
	return nil
}
