package gitypelib

import (
	"os"

	"github.com/edsrzf/mmap-go"
)

// Open memory-maps path as the owning byte container for a new
// Typelib, avoiding a full read into the Go heap for large files.
// The mapping is released on the typelib's final Release, alongside
// any opened shared libraries.
func Open(path string, opts Options) (*Typelib, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}

	t, err := New(m, opts)
	if err != nil {
		_ = m.Unmap()
		return nil, err
	}
	t.mapping = m
	return t, nil
}
