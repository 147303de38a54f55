// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package gitypelib loads and structurally validates a typelib: a
// binary container describing the public API of a software module
// (functions, callbacks, constants, structs, unions, enums, flags,
// interfaces and classes). A loaded Typelib is queryable by index,
// name, registered-type name and error-domain name, and can bind
// itself lazily to one or more shared libraries for symbol
// resolution.
package gitypelib

import (
	"sync"
	"sync/atomic"

	"github.com/edsrzf/mmap-go"

	"github.com/thanhlev/gitypelib/gihash"
	"github.com/thanhlev/gitypelib/gilib"
	"github.com/thanhlev/gitypelib/gilog"
)

// Typelib is a loaded, immutable typelib. It is safe for concurrent
// use once constructed: the validator and decoders are pure readers,
// and the shared-library handles are published exactly once behind a
// sync.Once.
type Typelib struct {
	buf     *buffer
	header  *header
	entries []DirectoryEntry

	hashIndex gihash.Index
	hashTable []byte // the DIRECTORY_INDEX section bytes, if present

	opts Options

	refcount int32

	bindOnce sync.Once
	handles  []gilib.Handle

	// mapping is non-nil only when the typelib was constructed via
	// Open; its backing memory map is released on the final Release.
	mapping mmap.MMap
}

// Options configures a Typelib's optional collaborators. The zero
// Options is valid; every field has a sensible default applied by
// New.
type Options struct {
	// SkipValidation parses the header and directory shape but does
	// not run the full structural validator.
	SkipValidation bool

	// LibrarySearchPaths are tried, in order, before the system
	// loader, for every non-absolute entry in the header's
	// shared-library list. If nil, defaults to the colon-separated
	// GI_TYPELIB_LIBRARY_PATH environment variable.
	LibrarySearchPaths []string

	// HashIndex overrides the default xxhash-backed hash oracle used
	// for DIRECTORY_INDEX lookups. Nil selects gihash.Default.
	HashIndex gihash.Index

	// LibraryLoader overrides the default shared-library capability.
	// Nil selects gilib.Default.
	LibraryLoader gilib.Loader

	// Logger receives warnings (e.g. a shared library that failed to
	// open). Nil selects a std logger filtered to error level.
	Logger *gilog.Helper

	// Warnings, if non-nil, additionally receives every warning line
	// fanned out via a WarningBroadcaster.
	Warnings *WarningBroadcaster
}

// New constructs a Typelib from data, an owning byte container. A
// fast header check and directory read run immediately, followed by
// the full structural pass (Validate) unless opts.SkipValidation is
// set; with SkipValidation, Validate runs only when called explicitly.
func New(data []byte, opts Options) (*Typelib, error) {
	opts = opts.withDefaults()

	buf := newBuffer(data)
	h, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	entries, err := readAllEntries(buf, h)
	if err != nil {
		return nil, err
	}

	t := &Typelib{
		buf:       buf,
		header:    h,
		entries:   entries,
		hashIndex: opts.HashIndex,
		opts:      opts,
		refcount:  1,
	}

	if sections, err := readSections(buf, h); err == nil {
		if sec, ok := sectionByID(sections, sectionDirectoryIndex); ok {
			if table, err := buf.bytesAt(sec.offset, tableSizeHint(h)); err == nil {
				t.hashTable = table
			}
		}
	}

	if !opts.SkipValidation {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// tableSizeHint derives the DIRECTORY_INDEX bucket table's size from
// the local entry count, since the section carries no independent
// length field of its own.
func tableSizeHint(h *header) uint32 {
	return uint32(gihash.BucketTableSize(int(h.nLocalEntries)))
}

func (o Options) withDefaults() Options {
	if o.LibrarySearchPaths == nil {
		o.LibrarySearchPaths = defaultLibrarySearchPaths()
	}
	if o.HashIndex == nil {
		o.HashIndex = gihash.Default{}
	}
	if o.LibraryLoader == nil {
		o.LibraryLoader = gilib.Default
	}
	if o.Logger == nil {
		o.Logger = gilog.Default()
	}
	return o
}

// Validate runs the full structural validation pass over the header,
// every directory entry, and the attribute table. It is idempotent
// and safe to call multiple times.
func (t *Typelib) Validate() error {
	return validate(t.buf, t.header, t.entries)
}

// GetNamespace returns the namespace name recorded in the header.
func (t *Typelib) GetNamespace() string { return t.header.namespace }

// GetCPrefix returns the comma-separated C-prefix list recorded in
// the header.
func (t *Typelib) GetCPrefix() string { return t.header.cPrefix }

// Retain increments the reference count and returns t.
func (t *Typelib) Retain() *Typelib {
	atomic.AddInt32(&t.refcount, 1)
	return t
}

// Release decrements the reference count; on the final release it
// closes any shared libraries opened through this typelib.
func (t *Typelib) Release() error {
	if atomic.AddInt32(&t.refcount, -1) != 0 {
		return nil
	}
	var firstErr error
	for _, h := range t.handles {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if t.mapping != nil {
		if err := t.mapping.Unmap(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Symbol resolves name against the typelib's shared libraries,
// opening them lazily on the first call. Subsequent calls reuse the
// already-opened handles.
func (t *Typelib) Symbol(name string) (uintptr, bool) {
	t.bindOnce.Do(t.bindLibraries)
	for _, h := range t.handles {
		if ptr, ok := h.Symbol(name); ok {
			return ptr, true
		}
	}
	return 0, false
}

func (t *Typelib) bindLibraries() {
	if t.header.sharedLibraryOffset == 0 {
		return
	}
	list, err := t.buf.stringAt(t.header.sharedLibraryOffset)
	if err != nil || list == "" {
		return
	}
	names := splitNonEmpty(list, ',')
	if len(names) == 0 {
		names = []string{""}
	}
	for _, name := range names {
		path := gilib.Resolve(name, t.opts.LibrarySearchPaths)
		h, err := t.opts.LibraryLoader.Open(path)
		if err != nil {
			t.warnf("failed to open shared library %q: %v", name, err)
			continue
		}
		t.handles = append(t.handles, h)
	}
}

func (t *Typelib) warnf(format string, args ...interface{}) {
	t.opts.Logger.Warnf(format, args...)
	if t.opts.Warnings != nil {
		t.opts.Warnings.Warnf(format, args...)
	}
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
