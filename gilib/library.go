// Package gilib defines the shared-library binding capability consumed
// by the typelib's lazy symbol resolution: open a library by path,
// resolve a symbol by name, close it. The core treats this purely as a
// capability interface; this package ships a default cgo-backed
// implementation plus a no-op implementation for platforms or tests
// without cgo.
package gilib

// Handle is an opened shared library.
type Handle interface {
	// Symbol resolves name to a function pointer, returned as an
	// untyped uintptr (the caller is responsible for casting via
	// whatever FFI mechanism it uses; this module never calls through
	// it, it only tracks resolution success).
	Symbol(name string) (uintptr, bool)
	Close() error
}

// Loader opens shared libraries by path (or, for an empty name, the
// main program image).
type Loader interface {
	Open(path string) (Handle, error)
}

// Default selects the best Loader available on the running platform:
// the cgo dlopen shim when built with cgo enabled, or NullLoader
// otherwise. Assigned in library_cgo.go / library_nocgo.go.
var Default Loader = defaultLoader()
