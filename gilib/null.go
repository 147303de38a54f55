package gilib

import "errors"

// ErrUnresolved describes a symbol that cannot be resolved. NullLoader's
// handles report every lookup as unresolved through Symbol's false
// result; nothing in this package returns ErrUnresolved itself.
var ErrUnresolved = errors.New("gilib: symbol resolution unavailable")

// NullLoader is a Loader that opens every path "successfully" but
// never resolves any symbol. It is useful in tests (the structural
// validator never needs real symbols) and as the fallback on
// platforms where cgo is unavailable.
type NullLoader struct{}

// Open always succeeds and returns a handle that resolves nothing.
func (NullLoader) Open(path string) (Handle, error) {
	return nullHandle{path: path}, nil
}

type nullHandle struct{ path string }

func (nullHandle) Symbol(name string) (uintptr, bool) { return 0, false }
func (nullHandle) Close() error                       { return nil }
