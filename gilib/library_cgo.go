//go:build cgo

package gilib

/*
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"unsafe"
)

func defaultLoader() Loader {
	return cgoLoader{}
}

// cgoLoader is the default shared-library capability: a thin shim
// over dlopen(3)/dlsym(3)/dlclose(3).
type cgoLoader struct{}

func (cgoLoader) Open(path string) (Handle, error) {
	var cpath *C.char
	if path != "" {
		cpath = C.CString(path)
		defer C.free(unsafe.Pointer(cpath))
	}

	h := C.dlopen(cpath, C.RTLD_LAZY|C.RTLD_GLOBAL)
	if h == nil {
		errStr := C.GoString(C.dlerror())
		return nil, fmt.Errorf("gilib: dlopen(%q): %s", path, errStr)
	}
	return &cgoHandle{handle: h}, nil
}

type cgoHandle struct {
	handle unsafe.Pointer
}

func (h *cgoHandle) Symbol(name string) (uintptr, bool) {
	if h.handle == nil {
		return 0, false
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.dlerror() // clear any pending error
	sym := C.dlsym(h.handle, cname)
	if sym == nil && C.dlerror() != nil {
		return 0, false
	}
	return uintptr(sym), true
}

func (h *cgoHandle) Close() error {
	if h.handle == nil {
		return nil
	}
	rc := C.dlclose(h.handle)
	h.handle = nil
	if rc != 0 {
		return fmt.Errorf("gilib: dlclose failed")
	}
	return nil
}
