package gilib

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Resolve turns a bare library name from the typelib header's
// shared-library list into the path that should actually be passed to
// Loader.Open, trying searchPaths (in order) before falling back to
// the bare name (which hands resolution to the system loader).
//
// Names that are already absolute paths, or that begin with "@" (the
// macOS-style rpath marker), are used as-is.
func Resolve(name string, searchPaths []string) string {
	if name == "" {
		return name
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "@") {
		return name
	}
	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, name)
		if probeExists(candidate) {
			return candidate
		}
	}
	return name
}

// probeExists uses a raw access(2) syscall to cheaply check whether
// candidate exists and is at least readable, without opening it.
func probeExists(candidate string) bool {
	return unix.Access(candidate, unix.R_OK) == nil
}
