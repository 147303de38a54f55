package gitypelib

import (
	"strings"

	"github.com/xyproto/env/v2"
)

// libraryPathEnvVar is read for the default LibrarySearchPaths when
// Options.LibrarySearchPaths is left nil, mirroring the real
// GObject-Introspection GI_TYPELIB_PATH convention but scoped to
// shared-library search rather than typelib file search (finding the
// typelib file itself is the higher-level repository's concern, out
// of scope here).
const libraryPathEnvVar = "GI_TYPELIB_LIBRARY_PATH"

func defaultLibrarySearchPaths() []string {
	raw := env.Str(libraryPathEnvVar, "")
	if raw == "" {
		return nil
	}
	var paths []string
	for _, p := range strings.Split(raw, ":") {
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}
