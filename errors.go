// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gitypelib

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies the structural failures the validator can report.
// A Kind is always carried by an *Error; callers that need to branch
// on failure category should use errors.As and inspect Kind, not
// string-match the message.
type Kind int

const (
	// KindTruncated means the buffer ended before a fixed-size region
	// that should have been present.
	KindTruncated Kind = iota
	// KindInvalidHeader means the 112-byte header failed a structural
	// check (magic, declared size, blob size table, ...).
	KindInvalidHeader
	// KindInvalidDirectory means a directory entry or the directory
	// table itself is malformed.
	KindInvalidDirectory
	// KindInvalidBlob means a blob at some offset failed to decode
	// according to its declared kind.
	KindInvalidBlob
	// KindInvalidName means a string pool entry contains bytes outside
	// the accepted charset. A missing NUL terminator is reported as
	// KindNameTooLong and an offset past the buffer as KindTruncated.
	KindInvalidName
	// KindNameTooLong means a string pool entry exceeds the maximum
	// accepted identifier length.
	KindNameTooLong
	// KindInvalidEntry means a directory entry's blob_type is outside
	// the known range. Locality and offset-alignment problems are
	// reported as KindInvalidDirectory.
	KindInvalidEntry
)

func (k Kind) String() string {
	switch k {
	case KindTruncated:
		return "truncated"
	case KindInvalidHeader:
		return "invalid header"
	case KindInvalidDirectory:
		return "invalid directory"
	case KindInvalidBlob:
		return "invalid blob"
	case KindInvalidName:
		return "invalid name"
	case KindNameTooLong:
		return "name too long"
	case KindInvalidEntry:
		return "invalid entry"
	default:
		return "unknown"
	}
}

// Error is the error type every validation and decoding failure in
// this package is reported through. Context is a breadcrumb trail
// describing where in the structure the failure occurred, innermost
// first (e.g. "signal", "object", "entry[12]").
type Error struct {
	Kind    Kind
	Msg     string
	Context []string
}

func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Kind.String() + ": " + e.Msg
	}
	// Context is stored innermost-first; the rendered path reads
	// outermost-first, slash-separated.
	path := make([]string, len(e.Context))
	for i, c := range e.Context {
		path[len(e.Context)-1-i] = c
	}
	return fmt.Sprintf("In %s (Context: %s): %s: %s",
		e.Context[0], strings.Join(path, "/"), e.Kind, e.Msg)
}

// Is reports whether target is the same Kind, so callers can write
// errors.Is(err, gitypelib.ErrTruncated) rather than comparing Kinds.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

func newError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// wrap adds a breadcrumb to err's context and returns it. If err is
// not an *Error it is wrapped as a KindInvalidBlob error first.
func wrap(err error, crumb string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: KindInvalidBlob, Msg: err.Error()}
	}
	e.Context = append(e.Context, crumb)
	return e
}

// Sentinel errors identifying a Kind, for use with errors.Is.
var (
	ErrTruncated        = &Error{Kind: KindTruncated, Msg: "buffer truncated"}
	ErrInvalidHeader    = &Error{Kind: KindInvalidHeader, Msg: "invalid header"}
	ErrInvalidDirectory = &Error{Kind: KindInvalidDirectory, Msg: "invalid directory"}
	ErrInvalidBlob      = &Error{Kind: KindInvalidBlob, Msg: "invalid blob"}
	ErrInvalidName      = &Error{Kind: KindInvalidName, Msg: "invalid name"}
	ErrNameTooLong      = &Error{Kind: KindNameTooLong, Msg: "name too long"}
	ErrInvalidEntry     = &Error{Kind: KindInvalidEntry, Msg: "invalid entry"}
)
