package gitypelib

// maxNameLen is the longest a string-pool entry is allowed to be
// before NameTooLong is raised.
const maxNameLen = 2048

// buffer is a bounds-checked, read-only window over an entire
// typelib image. Every accessor returns a *Error on out-of-range
// access instead of panicking; nothing in this package ever indexes
// raw into data without going through one of these helpers.
type buffer struct {
	data []byte
}

func newBuffer(data []byte) *buffer {
	return &buffer{data: data}
}

func (b *buffer) len() int { return len(b.data) }

// bytesAt returns the n bytes starting at offset, failing with
// ErrTruncated if they would run past the end of the buffer.
func (b *buffer) bytesAt(offset uint32, n uint32) ([]byte, error) {
	start := uint64(offset)
	end := start + uint64(n)
	if end > uint64(len(b.data)) {
		return nil, newError(KindTruncated,
			"want %d bytes at offset %d, buffer is %d bytes", n, offset, len(b.data))
	}
	return b.data[start:end], nil
}

// byteAt returns the single byte at offset.
func (b *buffer) byteAt(offset uint32) (byte, error) {
	bs, err := b.bytesAt(offset, 1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

// u16At reads a little-endian uint16 at offset.
func (b *buffer) u16At(offset uint32) (uint16, error) {
	bs, err := b.bytesAt(offset, 2)
	if err != nil {
		return 0, err
	}
	return uint16(bs[0]) | uint16(bs[1])<<8, nil
}

// u32At reads a little-endian uint32 at offset.
func (b *buffer) u32At(offset uint32) (uint32, error) {
	bs, err := b.bytesAt(offset, 4)
	if err != nil {
		return 0, err
	}
	return uint32(bs[0]) | uint32(bs[1])<<8 | uint32(bs[2])<<16 | uint32(bs[3])<<24, nil
}

// stringAt resolves offset to the NUL-terminated string starting
// there. It fails with ErrTruncated if offset is beyond the buffer,
// and enforces the maxNameLen search bound (returning ErrNameTooLong
// if no NUL is found within it). It does not enforce the name
// charset; callers that need that call validateName instead.
func (b *buffer) stringAt(offset uint32) (string, error) {
	if uint64(offset) >= uint64(len(b.data)) {
		return "", newError(KindTruncated, "string offset %d beyond buffer of %d bytes", offset, len(b.data))
	}
	limit := len(b.data)
	if uint64(offset)+uint64(maxNameLen) < uint64(limit) {
		limit = int(offset) + maxNameLen
	}
	for i := int(offset); i < limit; i++ {
		if b.data[i] == 0 {
			return string(b.data[offset:i]), nil
		}
	}
	return "", newError(KindNameTooLong, "no NUL terminator within %d bytes of offset %d", maxNameLen, offset)
}

// isAligned is a pure predicate: does offset sit on an n-byte boundary.
func isAligned(offset uint32, n uint32) bool {
	return offset%n == 0
}

// alignTo4 rounds n up to the next multiple of 4.
func alignTo4(n uint32) uint32 {
	return (n + 3) &^ 3
}

// isNameByte reports whether c is accepted in a typelib identifier:
// [A-Za-z0-9_-].
func isNameByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '_' || c == '-':
		return true
	default:
		return false
	}
}

// isVersionByte accepts the looser charset used for dotted version
// strings such as "2.32": digits and '.' only.
func isVersionByte(c byte) bool {
	return (c >= '0' && c <= '9') || c == '.'
}

// validateVersionString resolves offset (if non-zero) to a dotted
// version string, enforcing the looser [0-9.] charset used by
// deprecated-version annotations. A zero offset is not an error; it
// returns "", nil, meaning "absent".
func validateVersionString(b *buffer, kind string, offset uint32) (string, error) {
	if offset == 0 {
		return "", nil
	}
	s, err := b.stringAt(offset)
	if err != nil {
		return "", wrap(err, kind)
	}
	for i := 0; i < len(s); i++ {
		if !isVersionByte(s[i]) {
			return "", wrap(newError(KindInvalidName,
				"%s %q contains disallowed byte 0x%02x at index %d", kind, s, s[i], i), kind)
		}
	}
	return s, nil
}

// validateName resolves offset to a string via stringAt and additionally
// enforces the [A-Za-z0-9_-] charset, reporting ErrInvalidName on the
// first disallowed byte. kind labels the field in error context (e.g.
// "name", "gtype_name") for the caller to attach as a breadcrumb.
func validateName(b *buffer, kind string, offset uint32) (string, error) {
	s, err := b.stringAt(offset)
	if err != nil {
		return "", wrap(err, kind)
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return "", wrap(newError(KindInvalidName,
				"%s %q contains disallowed byte 0x%02x at index %d", kind, s, s[i], i), kind)
		}
	}
	return s, nil
}
