package gitypelib

import (
	"strings"
)

// ByIndex returns the directory entry at 1-based position i, and
// false if i is out of range.
func (t *Typelib) ByIndex(i int) (DirectoryEntry, bool) {
	if i < 1 || i > len(t.entries) {
		return DirectoryEntry{}, false
	}
	return t.entries[i-1], true
}

// ByName resolves name against local entries. When a DIRECTORY_INDEX
// section is present, the configured hash oracle is consulted first;
// its candidate is always re-verified against the string pool before
// being trusted, so a colliding or stale oracle answer can never
// produce a wrong result, only a slower fallback to linear scan.
func (t *Typelib) ByName(name string) (DirectoryEntry, bool) {
	if t.hashTable != nil {
		if idx, ok := t.hashIndex.Lookup(t.hashTable, name); ok {
			if e, ok := t.ByIndex(idx + 1); ok && e.Local && e.Name == name {
				return e, true
			}
		}
	}
	for _, e := range t.entries[:t.header.nLocalEntries] {
		if e.Name == name {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// ByTypeName performs a linear scan of local entries for a
// registered-type blob whose gtype_name equals name.
func (t *Typelib) ByTypeName(name string) (DirectoryEntry, bool) {
	for _, e := range t.entries[:t.header.nLocalEntries] {
		if !e.BlobType.isRegisteredTypeKind() {
			continue
		}
		gtypeName, ok := t.gtypeNameOf(e)
		if ok && gtypeName == name {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// gtypeNameOf re-decodes the registered-type name of e without
// running full validation, used by lookup paths that may run before
// or without a validation pass.
func (t *Typelib) gtypeNameOf(e DirectoryEntry) (string, bool) {
	ctx := &decodeCtx{buf: t.buf, hdr: t.header, entries: t.entries}
	switch e.BlobType {
	case BlobTypeStruct, BlobTypeBoxed:
		s, err := decodeStruct(ctx, e.Offset, e.BlobType)
		if err != nil || s.Unregistered {
			return "", false
		}
		return s.GTypeName, true
	case BlobTypeEnum, BlobTypeFlags:
		en, err := decodeEnum(ctx, e.Offset, e.BlobType)
		if err != nil || en.Unregistered {
			return "", false
		}
		return en.GTypeName, true
	case BlobTypeObject:
		o, err := decodeObject(ctx, e.Offset)
		if err != nil {
			return "", false
		}
		return o.GTypeName, true
	case BlobTypeInterface:
		i, err := decodeInterface(ctx, e.Offset)
		if err != nil {
			return "", false
		}
		return i.GTypeName, true
	default:
		return "", false
	}
}

// ByErrorDomain performs a linear scan of local enum blobs for one
// whose error_domain string equals the string form of quark.
func (t *Typelib) ByErrorDomain(quark string) (DirectoryEntry, bool) {
	ctx := &decodeCtx{buf: t.buf, hdr: t.header, entries: t.entries}
	for _, e := range t.entries[:t.header.nLocalEntries] {
		if e.BlobType != BlobTypeEnum && e.BlobType != BlobTypeFlags {
			continue
		}
		en, err := decodeEnum(ctx, e.Offset, e.BlobType)
		if err != nil || en.ErrorDomain == "" {
			continue
		}
		if en.ErrorDomain == quark {
			return e, true
		}
	}
	return DirectoryEntry{}, false
}

// MatchesPrefix reports whether gtypeName is prefixed by one of the
// typelib's registered C-prefixes, followed immediately by an ASCII
// upper-case character.
func (t *Typelib) MatchesPrefix(gtypeName string) bool {
	for _, prefix := range strings.Split(t.header.cPrefix, ",") {
		prefix = strings.TrimSpace(prefix)
		if prefix == "" || !strings.HasPrefix(gtypeName, prefix) {
			continue
		}
		rest := gtypeName[len(prefix):]
		if rest == "" {
			continue
		}
		c := rest[0]
		if c >= 'A' && c <= 'Z' {
			return true
		}
	}
	return false
}

// Dependencies returns the parsed "Namespace-Version" dependency
// list from the header. It does not resolve or validate the entries.
func (t *Typelib) Dependencies() []string {
	if t.header.dependencies == 0 {
		return nil
	}
	raw, err := t.buf.stringAt(t.header.dependencies)
	if err != nil || raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
