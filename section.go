package gitypelib

// Section ids. DirectoryIndex carries the precomputed hash side
// index over local entry names; End is the sentinel terminating the
// section list.
const (
	sectionDirectoryIndex uint16 = 0
	sectionEnd            uint16 = 1
)

// sectionEntrySize is the byte size of one (id, offset) pair in the
// section table.
const sectionEntrySize = 8

// section is one resolved (id, offset) pair from the section table.
type section struct {
	id     uint16
	offset uint32
}

// readSections walks the section table starting at h.sections (if
// any) until the End sentinel, returning every entry seen. A missing
// table (h.sections == 0) yields an empty, non-error result: sections
// are optional.
func readSections(b *buffer, h *header) ([]section, error) {
	if h.sections == 0 {
		return nil, nil
	}
	var out []section
	offset := h.sections
	for {
		id, err := b.u16At(offset)
		if err != nil {
			return nil, wrap(err, "sections")
		}
		if id == sectionEnd {
			return out, nil
		}
		target, err := b.u32At(offset + 4)
		if err != nil {
			return nil, wrap(err, "sections")
		}
		out = append(out, section{id: id, offset: target})
		offset += sectionEntrySize

		if len(out) > int(h.nEntries)+1024 {
			return nil, newError(KindInvalidHeader, "section table missing End sentinel")
		}
	}
}

// sectionByID returns the first section matching id, if any.
func sectionByID(sections []section, id uint16) (section, bool) {
	for _, s := range sections {
		if s.id == id {
			return s, true
		}
	}
	return section{}, false
}
