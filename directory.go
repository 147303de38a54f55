package gitypelib

import "strconv"

// BlobType tags every top-level blob and directory entry. The
// numeric values below 0 (non-local/opaque) through UNION are the
// only ones a directory entry may legally carry.
type BlobType uint8

const (
	BlobTypeInvalid BlobType = iota // 0: also used for non-local (opaque) entries
	BlobTypeFunction
	BlobTypeCallback
	BlobTypeStruct
	BlobTypeBoxed
	BlobTypeEnum
	BlobTypeFlags
	BlobTypeObject
	BlobTypeInterface
	BlobTypeConstant
	BlobTypeUnion
)

func (t BlobType) String() string {
	switch t {
	case BlobTypeInvalid:
		return "invalid"
	case BlobTypeFunction:
		return "function"
	case BlobTypeCallback:
		return "callback"
	case BlobTypeStruct:
		return "struct"
	case BlobTypeBoxed:
		return "boxed"
	case BlobTypeEnum:
		return "enum"
	case BlobTypeFlags:
		return "flags"
	case BlobTypeObject:
		return "object"
	case BlobTypeInterface:
		return "interface"
	case BlobTypeConstant:
		return "constant"
	case BlobTypeUnion:
		return "union"
	default:
		return "unknown"
	}
}

// isRegisteredTypeKind reports whether t is one of the kinds that
// carry a GType registration (struct/boxed/enum/flags/object/interface).
func (t BlobType) isRegisteredTypeKind() bool {
	switch t {
	case BlobTypeStruct, BlobTypeBoxed, BlobTypeEnum, BlobTypeFlags, BlobTypeObject, BlobTypeInterface:
		return true
	default:
		return false
	}
}

// DirectoryEntry is one fixed 12-byte record from the directory table.
type DirectoryEntry struct {
	Index    int // 1-based position in the directory
	BlobType BlobType
	Local    bool
	Name     string
	Offset   uint32 // for local entries: blob offset; for non-local: namespace-name offset
}

// readDirectoryEntry decodes the 12-byte entry at index i (1-based).
func readDirectoryEntry(b *buffer, h *header, i int) (DirectoryEntry, error) {
	off := h.directory + uint32(i-1)*entryBlobSize

	rawType, err := b.byteAt(off)
	if err != nil {
		return DirectoryEntry{}, wrap(err, "directory")
	}
	localByte, err := b.byteAt(off + 1)
	if err != nil {
		return DirectoryEntry{}, wrap(err, "directory")
	}
	nameOffset, err := b.u32At(off + 4)
	if err != nil {
		return DirectoryEntry{}, wrap(err, "directory")
	}
	blobOffset, err := b.u32At(off + 8)
	if err != nil {
		return DirectoryEntry{}, wrap(err, "directory")
	}

	if rawType > uint8(BlobTypeUnion) {
		return DirectoryEntry{}, wrap(newError(KindInvalidEntry,
			"entry %d has unknown blob_type %d", i, rawType), "directory")
	}

	name, err := validateName(b, "name", nameOffset)
	if err != nil {
		return DirectoryEntry{}, wrap(err, entryContext(i))
	}

	return DirectoryEntry{
		Index:    i,
		BlobType: BlobType(rawType),
		Local:    localByte != 0,
		Name:     name,
		Offset:   blobOffset,
	}, nil
}

func entryContext(i int) string {
	return "entry[" + strconv.Itoa(i) + "]"
}
