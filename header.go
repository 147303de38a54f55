package gitypelib

import (
	"bytes"
	"fmt"

	"golang.org/x/mod/semver"
)

// headerSize is the fixed size of the typelib header, in bytes.
const headerSize = 112

// magic is the 16-byte identifier every typelib must begin with.
var magic = [16]byte{'G', 'I', 'T', 'y', 'p', 'e', 'l', 'i', 'b', '-', '1', ':', '0', 0, 0, 0}

// majorVersion is the only major format version this reader accepts.
const majorVersion = 4

// Fixed blob sizes, in bytes, cross-checked against the header's own
// declared sizes in readHeader. These are format constants; a header
// that disagrees with any of them is rejected outright.
const (
	entryBlobSize     = 12
	functionBlobSize  = 20
	callbackBlobSize  = 12
	structBlobSize    = 32
	enumBlobSize      = 24
	objectBlobSize    = 60
	interfaceBlobSize = 40
	unionBlobSize     = 40
	constantBlobSize  = 24
	signatureBlobSize = 8
	argBlobSize       = 16
	fieldBlobSize     = 16
	propertyBlobSize  = 16
	signalBlobSize    = 16
	vfuncBlobSize     = 20
	valueBlobSize     = 12
	attributeBlobSize = 12

	simpleTypeBlobSize    = 4
	interfaceTypeBlobSize = 4
	arrayTypeBlobSize     = 8
	paramTypeBlobSize     = 4
	errorTypeBlobSize     = 4
	commonBlobSize        = 8
)

// header is the decoded, validated fixed header of a typelib.
type header struct {
	majorVersion, minorVersion uint8
	nEntries, nLocalEntries    uint16
	directory                  uint32
	nAttributes                uint32
	attributes                 uint32
	dependencies               uint32
	size                       uint32
	namespaceOffset            uint32
	nsVersionOffset            uint32
	sharedLibraryOffset        uint32
	cPrefixOffset              uint32
	sections                   uint32

	namespace string
	nsVersion string
	cPrefix   string
}

// readHeader decodes and structurally validates the 112-byte header
// at the start of b. It also resolves and validates the namespace
// name.
func readHeader(b *buffer) (*header, error) {
	if b.len() < headerSize {
		return nil, newError(KindInvalidHeader, "buffer is %d bytes, shorter than the %d-byte header", b.len(), headerSize)
	}

	magicBytes, err := b.bytesAt(0, 16)
	if err != nil {
		return nil, wrap(err, "header")
	}
	if !bytes.Equal(magicBytes, magic[:]) {
		return nil, newError(KindInvalidHeader, "magic mismatch")
	}

	majorV, err := b.byteAt(16)
	if err != nil {
		return nil, wrap(err, "header")
	}
	if majorV != majorVersion {
		return nil, newError(KindInvalidHeader, "unsupported major version %d, want %d", majorV, majorVersion)
	}
	minorV, err := b.byteAt(17)
	if err != nil {
		return nil, wrap(err, "header")
	}

	nEntries, err := b.u16At(20)
	if err != nil {
		return nil, wrap(err, "header")
	}
	nLocal, err := b.u16At(22)
	if err != nil {
		return nil, wrap(err, "header")
	}
	if nLocal > nEntries {
		return nil, newError(KindInvalidHeader, "n_local_entries %d exceeds n_entries %d", nLocal, nEntries)
	}

	directory, err := readU32Field(b, 24)
	if err != nil {
		return nil, err
	}
	nAttributes, err := readU32Field(b, 28)
	if err != nil {
		return nil, err
	}
	attributes, err := readU32Field(b, 32)
	if err != nil {
		return nil, err
	}
	dependencies, err := readU32Field(b, 36)
	if err != nil {
		return nil, err
	}
	size, err := readU32Field(b, 40)
	if err != nil {
		return nil, err
	}
	nsOffset, err := readU32Field(b, 44)
	if err != nil {
		return nil, err
	}
	nsVersionOffset, err := readU32Field(b, 48)
	if err != nil {
		return nil, err
	}
	sharedLib, err := readU32Field(b, 52)
	if err != nil {
		return nil, err
	}
	cPrefixOffset, err := readU32Field(b, 56)
	if err != nil {
		return nil, err
	}
	sections, err := readU32Field(b, 60)
	if err != nil {
		return nil, err
	}

	if int(size) != b.len() {
		return nil, newError(KindInvalidHeader, "declared size %d does not match buffer length %d", size, b.len())
	}
	if !isAligned(directory, 4) {
		return nil, newError(KindInvalidHeader, "directory offset %d is not 4-byte aligned", directory)
	}
	if !isAligned(attributes, 4) {
		return nil, newError(KindInvalidHeader, "attributes offset %d is not 4-byte aligned", attributes)
	}
	if nAttributes > 0 && attributes == 0 {
		return nil, newError(KindInvalidHeader, "n_attributes %d but attributes offset is zero", nAttributes)
	}

	if err := checkBlobSizes(b); err != nil {
		return nil, err
	}

	namespace, err := validateName(b, "namespace", nsOffset)
	if err != nil {
		return nil, err
	}

	var nsVersion, cPrefix string
	if nsVersionOffset != 0 {
		nsVersion, err = b.stringAt(nsVersionOffset)
		if err != nil {
			return nil, wrap(err, "nsversion")
		}
	}
	if cPrefixOffset != 0 {
		cPrefix, err = b.stringAt(cPrefixOffset)
		if err != nil {
			return nil, wrap(err, "c_prefix")
		}
	}

	return &header{
		majorVersion:        majorV,
		minorVersion:        minorV,
		nEntries:            nEntries,
		nLocalEntries:       nLocal,
		directory:           directory,
		nAttributes:         nAttributes,
		attributes:          attributes,
		dependencies:        dependencies,
		size:                size,
		namespaceOffset:     nsOffset,
		nsVersionOffset:     nsVersionOffset,
		sharedLibraryOffset: sharedLib,
		cPrefixOffset:       cPrefixOffset,
		sections:            sections,
		namespace:           namespace,
		nsVersion:           nsVersion,
		cPrefix:             cPrefix,
	}, nil
}

func readU32Field(b *buffer, offset uint32) (uint32, error) {
	v, err := b.u32At(offset)
	if err != nil {
		return 0, wrap(err, "header")
	}
	return v, nil
}

// checkBlobSizes cross-checks the header's declared per-blob sizes
// (at fixed offsets 64..98) against the format constants; any
// disagreement is InvalidHeader.
func checkBlobSizes(b *buffer) error {
	fields := []struct {
		offset uint32
		want   uint16
		name   string
	}{
		{64, entryBlobSize, "entry_blob_size"},
		{66, functionBlobSize, "function_blob_size"},
		{68, callbackBlobSize, "callback_blob_size"},
		{70, structBlobSize, "struct_blob_size"},
		{72, enumBlobSize, "enum_blob_size"},
		{74, objectBlobSize, "object_blob_size"},
		{76, interfaceBlobSize, "interface_blob_size"},
		{78, unionBlobSize, "union_blob_size"},
		{80, constantBlobSize, "constant_blob_size"},
		{82, signatureBlobSize, "signature_blob_size"},
		{84, argBlobSize, "arg_blob_size"},
		{86, fieldBlobSize, "field_blob_size"},
		{88, propertyBlobSize, "property_blob_size"},
		{90, signalBlobSize, "signal_blob_size"},
		{92, vfuncBlobSize, "vfunc_blob_size"},
		{94, valueBlobSize, "value_blob_size"},
		{96, attributeBlobSize, "attribute_blob_size"},
	}
	for _, f := range fields {
		got, err := b.u16At(f.offset)
		if err != nil {
			return wrap(err, "header")
		}
		if got != f.want {
			return newError(KindInvalidHeader, "%s is %d, want %d", f.name, got, f.want)
		}
	}
	return nil
}

// VersionString formats the header's major/minor version as a
// semver-style string (e.g. "v4.1.0"), using golang.org/x/mod/semver
// purely for validity checking and canonical formatting; the typelib format
// itself is pinned to major_version == 4 and this is never used as a
// structural check.
func (h *header) VersionString() string {
	v := fmt.Sprintf("v%d.%d.0", h.majorVersion, h.minorVersion)
	if !semver.IsValid(v) {
		return fmt.Sprintf("%d.%d", h.majorVersion, h.minorVersion)
	}
	return semver.Canonical(v)
}
