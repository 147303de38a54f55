package gitypelib

// TypeTag enumerates the basic and complex type kinds a simple-type-
// blob can name. Values below match the taxonomy used throughout the
// introspection ecosystem this format is modeled on.
type TypeTag uint8

const (
	TagVoid TypeTag = iota
	TagBoolean
	TagInt8
	TagUint8
	TagInt16
	TagUint16
	TagInt32
	TagUint32
	TagInt64
	TagUint64
	TagFloat
	TagDouble
	TagGType
	TagUTF8
	TagFilename
	TagArray
	TagInterface
	TagGList
	TagGSList
	TagGHash
	TagError
	TagUnichar
)

func (t TypeTag) String() string {
	names := [...]string{
		"void", "boolean", "int8", "uint8", "int16", "uint16",
		"int32", "uint32", "int64", "uint64", "float", "double",
		"gtype", "utf8", "filename", "array", "interface", "glist",
		"gslist", "ghash", "error", "unichar",
	}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// isComplex reports whether t is one of the complex type kinds,
// decoded via a separate complex type blob rather than inline.
func (t TypeTag) isComplex() bool {
	switch t {
	case TagArray, TagInterface, TagGList, TagGSList, TagGHash, TagError:
		return true
	default:
		return false
	}
}

// isStringLike reports whether t is a string-like basic tag, which
// requires the pointer bit set (unichar is excluded: it is a 4-byte
// scalar, not a pointer).
func (t TypeTag) isStringLike() bool {
	return t == TagUTF8 || t == TagFilename
}

// fixedWidth returns the width in bytes of a basic numeric, boolean,
// unichar or gtype tag, and false for tags with no fixed width (void,
// strings, complex kinds).
func fixedWidth(t TypeTag) (int, bool) {
	switch t {
	case TagBoolean, TagInt8, TagUint8:
		return 1, true
	case TagInt16, TagUint16:
		return 2, true
	case TagInt32, TagUint32, TagFloat, TagUnichar:
		return 4, true
	case TagInt64, TagUint64, TagDouble, TagGType:
		return 8, true
	default:
		return 0, false
	}
}

// TypeExpr is the decoded form of a simple-type-blob, after resolving
// any complex indirection.
type TypeExpr struct {
	Tag     TypeTag
	Pointer bool

	// Populated only when Tag == TagInterface.
	InterfaceIndex uint32

	// Populated only when Tag == TagArray.
	ElementType    *TypeExpr
	ZeroTerminated bool
	HasLength      bool
	LengthArgIndex uint16

	// Populated only when Tag is TagGList or TagGSList.
	ListElementType *TypeExpr

	// Populated only when Tag == TagGHash.
	KeyType   *TypeExpr
	ValueType *TypeExpr
}

// decodeSimpleType decodes the 4-byte simple-type-blob at offset:
// bit 0 of the raw word discriminates a basic encoding
// (bit clear) from a forward to a complex type blob (bit set, with
// the offset recovered by clearing that bit — valid since every
// complex-blob offset is itself 4-byte aligned and so always has
// bit 0 clear).
func decodeSimpleType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	raw, err := ctx.buf.u32At(offset)
	if err != nil {
		return nil, ctx.fail(wrap(err, "type"))
	}

	if raw&1 != 0 {
		return decodeComplexType(ctx, raw&^1)
	}

	pointer := (raw>>1)&1 != 0
	tag := TypeTag((raw >> 2) & 0xFF)
	reserved := raw >> 10
	if reserved != 0 {
		return nil, ctx.fail(newError(KindInvalidBlob, "simple type blob at %d has nonzero reserved bits", offset))
	}
	if tag.isComplex() {
		return nil, ctx.fail(newError(KindInvalidBlob, "tag %s at %d is complex but reserved bit was not set", tag, offset))
	}
	if tag.isStringLike() && !pointer {
		return nil, ctx.fail(newError(KindInvalidBlob, "string-like tag %s at %d requires the pointer bit", tag, offset))
	}

	return &TypeExpr{Tag: tag, Pointer: pointer}, nil
}

// decodeComplexType decodes the complex type blob at offset, whose
// tag (byte 0) selects array / interface / list / slist / hash /
// error.
func decodeComplexType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	tagByte, err := ctx.buf.byteAt(offset)
	if err != nil {
		return nil, ctx.fail(wrap(err, "complex type"))
	}
	tag := TypeTag(tagByte)

	switch tag {
	case TagArray:
		return decodeArrayType(ctx, offset)
	case TagInterface:
		return decodeInterfaceType(ctx, offset)
	case TagGList, TagGSList:
		return decodeListType(ctx, offset, tag)
	case TagGHash:
		return decodeHashType(ctx, offset)
	case TagError:
		return decodeErrorType(ctx, offset)
	default:
		return nil, ctx.fail(newError(KindInvalidBlob, "unknown complex type tag %d at %d", tagByte, offset))
	}
}

// array-type blob layout (8 bytes):
//
//	byte 0: tag (TagArray)
//	byte 1: flags: bit 0 zero_terminated, bit 1 has_length
//	bytes 2-3: length argument index (valid only if has_length)
//	bytes 4-7: offset to the element simple-type-blob
func decodeArrayType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "array"))
	}
	lenIdx, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "array"))
	}
	elemOffset, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "array"))
	}

	elem, err := decodeSimpleType(ctx, elemOffset)
	if err != nil {
		return nil, err
	}

	// The length argument index is accepted without checking it against the enclosing signature.
	return &TypeExpr{
		Tag:            TagArray,
		ElementType:    elem,
		ZeroTerminated: flags&0x1 != 0,
		HasLength:      flags&0x2 != 0,
		LengthArgIndex: lenIdx,
	}, nil
}

// interface-type blob layout (4 bytes):
//
//	byte 0: tag (TagInterface)
//	byte 1: reserved
//	bytes 2-3: 1-based directory index of the target
func decodeInterfaceType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	idx, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface-ref"))
	}

	if _, ok := ctx.entryAt(uint32(idx)); !ok {
		return nil, ctx.fail(newError(KindInvalidBlob, "interface reference index %d out of range", idx))
	}
	// Non-local (opaque, blob_type 0) targets are accepted without
	// further checks; local targets are accepted for any blob_type
	// since an interface reference may legally point at any
	// registered-type kind.
	return &TypeExpr{Tag: TagInterface, Pointer: true, InterfaceIndex: uint32(idx)}, nil
}

// list/slist blob layout: 4-byte header (tag, flags, reserved) then
// one inline simple-type-blob naming the element type, whose pointer
// bit must be set.
func decodeListType(ctx *decodeCtx, offset uint32, tag TypeTag) (*TypeExpr, error) {
	elem, err := decodeSimpleType(ctx, offset+4)
	if err != nil {
		return nil, err
	}
	if !elem.Pointer {
		return nil, ctx.fail(newError(KindInvalidBlob, "%s element type must have the pointer bit set", tag))
	}
	return &TypeExpr{Tag: tag, Pointer: true, ListElementType: elem}, nil
}

// hash blob layout: 4-byte header then two inline simple-type-blobs
// (key, value), both requiring the pointer bit.
func decodeHashType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	key, err := decodeSimpleType(ctx, offset+4)
	if err != nil {
		return nil, err
	}
	if !key.Pointer {
		return nil, ctx.fail(newError(KindInvalidBlob, "hash key type must have the pointer bit set"))
	}
	val, err := decodeSimpleType(ctx, offset+8)
	if err != nil {
		return nil, err
	}
	if !val.Pointer {
		return nil, ctx.fail(newError(KindInvalidBlob, "hash value type must have the pointer bit set"))
	}
	return &TypeExpr{Tag: TagGHash, Pointer: true, KeyType: key, ValueType: val}, nil
}

// error-type blob layout (4 bytes): tag, then flags byte whose bit 0
// is the pointer flag, which must be set.
func decodeErrorType(ctx *decodeCtx, offset uint32) (*TypeExpr, error) {
	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "error-type"))
	}
	if flags&0x1 == 0 {
		return nil, ctx.fail(newError(KindInvalidBlob, "error type must have the pointer bit set"))
	}
	return &TypeExpr{Tag: TagError, Pointer: true}, nil
}
