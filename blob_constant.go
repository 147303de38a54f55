package gitypelib

// Constant is the decoded form of a ConstantBlob.
type Constant struct {
	Name   string
	Type   *TypeExpr
	Offset uint32
	Size   uint32
}

// decodeConstant decodes the 24-byte ConstantBlob at offset.
//
// Layout: blob_type (byte), flags (byte: deprecated), reserved
// (2 bytes), name offset (u32), inline simple-type-blob (4 bytes),
// value offset (u32), size (u32), reserved (4 bytes).
func decodeConstant(ctx *decodeCtx, offset uint32, checkType bool) (Constant, error) {
	ctx.push("constant")
	defer ctx.pop()

	if checkType {
		if err := checkBlobType(ctx, offset, BlobTypeConstant); err != nil {
			return Constant{}, err
		}
	}

	nameOffset, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return Constant{}, ctx.fail(wrap(err, "constant"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Constant{}, ctx.fail(err)
	}

	typ, err := decodeSimpleType(ctx, offset+8)
	if err != nil {
		return Constant{}, err
	}

	valueOffset, err := ctx.buf.u32At(offset + 12)
	if err != nil {
		return Constant{}, ctx.fail(wrap(err, "constant"))
	}
	size, err := ctx.buf.u32At(offset + 16)
	if err != nil {
		return Constant{}, ctx.fail(wrap(err, "constant"))
	}

	if !isAligned(valueOffset, 4) {
		return Constant{}, ctx.fail(newError(KindInvalidBlob, "constant %q payload offset %d is not 4-byte aligned", name, valueOffset))
	}
	if width, ok := fixedWidth(typ.Tag); ok && int(size) != width {
		return Constant{}, ctx.fail(newError(KindInvalidBlob,
			"constant %q declares size %d but its type %s has fixed width %d", name, size, typ.Tag, width))
	}

	return Constant{Name: name, Type: typ, Offset: valueOffset, Size: size}, nil
}
