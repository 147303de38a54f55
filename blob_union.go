package gitypelib

// Union is the decoded form of a UnionBlob. Unions are accepted
// as-is: the fixed header is validated but the fields/functions tail
// is not walked.
type Union struct {
	Name         string
	GTypeName    string
	GTypeInit    string
	Unregistered bool
}

// decodeUnion decodes the 40-byte UnionBlob's fixed header at offset
// without walking its tail.
//
// Layout: blob_type (byte), flags (byte: deprecated, unregistered,
// has_deprecated_version), n_fields (u16), n_functions (u16),
// reserved (u16), name offset (u32), gtype_name offset (u32),
// gtype_init offset (u32), deprecated_version offset (u32), reserved
// (16 bytes).
func decodeUnion(ctx *decodeCtx, offset uint32) (*Union, error) {
	ctx.push("union")
	defer ctx.pop()

	if err := checkBlobType(ctx, offset, BlobTypeUnion); err != nil {
		return nil, err
	}

	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "union"))
	}

	nameOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "union"))
	}
	gtypeNameOffset, err := ctx.buf.u32At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "union"))
	}
	gtypeInitOffset, err := ctx.buf.u32At(offset + 16)
	if err != nil {
		return nil, ctx.fail(wrap(err, "union"))
	}

	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}

	unregistered := flags&0x2 != 0
	gtypeName, gtypeInit, err := decodeRegisteredNames(ctx, unregistered, gtypeNameOffset, gtypeInitOffset)
	if err != nil {
		return nil, err
	}

	return &Union{
		Name:         name,
		GTypeName:    gtypeName,
		GTypeInit:    gtypeInit,
		Unregistered: unregistered,
	}, nil
}
