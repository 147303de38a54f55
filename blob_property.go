package gitypelib

// Property is the decoded form of a PropertyBlob.
type Property struct {
	Name                                         string
	Readable, Writable, Construct, ConstructOnly bool
	Type                                         *TypeExpr
}

// decodeProperty decodes the 16-byte PropertyBlob at offset.
//
// Layout: name offset (u32), flags (byte: readable, writable,
// construct, construct_only), reserved (3 bytes), inline
// simple-type-blob (4 bytes at offset+8), reserved (4 bytes).
func decodeProperty(ctx *decodeCtx, offset uint32) (Property, error) {
	ctx.push("property")
	defer ctx.pop()

	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return Property{}, ctx.fail(wrap(err, "property"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Property{}, ctx.fail(err)
	}

	flags, err := ctx.buf.byteAt(offset + 4)
	if err != nil {
		return Property{}, ctx.fail(wrap(err, "property"))
	}

	typ, err := decodeSimpleType(ctx, offset+8)
	if err != nil {
		return Property{}, err
	}

	return Property{
		Name:          name,
		Readable:      flags&0x1 != 0,
		Writable:      flags&0x2 != 0,
		Construct:     flags&0x4 != 0,
		ConstructOnly: flags&0x8 != 0,
		Type:          typ,
	}, nil
}
