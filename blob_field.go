package gitypelib

// Field is the decoded form of a FieldBlob.
type Field struct {
	Name               string
	Readable, Writable bool
	Type               *TypeExpr // nil when EmbeddedCallback is non-nil
	EmbeddedCallback   *Callback
}

// decodeField decodes the 16-byte FieldBlob at offset. If the
// has_embedded_type flag is set, the CallbackBlob immediately
// following (at offset+fieldBlobSize) is decoded in place and
// the second result is true so the caller can account for it against
// n_field_callbacks.
//
// Layout: name offset (u32), flags (byte: readable, writable,
// has_embedded_type), reserved (byte), reserved (u16), inline
// simple-type-blob (4 bytes, meaningful only without embedded type),
// reserved (4 bytes).
func decodeField(ctx *decodeCtx, offset uint32) (Field, bool, error) {
	ctx.push("field")
	defer ctx.pop()

	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return Field{}, false, ctx.fail(wrap(err, "field"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Field{}, false, ctx.fail(err)
	}

	flags, err := ctx.buf.byteAt(offset + 4)
	if err != nil {
		return Field{}, false, ctx.fail(wrap(err, "field"))
	}

	f := Field{
		Name:     name,
		Readable: flags&0x1 != 0,
		Writable: flags&0x2 != 0,
	}
	hasEmbedded := flags&0x4 != 0

	if hasEmbedded {
		cb, err := decodeCallback(ctx, offset+fieldBlobSize, false)
		if err != nil {
			return Field{}, false, err
		}
		f.EmbeddedCallback = cb
		return f, true, nil
	}

	typ, err := decodeSimpleType(ctx, offset+8)
	if err != nil {
		return Field{}, false, err
	}
	f.Type = typ
	return f, false, nil
}
