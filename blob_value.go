package gitypelib

// Value is the decoded form of a ValueBlob (one member of an
// enum/flags values tail). Duplicate values across a single enum are
// not rejected.
type Value struct {
	Name  string
	Value int32
}

// decodeValue decodes the 12-byte ValueBlob at offset.
//
// Layout: name offset (u32), value (i32), reserved (4 bytes).
func decodeValue(ctx *decodeCtx, offset uint32) (Value, error) {
	ctx.push("value")
	defer ctx.pop()

	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return Value{}, ctx.fail(wrap(err, "value"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Value{}, ctx.fail(err)
	}

	raw, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return Value{}, ctx.fail(wrap(err, "value"))
	}

	return Value{Name: name, Value: int32(raw)}, nil
}
