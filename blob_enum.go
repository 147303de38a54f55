package gitypelib

// Enum is the decoded form of an EnumBlob or FlagsBlob.
type Enum struct {
	Name         string
	GTypeName    string
	GTypeInit    string
	Unregistered bool
	ErrorDomain  string
	Values       []Value
	Methods      []Function
}

// decodeEnum decodes the 24-byte EnumBlob/FlagsBlob at offset and its
// trailing values/methods tail.
//
// Layout: blob_type (byte), flags (byte: deprecated, unregistered),
// n_values (u16), n_methods (u16), reserved (u16), name offset (u32),
// gtype_name offset (u32), gtype_init offset (u32), error_domain
// offset (u32, 0 if none).
func decodeEnum(ctx *decodeCtx, offset uint32, want BlobType) (*Enum, error) {
	ctx.push(want.String())
	defer ctx.pop()

	if err := checkBlobType(ctx, offset, want); err != nil {
		return nil, err
	}

	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}
	nValues, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}
	nMethods, err := ctx.buf.u16At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}

	nameOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}
	gtypeNameOffset, err := ctx.buf.u32At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}
	gtypeInitOffset, err := ctx.buf.u32At(offset + 16)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
	}
	errorDomainOffset, err := ctx.buf.u32At(offset + 20)
	if err != nil {
		return nil, ctx.fail(wrap(err, "enum"))
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

	var errorDomain string
	if errorDomainOffset != 0 {
		errorDomain, err = validateName(ctx.buf, "error_domain", errorDomainOffset)
		if err != nil {
			return nil, ctx.fail(err)
		}
	}

	tail := offset + enumBlobSize
	values := make([]Value, 0, nValues)
	for i := 0; i < int(nValues); i++ {
		v, err := decodeValue(ctx, tail)
		if err != nil {
			return nil, err
		}
		// Duplicate values are accepted.
		values = append(values, v)
		tail += valueBlobSize
	}

	methods := make([]Function, 0, nMethods)
	for i := 0; i < int(nMethods); i++ {
		fn, err := decodeFunction(ctx, tail, containerNone, false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *fn)
		tail += functionBlobSize
	}

	return &Enum{
		Name:         name,
		GTypeName:    gtypeName,
		GTypeInit:    gtypeInit,
		Unregistered: unregistered,
		ErrorDomain:  errorDomain,
		Values:       values,
		Methods:      methods,
	}, nil
}
