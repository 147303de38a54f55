package gitypelib

// Struct is the decoded form of a StructBlob or BoxedBlob (same wire
// layout; Boxed is just the blob_type that selects the boxed
// variant).
type Struct struct {
	Name              string
	GTypeName         string
	GTypeInit         string
	Unregistered      bool
	DeprecatedVersion string
	Fields            []Field
	Methods           []Function
}

// decodeStruct decodes the 32-byte StructBlob/BoxedBlob at offset and
// its trailing fields/methods tail.
//
// Layout: blob_type (byte), flags (byte: deprecated, unregistered,
// has_deprecated_version), n_fields (u16), n_methods (u16), reserved
// (u16), name offset (u32), gtype_name offset (u32), gtype_init
// offset (u32), deprecated_version offset (u32), reserved (8 bytes).
func decodeStruct(ctx *decodeCtx, offset uint32, want BlobType) (*Struct, error) {
	ctx.push(want.String())
	defer ctx.pop()

	if err := checkBlobType(ctx, offset, want); err != nil {
		return nil, err
	}

	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}
	nFields, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}
	nMethods, err := ctx.buf.u16At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}

	nameOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}
	gtypeNameOffset, err := ctx.buf.u32At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}
	gtypeInitOffset, err := ctx.buf.u32At(offset + 16)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
	}
	depVersionOffset, err := ctx.buf.u32At(offset + 20)
	if err != nil {
		return nil, ctx.fail(wrap(err, "struct"))
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

	depVersion, err := validateVersionString(ctx.buf, "deprecated_version", depVersionOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}

	container := containerStruct
	if want == BlobTypeBoxed {
		container = containerBoxed
	}

	tail := offset + structBlobSize
	fields := make([]Field, 0, nFields)
	for i := 0; i < int(nFields); i++ {
		f, consumedCallback, err := decodeField(ctx, tail)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		if consumedCallback {
			tail += fieldBlobSize + callbackBlobSize
		} else {
			tail += fieldBlobSize
		}
	}

	methods := make([]Function, 0, nMethods)
	for i := 0; i < int(nMethods); i++ {
		fn, err := decodeFunction(ctx, tail, container, false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *fn)
		tail += functionBlobSize
	}

	return &Struct{
		Name:              name,
		GTypeName:         gtypeName,
		GTypeInit:         gtypeInit,
		Unregistered:      unregistered,
		DeprecatedVersion: depVersion,
		Fields:            fields,
		Methods:           methods,
	}, nil
}

// decodeRegisteredNames enforces the registered/unregistered
// discipline shared by struct/boxed, enum/flags and union: when
// unregistered is true both offsets must be zero; when false both
// must resolve to valid names. Object and interface blobs always
// validate both names directly.
func decodeRegisteredNames(ctx *decodeCtx, unregistered bool, gtypeNameOffset, gtypeInitOffset uint32) (string, string, error) {
	if unregistered {
		if gtypeNameOffset != 0 || gtypeInitOffset != 0 {
			return "", "", ctx.fail(newError(KindInvalidBlob, "unregistered type has nonzero gtype_name/gtype_init"))
		}
		return "", "", nil
	}
	gtypeName, err := validateName(ctx.buf, "gtype_name", gtypeNameOffset)
	if err != nil {
		return "", "", ctx.fail(err)
	}
	gtypeInit, err := validateName(ctx.buf, "gtype_init", gtypeInitOffset)
	if err != nil {
		return "", "", ctx.fail(err)
	}
	return gtypeName, gtypeInit, nil
}
