package gitypelib

// Signature is the decoded form of a SignatureBlob: an optional
// return type plus a contiguous run of ArgBlobs.
type Signature struct {
	ReturnType    *TypeExpr // nil if the function/callback returns void
	MayReturnNull bool
	Throws        bool
	Args          []Arg
}

// Arg is one decoded ArgBlob.
type Arg struct {
	Name                                         string
	Type                                         *TypeExpr
	In, Out, CallerAllocates, Optional, Nullable bool
}

// decodeSignature decodes the 8-byte SignatureBlob header at offset
// plus its trailing ArgBlob run.
//
// Layout (8 bytes): return-type offset (u32, 0 = void), n_args (u16),
// flags (byte: bit0 may_return_null, bit1 throws), reserved (byte).
func decodeSignature(ctx *decodeCtx, offset uint32) (*Signature, error) {
	ctx.push("signature")
	defer ctx.pop()

	retOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return nil, ctx.fail(wrap(err, "signature"))
	}
	nArgs, err := ctx.buf.u16At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "signature"))
	}
	flags, err := ctx.buf.byteAt(offset + 6)
	if err != nil {
		return nil, ctx.fail(wrap(err, "signature"))
	}

	sig := &Signature{
		MayReturnNull: flags&0x1 != 0,
		Throws:        flags&0x2 != 0,
	}

	if retOffset != 0 {
		rt, err := decodeSimpleType(ctx, retOffset)
		if err != nil {
			return nil, err
		}
		sig.ReturnType = rt
	}

	argsStart := offset + signatureBlobSize
	sig.Args = make([]Arg, 0, nArgs)
	for i := 0; i < int(nArgs); i++ {
		argOffset := argsStart + uint32(i)*argBlobSize
		arg, err := decodeArg(ctx, argOffset)
		if err != nil {
			return nil, err
		}
		sig.Args = append(sig.Args, arg)
	}
	return sig, nil
}

// decodeArg decodes the 16-byte ArgBlob at offset.
//
// Layout: name offset (u32), flags (byte: in, out, caller_allocates,
// optional, nullable), reserved (3 bytes), inline simple-type-blob
// (4 bytes at offset+8), reserved (4 bytes).
func decodeArg(ctx *decodeCtx, offset uint32) (Arg, error) {
	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return Arg{}, ctx.fail(wrap(err, "arg"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Arg{}, ctx.fail(err)
	}

	flags, err := ctx.buf.byteAt(offset + 4)
	if err != nil {
		return Arg{}, ctx.fail(wrap(err, "arg"))
	}

	typ, err := decodeSimpleType(ctx, offset+8)
	if err != nil {
		return Arg{}, err
	}

	return Arg{
		Name:            name,
		Type:            typ,
		In:              flags&0x1 != 0,
		Out:             flags&0x2 != 0,
		CallerAllocates: flags&0x4 != 0,
		Optional:        flags&0x8 != 0,
		Nullable:        flags&0x10 != 0,
	}, nil
}
