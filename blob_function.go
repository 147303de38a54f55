package gitypelib

// Function is the decoded form of a FunctionBlob.
type Function struct {
	Name        string
	Symbol      string
	Signature   *Signature
	Constructor bool
	Setter      bool
	Getter      bool
	WrapsVFunc  bool
	Index       uint8
}

// decodeFunction decodes the 20-byte FunctionBlob at offset.
//
// Layout: blob_type (byte), flags (byte: deprecated, constructor,
// setter, getter, wraps_vfunc), index (byte), reserved (byte),
// name offset (u32), symbol offset (u32), signature offset (u32),
// reserved (4 bytes).
//
// container names the enclosing blob kind (containerNone for a
// top-level namespace function); it gates which of the constructor/
// setter/getter/wraps_vfunc flags are legal.
func decodeFunction(ctx *decodeCtx, offset uint32, container containerKind, checkType bool) (*Function, error) {
	ctx.push("function")
	defer ctx.pop()

	if checkType {
		if err := checkBlobType(ctx, offset, BlobTypeFunction); err != nil {
			return nil, err
		}
	}

	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "function"))
	}
	index, err := ctx.buf.byteAt(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "function"))
	}
	nameOffset, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "function"))
	}
	symbolOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "function"))
	}
	sigOffset, err := ctx.buf.u32At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "function"))
	}

	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}
	symbol, err := validateName(ctx.buf, "symbol", symbolOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}

	f := &Function{
		Name:        name,
		Symbol:      symbol,
		Constructor: flags&0x2 != 0,
		Setter:      flags&0x4 != 0,
		Getter:      flags&0x8 != 0,
		WrapsVFunc:  flags&0x10 != 0,
		Index:       index,
	}

	if f.Constructor && !container.allowsConstructor() {
		return nil, ctx.fail(newError(KindInvalidBlob, "constructor %q is not valid outside a container type", name))
	}
	if (f.Setter || f.Getter || f.WrapsVFunc) && !container.allowsAccessorFlags() {
		return nil, ctx.fail(newError(KindInvalidBlob,
			"setter/getter/wraps_vfunc only valid on object/interface methods (function %q)", name))
	}
	if index != 0 && !(f.Setter || f.Getter || f.WrapsVFunc) {
		return nil, ctx.fail(newError(KindInvalidBlob, "index is nonzero on function %q without setter/getter/wraps_vfunc", name))
	}

	sig, err := decodeSignature(ctx, sigOffset)
	if err != nil {
		return nil, err
	}
	f.Signature = sig

	if f.Constructor && (container == containerObject || container == containerInterface) {
		if sig.ReturnType == nil || sig.ReturnType.Tag != TagInterface {
			return nil, ctx.fail(newError(KindInvalidBlob, "constructor %q on object/interface must return an interface reference", name))
		}
	}

	return f, nil
}
