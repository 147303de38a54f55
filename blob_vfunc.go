package gitypelib

// VFunc is the decoded form of a VFuncBlob.
type VFunc struct {
	Name                                       string
	MustChainUp, MustOverride, MustNotOverride bool
	HasClassClosure                            bool
	ClassClosureIndex                          uint8
	Signature                                  *Signature
}

// decodeVFunc decodes the 20-byte VFuncBlob at offset. nVFuncs is the
// enclosing container's declared vfunc count, used to bounds-check
// ClassClosureIndex (analogous to decodeSignal, but against n_vfuncs).
//
// Layout: name offset (u32), flags (byte: must_chain_up,
// must_override, must_not_override, has_class_closure), class
// closure index (byte), vtable offset (u16, unvalidated), signature
// offset (u32), reserved (8 bytes).
func decodeVFunc(ctx *decodeCtx, offset uint32, nVFuncs uint16) (VFunc, error) {
	ctx.push("vfunc")
	defer ctx.pop()

	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return VFunc{}, ctx.fail(wrap(err, "vfunc"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return VFunc{}, ctx.fail(err)
	}

	flags, err := ctx.buf.byteAt(offset + 4)
	if err != nil {
		return VFunc{}, ctx.fail(wrap(err, "vfunc"))
	}
	closureIdx, err := ctx.buf.byteAt(offset + 5)
	if err != nil {
		return VFunc{}, ctx.fail(wrap(err, "vfunc"))
	}

	v := VFunc{
		Name:              name,
		MustChainUp:       flags&0x1 != 0,
		MustOverride:      flags&0x2 != 0,
		MustNotOverride:   flags&0x4 != 0,
		HasClassClosure:   flags&0x8 != 0,
		ClassClosureIndex: closureIdx,
	}
	if v.HasClassClosure && uint16(closureIdx) >= nVFuncs {
		return VFunc{}, ctx.fail(newError(KindInvalidBlob,
			"vfunc %q class closure index %d out of range (n_vfuncs=%d)", name, closureIdx, nVFuncs))
	}

	sigOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return VFunc{}, ctx.fail(wrap(err, "vfunc"))
	}
	sig, err := decodeSignature(ctx, sigOffset)
	if err != nil {
		return VFunc{}, err
	}
	v.Signature = sig

	return v, nil
}
