package gitypelib

// Callback is the decoded form of a CallbackBlob.
type Callback struct {
	Name      string
	Signature *Signature
}

// decodeCallback decodes the 12-byte CallbackBlob at offset.
//
// Layout: blob_type (byte), flags (byte: deprecated), reserved
// (2 bytes), name offset (u32), signature offset (u32).
func decodeCallback(ctx *decodeCtx, offset uint32, checkType bool) (*Callback, error) {
	ctx.push("callback")
	defer ctx.pop()

	if checkType {
		if err := checkBlobType(ctx, offset, BlobTypeCallback); err != nil {
			return nil, err
		}
	}

	nameOffset, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "callback"))
	}
	sigOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "callback"))
	}

	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}

	sig, err := decodeSignature(ctx, sigOffset)
	if err != nil {
		return nil, err
	}

	return &Callback{Name: name, Signature: sig}, nil
}
