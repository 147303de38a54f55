package gitypelib

// Attribute is one key/value annotation from the attribute table,
// attached to the blob at Owner.
type Attribute struct {
	Owner uint32
	Key   string
	Value string
}

// decodeAttribute decodes the 12-byte AttributeBlob at offset.
//
// Layout: owner offset (u32, byte offset of the blob this attribute
// annotates), key name offset (u32), value name offset (u32).
func decodeAttribute(ctx *decodeCtx, offset uint32) (Attribute, error) {
	owner, err := ctx.buf.u32At(offset)
	if err != nil {
		return Attribute{}, ctx.fail(wrap(err, "attribute"))
	}
	keyOffset, err := ctx.buf.u32At(offset + 4)
	if err != nil {
		return Attribute{}, ctx.fail(wrap(err, "attribute"))
	}
	valOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return Attribute{}, ctx.fail(wrap(err, "attribute"))
	}

	key, err := validateName(ctx.buf, "attribute key", keyOffset)
	if err != nil {
		return Attribute{}, ctx.fail(err)
	}
	val, err := ctx.buf.stringAt(valOffset)
	if err != nil {
		return Attribute{}, ctx.fail(wrap(err, "attribute value"))
	}

	return Attribute{Owner: owner, Key: key, Value: val}, nil
}

// validateAttributeTable walks h.nAttributes contiguous
// AttributeBlobs starting at h.attributes, asserting the table fits
// entirely within the buffer. Owner is not cross-checked against any
// particular blob.
func validateAttributeTable(ctx *decodeCtx) error {
	if ctx.hdr.nAttributes == 0 {
		return nil
	}
	for i := uint32(0); i < ctx.hdr.nAttributes; i++ {
		offset := ctx.hdr.attributes + i*attributeBlobSize
		if _, err := decodeAttribute(ctx, offset); err != nil {
			return err
		}
	}
	return nil
}
