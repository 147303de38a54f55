package gitypelib

// validate runs the full structural validation pass: header (already
// done by readHeader), then every directory entry, then the attribute
// table.
func validate(buf *buffer, h *header, entries []DirectoryEntry) error {
	ctx := &decodeCtx{buf: buf, hdr: h, entries: entries}

	for i, e := range entries {
		idx := i + 1
		ctx.push(entryContext(idx))
		if err := validateEntry(ctx, e, idx, h); err != nil {
			ctx.pop()
			return err
		}
		ctx.pop()
	}

	if err := validateAttributeTable(ctx); err != nil {
		return err
	}
	return nil
}

func validateEntry(ctx *decodeCtx, e DirectoryEntry, idx int, h *header) error {
	isLocalRange := idx <= int(h.nLocalEntries)

	if isLocalRange && !e.Local {
		return ctx.fail(newError(KindInvalidDirectory, "entry %d should be local but is marked non-local", idx))
	}
	if !isLocalRange && e.Local {
		return ctx.fail(newError(KindInvalidDirectory, "entry %d should be non-local but is marked local", idx))
	}

	if !e.Local {
		if _, err := validateName(ctx.buf, "namespace", e.Offset); err != nil {
			return ctx.fail(err)
		}
		return nil
	}

	if !isAligned(e.Offset, 4) {
		return ctx.fail(newError(KindInvalidDirectory, "entry %d offset %d is not 4-byte aligned", idx, e.Offset))
	}

	return validateBlob(ctx, e)
}

// validateBlob dispatches to the decoder matching e.BlobType and
// discards the typed result: validation only cares whether decoding
// succeeds, since each decoder enforces its own local invariants.
func validateBlob(ctx *decodeCtx, e DirectoryEntry) error {
	switch e.BlobType {
	case BlobTypeFunction:
		_, err := decodeFunction(ctx, e.Offset, containerNone, true)
		return err
	case BlobTypeCallback:
		_, err := decodeCallback(ctx, e.Offset, true)
		return err
	case BlobTypeStruct:
		_, err := decodeStruct(ctx, e.Offset, BlobTypeStruct)
		return err
	case BlobTypeBoxed:
		_, err := decodeStruct(ctx, e.Offset, BlobTypeBoxed)
		return err
	case BlobTypeEnum:
		_, err := decodeEnum(ctx, e.Offset, BlobTypeEnum)
		return err
	case BlobTypeFlags:
		_, err := decodeEnum(ctx, e.Offset, BlobTypeFlags)
		return err
	case BlobTypeObject:
		_, err := decodeObject(ctx, e.Offset)
		return err
	case BlobTypeInterface:
		_, err := decodeInterface(ctx, e.Offset)
		return err
	case BlobTypeConstant:
		_, err := decodeConstant(ctx, e.Offset, true)
		return err
	case BlobTypeUnion:
		_, err := decodeUnion(ctx, e.Offset)
		return err
	default:
		return ctx.fail(newError(KindInvalidEntry, "local entry has unexpected blob_type %s", e.BlobType))
	}
}

// readAllEntries decodes every directory entry (1..n_entries). New
// calls it during construction, and both validate and the lookups work
// over its result (lookups need the full directory even with
// SkipValidation set).
func readAllEntries(buf *buffer, h *header) ([]DirectoryEntry, error) {
	entries := make([]DirectoryEntry, 0, h.nEntries)
	for i := 1; i <= int(h.nEntries); i++ {
		e, err := readDirectoryEntry(buf, h, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
