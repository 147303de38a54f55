package gitypelib

// checkBlobType verifies that the byte at offset (every directory-
// addressable blob's first byte) equals want, the blob_type the
// directory entry declared.
func checkBlobType(ctx *decodeCtx, offset uint32, want BlobType) error {
	got, err := ctx.buf.byteAt(offset)
	if err != nil {
		return ctx.fail(wrap(err, "blob"))
	}
	if BlobType(got) != want {
		return ctx.fail(newError(KindInvalidBlob, "wrong blob type: directory says %s, blob says %s", want, BlobType(got)))
	}
	return nil
}

// containerKind names the kind of blob a method tail (function,
// signal, vfunc, ...) is nested in, used to enforce the
// constructor/setter/getter/wraps_vfunc matrix in decodeFunction.
type containerKind int

const (
	containerNone containerKind = iota
	containerStruct
	containerBoxed
	containerUnion
	containerObject
	containerInterface
)

func (k containerKind) allowsConstructor() bool {
	return k != containerNone
}

func (k containerKind) allowsAccessorFlags() bool {
	return k == containerObject || k == containerInterface
}
