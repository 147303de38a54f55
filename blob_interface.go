package gitypelib

// Interface is the decoded form of an InterfaceBlob.
type Interface struct {
	Name              string
	GTypeName         string
	GTypeInit         string
	DeprecatedVersion string
	Prerequisites     []uint16
	Properties        []Property
	Methods           []Function
	Signals           []Signal
	VFuncs            []VFunc
	Constants         []Constant
}

// decodeInterface decodes the 40-byte InterfaceBlob at offset and its
// trailing prerequisites/properties/methods/signals/vfuncs/constants
// tail.
//
// Layout: blob_type (byte), flags (byte: deprecated,
// has_deprecated_version), n_prerequisites (u16), n_properties (u16),
// n_methods (u16), n_signals (u16), n_vfuncs (u16), n_constants
// (u16), reserved (u16), name offset (u32), gtype_name offset (u32),
// gtype_init offset (u32), deprecated_version offset (u32), reserved
// (8 bytes).
func decodeInterface(ctx *decodeCtx, offset uint32) (*Interface, error) {
	ctx.push("interface")
	defer ctx.pop()

	if err := checkBlobType(ctx, offset, BlobTypeInterface); err != nil {
		return nil, err
	}

	nPrereqs, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	nProperties, err := ctx.buf.u16At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	nMethods, err := ctx.buf.u16At(offset + 6)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	nSignals, err := ctx.buf.u16At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	nVFuncs, err := ctx.buf.u16At(offset + 10)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	nConstants, err := ctx.buf.u16At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}

	nameOffset, err := ctx.buf.u32At(offset + 16)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	gtypeNameOffset, err := ctx.buf.u32At(offset + 20)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	gtypeInitOffset, err := ctx.buf.u32At(offset + 24)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}
	depVersionOffset, err := ctx.buf.u32At(offset + 28)
	if err != nil {
		return nil, ctx.fail(wrap(err, "interface"))
	}

	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}
	gtypeName, err := validateName(ctx.buf, "gtype_name", gtypeNameOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}
	gtypeInit, err := validateName(ctx.buf, "gtype_init", gtypeInitOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}
	depVersion, err := validateVersionString(ctx.buf, "deprecated_version", depVersionOffset)
	if err != nil {
		return nil, ctx.fail(err)
	}

	tail := offset + interfaceBlobSize

	prereqs := make([]uint16, 0, nPrereqs)
	for i := 0; i < int(nPrereqs); i++ {
		idx, err := ctx.buf.u16At(tail)
		if err != nil {
			return nil, ctx.fail(wrap(err, "interface prerequisites"))
		}
		if idx == 0 {
			return nil, ctx.fail(newError(KindInvalidBlob, "prerequisite index is zero"))
		}
		target, ok := ctx.entryAt(uint32(idx))
		if !ok {
			return nil, ctx.fail(newError(KindInvalidBlob, "prerequisite index %d out of range", idx))
		}
		if target.Local && target.BlobType != BlobTypeInterface && target.BlobType != BlobTypeObject {
			return nil, ctx.fail(newError(KindInvalidBlob, "prerequisite index %d is neither interface nor object (got %s)", idx, target.BlobType))
		}
		prereqs = append(prereqs, idx)
		tail += 2
	}
	tail = alignTo4(tail)

	properties := make([]Property, 0, nProperties)
	for i := 0; i < int(nProperties); i++ {
		p, err := decodeProperty(ctx, tail)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
		tail += propertyBlobSize
	}

	methods := make([]Function, 0, nMethods)
	for i := 0; i < int(nMethods); i++ {
		fn, err := decodeFunction(ctx, tail, containerInterface, false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, *fn)
		tail += functionBlobSize
	}

	signals := make([]Signal, 0, nSignals)
	for i := 0; i < int(nSignals); i++ {
		s, err := decodeSignal(ctx, tail, nSignals)
		if err != nil {
			return nil, err
		}
		signals = append(signals, s)
		tail += signalBlobSize
	}

	vfuncs := make([]VFunc, 0, nVFuncs)
	for i := 0; i < int(nVFuncs); i++ {
		v, err := decodeVFunc(ctx, tail, nVFuncs)
		if err != nil {
			return nil, err
		}
		vfuncs = append(vfuncs, v)
		tail += vfuncBlobSize
	}

	constants := make([]Constant, 0, nConstants)
	for i := 0; i < int(nConstants); i++ {
		c, err := decodeConstant(ctx, tail, false)
		if err != nil {
			return nil, err
		}
		constants = append(constants, c)
		tail += constantBlobSize
	}

	return &Interface{
		Name:              name,
		GTypeName:         gtypeName,
		GTypeInit:         gtypeInit,
		DeprecatedVersion: depVersion,
		Prerequisites:     prereqs,
		Properties:        properties,
		Methods:           methods,
		Signals:           signals,
		VFuncs:            vfuncs,
		Constants:         constants,
	}, nil
}
