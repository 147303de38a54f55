package gitypelib

// Object is the decoded form of an ObjectBlob.
type Object struct {
	Name              string
	GTypeName         string
	GTypeInit         string
	DeprecatedVersion string
	Abstract          bool
	Fundamental       bool
	Parent            uint32 // 0, or a 1-based directory index
	GTypeStruct       uint32 // 0, or a 1-based directory index
	Interfaces        []uint16
	Fields            []Field
	Properties        []Property
	Methods           []Function
	Signals           []Signal
	VFuncs            []VFunc
	Constants         []Constant
}

// decodeObject decodes the 60-byte ObjectBlob at offset and its
// trailing interfaces/fields/properties/methods/signals/vfuncs/
// constants tail.
//
// Layout: blob_type (byte), flags (byte: deprecated,
// has_deprecated_version, abstract, fundamental), n_interfaces (u16),
// n_fields (u16), n_properties (u16), n_methods (u16), n_signals
// (u16), n_vfuncs (u16), n_constants (u16), n_field_callbacks (u16),
// reserved (u16), name offset (u32), gtype_name offset (u32),
// gtype_init offset (u32), parent (u32), gtype_struct (u32),
// deprecated_version offset (u32), reserved (16 bytes).
func decodeObject(ctx *decodeCtx, offset uint32) (*Object, error) {
	ctx.push("object")
	defer ctx.pop()

	if err := checkBlobType(ctx, offset, BlobTypeObject); err != nil {
		return nil, err
	}

	flags, err := ctx.buf.byteAt(offset + 1)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nInterfaces, err := ctx.buf.u16At(offset + 2)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nFields, err := ctx.buf.u16At(offset + 4)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nProperties, err := ctx.buf.u16At(offset + 6)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nMethods, err := ctx.buf.u16At(offset + 8)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nSignals, err := ctx.buf.u16At(offset + 10)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nVFuncs, err := ctx.buf.u16At(offset + 12)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nConstants, err := ctx.buf.u16At(offset + 14)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	nFieldCallbacksWant, err := ctx.buf.u16At(offset + 16)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}

	nameOffset, err := ctx.buf.u32At(offset + 20)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	gtypeNameOffset, err := ctx.buf.u32At(offset + 24)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	gtypeInitOffset, err := ctx.buf.u32At(offset + 28)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	parent, err := ctx.buf.u32At(offset + 32)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	gtypeStruct, err := ctx.buf.u32At(offset + 36)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
	}
	depVersionOffset, err := ctx.buf.u32At(offset + 40)
	if err != nil {
		return nil, ctx.fail(wrap(err, "object"))
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

	if parent != 0 {
		target, ok := ctx.entryAt(parent)
		if !ok {
			return nil, ctx.fail(newError(KindInvalidBlob, "parent index %d out of range", parent))
		}
		if target.Local && target.BlobType != BlobTypeObject {
			return nil, ctx.fail(newError(KindInvalidBlob, "parent index %d is not an object (got %s)", parent, target.BlobType))
		}
	}
	if gtypeStruct != 0 {
		target, ok := ctx.entryAt(gtypeStruct)
		if !ok {
			return nil, ctx.fail(newError(KindInvalidBlob, "gtype_struct index %d out of range", gtypeStruct))
		}
		if target.Local && target.BlobType != BlobTypeStruct {
			return nil, ctx.fail(newError(KindInvalidBlob, "gtype_struct index %d is not a struct (got %s)", gtypeStruct, target.BlobType))
		}
	}

	tail := offset + objectBlobSize

	interfaces := make([]uint16, 0, nInterfaces)
	for i := 0; i < int(nInterfaces); i++ {
		idx, err := ctx.buf.u16At(tail)
		if err != nil {
			return nil, ctx.fail(wrap(err, "object interfaces"))
		}
		interfaces = append(interfaces, idx)
		tail += 2
	}
	tail = alignTo4(tail)

	fields := make([]Field, 0, nFields)
	fieldCallbacks := 0
	for i := 0; i < int(nFields); i++ {
		f, consumedCallback, err := decodeField(ctx, tail)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
		if consumedCallback {
			fieldCallbacks++
			tail += fieldBlobSize + callbackBlobSize
		} else {
			tail += fieldBlobSize
		}
	}
	if fieldCallbacks != int(nFieldCallbacksWant) {
		return nil, ctx.fail(newError(KindInvalidBlob,
			"object %q: n_field_callbacks declares %d, observed %d", name, nFieldCallbacksWant, fieldCallbacks))
	}

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
		fn, err := decodeFunction(ctx, tail, containerObject, false)
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

	return &Object{
		Name:              name,
		GTypeName:         gtypeName,
		GTypeInit:         gtypeInit,
		DeprecatedVersion: depVersion,
		Abstract:          flags&0x4 != 0,
		Fundamental:       flags&0x8 != 0,
		Parent:            parent,
		GTypeStruct:       gtypeStruct,
		Interfaces:        interfaces,
		Fields:            fields,
		Properties:        properties,
		Methods:           methods,
		Signals:           signals,
		VFuncs:            vfuncs,
		Constants:         constants,
	}, nil
}
