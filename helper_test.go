package gitypelib

import (
	"encoding/binary"
)

// imageBuilder assembles typelib images byte-by-byte for tests. It
// writes a well-formed header up front and lets each test append
// strings and blobs, recording their offsets, before closing the
// image with finish (which stamps the declared size).
type imageBuilder struct {
	buf []byte
}

// Header field offsets used by tests that mutate a finished image.
const (
	hdrOffNEntries      = 20
	hdrOffNLocalEntries = 22
	hdrOffDirectory     = 24
	hdrOffNAttributes   = 28
	hdrOffAttributes    = 32
	hdrOffDependencies  = 36
	hdrOffSize          = 40
	hdrOffNamespace     = 44
	hdrOffSharedLibrary = 52
	hdrOffCPrefix       = 56
	hdrOffSections      = 60
	hdrOffBlobSizes     = 64
)

func newImageBuilder(namespace string) *imageBuilder {
	b := &imageBuilder{buf: make([]byte, headerSize)}
	copy(b.buf, magic[:])
	b.buf[16] = majorVersion
	b.buf[17] = 1

	sizes := []uint16{
		entryBlobSize, functionBlobSize, callbackBlobSize,
		structBlobSize, enumBlobSize, objectBlobSize,
		interfaceBlobSize, unionBlobSize, constantBlobSize,
		signatureBlobSize, argBlobSize, fieldBlobSize,
		propertyBlobSize, signalBlobSize, vfuncBlobSize,
		valueBlobSize, attributeBlobSize,
	}
	for i, v := range sizes {
		b.putU16(hdrOffBlobSizes+uint32(i)*2, v)
	}

	b.putU32(hdrOffNamespace, b.addString(namespace))
	// Directory defaults to just past the header; tests with entries
	// overwrite it via setDirectory.
	b.putU32(hdrOffDirectory, headerSize)
	return b
}

func (b *imageBuilder) putU16(off uint32, v uint16) {
	binary.LittleEndian.PutUint16(b.buf[off:], v)
}

func (b *imageBuilder) putU32(off uint32, v uint32) {
	binary.LittleEndian.PutUint32(b.buf[off:], v)
}

func (b *imageBuilder) align4() {
	for len(b.buf)%4 != 0 {
		b.buf = append(b.buf, 0)
	}
}

// addString appends s NUL-terminated and returns its offset.
func (b *imageBuilder) addString(s string) uint32 {
	off := uint32(len(b.buf))
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return off
}

// addBlob appends p at the next 4-byte boundary and returns its offset.
func (b *imageBuilder) addBlob(p []byte) uint32 {
	b.align4()
	off := uint32(len(b.buf))
	b.buf = append(b.buf, p...)
	return off
}

// dirEntry describes one directory entry for setDirectory.
type dirEntry struct {
	blobType BlobType
	local    bool
	nameOff  uint32
	offset   uint32
}

// setDirectory appends the directory table and stamps the header's
// entry counts. nLocal is the count of leading local entries.
func (b *imageBuilder) setDirectory(entries []dirEntry, nLocal int) {
	b.align4()
	b.putU32(hdrOffDirectory, uint32(len(b.buf)))
	b.putU16(hdrOffNEntries, uint16(len(entries)))
	b.putU16(hdrOffNLocalEntries, uint16(nLocal))
	for _, e := range entries {
		rec := make([]byte, entryBlobSize)
		rec[0] = byte(e.blobType)
		if e.local {
			rec[1] = 1
		}
		binary.LittleEndian.PutUint32(rec[4:], e.nameOff)
		binary.LittleEndian.PutUint32(rec[8:], e.offset)
		b.buf = append(b.buf, rec...)
	}
}

// finish stamps the declared size and returns the image.
func (b *imageBuilder) finish() []byte {
	b.putU32(hdrOffSize, uint32(len(b.buf)))
	return b.buf
}

// simpleTypeWord encodes a 4-byte basic simple-type-blob.
func simpleTypeWord(tag TypeTag, pointer bool) []byte {
	raw := uint32(tag) << 2
	if pointer {
		raw |= 1 << 1
	}
	w := make([]byte, 4)
	binary.LittleEndian.PutUint32(w, raw)
	return w
}

// addBasicType appends an out-of-line basic simple-type-blob and
// returns its offset, for use as a signature's return-type offset.
func (b *imageBuilder) addBasicType(tag TypeTag, pointer bool) uint32 {
	return b.addBlob(simpleTypeWord(tag, pointer))
}

// addInterfaceRefType appends an interface-type blob targeting the
// 1-based directory index, then a simple-type word forwarding to it
// (the blob offset with bit 0 set), and returns the word's offset.
func (b *imageBuilder) addInterfaceRefType(index uint16) uint32 {
	blob := make([]byte, interfaceTypeBlobSize)
	blob[0] = byte(TagInterface)
	binary.LittleEndian.PutUint16(blob[2:], index)
	word := b.addBlob(blob) | 1
	w := make([]byte, 4)
	binary.LittleEndian.PutUint32(w, word)
	return b.addBlob(w)
}

// addSignature appends an 8-byte SignatureBlob with no arguments.
// retTypeOff of 0 means a void return.
func (b *imageBuilder) addSignature(retTypeOff uint32) uint32 {
	blob := make([]byte, signatureBlobSize)
	binary.LittleEndian.PutUint32(blob, retTypeOff)
	return b.addBlob(blob)
}

// functionBlob encodes a 20-byte FunctionBlob.
func functionBlob(flags, index byte, nameOff, symbolOff, sigOff uint32) []byte {
	blob := make([]byte, functionBlobSize)
	blob[0] = byte(BlobTypeFunction)
	blob[1] = flags
	blob[2] = index
	binary.LittleEndian.PutUint32(blob[4:], nameOff)
	binary.LittleEndian.PutUint32(blob[8:], symbolOff)
	binary.LittleEndian.PutUint32(blob[12:], sigOff)
	return blob
}

// callbackBlob encodes a 12-byte CallbackBlob.
func callbackBlob(nameOff, sigOff uint32) []byte {
	blob := make([]byte, callbackBlobSize)
	blob[0] = byte(BlobTypeCallback)
	binary.LittleEndian.PutUint32(blob[4:], nameOff)
	binary.LittleEndian.PutUint32(blob[8:], sigOff)
	return blob
}

// fieldBlob encodes a 16-byte FieldBlob with an inline type word.
func fieldBlob(nameOff uint32, flags byte, typeWord []byte) []byte {
	blob := make([]byte, fieldBlobSize)
	binary.LittleEndian.PutUint32(blob, nameOff)
	blob[4] = flags
	copy(blob[8:12], typeWord)
	return blob
}

// signalBlob encodes a 16-byte SignalBlob.
func signalBlob(nameOff uint32, flags, closureIdx byte, sigOff uint32) []byte {
	blob := make([]byte, signalBlobSize)
	binary.LittleEndian.PutUint32(blob, nameOff)
	blob[4] = flags
	blob[5] = closureIdx
	binary.LittleEndian.PutUint32(blob[8:], sigOff)
	return blob
}

// constantBlob encodes a 24-byte ConstantBlob with an inline type word.
func constantBlob(nameOff uint32, typeWord []byte, valueOff, size uint32) []byte {
	blob := make([]byte, constantBlobSize)
	blob[0] = byte(BlobTypeConstant)
	binary.LittleEndian.PutUint32(blob[4:], nameOff)
	copy(blob[8:12], typeWord)
	binary.LittleEndian.PutUint32(blob[12:], valueOff)
	binary.LittleEndian.PutUint32(blob[16:], size)
	return blob
}

// enumBlob encodes a 24-byte EnumBlob prefix. Values and methods are
// appended by the caller.
func enumBlob(kind BlobType, flags byte, nValues, nMethods uint16, nameOff, gtypeNameOff, gtypeInitOff, errorDomainOff uint32) []byte {
	blob := make([]byte, enumBlobSize)
	blob[0] = byte(kind)
	blob[1] = flags
	binary.LittleEndian.PutUint16(blob[2:], nValues)
	binary.LittleEndian.PutUint16(blob[4:], nMethods)
	binary.LittleEndian.PutUint32(blob[8:], nameOff)
	binary.LittleEndian.PutUint32(blob[12:], gtypeNameOff)
	binary.LittleEndian.PutUint32(blob[16:], gtypeInitOff)
	binary.LittleEndian.PutUint32(blob[20:], errorDomainOff)
	return blob
}

// valueBlob encodes a 12-byte ValueBlob.
func valueBlob(nameOff uint32, value int32) []byte {
	blob := make([]byte, valueBlobSize)
	binary.LittleEndian.PutUint32(blob, nameOff)
	binary.LittleEndian.PutUint32(blob[4:], uint32(value))
	return blob
}

// objectHeader captures the counts and references of a 60-byte
// ObjectBlob prefix; the tail is appended by the caller in order.
type objectHeader struct {
	flags           byte
	nInterfaces     uint16
	nFields         uint16
	nProperties     uint16
	nMethods        uint16
	nSignals        uint16
	nVFuncs         uint16
	nConstants      uint16
	nFieldCallbacks uint16
	nameOff         uint32
	gtypeNameOff    uint32
	gtypeInitOff    uint32
	parent          uint32
	gtypeStruct     uint32
	depVersionOff   uint32
}

func objectBlob(h objectHeader) []byte {
	blob := make([]byte, objectBlobSize)
	blob[0] = byte(BlobTypeObject)
	blob[1] = h.flags
	binary.LittleEndian.PutUint16(blob[2:], h.nInterfaces)
	binary.LittleEndian.PutUint16(blob[4:], h.nFields)
	binary.LittleEndian.PutUint16(blob[6:], h.nProperties)
	binary.LittleEndian.PutUint16(blob[8:], h.nMethods)
	binary.LittleEndian.PutUint16(blob[10:], h.nSignals)
	binary.LittleEndian.PutUint16(blob[12:], h.nVFuncs)
	binary.LittleEndian.PutUint16(blob[14:], h.nConstants)
	binary.LittleEndian.PutUint16(blob[16:], h.nFieldCallbacks)
	binary.LittleEndian.PutUint32(blob[20:], h.nameOff)
	binary.LittleEndian.PutUint32(blob[24:], h.gtypeNameOff)
	binary.LittleEndian.PutUint32(blob[28:], h.gtypeInitOff)
	binary.LittleEndian.PutUint32(blob[32:], h.parent)
	binary.LittleEndian.PutUint32(blob[36:], h.gtypeStruct)
	binary.LittleEndian.PutUint32(blob[40:], h.depVersionOff)
	return blob
}

// interfaceHeader captures the counts of a 40-byte InterfaceBlob
// prefix; the tail (starting with the prerequisite list) follows.
type interfaceHeader struct {
	nPrereqs      uint16
	nProperties   uint16
	nMethods      uint16
	nSignals      uint16
	nVFuncs       uint16
	nConstants    uint16
	nameOff       uint32
	gtypeNameOff  uint32
	gtypeInitOff  uint32
	depVersionOff uint32
}

func interfaceBlob(h interfaceHeader) []byte {
	blob := make([]byte, interfaceBlobSize)
	blob[0] = byte(BlobTypeInterface)
	binary.LittleEndian.PutUint16(blob[2:], h.nPrereqs)
	binary.LittleEndian.PutUint16(blob[4:], h.nProperties)
	binary.LittleEndian.PutUint16(blob[6:], h.nMethods)
	binary.LittleEndian.PutUint16(blob[8:], h.nSignals)
	binary.LittleEndian.PutUint16(blob[10:], h.nVFuncs)
	binary.LittleEndian.PutUint16(blob[12:], h.nConstants)
	binary.LittleEndian.PutUint32(blob[16:], h.nameOff)
	binary.LittleEndian.PutUint32(blob[20:], h.gtypeNameOff)
	binary.LittleEndian.PutUint32(blob[24:], h.gtypeInitOff)
	binary.LittleEndian.PutUint32(blob[28:], h.depVersionOff)
	return blob
}

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, v)
	return b
}

// buildMinimal builds the S1 image: namespace ns, no entries.
func buildMinimal(ns string) []byte {
	return newImageBuilder(ns).finish()
}

// helloImage is the S2 fixture: one local function "hello" returning
// int32 and taking no arguments, plus the offsets mutation tests need.
type helloImage struct {
	data      []byte
	funcOff   uint32 // offset of the FunctionBlob
	nameOff   uint32 // offset of "hello" in the string pool
	symbolOff uint32
}

func buildHello() helloImage {
	b := newImageBuilder("X")
	nameOff := b.addString("hello")
	symbolOff := b.addString("x_hello")
	retOff := b.addBasicType(TagInt32, false)
	sigOff := b.addSignature(retOff)
	funcOff := b.addBlob(functionBlob(0, 0, nameOff, symbolOff, sigOff))
	b.setDirectory([]dirEntry{
		{blobType: BlobTypeFunction, local: true, nameOff: nameOff, offset: funcOff},
	}, 1)
	return helloImage{
		data:      b.finish(),
		funcOff:   funcOff,
		nameOff:   nameOff,
		symbolOff: symbolOff,
	}
}

// buildObjectWithCallbackField builds the S5 fixture: an object "Foo"
// with one callback-typed field, declaring nFieldCallbacks in the
// header (1 is consistent, 0 reproduces the count-mismatch scenario).
func buildObjectWithCallbackField(nFieldCallbacks uint16) []byte {
	b := newImageBuilder("X")
	objName := b.addString("Foo")
	gtypeName := b.addString("XFoo")
	gtypeInit := b.addString("x_foo_get_type")
	fieldName := b.addString("handler")
	cbName := b.addString("FooHandler")
	sigOff := b.addSignature(0)

	blob := objectBlob(objectHeader{
		nFields:         1,
		nFieldCallbacks: nFieldCallbacks,
		nameOff:         objName,
		gtypeNameOff:    gtypeName,
		gtypeInitOff:    gtypeInit,
	})
	blob = append(blob, fieldBlob(fieldName, 0x4, make([]byte, 4))...)
	blob = append(blob, callbackBlob(cbName, sigOff)...)
	objOff := b.addBlob(blob)

	b.setDirectory([]dirEntry{
		{blobType: BlobTypeObject, local: true, nameOff: objName, offset: objOff},
	}, 1)
	return b.finish()
}

// buildObjectWithSignal builds an object with one signal whose flags
// byte is signalFlags, exercising run-flag exclusivity.
func buildObjectWithSignal(signalFlags byte) []byte {
	b := newImageBuilder("X")
	objName := b.addString("Emitter")
	gtypeName := b.addString("XEmitter")
	gtypeInit := b.addString("x_emitter_get_type")
	sigName := b.addString("changed")
	sigOff := b.addSignature(0)

	blob := objectBlob(objectHeader{
		nSignals:     1,
		nameOff:      objName,
		gtypeNameOff: gtypeName,
		gtypeInitOff: gtypeInit,
	})
	blob = append(blob, signalBlob(sigName, signalFlags, 0, sigOff)...)
	objOff := b.addBlob(blob)

	b.setDirectory([]dirEntry{
		{blobType: BlobTypeObject, local: true, nameOff: objName, offset: objOff},
	}, 1)
	return b.finish()
}

// buildObjectWithConstructor builds an object whose single method is
// flagged as a constructor; returnsInterface selects whether its
// signature returns an interface reference (legal) or a basic int32
// (rejected).
func buildObjectWithConstructor(returnsInterface bool) []byte {
	b := newImageBuilder("X")
	objName := b.addString("Widget")
	gtypeName := b.addString("XWidget")
	gtypeInit := b.addString("x_widget_get_type")
	fnName := b.addString("new")
	fnSymbol := b.addString("x_widget_new")

	var retOff uint32
	if returnsInterface {
		retOff = b.addInterfaceRefType(1)
	} else {
		retOff = b.addBasicType(TagInt32, false)
	}
	sigOff := b.addSignature(retOff)

	blob := objectBlob(objectHeader{
		nMethods:     1,
		nameOff:      objName,
		gtypeNameOff: gtypeName,
		gtypeInitOff: gtypeInit,
	})
	blob = append(blob, functionBlob(0x2, 0, fnName, fnSymbol, sigOff)...)
	objOff := b.addBlob(blob)

	b.setDirectory([]dirEntry{
		{blobType: BlobTypeObject, local: true, nameOff: objName, offset: objOff},
	}, 1)
	return b.finish()
}

// buildEnumWithErrorDomain builds the S6 fixture: a registered enum
// "Status" with error_domain domain and one value.
func buildEnumWithErrorDomain(domain string) []byte {
	b := newImageBuilder("X")
	enumName := b.addString("Status")
	gtypeName := b.addString("XStatus")
	gtypeInit := b.addString("x_status_get_type")
	domainOff := b.addString(domain)
	valName := b.addString("ok")

	blob := enumBlob(BlobTypeEnum, 0, 1, 0, enumName, gtypeName, gtypeInit, domainOff)
	blob = append(blob, valueBlob(valName, 0)...)
	enumOff := b.addBlob(blob)

	b.setDirectory([]dirEntry{
		{blobType: BlobTypeEnum, local: true, nameOff: enumName, offset: enumOff},
	}, 1)
	return b.finish()
}
