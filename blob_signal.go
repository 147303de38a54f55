package gitypelib

// Signal is the decoded form of a SignalBlob.
type Signal struct {
	Name                          string
	RunFirst, RunLast, RunCleanup bool
	HasClassClosure               bool
	ClassClosureIndex             uint8
	Signature                     *Signature
}

// decodeSignal decodes the 16-byte SignalBlob at offset. nSignals is
// the enclosing container's declared signal count, used to bounds-
// check ClassClosureIndex.
//
// Layout: name offset (u32), flags (byte: run_first, run_last,
// run_cleanup, has_class_closure, true_stops_emit), class_closure
// index (byte), reserved (u16), signature offset (u32), reserved
// (4 bytes).
func decodeSignal(ctx *decodeCtx, offset uint32, nSignals uint16) (Signal, error) {
	ctx.push("signal")
	defer ctx.pop()

	nameOffset, err := ctx.buf.u32At(offset)
	if err != nil {
		return Signal{}, ctx.fail(wrap(err, "signal"))
	}
	name, err := validateName(ctx.buf, "name", nameOffset)
	if err != nil {
		return Signal{}, ctx.fail(err)
	}

	flags, err := ctx.buf.byteAt(offset + 4)
	if err != nil {
		return Signal{}, ctx.fail(wrap(err, "signal"))
	}
	closureIdx, err := ctx.buf.byteAt(offset + 5)
	if err != nil {
		return Signal{}, ctx.fail(wrap(err, "signal"))
	}

	s := Signal{
		Name:              name,
		RunFirst:          flags&0x1 != 0,
		RunLast:           flags&0x2 != 0,
		RunCleanup:        flags&0x4 != 0,
		HasClassClosure:   flags&0x8 != 0,
		ClassClosureIndex: closureIdx,
	}

	runCount := boolCount(s.RunFirst, s.RunLast, s.RunCleanup)
	if runCount != 1 {
		return Signal{}, ctx.fail(newError(KindInvalidBlob,
			"signal %q must set exactly one of run_first/run_last/run_cleanup, got %d", name, runCount))
	}
	if s.HasClassClosure && uint16(closureIdx) >= nSignals {
		return Signal{}, ctx.fail(newError(KindInvalidBlob,
			"signal %q class closure index %d out of range (n_signals=%d)", name, closureIdx, nSignals))
	}

	sigOffset, err := ctx.buf.u32At(offset + 8)
	if err != nil {
		return Signal{}, ctx.fail(wrap(err, "signal"))
	}
	sig, err := decodeSignature(ctx, sigOffset)
	if err != nil {
		return Signal{}, err
	}
	s.Signature = sig

	return s, nil
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}
