package gitypelib

// decodeCtx is threaded through every blob decoder. It carries the
// buffer, the decoded header, the full directory (for cross-reference
// resolution), and the breadcrumb context stack used to annotate
// errors with where in the structure they occurred.
type decodeCtx struct {
	buf     *buffer
	hdr     *header
	entries []DirectoryEntry // entries[i-1] is directory index i
	crumbs  []string
}

// push adds a breadcrumb frame; every push must be matched by a pop,
// including on the error path, so callers use it as:
//
//	ctx.push("function")
//	defer ctx.pop()
func (c *decodeCtx) push(frame string) {
	c.crumbs = append(c.crumbs, frame)
}

func (c *decodeCtx) pop() {
	c.crumbs = c.crumbs[:len(c.crumbs)-1]
}

// fail wraps err with the current breadcrumb stack, innermost frame
// first, and returns it.
func (c *decodeCtx) fail(err error) error {
	if err == nil {
		return nil
	}
	for i := len(c.crumbs) - 1; i >= 0; i-- {
		err = wrap(err, c.crumbs[i])
	}
	return err
}

// entryAt resolves a 1-based directory index, returning ok=false if
// it is out of range.
func (c *decodeCtx) entryAt(i uint32) (DirectoryEntry, bool) {
	if i < 1 || int(i) > len(c.entries) {
		return DirectoryEntry{}, false
	}
	return c.entries[i-1], true
}
