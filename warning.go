package gitypelib

import (
	"fmt"
	"io"

	"github.com/stephens2424/writerset"
)

// WarningBroadcaster fans warning lines (library-open failures and
// other non-fatal conditions) out to every registered io.Writer
// subscriber, so a caller can attach additional sinks (metrics, a UI)
// without displacing the primary gilog.Helper.
type WarningBroadcaster struct {
	set *writerset.WriterSet
}

// NewWarningBroadcaster returns a broadcaster with no subscribers.
func NewWarningBroadcaster() *WarningBroadcaster {
	return &WarningBroadcaster{set: writerset.New()}
}

// Subscribe registers w to receive every future warning line.
func (b *WarningBroadcaster) Subscribe(w io.Writer) {
	b.set.Add(w)
}

// Unsubscribe removes a previously registered subscriber.
func (b *WarningBroadcaster) Unsubscribe(w io.Writer) {
	b.set.Remove(w)
}

// Warnf formats and fans out a warning line to every subscriber.
func (b *WarningBroadcaster) Warnf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if len(line) == 0 || line[len(line)-1] != '\n' {
		line += "\n"
	}
	_, _ = io.WriteString(b.set, line)
}
