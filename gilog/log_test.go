package gilog

import (
	"bytes"
	"strings"
	"testing"
)

func TestStdLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	l := NewStdLogger(&buf)

	if err := l.Log(LevelInfo, "msg", "hello", "n", 3); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "level=INFO") || !strings.Contains(out, "msg=hello") || !strings.Contains(out, "n=3") {
		t.Errorf("unexpected log line: %q", out)
	}
}

func TestFilterDropsBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewFilter(NewStdLogger(&buf), FilterLevel(LevelWarn))

	_ = l.Log(LevelDebug, "msg", "ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected debug record to be filtered, got %q", buf.String())
	}

	_ = l.Log(LevelError, "msg", "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected error record to pass filter, got %q", buf.String())
	}
}

func TestHelperConvenienceMethods(t *testing.T) {
	var buf bytes.Buffer
	h := NewHelper(NewStdLogger(&buf))

	h.Errorf("boom: %d", 42)
	if !strings.Contains(buf.String(), "boom: 42") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
