package gitypelib

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferBounds(t *testing.T) {
	b := newBuffer([]byte{1, 2, 3, 4})

	got, err := b.bytesAt(0, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)

	_, err = b.bytesAt(1, 4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)

	_, err = b.bytesAt(4, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)

	// Offsets near the top of the uint32 range must not wrap.
	_, err = b.bytesAt(0xFFFFFFFF, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)
}

func TestBufferScalars(t *testing.T) {
	b := newBuffer([]byte{0x78, 0x56, 0x34, 0x12})

	v16, err := b.u16At(0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x5678), v16)

	v32, err := b.u32At(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12345678), v32)
}

func TestStringAt(t *testing.T) {
	b := newBuffer([]byte("hello\x00world\x00"))

	s, err := b.stringAt(0)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	s, err = b.stringAt(6)
	require.NoError(t, err)
	assert.Equal(t, "world", s)

	_, err = b.stringAt(100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated), "got %v", err)
}

func TestStringAtNoTerminator(t *testing.T) {
	b := newBuffer(bytes.Repeat([]byte{'a'}, maxNameLen+16))

	_, err := b.stringAt(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameTooLong), "got %v", err)
}

func TestValidateNameCharset(t *testing.T) {
	tests := []struct {
		in string
		ok bool
	}{
		{"hello", true},
		{"Hello_World-2", true},
		{"", true},
		{"has space", false},
		{"dot.ted", false},
		{"caf\xC3\xA9", false},
	}
	for _, tt := range tests {
		b := newBuffer(append([]byte(tt.in), 0))
		got, err := validateName(b, "name", 0)
		if tt.ok {
			require.NoError(t, err, "validateName(%q)", tt.in)
			assert.Equal(t, tt.in, got)
		} else {
			require.Error(t, err, "validateName(%q)", tt.in)
			assert.True(t, errors.Is(err, ErrInvalidName), "got %v", err)
		}
	}
}

func TestAlignment(t *testing.T) {
	assert.True(t, isAligned(0, 4))
	assert.True(t, isAligned(8, 4))
	assert.False(t, isAligned(2, 4))

	assert.Equal(t, uint32(0), alignTo4(0))
	assert.Equal(t, uint32(4), alignTo4(1))
	assert.Equal(t, uint32(4), alignTo4(4))
	assert.Equal(t, uint32(8), alignTo4(5))
}

func TestSplitNonEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitNonEmpty("a,b", ','))
	assert.Equal(t, []string{"a", "b"}, splitNonEmpty(",a,,b,", ','))
	assert.Nil(t, splitNonEmpty("", ','))
	assert.Nil(t, splitNonEmpty(",,", ','))
}
