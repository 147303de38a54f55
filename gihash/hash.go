// Package gihash defines the pluggable hash side-index oracle contract
// consumed by the directory lookup layer, plus a default xxhash-backed
// implementation of the on-disk DIRECTORY_INDEX bucket table.
//
// The oracle is deliberately weak: it is only ever asked "what index do
// you believe has this name", and the caller always re-verifies the
// answer by comparing strings before trusting it. A malicious or
// corrupted hash table can therefore only cost a wasted comparison,
// never an incorrect lookup result.
package gihash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Index is the external oracle contract: given the raw bytes of a
// DIRECTORY_INDEX section (everything after the section's own id+offset
// header) and a candidate name, return the directory index it believes
// matches. The returned index is zero-based among local entries; the
// caller is responsible for verifying it.
type Index interface {
	Lookup(table []byte, name string) (localIndex int, ok bool)
}

// Default is the package's default Index implementation: an
// open-addressed table keyed by an xxhash-64 of the name, built by
// Build and read back by Lookup.
type Default struct{}

// bucket layout: one entry per bucket, 8 bytes:
//
//	[0:4] local directory index + 1 (0 means empty bucket)
//	[4:8] truncated hash tag, used to keep probe order stable between
//	      Build and Lookup without storing the name itself
const bucketSize = 8

// BucketTableSize returns the byte size of the table Build would
// produce for n names, without needing the names themselves. A
// reader that only knows a stored directory's local-entry count uses
// this to bound how many bytes of a DIRECTORY_INDEX section belong
// to the hash table.
func BucketTableSize(n int) int {
	return nextPow2(n*2+1) * bucketSize
}

// Build constructs a DIRECTORY_INDEX table body for the given ordered
// list of local entry names. The returned slice is what gets written
// (or, in this module, held in memory) as the section body.
func Build(names []string) []byte {
	// Keep the load factor under ~0.5 so probing stays short.
	nBuckets := nextPow2(len(names)*2 + 1)
	table := make([]byte, nBuckets*bucketSize)

	for i, name := range names {
		h := xxhash.Sum64String(name)
		idx := int(h % uint64(nBuckets))
		tag := uint32(h >> 32)
		for {
			off := idx * bucketSize
			if binary.LittleEndian.Uint32(table[off:off+4]) == 0 {
				binary.LittleEndian.PutUint32(table[off:off+4], uint32(i)+1)
				binary.LittleEndian.PutUint32(table[off+4:off+8], tag)
				break
			}
			idx = (idx + 1) % nBuckets
		}
	}
	return table
}

// Lookup implements Index using the table produced by Build. It probes
// in the same order Build used when inserting, so a name that Build
// actually placed is always found; a name that merely shares a bucket
// by chance may still surface a candidate, which the caller must
// verify by name before trusting.
func (Default) Lookup(table []byte, name string) (int, bool) {
	if len(table) < bucketSize || len(table)%bucketSize != 0 {
		return 0, false
	}
	nBuckets := len(table) / bucketSize
	h := xxhash.Sum64String(name)
	tag := uint32(h >> 32)
	idx := int(h % uint64(nBuckets))

	for probes := 0; probes < nBuckets; probes++ {
		off := idx * bucketSize
		raw := binary.LittleEndian.Uint32(table[off : off+4])
		if raw == 0 {
			return 0, false
		}
		if binary.LittleEndian.Uint32(table[off+4:off+8]) == tag {
			return int(raw) - 1, true
		}
		idx = (idx + 1) % nBuckets
	}
	return 0, false
}

func nextPow2(n int) int {
	if n < 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
