// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import "unsafe"

// Arena is the control block: two spaces plus the last error code. It is
// created by NewArena, mutated by Alloc/Free, and destroyed by
// Close. After Close no method is defined: Close resets the Arena to its
// zero value, whose spaces have no map words and no payload, so a stray
// Alloc after Close fails with NoMem and a stray Free with UnknownPointer
// rather than touching unmapped memory.
type Arena struct {
	mem     []byte
	small   space
	big     space
	lastErr Code
	stats   Stats
}

// Stats is the library-owned buffer StatsGet hands back: two arrays of 8
// run-length counters, indexed by (run length - 1).
type Stats struct {
	Small [unitsPerWord]uint32
	Big   [unitsPerWord]uint32
}

// NewArena acquires one contiguous block of host memory and partitions it,
// in order, into SMALL.map, SMALL.payload, BIG.map, BIG.payload. kSmall and
// kBig are kilo-unit counts: each space gets k*1024 units.
func NewArena(kSmall, kBig int) (*Arena, error) {
	return NewArenaConfig(ArenaConfig{KSmall: kSmall, KBig: kBig})
}

// NewArenaConfig is NewArena taking a struct literal.
func NewArenaConfig(cfg ArenaConfig) (*Arena, error) {
	if cfg.KSmall <= 0 || cfg.KBig <= 0 {
		return nil, &InvalidConfigError{KSmall: cfg.KSmall, KBig: cfg.KBig}
	}

	smallUnits := cfg.KSmall * 1024
	bigUnits := cfg.KBig * 1024
	smallWords := smallUnits / unitsPerWord
	bigWords := bigUnits / unitsPerWord

	size := smallWords*(mapWordBytes+wordCoverageSmall) + bigWords*(mapWordBytes+wordCoverageBig)

	mem, err := acquireHostMemory(size)
	if err != nil {
		return nil, err
	}

	a := &Arena{mem: mem}

	off := 0
	smallMapBytes := mem[off : off+smallWords*mapWordBytes]
	off += smallWords * mapWordBytes
	smallPayload := mem[off : off+smallWords*wordCoverageSmall]
	off += smallWords * wordCoverageSmall
	bigMapBytes := mem[off : off+bigWords*mapWordBytes]
	off += bigWords * mapWordBytes
	bigPayload := mem[off : off+bigWords*wordCoverageBig]
	off += bigWords * wordCoverageBig

	a.small = space{
		name:         "small",
		unitSize:     unitSizeSmall,
		wordCoverage: wordCoverageSmall,
		words:        bytesToWords(smallMapBytes),
		payload:      smallPayload,
	}
	a.big = space{
		name:         "big",
		unitSize:     unitSizeBig,
		wordCoverage: wordCoverageBig,
		words:        bytesToWords(bigMapBytes),
		payload:      bigPayload,
	}

	return a, nil
}

// bytesToWords reinterprets a byte slice as a slice of 32-bit map words,
// aliasing the same backing array: writes through the returned slice are
// writes to b.
func bytesToWords(b []byte) []uint32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&b[0])), len(b)/mapWordBytes)
}

// Close releases the single underlying host allocation. After Close, a
// must not be used again.
func (a *Arena) Close() error {
	err := releaseHostMemory(a.mem)
	*a = Arena{}
	return err
}

// Err returns the error code set by the most recent mutating call.
func (a *Arena) Err() Code { return a.lastErr }

// MaxAllocSize returns the largest byte count Alloc can satisfy, the BIG
// space's word coverage. Requests above this always fail with TooBig.
func MaxAllocSize() int { return wordCoverageBig }

// TestFree reports whether every map word in both spaces is zero.
func (a *Arena) TestFree() bool {
	return a.small.isEmpty() && a.big.isEmpty()
}

// spaceForSize selects the first space (SMALL then BIG) whose word
// coverage can hold an n-byte request.
func (a *Arena) spaceForSize(n uintptr) *space {
	switch {
	case n <= wordCoverageSmall:
		return &a.small
	case n <= wordCoverageBig:
		return &a.big
	default:
		return nil
	}
}

// spaceContaining returns the space owning pointer p and its byte offset
// from that space's payload base, or (nil, 0) if neither space's payload
// region contains p.
func (a *Arena) spaceContaining(p unsafe.Pointer) (*space, uintptr) {
	addr := uintptr(p)
	for _, s := range [...]*space{&a.small, &a.big} {
		if len(s.payload) == 0 {
			continue
		}
		base := uintptr(unsafe.Pointer(&s.payload[0]))
		if addr < base {
			continue
		}
		off := addr - base
		if s.contains(off) {
			return s, off
		}
	}
	return nil, 0
}
