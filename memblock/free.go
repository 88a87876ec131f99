// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import "unsafe"

// Free recovers the space, map word and starting unit of p from pointer
// arithmetic alone, reads the run length out of the map, and clears it.
// p must have been returned by a prior Alloc and not yet freed. A p outside
// both payload regions sets UnknownPointer. A p inside one whose unit is free
// or holds an invalid nibble sets MapCorrupt; this catches a double Free
// whose unit has not been handed out again, which lands on a zero nibble and
// walks off the word without ever finding an end-marker. A p that points at
// a later unit of a live run is not detected: the walk from that unit finds
// the run's end-marker and only the units from p to the end are cleared. An
// offset within a unit is not checked either.
func (a *Arena) Free(p unsafe.Pointer) {
	sp, off := a.spaceContaining(p)
	if sp == nil {
		a.lastErr = UnknownPointer
		return
	}

	mi := int(off) / sp.wordCoverage
	slot := (int(off) % sp.wordCoverage) / sp.unitSize

	end, ok := sp.runEnd(mi, slot)
	if !ok {
		a.lastErr = MapCorrupt
		return
	}

	sp.clearRun(mi, slot, end)
	a.lastErr = OK
}
