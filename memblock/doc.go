// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*

Package memblock implements a fixed-arena, two-class block allocator for
long-running programs (embedded control loops, network daemons, realtime
tasks) that must allocate and free small objects forever without invoking
the kernel allocator past initialization and without accumulating unbounded
fragmentation.

Two independent spaces, SMALL and BIG, are carved out of one bulk memory
mapping acquired once at Init. Each space tracks occupancy with a bitmap: one
32-bit map word per 8 consecutive units, 4 bits (a nibble) per unit. A run of
k allocated units is encoded in its map word as (k-1) continuation nibbles
(0xF) followed by one end-of-run nibble (0x1); a free unit is nibble 0x0. No
run is ever allowed to span a map word boundary; this keeps every run
self-delimiting within 32 bits and bounds the cost of a single scan step to a
constant.

	SMALL unit = 16 bytes,  word covers 128 bytes, requests 1..128 bytes
	BIG   unit = 256 bytes, word covers 2048 bytes, requests 129..2048 bytes

Alloc picks the smallest space whose word coverage can hold the request,
scans that space's map starting at a rotating cursor for a free run within a
single word, and returns a pointer into the space's payload region. Free
recovers the space, word and starting unit from the pointer alone (via
offset arithmetic against the owning space's payload slice) and reads the
run length back out of the map: there is no per-allocation header.

The package has no internal synchronization; per the single-mutating-caller
model, a host with multiple goroutines should serialize calls itself, or use
the guard subpackage, which wraps an Arena behind a mutex.

*/
package memblock
