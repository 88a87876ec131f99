// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import (
	"testing"
	"unsafe"
)

func newTestArena(t *testing.T, kSmall, kBig int) *Arena {
	t.Helper()
	a, err := NewArena(kSmall, kBig)
	if err != nil {
		t.Fatalf("NewArena(%d, %d): %v", kSmall, kBig, err)
	}
	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return a
}

func writePattern(p unsafe.Pointer, n int) {
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		b[i] = byte((n - i) % 100)
	}
}

func checkPattern(t *testing.T, p unsafe.Pointer, n int) {
	t.Helper()
	b := unsafe.Slice((*byte)(p), n)
	for i := range b {
		if want := byte((n - i) % 100); b[i] != want {
			t.Fatalf("byte %d = %d, want %d", i, b[i], want)
		}
	}
}

// TestBasicWriteVerifyFree allocates a mix of sizes, writes a distinct
// pattern into each, verifies all patterns survive, then frees everything.
func TestBasicWriteVerifyFree(t *testing.T) {
	a := newTestArena(t, 2, 1)

	sizes := []int{128, 64, 48, 48, 64, 128, 16, 64, 48, 128, 48, 48, 64, 64, 80, 80, 256, 300, 129, 9000}
	var ptrs []unsafe.Pointer

	for i, n := range sizes {
		p := a.Alloc(uintptr(n))
		if i == len(sizes)-1 { // 9000: always TooBig
			if p != nil || a.Err() != TooBig {
				t.Fatalf("alloc %d: got (%v, %s), want (nil, TooBig)", n, p, a.Err())
			}
			continue
		}
		if p == nil {
			t.Fatalf("alloc #%d size %d: unexpected nil, err %s", i, n, a.Err())
		}
		writePattern(p, n)
		ptrs = append(ptrs, p)
	}

	for i, p := range ptrs {
		checkPattern(t, p, sizes[i])
	}

	for _, p := range ptrs {
		a.Free(p)
		if a.Err() != OK {
			t.Fatalf("free: %s", a.Err())
		}
	}

	if !a.TestFree() {
		t.Fatal("arena not fully free after round trip")
	}
}

// TestSaturateSmallest fills the smallest unit size to capacity and checks
// that the next allocation fails with NoMem rather than silently succeeding.
func TestSaturateSmallest(t *testing.T) {
	a := newTestArena(t, 2, 1)

	n := 2 * 1024
	ptrs := make([]unsafe.Pointer, 0, n)
	for i := 0; i < n; i++ {
		p := a.Alloc(16)
		if p == nil {
			t.Fatalf("alloc #%d: unexpected nil, err %s", i, a.Err())
		}
		ptrs = append(ptrs, p)
	}

	if p := a.Alloc(16); p != nil || a.Err() != NoMem {
		t.Fatalf("alloc #%d: got (%v, %s), want (nil, NoMem)", n, p, a.Err())
	}

	for _, p := range ptrs {
		a.Free(p)
	}
	if !a.TestFree() {
		t.Fatal("arena not fully free after round trip")
	}
}

// TestFragmentationVisibility checks that StatsGet reflects a freed run
// immediately, without waiting for compaction or a later allocation.
func TestFragmentationVisibility(t *testing.T) {
	a := newTestArena(t, 1, 1)

	p1 := a.Alloc(16)
	p2 := a.Alloc(48)
	p3 := a.Alloc(16)
	if p1 == nil || p2 == nil || p3 == nil {
		t.Fatalf("setup allocs failed: %s", a.Err())
	}

	stats, _ := a.StatsGet()
	if stats.Small[0] != 2 || stats.Small[2] != 1 {
		t.Fatalf("stats before free: Small = %v, want len1=2 len3=1", stats.Small)
	}

	a.Free(p2)
	stats, _ = a.StatsGet()
	if stats.Small[0] != 2 || stats.Small[2] != 0 {
		t.Fatalf("stats after free: Small = %v, want len1=2 len3=0", stats.Small)
	}

	a.Free(p1)
	a.Free(p3)
	if !a.TestFree() {
		t.Fatal("arena not fully free")
	}
}

// TestForeignPointer frees a pointer that was never returned by Alloc and
// checks the map is left untouched.
func TestForeignPointer(t *testing.T) {
	a := newTestArena(t, 1, 1)

	var stackVar int
	a.Free(unsafe.Pointer(&stackVar))
	if a.Err() != UnknownPointer {
		t.Fatalf("Err() = %s, want UnknownPointer", a.Err())
	}
	if !a.TestFree() {
		t.Fatal("map mutated by a rejected foreign free")
	}
}

// TestDoubleFreeIsCorrupt frees the same pointer twice and checks the
// second call is reported as map corruption rather than silently accepted.
func TestDoubleFreeIsCorrupt(t *testing.T) {
	a := newTestArena(t, 1, 1)

	p := a.Alloc(48) // length-3 run, so the second Free can't land on a lone end-marker nibble
	if p == nil {
		t.Fatalf("alloc: %s", a.Err())
	}
	a.Free(p)
	if a.Err() != OK {
		t.Fatalf("first free: %s", a.Err())
	}
	a.Free(p)
	if a.Err() != MapCorrupt {
		t.Fatalf("second free: got %s, want MapCorrupt", a.Err())
	}
}

// TestTooBig checks that a request larger than the BIG space's word
// coverage is rejected outright.
func TestTooBig(t *testing.T) {
	a := newTestArena(t, 1, 1)

	if p := a.Alloc(2049); p != nil || a.Err() != TooBig {
		t.Fatalf("Alloc(2049) = (%v, %s), want (nil, TooBig)", p, a.Err())
	}
}

// TestZeroSizeAlloc checks that a zero-byte request is rejected rather than
// silently returning a zero-unit run.
func TestZeroSizeAlloc(t *testing.T) {
	a := newTestArena(t, 1, 1)

	if p := a.Alloc(0); p != nil || a.Err() != TooBig {
		t.Fatalf("Alloc(0) = (%v, %s), want (nil, TooBig)", p, a.Err())
	}
}

// TestExactlyFitsWord allocates a run that exactly fills one map word and
// checks the resulting nibble pattern.
func TestExactlyFitsWord(t *testing.T) {
	a := newTestArena(t, 1, 1)

	p := a.Alloc(128)
	if p == nil {
		t.Fatalf("alloc: %s", a.Err())
	}
	if got := a.small.words[0]; got != 0xFFFFFFF1 {
		t.Fatalf("map word = %#08x, want 0xFFFFFFF1", got)
	}
}

// TestThresholdCrossing checks that a request one byte over the SMALL
// space's word coverage routes to the BIG space instead.
func TestThresholdCrossing(t *testing.T) {
	a := newTestArena(t, 1, 1)

	p := a.Alloc(129)
	if p == nil {
		t.Fatalf("alloc: %s", a.Err())
	}
	if !a.small.isEmpty() {
		t.Fatal("alloc(129) touched the SMALL space")
	}
	if a.big.isEmpty() {
		t.Fatal("alloc(129) did not touch the BIG space")
	}
}

// TestFullSmallSpaceLeavesBigUsable saturates the SMALL space and checks
// that a BIG-sized request still succeeds against the BIG space.
func TestFullSmallSpaceLeavesBigUsable(t *testing.T) {
	a := newTestArena(t, 1, 1)

	for i := 0; i < 1024; i++ {
		if p := a.Alloc(1); p == nil {
			t.Fatalf("small alloc #%d: %s", i, a.Err())
		}
	}
	if p := a.Alloc(1); p != nil || a.Err() != NoMem {
		t.Fatalf("small alloc after saturation: got (%v, %s), want (nil, NoMem)", p, a.Err())
	}
	if p := a.Alloc(256); p == nil {
		t.Fatalf("big alloc after small saturation: %s", a.Err())
	}
}

// TestPointerUniqueness checks that concurrently live allocations never
// share a returned pointer.
func TestPointerUniqueness(t *testing.T) {
	a := newTestArena(t, 1, 1)

	seen := map[unsafe.Pointer]bool{}
	for i := 0; i < 64; i++ {
		p := a.Alloc(16)
		if p == nil {
			t.Fatalf("alloc #%d: %s", i, a.Err())
		}
		if seen[p] {
			t.Fatalf("duplicate pointer %p returned for live allocation #%d", p, i)
		}
		seen[p] = true
	}
}

// TestTermRoundTrip checks that closing an arena and opening a fresh one
// starts from a fully free map.
func TestTermRoundTrip(t *testing.T) {
	a, err := NewArena(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	p := a.Alloc(48)
	if p == nil {
		t.Fatalf("alloc: %s", a.Err())
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}

	a2, err := NewArena(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer a2.Close()
	if !a2.TestFree() {
		t.Fatal("freshly re-initialized arena is not fully free")
	}
}
