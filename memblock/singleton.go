// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import "unsafe"

// defaultArena backs the package-level functions below, giving callers a
// singleton-style surface while keeping the mutating logic on an
// instantiable *Arena for testability. This mirrors how net/http layers
// package-level Get/Post functions over an instantiable *http.Client.
var defaultArena *Arena

// Init is a one-shot setup of the package-level default Arena. Repeated
// Init without an intervening Term has undefined behavior.
func Init(kSmall, kBig int) error {
	a, err := NewArena(kSmall, kBig)
	if err != nil {
		return err
	}
	defaultArena = a
	return nil
}

// Term releases the default Arena's underlying allocation. After Term, no
// package-level operation is defined.
func Term() error {
	err := defaultArena.Close()
	defaultArena = nil
	return err
}

// Alloc allocates from the default Arena. See (*Arena).Alloc.
func Alloc(n uintptr) unsafe.Pointer { return defaultArena.Alloc(n) }

// Free releases a pointer back to the default Arena. See (*Arena).Free.
func Free(p unsafe.Pointer) { defaultArena.Free(p) }

// Err returns the default Arena's last error code.
func Err() Code { return defaultArena.Err() }

// StatsGet scans the default Arena. See (*Arena).StatsGet.
func StatsGet() (*Stats, int) { return defaultArena.StatsGet() }

// TestFree reports whether the default Arena is entirely free.
func TestFree() bool { return defaultArena.TestFree() }

// DumpStat writes the default Arena's stats to standard output.
func DumpStat() { dumpStatTo(defaultArena) }

// DumpMap writes the default Arena's occupancy map to standard output.
func DumpMap() { dumpMapTo(defaultArena) }
