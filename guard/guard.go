// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package guard serializes access to a memblock.Arena for hosts with more
// than one goroutine wanting to allocate. memblock.Arena itself assumes a
// single mutating caller; this package is the opt-in collaborator a
// multi-goroutine host reaches for instead, named after the classic "Big
// Kernel Lock" style single-mutex guard.
package guard

import (
	"sync"
	"unsafe"

	"github.com/bcorriveau/memblock/memblock"
)

// Arena wraps a *memblock.Arena behind a single mutex. All methods are
// safe for concurrent use by multiple goroutines.
type Arena struct {
	bkl sync.Mutex
	a   *memblock.Arena
}

// New wraps an existing Arena.
func New(a *memblock.Arena) *Arena {
	return &Arena{a: a}
}

// NewArena creates an Arena (see memblock.NewArena) and wraps it.
func NewArena(kSmall, kBig int) (*Arena, error) {
	a, err := memblock.NewArena(kSmall, kBig)
	if err != nil {
		return nil, err
	}
	return New(a), nil
}

// Alloc locks, allocates, and unlocks. See (*memblock.Arena).Alloc.
func (g *Arena) Alloc(n uintptr) unsafe.Pointer {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	return g.a.Alloc(n)
}

// Free locks, frees, and unlocks. See (*memblock.Arena).Free.
func (g *Arena) Free(p unsafe.Pointer) {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	g.a.Free(p)
}

// Err returns the last error code. Callers racing Alloc/Free against Err
// from another goroutine may observe a code from a call that is not their
// own; serialize around a (call, Err) pair with an external lock if that
// matters to the host.
func (g *Arena) Err() memblock.Code {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	return g.a.Err()
}

// StatsGet locks, scans, and unlocks. See (*memblock.Arena).StatsGet.
func (g *Arena) StatsGet() (*memblock.Stats, int) {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	return g.a.StatsGet()
}

// TestFree locks, checks, and unlocks.
func (g *Arena) TestFree() bool {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	return g.a.TestFree()
}

// Close locks, closes the underlying Arena, and unlocks.
func (g *Arena) Close() error {
	g.bkl.Lock()
	defer g.bkl.Unlock()
	return g.a.Close()
}
