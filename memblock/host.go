// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import "golang.org/x/sys/unix"

// acquireHostMemory is the one-shot bulk memory source treated as an
// external collaborator. It maps size bytes of anonymous, private memory
// directly from the OS rather than the Go heap, the same technique other
// mmap-backed arena allocators use: the region is opaque to the Go garbage
// collector, so nothing the runtime's own allocator does can touch it
// between Init and Term. Anonymous mappings are zero-filled by the kernel,
// which gets a zeroed region for free.
func acquireHostMemory(size int) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
}

// releaseHostMemory reverses acquireHostMemory.
func releaseHostMemory(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return unix.Munmap(mem)
}
