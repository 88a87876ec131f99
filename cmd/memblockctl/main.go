// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Memblockctl drives a memblock arena from the command line: it runs a
// randomized alloc/free soak, checks that the arena returns to fully free,
// and with -dump prints the map and stats dumps. It is a test harness, not
// part of the library's contract.
package main

import (
	"flag"
	"log"
	"math/rand"
	"os"
	"unsafe"

	"github.com/bcorriveau/memblock/memblock"
)

var (
	oKSmall = flag.Int("ksmall", 2, "SMALL space size, in 1024-unit multiples")
	oKBig   = flag.Int("kbig", 1, "BIG space size, in 1024-unit multiples")
	oN      = flag.Int("n", 2000, "number of alloc/free cycles to run")
	oSeed   = flag.Int64("seed", 1, "PRNG seed")
	oDump   = flag.Bool("dump", false, "print map and stats dumps after the run")
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	a, err := memblock.NewArena(*oKSmall, *oKBig)
	if err != nil {
		log.Fatal(err)
	}
	defer a.Close()

	rng := rand.New(rand.NewSource(*oSeed))
	var live []unsafe.Pointer

	for i := 0; i < *oN; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			j := rng.Intn(len(live))
			a.Free(live[j])
			if a.Err() != memblock.OK {
				log.Fatalf("free #%d: %s", i, a.Err())
			}
			live = append(live[:j], live[j+1:]...)
			continue
		}

		n := uintptr(1 + rng.Intn(memblock.MaxAllocSize()))
		p := a.Alloc(n)
		if p == nil {
			if a.Err() == memblock.NoMem {
				continue
			}
			log.Fatalf("alloc #%d (%d bytes): %s", i, n, a.Err())
		}
		live = append(live, p)
	}

	for _, p := range live {
		a.Free(p)
	}

	if !a.TestFree() {
		log.Fatal("arena not fully free after soak run")
	}

	if *oDump {
		a.DumpMap(os.Stdout)
		a.DumpStat(os.Stdout)
	}

	log.Printf("ok: %d cycles, arena returned to fully free", *oN)
}
