// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

import (
	"fmt"
	"io"
	"os"
)

// DumpMap writes a human-readable rendering of both spaces' occupancy maps
// to w: each map word as 8 uppercase hex digits, 8 words per line, preceded
// by a banner per space. Format is diagnostic only, not contractual.
func (a *Arena) DumpMap(w io.Writer) {
	fmt.Fprint(w, "-------- Small Block Map --------\n")
	dumpWords(w, a.small.words)
	fmt.Fprint(w, "-------- Big Block Map --------\n")
	dumpWords(w, a.big.words)
}

func dumpWords(w io.Writer, words []uint32) {
	for i, word := range words {
		fmt.Fprintf(w, "%08X", word)
		if i%unitsPerWord == unitsPerWord-1 {
			fmt.Fprint(w, "\n")
		} else {
			fmt.Fprint(w, " ")
		}
	}
	if len(words)%unitsPerWord != 0 {
		fmt.Fprint(w, "\n")
	}
}

// DumpStat writes a header and one zero-padded six-digit counter row per
// space to w.
func (a *Arena) DumpStat(w io.Writer) {
	stats, n := a.StatsGet()
	if stats == nil {
		fmt.Fprintf(w, "-- stats unavailable: %s\n", a.Err())
		return
	}

	fmt.Fprint(w, "-- run length:    ")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(w, "%6d", i)
	}
	fmt.Fprint(w, "\n")

	fmt.Fprint(w, "-- small blocks : ")
	dumpCounters(w, stats.Small[:])
	fmt.Fprint(w, "--   big blocks : ")
	dumpCounters(w, stats.Big[:])
}

func dumpCounters(w io.Writer, counts []uint32) {
	for _, c := range counts {
		fmt.Fprintf(w, "%06d", c)
	}
	fmt.Fprint(w, "\n")
}

// dumpMapTo and dumpStatTo mirror DumpMap/DumpStat against os.Stdout, for
// the package-level singleton's dump_stat()/dump_map() style functions.
func dumpMapTo(a *Arena) { a.DumpMap(os.Stdout) }

func dumpStatTo(a *Arena) { a.DumpStat(os.Stdout) }
