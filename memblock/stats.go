// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

// scanRuns walks a space's map the same way Free recovers a single run:
// find a non-zero nibble, walk until an end-marker, record the length,
// resume past it, and tallies run lengths into counts, indexed by
// (length-1). It reports MapCorrupt (ok=false) on the same conditions Free
// does: an invalid nibble, or a word exhausted before an end-marker.
func scanRuns(words []uint32, counts *[unitsPerWord]uint32) bool {
	for _, w := range words {
		i := 0
		for i < unitsPerWord {
			v := nibble(w, i)
			if v == nibbleFree {
				i++
				continue
			}

			start := i
			for {
				if v == nibbleEnd {
					break
				}
				if v != nibbleCont {
					return false
				}
				i++
				if i >= unitsPerWord {
					return false
				}
				v = nibble(w, i)
			}

			length := i - start + 1
			counts[length-1]++
			i++
		}
	}
	return true
}

// StatsGet scans both spaces' maps and returns the library-owned counters
// buffer (reused on the next StatsGet call) plus the per-space counter
// count, 8. On a MapCorrupt encoding violation it returns (nil, 0) and
// leaves Err() reporting MapCorrupt.
func (a *Arena) StatsGet() (*Stats, int) {
	var next Stats
	if !scanRuns(a.small.words, &next.Small) {
		a.lastErr = MapCorrupt
		return nil, 0
	}
	if !scanRuns(a.big.words, &next.Big) {
		a.lastErr = MapCorrupt
		return nil, 0
	}

	a.stats = next
	a.lastErr = OK
	return &a.stats, unitsPerWord
}
