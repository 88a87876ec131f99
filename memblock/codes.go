// Copyright 2013 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package memblock

// Code is a stable, positional error ordinal. Values MUST NOT be
// renumbered: a host may persist or wire-transmit the bare ordinal.
type Code int

// Error code ordinals. Stable by contract.
const (
	OK Code = iota
	NoMem
	TooBig
	UnknownPointer
	MapCorrupt
	numCodes // sentinel, count of defined codes
)

var codeStrings = [numCodes]string{
	OK:             "OK",
	NoMem:          "No available memory for last allocation",
	TooBig:         "Requested memory allocation to big for memory spaces",
	UnknownPointer: "Referenced memory not in mblib space",
	MapCorrupt:     "Map space is corrupted",
}

// String implements fmt.Stringer.
func (c Code) String() string {
	if s, ok := ErrStr(c); ok {
		return s
	}
	return "unknown error code"
}

// ErrStr returns the positional error string for code and true, or ("",
// false) if code is out of the defined range.
func ErrStr(code Code) (string, bool) {
	if code < 0 || int(code) >= len(codeStrings) {
		return "", false
	}
	return codeStrings[code], true
}
