// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mmfile

import (
	"github.com/bitmark-inc/chaindb/fault"
)

// Handle - a generation tagged view of the mapped region
//
// a handle taken before a Resize must not be dereferenced after it;
// the generation check turns that misuse into an immediate fault
// instead of undefined memory
type Handle struct {
	file       *File
	generation uint64
}

// Bytes - slice of the mapped region
//
// this returns the actual mapped memory - copy the result if it must
// be preserved across an operation that could grow the file
func (h Handle) Bytes(offset uint64, size uint64) []byte {
	h.check()
	if offset+size > h.file.capacity || offset+size < offset {
		fault.Panicf("mmfile.Bytes: out of range: offset: %d size: %d capacity: %d",
			offset, size, h.file.capacity)
	}
	return h.file.data[offset : offset+size]
}

// Valid - true while the handle still refers to the current mapping
func (h Handle) Valid() bool {
	return h.generation == h.file.generation
}

// internal stale handle check
func (h Handle) check() {
	if h.generation != h.file.generation {
		fault.Panicf("mmfile: stale handle: generation: %d  current: %d",
			h.generation, h.file.generation)
	}
}
