// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"encoding/binary"

	"github.com/bitmark-inc/chaindb/fault"
	"github.com/bitmark-inc/chaindb/mmfile"
)

// bytes reserved at the front of an allocator region for its
// logical-end / count prefix
const allocatorPrefixSize = 8

// SlabAllocator - append-only variable length allocator
//
// the region starts at a fixed offset in the file with an 8 byte
// little endian prefix recording the logical end of valid data;
// Sync flushes that prefix so a restart knows where the data stops
type SlabAllocator struct {
	file   *mmfile.File
	offset uint64
	end    uint64
}

// NewSlabAllocator - attach an allocator region starting at offset
func NewSlabAllocator(file *mmfile.File, offset uint64) *SlabAllocator {
	return &SlabAllocator{
		file:   file,
		offset: offset,
	}
}

// Create - initialise an empty region
func (a *SlabAllocator) Create() error {
	a.end = a.offset + allocatorPrefixSize
	if a.end > a.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	a.writeEnd()
	return nil
}

// Start - recover the logical end recorded by the last Sync
func (a *SlabAllocator) Start() error {
	if a.offset+allocatorPrefixSize > a.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	prefix := a.file.Access().Bytes(a.offset, allocatorPrefixSize)
	a.end = binary.LittleEndian.Uint64(prefix)
	if a.end < a.offset+allocatorPrefixSize || a.end > a.file.Capacity() {
		return fault.ErrInvalidAllocatorState
	}
	return nil
}

// Allocate - extend the logical end by size bytes
//
// grows the mapped file if needed, invalidating all prior handles;
// freed space is never reused
func (a *SlabAllocator) Allocate(size uint64) (uint64, error) {
	position := a.end
	newEnd := position + size
	if newEnd < position {
		return 0, fault.ErrValueTooLarge
	}
	if newEnd > a.file.Capacity() {
		err := a.file.Resize(grow(a.file.Capacity(), newEnd))
		if nil != err {
			return 0, err
		}
	}
	a.end = newEnd
	return position, nil
}

// Bytes - a slice of allocated space, valid until the next grow
func (a *SlabAllocator) Bytes(offset uint64, size uint64) []byte {
	return a.file.Access().Bytes(offset, size)
}

// Eof - current logical end of valid data
func (a *SlabAllocator) Eof() uint64 {
	return a.end
}

// Sync - flush the logical end so restart recovery sees all
// allocations made so far
func (a *SlabAllocator) Sync() error {
	a.writeEnd()
	return a.file.Flush()
}

// internal routine to store the end prefix
func (a *SlabAllocator) writeEnd() {
	prefix := a.file.Access().Bytes(a.offset, allocatorPrefixSize)
	binary.LittleEndian.PutUint64(prefix, a.end)
}

// internal routine to pick the next file capacity
//
// doubles until the requirement fits, keeping grows rare
func grow(capacity uint64, required uint64) uint64 {
	newCapacity := capacity
	if 0 == newCapacity {
		newCapacity = 1
	}
	for newCapacity < required {
		newCapacity *= 2
	}
	return newCapacity
}
