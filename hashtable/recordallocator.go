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

// RecordAllocator - append-only fixed slot allocator
//
// every allocation is exactly recordSize bytes and is addressed by a
// 4 byte record index; the record size is not stored in the file, it
// is supplied again on Start by the owning table
type RecordAllocator struct {
	file       *mmfile.File
	offset     uint64
	recordSize uint64
	count      uint64
}

// NewRecordAllocator - attach an allocator region starting at offset
func NewRecordAllocator(file *mmfile.File, offset uint64, recordSize uint64) (*RecordAllocator, error) {
	if 0 == recordSize {
		return nil, fault.ErrInvalidRecordSize
	}
	a := &RecordAllocator{
		file:       file,
		offset:     offset,
		recordSize: recordSize,
	}
	return a, nil
}

// Create - initialise an empty region
func (a *RecordAllocator) Create() error {
	a.count = 0
	if a.offset+allocatorPrefixSize > a.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	a.writeCount()
	return nil
}

// Start - recover the record count recorded by the last Sync
func (a *RecordAllocator) Start() error {
	if a.offset+allocatorPrefixSize > a.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	prefix := a.file.Access().Bytes(a.offset, allocatorPrefixSize)
	a.count = binary.LittleEndian.Uint64(prefix)
	end := a.offset + allocatorPrefixSize + a.count*a.recordSize
	if end > a.file.Capacity() {
		return fault.ErrInvalidAllocatorState
	}
	return nil
}

// Allocate - reserve the next record slot
//
// grows the mapped file if needed, invalidating all prior handles
func (a *RecordAllocator) Allocate() (uint32, error) {
	index := a.count
	if index >= uint64(EmptyRecord) {
		return 0, fault.ErrValueTooLarge
	}
	end := a.offset + allocatorPrefixSize + (index+1)*a.recordSize
	if end > a.file.Capacity() {
		err := a.file.Resize(grow(a.file.Capacity(), end))
		if nil != err {
			return 0, err
		}
	}
	a.count = index + 1
	return uint32(index), nil
}

// Get - the whole record at index, valid until the next grow
func (a *RecordAllocator) Get(index uint32) []byte {
	if uint64(index) >= a.count {
		fault.Panicf("hashtable.RecordAllocator: index: %d beyond count: %d", index, a.count)
	}
	offset := a.offset + allocatorPrefixSize + uint64(index)*a.recordSize
	return a.file.Access().Bytes(offset, a.recordSize)
}

// Count - number of records allocated so far
func (a *RecordAllocator) Count() uint64 {
	return a.count
}

// RecordSize - fixed size of every record
func (a *RecordAllocator) RecordSize() uint64 {
	return a.recordSize
}

// Sync - flush the record count so restart recovery sees all
// allocations made so far
func (a *RecordAllocator) Sync() error {
	a.writeCount()
	return a.file.Flush()
}

// internal routine to store the count prefix
func (a *RecordAllocator) writeCount() {
	prefix := a.file.Access().Bytes(a.offset, allocatorPrefixSize)
	binary.LittleEndian.PutUint64(prefix, a.count)
}
