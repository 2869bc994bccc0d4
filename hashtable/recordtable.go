// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"bytes"
	"encoding/binary"

	"github.com/bitmark-inc/chaindb/fault"
)

// per-record overhead: 4 byte next record index
const recordLinkSize = 4

// RecordTableSize - record size needed for a key and value payload
func RecordTableSize(keyLength uint64, valueSize uint64) uint64 {
	return keyLength + recordLinkSize + valueSize
}

// RecordTable - hash table of fixed size records
//
// a record is [key][next:4][value]; buckets hold record indices
// widened to the 8 byte slot, links are 4 byte record indices; used
// by the multimap purely to map key to head-of-chain, one record per
// key
type RecordTable struct {
	header    *Header
	allocator *RecordAllocator
	keyLength uint64
}

// NewRecordTable - combine a header and a record allocator
func NewRecordTable(header *Header, allocator *RecordAllocator, keyLength uint64) (*RecordTable, error) {
	if keyLength < 8 {
		return nil, fault.ErrInvalidKeyLength
	}
	if allocator.RecordSize() <= keyLength+recordLinkSize {
		return nil, fault.ErrInvalidRecordSize
	}
	t := &RecordTable{
		header:    header,
		allocator: allocator,
		keyLength: keyLength,
	}
	return t, nil
}

// value payload size implied by the allocator's record size
func (t *RecordTable) valueSize() uint64 {
	return t.allocator.RecordSize() - t.keyLength - recordLinkSize
}

// Store - allocate a record for a new key and publish it as the head
// of its bucket chain
func (t *RecordTable) Store(key []byte, writer func(value []byte)) error {
	if uint64(len(key)) != t.keyLength {
		return fault.ErrInvalidKeyLength
	}

	bucket := t.header.BucketIndex(key)

	// read the old head before allocating: Allocate may remap
	next := t.header.Get(bucket)

	index, err := t.allocator.Allocate()
	if nil != err {
		return err
	}

	record := t.allocator.Get(index)
	n := copy(record, key)
	binary.LittleEndian.PutUint32(record[n:], headIndex(next))
	writer(record[n+recordLinkSize:])

	t.header.Put(bucket, uint64(index))
	return nil
}

// Find - walk the bucket chain and return the value for key
//
// the returned slice is the actual mapped record payload, so the
// caller may update it in place; nil means not found
func (t *RecordTable) Find(key []byte) []byte {
	if uint64(len(key)) != t.keyLength {
		return nil
	}
	current := headIndex(t.header.Get(t.header.BucketIndex(key)))

	for EmptyRecord != current {
		record := t.allocator.Get(current)
		if bytes.Equal(record[:t.keyLength], key) {
			return record[t.keyLength+recordLinkSize:]
		}
		current = binary.LittleEndian.Uint32(record[t.keyLength:])
	}
	return nil
}

// Unlink - splice the record for key out of its bucket chain
//
// record space is not reclaimed; returns false if the key is absent
func (t *RecordTable) Unlink(key []byte) bool {
	if uint64(len(key)) != t.keyLength {
		return false
	}
	bucket := t.header.BucketIndex(key)
	current := headIndex(t.header.Get(bucket))
	previous := EmptyRecord

	for EmptyRecord != current {
		record := t.allocator.Get(current)
		next := binary.LittleEndian.Uint32(record[t.keyLength:])

		if bytes.Equal(record[:t.keyLength], key) {
			if EmptyRecord == previous {
				t.header.Put(bucket, widenIndex(next))
			} else {
				link := t.allocator.Get(previous)[t.keyLength:]
				binary.LittleEndian.PutUint32(link, next)
			}
			return true
		}
		previous = current
		current = next
	}
	return false
}

// narrow a bucket slot to a record index
func headIndex(slot uint64) uint32 {
	if EmptySlab == slot {
		return EmptyRecord
	}
	return uint32(slot)
}

// widen a record index to a bucket slot
func widenIndex(index uint32) uint64 {
	if EmptyRecord == index {
		return EmptySlab
	}
	return uint64(index)
}
