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

// per-slab overhead: 8 byte next link and 4 byte value length
//
// value payloads are opaque to the engine so their length must be
// recorded to hand back an exact slice on Find
const (
	slabLinkSize = 8
	slabSizeSize = 4
)

// SlabTable - hash table of variable length values, one slab per store
//
// a slab is [key][next:8][length:4][value]; buckets and links hold
// absolute file offsets; storing an existing key again prepends a
// duplicate and Find returns the most recent one
type SlabTable struct {
	header    *Header
	allocator *SlabAllocator
	keyLength uint64
}

// NewSlabTable - combine a header and a slab allocator
func NewSlabTable(header *Header, allocator *SlabAllocator, keyLength uint64) (*SlabTable, error) {
	if keyLength < 8 {
		return nil, fault.ErrInvalidKeyLength
	}
	t := &SlabTable{
		header:    header,
		allocator: allocator,
		keyLength: keyLength,
	}
	return t, nil
}

// Store - allocate a slab, fill it through writer and publish it as
// the new head of its bucket chain
//
// never overwrites: a duplicate key shadows the older entry
func (t *SlabTable) Store(key []byte, valueSize uint64, writer func(value []byte)) error {
	if uint64(len(key)) != t.keyLength {
		return fault.ErrInvalidKeyLength
	}
	if valueSize > 0xffffffff {
		return fault.ErrValueTooLarge
	}

	bucket := t.header.BucketIndex(key)

	// read the old head before allocating: Allocate may remap
	next := t.header.Get(bucket)

	position, err := t.allocator.Allocate(t.keyLength + slabLinkSize + slabSizeSize + valueSize)
	if nil != err {
		return err
	}

	slab := t.allocator.Bytes(position, t.keyLength+slabLinkSize+slabSizeSize+valueSize)
	n := copy(slab, key)
	binary.LittleEndian.PutUint64(slab[n:], next)
	binary.LittleEndian.PutUint32(slab[n+slabLinkSize:], uint32(valueSize))
	writer(slab[n+slabLinkSize+slabSizeSize:])

	// publish only after the slab is complete
	t.header.Put(bucket, position)
	return nil
}

// Find - walk the bucket chain and return the newest value for key
//
// this returns the actual mapped memory - copy the result if it must
// be preserved across a mutating operation; nil means not found
func (t *SlabTable) Find(key []byte) []byte {
	if uint64(len(key)) != t.keyLength {
		return nil
	}
	current := t.header.Get(t.header.BucketIndex(key))

	for EmptySlab != current {
		slab := t.allocator.Bytes(current, t.keyLength+slabLinkSize+slabSizeSize)
		if bytes.Equal(slab[:t.keyLength], key) {
			size := uint64(binary.LittleEndian.Uint32(slab[t.keyLength+slabLinkSize:]))
			return t.allocator.Bytes(current+t.keyLength+slabLinkSize+slabSizeSize, size)
		}
		current = binary.LittleEndian.Uint64(slab[t.keyLength:])
	}
	return nil
}

// Unlink - splice the newest entry for key out of its bucket chain
//
// slab space is not reclaimed; returns false if the key is absent
func (t *SlabTable) Unlink(key []byte) bool {
	if uint64(len(key)) != t.keyLength {
		return false
	}
	bucket := t.header.BucketIndex(key)
	current := t.header.Get(bucket)
	previous := EmptySlab

	for EmptySlab != current {
		slab := t.allocator.Bytes(current, t.keyLength+slabLinkSize)
		next := binary.LittleEndian.Uint64(slab[t.keyLength:])

		if bytes.Equal(slab[:t.keyLength], key) {
			if EmptySlab == previous {
				t.header.Put(bucket, next)
			} else {
				link := t.allocator.Bytes(previous+t.keyLength, slabLinkSize)
				binary.LittleEndian.PutUint64(link, next)
			}
			return true
		}
		previous = current
		current = next
	}
	return false
}
