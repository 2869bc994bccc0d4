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

// sentinels marking an unused bucket or a chain end
const (
	EmptySlab   = ^uint64(0)
	EmptyRecord = ^uint32(0)
)

// width of one bucket slot in bytes
const bucketSlotSize = 8

// Header - fixed bucket array at the front of a mapped file
//
// the bucket count is chosen at creation and can never change
// without rebuilding the file, so choose generously: expected
// cardinality divided by bucket count is the average chain length
type Header struct {
	file    *mmfile.File
	buckets uint64
}

// HeaderSize - bytes occupied by a header of the given bucket count
func HeaderSize(buckets uint64) uint64 {
	return buckets * bucketSlotSize
}

// NewHeader - attach a header of the given bucket count to a file
func NewHeader(file *mmfile.File, buckets uint64) (*Header, error) {
	if 0 == buckets {
		return nil, fault.ErrBucketCountTooSmall
	}
	h := &Header{
		file:    file,
		buckets: buckets,
	}
	return h, nil
}

// Create - write empty sentinels over the whole bucket array
//
// the file must already be sized to hold the header
func (h *Header) Create() error {
	size := HeaderSize(h.buckets)
	if size > h.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	region := h.file.Access().Bytes(0, size)
	for i := range region {
		region[i] = 0xff // every slot becomes EmptySlab
	}
	return nil
}

// Start - validate the header against the file size
func (h *Header) Start() error {
	if HeaderSize(h.buckets) > h.file.Capacity() {
		return fault.ErrFileTooSmall
	}
	return nil
}

// BucketCount - number of buckets fixed at creation
func (h *Header) BucketCount() uint64 {
	return h.buckets
}

// BucketIndex - map a key to its bucket
//
// keys are already cryptographic hashes so the first eight bytes are
// a uniform stable hash
func (h *Header) BucketIndex(key []byte) uint64 {
	if len(key) < 8 {
		fault.Panicf("hashtable.BucketIndex: key too short: %d bytes", len(key))
	}
	return binary.LittleEndian.Uint64(key[:8]) % h.buckets
}

// Get - read one bucket slot
func (h *Header) Get(index uint64) uint64 {
	slot := h.file.Access().Bytes(index*bucketSlotSize, bucketSlotSize)
	return binary.LittleEndian.Uint64(slot)
}

// Put - overwrite one bucket slot
//
// this is the single word store that publishes a new chain head
func (h *Header) Put(index uint64, value uint64) {
	slot := h.file.Access().Bytes(index*bucketSlotSize, bucketSlotSize)
	binary.LittleEndian.PutUint64(slot, value)
}
