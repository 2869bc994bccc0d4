// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"encoding/binary"
)

// RecordListSize - record size needed for a row payload
func RecordListSize(payloadSize uint64) uint64 {
	return recordLinkSize + payloadSize
}

// RecordList - rows linked newest-first through a previous index
//
// a node is [previous:4][payload]; nodes for one key form a singly
// linked list anchored at the multimap's lookup record
type RecordList struct {
	allocator *RecordAllocator
}

// NewRecordList - wrap a record allocator holding list nodes
func NewRecordList(allocator *RecordAllocator) *RecordList {
	return &RecordList{
		allocator: allocator,
	}
}

// Insert - allocate a node linking back to previous and fill its
// payload through writer
func (l *RecordList) Insert(previous uint32, writer func(payload []byte)) (uint32, error) {
	index, err := l.allocator.Allocate()
	if nil != err {
		return 0, err
	}
	node := l.allocator.Get(index)
	binary.LittleEndian.PutUint32(node, previous)
	writer(node[recordLinkSize:])
	return index, nil
}

// Previous - the next-older node index, EmptyRecord at the end
func (l *RecordList) Previous(index uint32) uint32 {
	return binary.LittleEndian.Uint32(l.allocator.Get(index))
}

// Payload - the row payload of a node, valid until the next grow
func (l *RecordList) Payload(index uint32) []byte {
	return l.allocator.Get(index)[recordLinkSize:]
}
