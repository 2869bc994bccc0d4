// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable

import (
	"encoding/binary"

	"github.com/bitmark-inc/chaindb/fault"
)

// Multimap - several rows per key, newest first
//
// a record table maps each key to the head of its row chain in a
// separate record list; AddRow prepends in O(1) and DeleteLastRow
// undoes exactly one prior AddRow for chain reorganisation rollback
type Multimap struct {
	table *RecordTable
	rows  *RecordList
}

// NewMultimap - combine a lookup table with a row list
//
// the lookup table's value payload must hold one record index
func NewMultimap(table *RecordTable, rows *RecordList) (*Multimap, error) {
	if table.valueSize() != recordLinkSize {
		return nil, fault.ErrInvalidRecordSize
	}
	m := &Multimap{
		table: table,
		rows:  rows,
	}
	return m, nil
}

// AddRow - prepend one row for key
//
// the new row links back to the key's previous head, then the head
// is moved; cost does not depend on the existing chain length
func (m *Multimap) AddRow(key []byte, writer func(payload []byte)) error {
	head := EmptyRecord
	known := false

	// copy the head value out: Insert below may remap the rows file
	// and Store/Find reacquire the lookup file afterwards
	if value := m.table.Find(key); nil != value {
		head = binary.LittleEndian.Uint32(value)
		known = true
	}

	index, err := m.rows.Insert(head, writer)
	if nil != err {
		return err
	}

	if known {
		value := m.table.Find(key)
		binary.LittleEndian.PutUint32(value, index)
		return nil
	}
	return m.table.Store(key, func(value []byte) {
		binary.LittleEndian.PutUint32(value, index)
	})
}

// Lookup - head row index for key, or false if the key has no rows
//
// use as the starting point for Rows iteration
func (m *Multimap) Lookup(key []byte) (uint32, bool) {
	value := m.table.Find(key)
	if nil == value {
		return EmptyRecord, false
	}
	return binary.LittleEndian.Uint32(value), true
}

// DeleteLastRow - remove the most recently added row for key
//
// only valid to undo a known prior AddRow, so a missing key is a
// fatal fault, not a recoverable condition
func (m *Multimap) DeleteLastRow(key []byte) {
	value := m.table.Find(key)
	if nil == value {
		fault.Panicf("hashtable.DeleteLastRow: no rows for key: %x", key)
	}
	head := binary.LittleEndian.Uint32(value)
	previous := m.rows.Previous(head)

	if EmptyRecord == previous {
		if !m.table.Unlink(key) {
			fault.Panicf("hashtable.DeleteLastRow: unlink failed for key: %x", key)
		}
		return
	}
	binary.LittleEndian.PutUint32(value, previous)
}

// Rows - lazy iteration over a key's rows, newest first
//
// each call produces a fresh finite iterator; the sequence follows
// previous links until the chain end
func (m *Multimap) Rows(key []byte) *Iterator {
	head, ok := m.Lookup(key)
	if !ok {
		head = EmptyRecord
	}
	return &Iterator{
		rows:    m.rows,
		current: head,
	}
}

// List - the underlying row list, for direct payload access
func (m *Multimap) List() *RecordList {
	return m.rows
}

// Iterator - walks one key's row chain newest first
type Iterator struct {
	rows    *RecordList
	current uint32
}

// Next - the next row index, false at the end of the chain
func (it *Iterator) Next() (uint32, bool) {
	if EmptyRecord == it.current {
		return 0, false
	}
	index := it.current
	it.current = it.rows.Previous(index)
	return index, true
}
