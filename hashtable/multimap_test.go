// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chaindb/hashtable"
)

// payload size for multimap tests
const testPayloadSize = 16

// append one row holding a marker string
func addRow(t *testing.T, m *hashtable.Multimap, key []byte, marker string) {
	err := m.AddRow(key, func(payload []byte) {
		copy(payload, marker)
	})
	assert.Nil(t, err, "add row error")
}

// collect all payloads for a key, newest first
func collectRows(m *hashtable.Multimap, key []byte) []string {
	result := []string(nil)
	iterator := m.Rows(key)
	for {
		index, ok := iterator.Next()
		if !ok {
			break
		}
		payload := m.List().Payload(index)
		end := 0
		for end < len(payload) && 0 != payload[end] {
			end += 1
		}
		result = append(result, string(payload[:end]))
	}
	return result
}

func TestMultimapOrdering(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	key := makeKey(1)
	addRow(t, m, key, "first")
	addRow(t, m, key, "second")
	addRow(t, m, key, "third")

	// iteration is newest first
	assert.Equal(t, []string{"third", "second", "first"}, collectRows(m, key), "wrong order")

	// a fresh lookup restarts the sequence
	assert.Equal(t, []string{"third", "second", "first"}, collectRows(m, key), "iteration not restartable")
}

func TestMultimapSeparateKeys(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	// both keys collide into bucket zero
	keyA := makeKey(0)
	keyB := makeKey(4)

	addRow(t, m, keyA, "a-one")
	addRow(t, m, keyB, "b-one")
	addRow(t, m, keyA, "a-two")

	assert.Equal(t, []string{"a-two", "a-one"}, collectRows(m, keyA), "wrong rows for A")
	assert.Equal(t, []string{"b-one"}, collectRows(m, keyB), "wrong rows for B")

	_, found := m.Lookup(makeKey(8))
	assert.False(t, found, "found a key never added")
}

// delete-last restores the chain exactly as it was before the add
func TestMultimapUndo(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	key := makeKey(2)
	addRow(t, m, key, "keep-one")
	addRow(t, m, key, "keep-two")

	headBefore, found := m.Lookup(key)
	assert.True(t, found, "missing key")
	rowsBefore := collectRows(m, key)

	addRow(t, m, key, "reorged-away")
	m.DeleteLastRow(key)

	headAfter, found := m.Lookup(key)
	assert.True(t, found, "key lost by undo")
	assert.Equal(t, headBefore, headAfter, "head moved by undo")
	assert.Equal(t, rowsBefore, collectRows(m, key), "chain changed by undo")
}

// undoing the only row removes the key entirely
func TestMultimapUndoToEmpty(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	key := makeKey(3)
	addRow(t, m, key, "only")
	m.DeleteLastRow(key)

	_, found := m.Lookup(key)
	assert.False(t, found, "key still present after undoing the only row")
	assert.Nil(t, collectRows(m, key), "rows still present")
}

// delete-last on an unknown key is a programming error
func TestMultimapDeleteLastOfAbsentKey(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	assert.Panics(t, func() {
		m.DeleteLastRow(makeKey(9))
	}, "delete of absent key must fault")
}

// enough rows to grow the rows file
func TestMultimapGrowth(t *testing.T) {
	lookupFile, rowsFile, m := setupMultimap(t, testPayloadSize)
	defer removeFiles()
	defer lookupFile.Stop()
	defer rowsFile.Stop()

	initialCapacity := rowsFile.Capacity()

	key := makeKey(5)
	for i := 0; i < 200; i += 1 {
		addRow(t, m, key, "filler")
	}
	assert.True(t, rowsFile.Capacity() > initialCapacity, "rows file never grew")

	rows := collectRows(m, key)
	assert.Equal(t, 200, len(rows), "wrong row count after growth")
}
