// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package hashtable_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chaindb/hashtable"
	"github.com/bitmark-inc/chaindb/mmfile"
)

func TestSlabAllocator(t *testing.T) {
	removeFiles()
	defer removeFiles()

	file, err := mmfile.Create(rowsFileName, 64)
	assert.Nil(t, err, "create file error")
	defer file.Stop()

	allocator := hashtable.NewSlabAllocator(file, 0)
	assert.Nil(t, allocator.Create(), "create error")
	assert.Equal(t, uint64(8), allocator.Eof(), "wrong initial end")

	first, err := allocator.Allocate(16)
	assert.Nil(t, err, "allocate error")
	second, err := allocator.Allocate(16)
	assert.Nil(t, err, "allocate error")

	assert.Equal(t, uint64(8), first, "wrong first offset")
	assert.Equal(t, uint64(24), second, "wrong second offset")
	assert.Equal(t, uint64(40), allocator.Eof(), "wrong end")

	// allocation beyond capacity grows the file
	third, err := allocator.Allocate(100)
	assert.Nil(t, err, "allocate error")
	assert.Equal(t, uint64(40), third, "wrong third offset")
	assert.True(t, file.Capacity() >= 140, "file did not grow")
}

// restart recovery only sees synced metadata
func TestSlabAllocatorRecovery(t *testing.T) {
	removeFiles()
	defer removeFiles()

	file, err := mmfile.Create(rowsFileName, 64)
	assert.Nil(t, err, "create file error")

	allocator := hashtable.NewSlabAllocator(file, 0)
	assert.Nil(t, allocator.Create(), "create error")

	_, err = allocator.Allocate(16)
	assert.Nil(t, err, "allocate error")
	assert.Nil(t, allocator.Sync(), "sync error")

	// allocated but never synced: garbage at the tail after restart
	_, err = allocator.Allocate(16)
	assert.Nil(t, err, "allocate error")

	assert.Nil(t, file.Stop(), "stop error")

	file, err = mmfile.Open(rowsFileName)
	assert.Nil(t, err, "open error")
	defer file.Stop()

	allocator = hashtable.NewSlabAllocator(file, 0)
	assert.Nil(t, allocator.Start(), "start error")
	assert.Equal(t, uint64(24), allocator.Eof(), "recovered past the sync point")
}

func TestRecordAllocator(t *testing.T) {
	removeFiles()
	defer removeFiles()

	file, err := mmfile.Create(rowsFileName, 64)
	assert.Nil(t, err, "create file error")
	defer file.Stop()

	allocator, err := hashtable.NewRecordAllocator(file, 0, 24)
	assert.Nil(t, err, "new allocator error")
	assert.Nil(t, allocator.Create(), "create error")
	assert.Equal(t, uint64(0), allocator.Count(), "wrong initial count")

	first, err := allocator.Allocate()
	assert.Nil(t, err, "allocate error")
	second, err := allocator.Allocate()
	assert.Nil(t, err, "allocate error")

	assert.Equal(t, uint32(0), first, "wrong first index")
	assert.Equal(t, uint32(1), second, "wrong second index")
	assert.Equal(t, uint64(2), allocator.Count(), "wrong count")

	record := allocator.Get(first)
	assert.Equal(t, 24, len(record), "wrong record size")

	// access beyond the allocated count is a fault
	assert.Panics(t, func() {
		_ = allocator.Get(7)
	}, "unallocated record access must fault")
}

// a truncated file is detected on start
func TestRecordAllocatorInvalidState(t *testing.T) {
	removeFiles()
	defer removeFiles()

	file, err := mmfile.Create(rowsFileName, 256)
	assert.Nil(t, err, "create file error")

	allocator, err := hashtable.NewRecordAllocator(file, 0, 24)
	assert.Nil(t, err, "new allocator error")
	assert.Nil(t, allocator.Create(), "create error")

	for i := 0; i < 10; i += 1 {
		_, err = allocator.Allocate()
		assert.Nil(t, err, "allocate error")
	}
	assert.Nil(t, allocator.Sync(), "sync error")
	assert.Nil(t, file.Stop(), "stop error")

	// reattach claiming a larger record size: count no longer fits
	file, err = mmfile.Open(rowsFileName)
	assert.Nil(t, err, "open error")
	defer file.Stop()

	allocator, err = hashtable.NewRecordAllocator(file, 0, 4096)
	assert.Nil(t, err, "new allocator error")
	assert.NotNil(t, allocator.Start(), "inconsistent state not detected")
}
